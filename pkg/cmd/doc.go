// Package cmd implements the cobra command tree for the repogen CLI: guided
// setup and authentication, repository creation, configuration management,
// and version output.
package cmd
