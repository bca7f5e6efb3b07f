// Package auth implements GitHub authentication for the repogen CLI: the
// OAuth 2.0 device authorization grant with its poll loop and backoff, token
// validation against the identity endpoint, the guided OAuth-app setup flow,
// and the facade that ties them to the credential store.
package auth
