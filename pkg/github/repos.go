package github

import (
	"context"
	"fmt"
)

// CreateRepositoryRequest is the body of POST /user/repos.
type CreateRepositoryRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	Private           bool   `json:"private"`
	LicenseTemplate   string `json:"license_template,omitempty"`
	GitignoreTemplate string `json:"gitignore_template,omitempty"`
	AutoInit          bool   `json:"auto_init"`
}

// Repository is the subset of the created-repository response repogen shows
// the user.
type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
	CloneURL string `json:"clone_url"`
	SSHURL   string `json:"ssh_url"`
	Private  bool   `json:"private"`
}

// CreateRepository creates a repository for the authenticated user.
func (c *Client) CreateRepository(ctx context.Context, req *CreateRepositoryRequest) (*Repository, error) {
	var repo Repository
	apiErr := &APIError{}
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&repo).
		SetError(apiErr).
		Post("/user/repos")
	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}
	if resp.IsError() {
		apiErr.StatusCode = resp.StatusCode()
		return nil, apiErr
	}
	return &repo, nil
}
