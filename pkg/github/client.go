// Package github is a minimal client for the GitHub REST API surface repogen
// uses: repository creation and the authenticated user.
package github

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.github.com"
	apiVersion     = "2022-11-28"
)

type Client struct {
	rest *resty.Client
}

type Option func(*Client)

// WithBaseURL points the client at a different API host, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.rest.SetBaseURL(baseURL)
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.rest.SetTimeout(timeout)
	}
}

func New(token string, opts ...Option) *Client {
	rest := resty.New().
		SetBaseURL(defaultBaseURL).
		SetAuthToken(token).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("X-GitHub-Api-Version", apiVersion).
		SetHeader("User-Agent", "repogen")
	c := &Client{rest: rest}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from the GitHub API.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("github api error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("github api error (%d)", e.StatusCode)
}

// User is the authenticated account.
type User struct {
	Login string `json:"login"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// CurrentUser resolves the account behind the client's token.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	apiErr := &APIError{}
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&user).
		SetError(apiErr).
		Get("/user")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch authenticated user: %w", err)
	}
	if resp.IsError() {
		apiErr.StatusCode = resp.StatusCode()
		return nil, apiErr
	}
	return &user, nil
}
