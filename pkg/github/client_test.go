package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateRepository(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/user/repos", r.URL.Path)
		require.Equal(t, "Bearer tok_abc", r.Header.Get("Authorization"))
		require.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		require.Equal(t, "2022-11-28", r.Header.Get("X-GitHub-Api-Version"))

		var body CreateRepositoryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "widget", body.Name)
		require.True(t, body.Private)
		require.True(t, body.AutoInit)
		require.Equal(t, "mit", body.LicenseTemplate)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Repository{
			Name:     "widget",
			FullName: "alice/widget",
			HTMLURL:  "https://github.com/alice/widget",
			CloneURL: "https://github.com/alice/widget.git",
			SSHURL:   "git@github.com:alice/widget.git",
			Private:  true,
		})
	}))
	defer server.Close()

	client := New("tok_abc", WithBaseURL(server.URL))
	repo, err := client.CreateRepository(context.Background(), &CreateRepositoryRequest{
		Name:            "widget",
		Private:         true,
		AutoInit:        true,
		LicenseTemplate: "mit",
	})
	require.NoError(t, err)
	require.Equal(t, "alice/widget", repo.FullName)
	require.Equal(t, "https://github.com/alice/widget.git", repo.CloneURL)
}

func TestCreateRepositoryNameTaken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Repository creation failed."})
	}))
	defer server.Close()

	client := New("tok_abc", WithBaseURL(server.URL))
	_, err := client.CreateRepository(context.Background(), &CreateRepositoryRequest{Name: "taken"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	require.Contains(t, apiErr.Error(), "Repository creation failed.")
}

func TestCurrentUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(User{Login: "alice", Name: "Alice Example"})
	}))
	defer server.Close()

	client := New("tok_abc", WithBaseURL(server.URL))
	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "alice", user.Login)
	require.Equal(t, "Alice Example", user.Name)
}

func TestCurrentUserBadToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
	}))
	defer server.Close()

	client := New("nope", WithBaseURL(server.URL))
	_, err := client.CurrentUser(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestCurrentUserTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := New("tok", WithBaseURL(server.URL))
	_, err := client.CurrentUser(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.False(t, errors.As(err, &apiErr))
}
