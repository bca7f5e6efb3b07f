// Package git shells out to the git binary for the clone step after
// repository creation.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Clone clones cloneURL into targetDir (created if missing; the current
// directory when empty) and returns the path of the resulting repository.
func Clone(ctx context.Context, cloneURL, targetDir string) (string, error) {
	if targetDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve current directory: %w", err)
		}
		targetDir = cwd
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create clone directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, "git", "clone", cloneURL)
	cmd.Dir = targetDir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git clone failed: %s", msg)
		}
		return "", fmt.Errorf("git clone failed: %w", err)
	}
	return filepath.Join(targetDir, RepoName(cloneURL)), nil
}

// RepoName derives the checkout directory name git will use for cloneURL.
func RepoName(cloneURL string) string {
	name := cloneURL
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".git")
}
