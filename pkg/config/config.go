// Package config persists the repogen configuration record: the OAuth client
// ID, the validated access token, and the user's repository defaults. The
// record lives in a single YAML file owned exclusively by this package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

const VersionV1 = "v1"

// Record is the on-disk configuration document.
type Record struct {
	Version string `yaml:"version"`

	// Authentication
	ClientID              string `yaml:"client-id,omitempty"`
	AccessToken           string `yaml:"access-token,omitempty"`
	AuthenticatedUsername string `yaml:"authenticated-username,omitempty"`

	// User profile
	GithubUsername string `yaml:"github-username,omitempty"`
	UserName       string `yaml:"user-name,omitempty"`
	UserEmail      string `yaml:"user-email,omitempty"`

	// Repository defaults
	DefaultPrivate   bool   `yaml:"default-private,omitempty"`
	DefaultLicense   string `yaml:"default-license,omitempty"`
	DefaultGitignore string `yaml:"default-gitignore,omitempty"`
	PreferredEditor  string `yaml:"preferred-editor,omitempty"`

	// Clone behavior
	AutoClone      bool   `yaml:"auto-clone,omitempty"`
	CloneDirectory string `yaml:"clone-directory,omitempty"`
}

func DefaultRecord() *Record {
	return &Record{Version: VersionV1}
}

func (r *Record) HasToken() bool    { return r.AccessToken != "" }
func (r *Record) HasClientID() bool { return r.ClientID != "" }

// Store owns the config file at a fixed path resolved once at process start.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	if path == "" {
		path = DefaultConfigPath()
	}
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the persisted record. A missing file yields the default record;
// an existing but unreadable or unparsable file is an error.
func (s *Store) Load() (*Record, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultRecord(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var rec Record
	if err := yaml.Unmarshal(content, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if rec.Version == "" {
		rec.Version = VersionV1
	}
	return &rec, nil
}

// Save atomically replaces the persisted record. The document is written to a
// temp file in the same directory and renamed into place, so concurrent
// readers never observe a partial write. The file is owner-readable only.
func (s *Store) Save(rec *Record) error {
	if rec == nil {
		return errors.New("record is nil")
	}
	if rec.Version == "" {
		rec.Version = VersionV1
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	content, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	tmp, err := os.CreateTemp(dir, defaultConfigFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set config permissions: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

// Clear deletes the persisted record. Deleting an absent record is not an
// error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config: %w", err)
	}
	return nil
}
