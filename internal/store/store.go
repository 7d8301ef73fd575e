// ABOUTME: Persistent storage for the session bearer token
// ABOUTME: Backed by a single JSON file in the XDG config directory

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// TokenStore holds at most one opaque bearer token. A token is present
// exactly when the client believes it has a session; staleness is detected
// lazily on the next authenticated request.
type TokenStore interface {
	// Token returns the stored token and whether one is present
	Token() (string, bool)
	// SetToken replaces the stored token
	SetToken(token string) error
	// Clear removes the stored token
	Clear() error
}

type credentialsData struct {
	Token string `json:"token"`
}

// FileStore persists the token across process restarts
type FileStore struct {
	configDir string
}

// NewFileStore creates a token store rooted at the given config directory
func NewFileStore(configDir string) *FileStore {
	return &FileStore{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "favshelf")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "favshelf")
}

// credentialsFile returns the path to the credentials JSON
func (fs *FileStore) credentialsFile() string {
	return filepath.Join(fs.configDir, "credentials.json")
}

// Token reads the stored token from disk.
// A missing or unreadable file means no token.
func (fs *FileStore) Token() (string, bool) {
	data, err := os.ReadFile(fs.credentialsFile())
	if err != nil {
		return "", false
	}

	var creds credentialsData
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", false
	}
	if creds.Token == "" {
		return "", false
	}
	return creds.Token, true
}

// SetToken writes the token to disk, creating the config directory if needed
func (fs *FileStore) SetToken(token string) error {
	if err := os.MkdirAll(fs.configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(credentialsData{Token: token}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fs.credentialsFile(), data, 0600)
}

// Clear removes the stored token. Clearing an absent token is a no-op.
func (fs *FileStore) Clear() error {
	err := os.Remove(fs.credentialsFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemStore is an in-memory token store for tests and ephemeral sessions
type MemStore struct {
	token string
	set   bool
}

// NewMemStore creates an empty in-memory token store
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (ms *MemStore) Token() (string, bool) {
	return ms.token, ms.set
}

func (ms *MemStore) SetToken(token string) error {
	ms.token = token
	ms.set = true
	return nil
}

func (ms *MemStore) Clear() error {
	ms.token = ""
	ms.set = false
	return nil
}
