// Package session owns the client-side login state: the persisted bearer
// token, the process-wide session provider, and the route guard derived
// from it.
package session

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"smartcampus/pkg/crypto"
)

const credentialsFile = "credentials.yaml"
const keyFile = "credentials.key"

// credFile is the on-disk shape of the persisted session.
type credFile struct {
	AccessToken string `yaml:"access_token"`
}

// CredentialStore persists the bearer token under a fixed file name,
// sealed with a locally generated key. It is the only writer of that file;
// everything else observes login state through the Provider.
type CredentialStore struct {
	dir string
	key []byte
}

// DefaultDir returns the directory credentials live in: next to the binary,
// matching the rest of the client's local state.
func DefaultDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewCredentialStore opens the store in dir, creating the sealing key on
// first use.
func NewCredentialStore(dir string) (*CredentialStore, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	key, err := loadOrCreateKey(filepath.Join(dir, keyFile))
	if err != nil {
		return nil, err
	}
	return &CredentialStore{dir: dir, key: key}, nil
}

func loadOrCreateKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		key, decErr := hex.DecodeString(string(data))
		if decErr != nil || len(key) != crypto.KeySize {
			return nil, fmt.Errorf("session: key file %s is corrupt", path)
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("session: read key file: %w", err)
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(key)), 0600); err != nil {
		return nil, fmt.Errorf("session: write key file: %w", err)
	}
	return key, nil
}

func (s *CredentialStore) path() string {
	return filepath.Join(s.dir, credentialsFile)
}

// Save seals and persists the token.
func (s *CredentialStore) Save(token string) error {
	blob, err := crypto.Seal(s.key, []byte(token))
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(credFile{AccessToken: base64.StdEncoding.EncodeToString(blob)})
	if err != nil {
		return fmt.Errorf("session: encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0600); err != nil {
		return fmt.Errorf("session: write credentials: %w", err)
	}
	return nil
}

// Load returns the persisted token, or "" when none is stored. A corrupt
// or unreadable file is an error; callers treat it as logged out and clear.
func (s *CredentialStore) Load() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("session: read credentials: %w", err)
	}
	var f credFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return "", fmt.Errorf("session: parse credentials: %w", err)
	}
	blob, err := base64.StdEncoding.DecodeString(f.AccessToken)
	if err != nil {
		return "", fmt.Errorf("session: parse credentials: %w", err)
	}
	token, err := crypto.Open(s.key, blob)
	if err != nil {
		return "", err
	}
	return string(token), nil
}

// Clear removes the persisted token. Clearing an absent token succeeds.
func (s *CredentialStore) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: clear credentials: %w", err)
	}
	return nil
}
