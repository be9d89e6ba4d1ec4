package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Vault persists the raw token string in a single file. The file is read
// once at startup, written on login and removed on logout.
type Vault struct {
	path string
}

// NewVault creates a Vault at path. An empty path places the file under
// the user config dir.
func NewVault(path string) (*Vault, error) {
	const op = "session.NewVault"
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		path = filepath.Join(configDir, "afrikanet-console", "token")
	}
	return &Vault{path: path}, nil
}

// Load returns the persisted token, or empty when none is stored.
func (v *Vault) Load() (string, error) {
	const op = "session.Vault.Load"
	data, err := os.ReadFile(v.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token, creating the parent directory when needed. The
// file is private to the user.
func (v *Vault) Save(token string) error {
	const op = "session.Vault.Save"
	if err := os.MkdirAll(filepath.Dir(v.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.WriteFile(v.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Remove deletes the persisted token. Removing an absent file is not an
// error.
func (v *Vault) Remove() error {
	const op = "session.Vault.Remove"
	err := os.Remove(v.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
