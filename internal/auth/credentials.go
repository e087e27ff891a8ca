// Package auth stores the password used by the Redis storage backend.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/idilsaglam/notes/internal/config"
)

const passwordEnvVar = "NOTES_REDIS_PASSWORD"

const (
	SourceEnv  = "env"
	SourceFile = "file"
)

type Credentials struct {
	Password  string    `json:"password"`
	Source    string    `json:"source"`     // "env" | "file"
	CreatedAt time.Time `json:"created_at"` // when we saved to file
}

// Load returns the stored credentials, or nil when none are configured.
// The environment variable takes precedence over the file.
func Load() (*Credentials, error) {
	if env := strings.TrimSpace(os.Getenv(passwordEnvVar)); env != "" {
		return &Credentials{Password: env, Source: SourceEnv}, nil
	}

	p, err := config.CredentialsPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	c.Source = SourceFile
	return &c, nil
}

// Password is a convenience for backends: empty when nothing is stored.
func Password() (string, error) {
	c, err := Load()
	if err != nil || c == nil {
		return "", err
	}
	return c.Password, nil
}

func Save(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return errors.New("empty password")
	}
	p, err := config.CredentialsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	c := Credentials{
		Password:  password,
		Source:    SourceFile,
		CreatedAt: time.Now().UTC(),
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	// owner-only
	if err := os.WriteFile(p, b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func Delete() error {
	p, err := config.CredentialsPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}
