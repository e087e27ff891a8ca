package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/notes/internal/store"
)

// File-backed slots. One human-readable file per key inside a data dir.
// No locking; fine for a local single-user board.

const fileExt = ".json"

type Store struct {
	dir string
}

var _ store.Slot = (*Store)(nil)

// New returns a Store rooted at dir. The directory is created lazily on the
// first write.
func New(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("jsonstore: data dir is required")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, key+fileExt), nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

// Set writes value atomically (temp file + rename). Valid JSON values are
// re-indented so the file stays readable.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, value, "", "  "); err == nil {
		value = pretty.Bytes()
	}

	f, err := os.CreateTemp(s.dir, ".tmp-*"+fileExt)
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()
	if _, err := f.Write(value); err != nil {
		_ = f.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(f.Name(), p); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
