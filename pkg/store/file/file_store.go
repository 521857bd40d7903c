// Package file stores session snapshots as json files
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mpapenbr/pitwall-go/pkg/session"
	"github.com/mpapenbr/pitwall-go/pkg/store"
)

var ErrInvalidSlot = errors.New("invalid slot name")

// Store keeps one file per slot in a directory
type Store struct {
	dir string
}

var _ store.Store = (*Store)(nil)

// New creates the directory if it doesn't exist
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(slot string) (string, error) {
	if slot == "" || strings.ContainsAny(slot, `/\`) || strings.HasPrefix(slot, ".") {
		return "", ErrInvalidSlot
	}
	return filepath.Join(s.dir, slot+".json"), nil
}

// Save writes to a temp file first and renames it, so a crash never leaves
// a partially written snapshot.
func (s *Store) Save(ctx context.Context, slot string, st *session.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.path(slot)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, slot string) (*session.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := s.path(slot)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	return store.Decode(data)
}

// Delete removes the slot. Deleting an empty slot is not an error.
func (s *Store) Delete(slot string) error {
	target, err := s.path(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}
