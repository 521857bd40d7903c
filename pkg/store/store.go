// Package store persists the local session snapshot.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/session"
)

// DefaultSlot is the fixed slot the game saves to
const DefaultSlot = "pitwall_game_v1"

var (
	ErrNotFound = errors.New("no snapshot in slot")
	ErrCorrupt  = errors.New("corrupt snapshot")
)

type Store interface {
	Save(ctx context.Context, slot string, s *session.State) error
	// Load returns ErrNotFound for an empty slot and an error wrapping
	// ErrCorrupt if the stored data cannot be used.
	Load(ctx context.Context, slot string) (*session.State, error)
	Close() error
}

// Encode is the format all stores use for the snapshot
func Encode(s *session.State) ([]byte, error) {
	return json.Marshal(s)
}

// Decode restores a snapshot and checks its invariants
func Decode(data []byte) (*session.State, error) {
	var s session.State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return &s, nil
}

// LoadOrNew returns the saved session or the result of fresh if the slot is
// empty, corrupt or cannot be read.
func LoadOrNew(
	ctx context.Context,
	st Store,
	slot string,
	fresh func() session.State,
) session.State {
	s, err := st.Load(ctx, slot)
	switch {
	case err == nil:
		return *s
	case errors.Is(err, ErrNotFound):
		log.Debug("no saved session", log.String("slot", slot))
	case errors.Is(err, ErrCorrupt):
		log.Warn("discarding corrupt session", log.String("slot", slot), log.ErrorField(err))
	default:
		log.Warn("could not load session", log.String("slot", slot), log.ErrorField(err))
	}
	return fresh()
}

// Memory keeps snapshots in memory, encoded like the persistent stores
type Memory struct {
	mu    sync.Mutex
	slots map[string][]byte
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{slots: map[string][]byte{}}
}

func (m *Memory) Save(_ context.Context, slot string, s *session.State) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = data
	return nil
}

func (m *Memory) Load(_ context.Context, slot string) (*session.State, error) {
	m.mu.Lock()
	data, ok := m.slots[slot]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return Decode(data)
}

// Raw replaces the stored bytes of a slot
func (m *Memory) Raw(slot string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = append([]byte{}, data...)
}

func (m *Memory) Close() error {
	return nil
}
