package reconcile

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/mpapenbr/pitwall-go/log"
	"github.com/mpapenbr/pitwall-go/pkg/channel"
)

const (
	KeyPrefix      = "pitwall_v1_"
	RoomCodeLength = 6
	roomCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrInvalidRoomCode = errors.New("invalid room code")
)

type (
	// Transport publishes and fetches the snapshot of a room
	Transport interface {
		Publish(ctx context.Context, room string, snap *Snapshot) error
		// Fetch returns ErrRoomNotFound if there is no snapshot for the room
		// and an error wrapping ErrMalformedSnapshot if the stored data is
		// not usable.
		Fetch(ctx context.Context, room string) (*Snapshot, error)
	}

	KVTransport struct {
		ch  channel.Channel
		log *log.Logger
	}
	KVTransportOption func(*KVTransport)
)

var _ Transport = (*KVTransport)(nil)

func WithLogger(l *log.Logger) KVTransportOption {
	return func(t *KVTransport) {
		t.log = l
	}
}

func NewKVTransport(ch channel.Channel, opts ...KVTransportOption) *KVTransport {
	ret := &KVTransport{
		ch:  ch,
		log: log.Default().Named("reconcile.transport"),
	}
	for _, o := range opts {
		o(ret)
	}
	return ret
}

// NormalizeRoomCode upper cases the code and checks its format
func NormalizeRoomCode(room string) (string, error) {
	room = strings.ToUpper(strings.TrimSpace(room))
	if len(room) != RoomCodeLength {
		return "", ErrInvalidRoomCode
	}
	for _, c := range room {
		if !strings.ContainsRune(roomCodeChars, c) {
			return "", ErrInvalidRoomCode
		}
	}
	return room, nil
}

// Key returns the channel key of a room
func Key(room string) string {
	return KeyPrefix + strings.ToUpper(room)
}

// NewRoomCode creates a random room code
func NewRoomCode() (string, error) {
	var sb strings.Builder
	maxIdx := big.NewInt(int64(len(roomCodeChars)))
	for range RoomCodeLength {
		n, err := rand.Int(rand.Reader, maxIdx)
		if err != nil {
			return "", err
		}
		sb.WriteByte(roomCodeChars[n.Int64()])
	}
	return sb.String(), nil
}

func (t *KVTransport) Publish(ctx context.Context, room string, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := t.ch.Put(ctx, Key(room), data); err != nil {
		return fmt.Errorf("publish room %s: %w", room, err)
	}
	t.log.Debug("published snapshot",
		log.String("room", room),
		log.String("author", string(snap.LastAuthor)),
		log.String("status", string(snap.Status)),
		log.Uint64("seq", snap.Seq))
	return nil
}

func (t *KVTransport) Fetch(ctx context.Context, room string) (*Snapshot, error) {
	data, err := t.ch.Get(ctx, Key(room))
	if err != nil {
		if errors.Is(err, channel.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("fetch room %s: %w", room, err)
	}
	if err := Validate(data); err != nil {
		t.log.Warn("dropping snapshot", log.String("room", room), log.ErrorField(err))
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	return &snap, nil
}
