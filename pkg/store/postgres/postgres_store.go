// Package postgres stores session snapshots in the game_snapshot table
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpapenbr/pitwall-go/pkg/db/mytypes"
	"github.com/mpapenbr/pitwall-go/pkg/session"
	"github.com/mpapenbr/pitwall-go/pkg/store"
)

type Store struct {
	pool *pgxpool.Pool
	// close the pool on Close
	owned bool
}

type Option func(*Store)

// WithOwnedPool lets Close close the pool
func WithOwnedPool() Option {
	return func(s *Store) {
		s.owned = true
	}
}

var _ store.Store = (*Store)(nil)

func New(pool *pgxpool.Pool, opts ...Option) *Store {
	ret := &Store{pool: pool}
	for _, o := range opts {
		o(ret)
	}
	return ret
}

func (s *Store) Save(ctx context.Context, slot string, st *session.State) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
insert into game_snapshot (slot, session_id, mode, race_index, data, updated_at)
values ($1, $2, $3, $4, $5, now())
on conflict (slot) do update set
	session_id = excluded.session_id,
	mode = excluded.mode,
	race_index = excluded.race_index,
	data = excluded.data,
	updated_at = now()`,
			slot, st.ID, string(st.Mode), st.Season.CurrentRaceIndex,
			mytypes.JSON[*session.State]{V: st})
		if err != nil {
			return fmt.Errorf("save slot %s: %w", slot, err)
		}
		return nil
	})
}

func (s *Store) Load(ctx context.Context, slot string) (*session.State, error) {
	row := s.pool.QueryRow(ctx, `select data from game_snapshot where slot=$1`, slot)
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("load slot %s: %w", slot, err)
	}
	return store.Decode(raw)
}

// Slots lists the saved slots, most recently updated first
func (s *Store) Slots(ctx context.Context) ([]SlotInfo, error) {
	rows, err := s.pool.Query(ctx, `
select slot, session_id, mode, race_index, updated_at
from game_snapshot order by updated_at desc`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[SlotInfo])
}

// Delete removes the slot. Deleting an empty slot is not an error.
func (s *Store) Delete(ctx context.Context, slot string) error {
	_, err := s.pool.Exec(ctx, `delete from game_snapshot where slot=$1`, slot)
	return err
}

func (s *Store) Close() error {
	if s.owned {
		s.pool.Close()
	}
	return nil
}
