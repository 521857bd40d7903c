package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	gtassert "gotest.tools/v3/assert"

	"github.com/mpapenbr/pitwall-go/pkg/model"
	"github.com/mpapenbr/pitwall-go/pkg/session"
	"github.com/mpapenbr/pitwall-go/testsupport/basedata"
)

func fresh() session.State {
	return session.NewSolo(basedata.SampleTeam(0, "Fresh"))
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_, err := m.Load(ctx, DefaultSlot)
	assert.ErrorIs(t, err, ErrNotFound)

	s := basedata.SampleDuel()
	gtassert.NilError(t, m.Save(ctx, DefaultSlot, &s))
	got, err := m.Load(ctx, DefaultSlot)
	gtassert.NilError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, model.ModeDuel, got.Mode)
	assert.Equal(t, 1, got.CurrentTeamIndex)
	assert.Equal(t, s.Teams, got.Teams)
	assert.Equal(t, s.Season.History, got.Season.History)
}

func TestLoadOrNew(t *testing.T) {
	ctx := context.Background()
	saved := basedata.SampleSolo()

	tests := []struct {
		name     string
		prepare  func(m *Memory)
		wantName string
	}{
		{name: "empty", prepare: func(m *Memory) {}, wantName: "Fresh"},
		{
			name:     "saved",
			prepare:  func(m *Memory) { _ = m.Save(ctx, DefaultSlot, &saved) },
			wantName: "My Team",
		},
		{
			name:     "garbage",
			prepare:  func(m *Memory) { m.Raw(DefaultSlot, []byte("{not json")) },
			wantName: "Fresh",
		},
		{
			name: "invariant broken",
			prepare: func(m *Memory) {
				m.Raw(DefaultSlot, []byte(`{"mode":"solo","teams":[],"currentTeamIndex":0}`))
			},
			wantName: "Fresh",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemory()
			tt.prepare(m)
			got := LoadOrNew(ctx, m, DefaultSlot, fresh)
			assert.Equal(t, tt.wantName, got.Teams[0].Name)
		})
	}
}

func TestDecode(t *testing.T) {
	_, err := Decode([]byte(`{"mode":"coop","teams":[{"id":0}]}`))
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorIs(t, err, session.ErrInvalidMode)
}
