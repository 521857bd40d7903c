// Package session holds the game session and its turn based state machine.
// All transitions are pure: they return a new State and never modify the
// input.
package session

import (
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/mpapenbr/pitwall-go/pkg/ledger"
	"github.com/mpapenbr/pitwall-go/pkg/model"
)

var (
	ErrNoTeams          = errors.New("session has no teams")
	ErrTeamIndex        = errors.New("current team index out of range")
	ErrInvalidMode      = errors.New("invalid mode")
	ErrNetworkedVariant = errors.New("networked data does not match mode")
	ErrNotMyTurn        = errors.New("not my turn")
	ErrNotConfiguring   = errors.New("team changes only allowed while configuring")
)

// Networked is only present on sessions in networked mode
type Networked struct {
	RoomCode   string       `json:"roomCode"`
	IsHost     bool         `json:"isHost"`
	Status     model.Status `json:"status"`
	LastAuthor model.Side   `json:"lastAuthor"`
	// number of own publications
	Seq uint64 `json:"seq"`
	// sequence number of the last applied remote publication
	RemoteSeq uint64 `json:"remoteSeq"`
	// session id of the remote participant. A new id means the remote side
	// (re)joined and numbers its publications from scratch.
	RemoteEpoch string `json:"remoteEpoch,omitempty"`
}

func (n *Networked) Side() model.Side {
	if n.IsHost {
		return model.SideHost
	}
	return model.SideGuest
}

type State struct {
	ID               uuid.UUID     `json:"id"`
	Mode             model.Mode    `json:"mode"`
	Teams            []model.Team  `json:"teams"`
	CurrentTeamIndex int           `json:"currentTeamIndex"`
	Season           ledger.Season `json:"season"`
	Phase            model.Phase   `json:"phase"`
	Net              *Networked    `json:"net,omitempty"`
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Must(uuid.NewV4())
	}
	return id
}

func newState(mode model.Mode, teams []model.Team) State {
	return State{
		ID:     newID(),
		Mode:   mode,
		Teams:  model.CloneTeams(teams),
		Season: ledger.New(),
		Phase:  model.PhaseConfiguring,
	}
}

func NewSolo(team model.Team) State {
	return newState(model.ModeSolo, []model.Team{team})
}

func NewDuel(first, second model.Team) State {
	return newState(model.ModeDuel, []model.Team{first, second})
}

// NewHostRoom creates the host side of a networked session. The second slot
// is a placeholder until a guest joins.
func NewHostRoom(roomCode string, host, placeholder model.Team) State {
	s := newState(model.ModeNetworked, []model.Team{host, placeholder})
	s.Net = &Networked{
		RoomCode:   roomCode,
		IsHost:     true,
		Status:     model.StatusLobby,
		LastAuthor: model.SideHost,
		Seq:        1,
	}
	return s
}

// NewGuest creates the guest side of a networked session from the data
// found in the room. The guest renames the second team slot.
func NewGuest(roomCode string, room *Remote, guestTeamName string) (State, error) {
	if room == nil || len(room.Teams) != 2 {
		return State{}, ErrNoTeams
	}
	season, err := ledger.Restore(room.RaceIndex, room.History)
	if err != nil {
		return State{}, err
	}
	s := newState(model.ModeNetworked, room.Teams)
	s.Season = season
	s.CurrentTeamIndex = room.CurrentTeamIndex
	s.Teams[1].Name = guestTeamName
	s.Net = &Networked{
		RoomCode:    roomCode,
		IsHost:      false,
		Status:      model.StatusReady,
		LastAuthor:  model.SideGuest,
		Seq:         1,
		RemoteSeq:   room.Seq,
		RemoteEpoch: room.Epoch,
	}
	s.Phase = s.phaseByTurn()
	if err := s.Validate(); err != nil {
		return State{}, err
	}
	return s, nil
}

// Epoch tags the publications of this participant
func (s *State) Epoch() string {
	return s.ID.String()
}

func (s *State) IsNetworked() bool {
	return s.Mode == model.ModeNetworked && s.Net != nil
}

// IsMyTurn reports if the local participant may act
func (s *State) IsMyTurn() bool {
	if !s.IsNetworked() {
		return true
	}
	return s.CurrentTeamIndex == s.Net.Side().TeamIndex()
}

// MyTeamIndex is the slot the local participant edits. In local modes this
// is the team owning the turn.
func (s *State) MyTeamIndex() int {
	if s.IsNetworked() {
		return s.Net.Side().TeamIndex()
	}
	return s.CurrentTeamIndex
}

func (s *State) SeasonComplete() bool {
	return s.Season.Complete()
}

func (s *State) phaseByTurn() model.Phase {
	if s.IsMyTurn() {
		return model.PhaseConfiguring
	}
	return model.PhaseAwaitingRemoteTurn
}

func (s State) Clone() State {
	ret := s
	ret.Teams = model.CloneTeams(s.Teams)
	ret.Season = s.Season.Clone()
	if s.Net != nil {
		n := *s.Net
		ret.Net = &n
	}
	return ret
}

// Validate checks the structural invariants of a session
func (s *State) Validate() error {
	if !s.Mode.Valid() {
		return ErrInvalidMode
	}
	if len(s.Teams) == 0 {
		return ErrNoTeams
	}
	if s.CurrentTeamIndex < 0 || s.CurrentTeamIndex >= len(s.Teams) {
		return ErrTeamIndex
	}
	if (s.Mode == model.ModeNetworked) != (s.Net != nil) {
		return ErrNetworkedVariant
	}
	if s.Net != nil && len(s.Teams) != 2 {
		return ErrNetworkedVariant
	}
	if s.Season.CurrentRaceIndex != len(s.Season.History) {
		return ledger.ErrInconsistent
	}
	return nil
}

// UpdateMyTeam applies fn to a copy of the local participant's team.
// The change is rejected if it is not the participant's turn, if the session
// is not configuring or if fn returns an error.
func UpdateMyTeam(s State, fn func(t *model.Team) error) (State, error) {
	if !s.IsMyTurn() {
		return s, ErrNotMyTurn
	}
	if s.Phase != model.PhaseConfiguring {
		return s, ErrNotConfiguring
	}
	ret := s.Clone()
	if err := fn(&ret.Teams[ret.MyTeamIndex()]); err != nil {
		return s, err
	}
	return ret, nil
}
