package model

type (
	Mode   string
	Phase  string
	Status string
	Side   string
)

const (
	ModeSolo      Mode = "solo"
	ModeDuel      Mode = "duel"
	ModeNetworked Mode = "networked"
)

const (
	PhaseConfiguring        Phase = "configuring"
	PhaseAwaitingRemoteTurn Phase = "awaiting-remote-turn"
	PhaseRacing             Phase = "racing"
)

// Status is the tag published with a snapshot on the shared channel
const (
	StatusLobby        Status = "lobby"
	StatusWaitingGuest Status = "waiting_guest"
	StatusRacing       Status = "racing"
	StatusReady        Status = "ready"
)

const (
	SideHost  Side = "host"
	SideGuest Side = "guest"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeSolo, ModeDuel, ModeNetworked:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusLobby, StatusWaitingGuest, StatusRacing, StatusReady:
		return true
	}
	return false
}

func (s Side) Valid() bool {
	return s == SideHost || s == SideGuest
}

// TeamIndex is the team slot owned by this side
func (s Side) TeamIndex() int {
	if s == SideGuest {
		return 1
	}
	return 0
}
