package postgres

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/mpapenbr/pitwall-go/pkg/model"
)

type SlotInfo struct {
	Slot      string
	SessionID uuid.UUID
	Mode      model.Mode
	RaceIndex int
	UpdatedAt time.Time
}
