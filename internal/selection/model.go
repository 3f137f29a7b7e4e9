// Package selection keeps each member's in-progress booking choice on the
// server: date, then court type, then court, then hour.
package selection

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/booking"
	"github.com/nekogravitycat/club-booking-backend/internal/court"
	"github.com/nekogravitycat/club-booking-backend/internal/courttype"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNoCourtType      = apperror.New(http.StatusConflict, "select a court type first")
	ErrNoCourt          = apperror.New(http.StatusConflict, "select a court first")
	ErrIncomplete       = apperror.New(http.StatusConflict, "selection is incomplete")
	ErrUnknownCourtType = apperror.New(http.StatusBadRequest, "court type is not available")
	ErrUnknownCourt     = apperror.New(http.StatusBadRequest, "court is not available for the selected court type")
)

// State is the step a selection has reached.
type State int

const (
	StateNoType State = iota
	StateTypeSelected
	StateCourtSelected
	StateTimeSelected
)

func (s State) String() string {
	switch s {
	case StateTypeSelected:
		return "type_selected"
	case StateCourtSelected:
		return "court_selected"
	case StateTimeSelected:
		return "time_selected"
	default:
		return "no_type"
	}
}

// Snapshot is the data one refresh loaded for a selection.
type Snapshot struct {
	CourtTypes   []*courttype.CourtType // enabled types
	CourtType    string                 // type Courts and Availability were loaded for
	Courts       []*court.Court
	CourtID      string // court Availability was narrowed to, if any
	Availability *booking.Availability
	Gate         *booking.GateResult
}

// View is a copy of a selection and its derived state.
type View struct {
	State         State
	Date          time.Time
	CourtType     string
	CourtID       string
	Hour          string
	CourtTypes    []*courttype.CourtType
	Courts        []*court.Court
	OccupiedHours []int
	Slots         []booking.HourSlot
	Gate          *booking.GateResult
	CanSubmit     bool
}
