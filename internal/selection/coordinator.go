package selection

import (
	"sync"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/booking"
	"github.com/nekogravitycat/club-booking-backend/internal/court"
	"github.com/nekogravitycat/club-booking-backend/internal/courttype"
)

// Coordinator is one member's selection. Mutators only move the state forward
// one step at a time; BackToTypeSelection is the only way back.
//
// Every mutation and every BeginRefresh bumps a sequence number. Apply accepts
// a snapshot only if it carries the latest number, so a slow refresh can never
// overwrite the result of a newer one.
type Coordinator struct {
	mu sync.Mutex

	date      time.Time
	courtType string
	courtID   string
	hour      string

	courtTypes   []*courttype.CourtType
	courts       []*court.Court
	availability *booking.Availability
	gate         *booking.GateResult

	seq uint64
}

// NewCoordinator starts an empty selection on date.
func NewCoordinator(date time.Time) *Coordinator {
	return &Coordinator{date: calendarDay(date)}
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (c *Coordinator) state() State {
	switch {
	case c.courtType == "":
		return StateNoType
	case c.courtID == "":
		return StateTypeSelected
	case c.hour == "":
		return StateCourtSelected
	default:
		return StateTimeSelected
	}
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

// SetDate moves the selection to another day. The chosen hour is dropped.
func (c *Coordinator) SetDate(date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	date = calendarDay(date)
	if !date.Equal(c.date) {
		c.date = date
		c.hour = ""
	}
	c.seq++
}

// SelectCourtType picks one of the enabled court types. Switching to another
// type drops the court and the hour.
func (c *Coordinator) SelectCourtType(typeName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !hasCourtType(c.courtTypes, typeName) {
		return ErrUnknownCourtType
	}
	if typeName != c.courtType {
		c.courtType = typeName
		c.courtID = ""
		c.hour = ""
	}
	c.seq++
	return nil
}

// SelectCourt picks a court of the selected type. Switching courts drops the hour.
func (c *Coordinator) SelectCourt(courtID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.courtType == "" {
		return ErrNoCourtType
	}
	if !hasCourt(c.courts, courtID) {
		return ErrUnknownCourt
	}
	if courtID != c.courtID {
		c.courtID = courtID
		c.hour = ""
	}
	c.seq++
	return nil
}

// SelectTime picks a bookable hour on the selected court.
func (c *Coordinator) SelectTime(hour string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.courtID == "" {
		return ErrNoCourt
	}
	h, err := booking.ParseHour(hour)
	if err != nil {
		return err
	}

	slot, ok := c.slot(h)
	if !ok {
		return booking.ErrOutsideOperatingHours
	}
	if !slot.Available {
		return slot.Reason
	}

	c.hour = booking.FormatHour(h)
	c.seq++
	return nil
}

// BackToTypeSelection clears the court type, court and hour together.
func (c *Coordinator) BackToTypeSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.courtType = ""
	c.courtID = ""
	c.hour = ""
	c.seq++
}

// Query is what a refresh must load for the current selection.
type Query struct {
	Seq       uint64
	Date      time.Time
	CourtType string
	CourtID   string
}

// BeginRefresh issues a new sequence number and returns the selection the
// refresh should load data for.
func (c *Coordinator) BeginRefresh() Query {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	return Query{Seq: c.seq, Date: c.date, CourtType: c.courtType, CourtID: c.courtID}
}

// Apply replaces the derived state with snap and runs the auto-selection
// rules. It returns false and changes nothing when seq is stale.
func (c *Coordinator) Apply(seq uint64, snap Snapshot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		return false
	}

	c.courtTypes = snap.CourtTypes
	if t := ResolveCourtType(c.courtType, snap.CourtTypes); t != c.courtType {
		c.courtType = t
		c.courtID = ""
		c.hour = ""
	}

	c.courts = nil
	c.availability = nil
	c.gate = nil
	if c.courtType == "" || snap.CourtType != c.courtType {
		c.courtID = ""
		c.hour = ""
		return true
	}

	c.courts = snap.Courts
	if id := ResolveCourt(c.courtID, snap.Courts); id != c.courtID {
		c.courtID = id
		c.hour = ""
	}

	if snap.CourtID == c.courtID {
		c.availability = snap.Availability
	}
	c.gate = snap.Gate
	return true
}

// ResolveCourtType returns the type a selection ends up with once the enabled
// types are known: the current one if still enabled, else the only one if
// exactly one exists, otherwise none.
func ResolveCourtType(current string, types []*courttype.CourtType) string {
	if current != "" && hasCourtType(types, current) {
		return current
	}
	if len(types) == 1 {
		return types[0].TypeName
	}
	return ""
}

// ResolveCourt is ResolveCourtType for the courts of the selected type.
func ResolveCourt(current string, courts []*court.Court) string {
	if current != "" && hasCourt(courts, current) {
		return current
	}
	if len(courts) == 1 {
		return courts[0].ID
	}
	return ""
}

func hasCourtType(types []*courttype.CourtType, name string) bool {
	for _, t := range types {
		if t.TypeName == name {
			return true
		}
	}
	return false
}

func hasCourt(courts []*court.Court, id string) bool {
	for _, ct := range courts {
		if ct.ID == id {
			return true
		}
	}
	return false
}

func (c *Coordinator) slot(hour int) (booking.HourSlot, bool) {
	if c.availability == nil {
		return booking.HourSlot{}, false
	}
	for _, s := range c.availability.Slots {
		if s.Hour == hour {
			return s, true
		}
	}
	return booking.HourSlot{}, false
}

// View returns a copy of the selection.
func (c *Coordinator) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		State:      c.state(),
		Date:       c.date,
		CourtType:  c.courtType,
		CourtID:    c.courtID,
		Hour:       c.hour,
		CourtTypes: c.courtTypes,
		Courts:     c.courts,
		Gate:       c.gate,
	}
	if c.availability != nil {
		v.OccupiedHours = c.availability.OccupiedHours
		v.Slots = c.availability.Slots
	}

	if v.State == StateTimeSelected && (c.gate == nil || !c.gate.Blocked()) {
		h, _ := booking.ParseHour(c.hour)
		s, ok := c.slot(h)
		v.CanSubmit = ok && s.Available
	}
	return v
}
