package booking

import (
	"errors"
	"sort"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
)

// SlotDuration is the fixed length of a bookable slot.
const SlotDuration = time.Hour

// Interval is a half-open time span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps applies the three-way test: the candidate starts strictly inside
// other, ends strictly inside other, or fully contains other. Touching
// intervals do not overlap.
func (c Interval) Overlaps(other Interval) bool {
	startsInside := c.Start.After(other.Start) && c.Start.Before(other.End)
	endsInside := c.End.After(other.Start) && c.End.Before(other.End)
	contains := !c.Start.After(other.Start) && !c.End.Before(other.End)
	return startsInside || endsInside || contains
}

// SlotPolicy holds the configurable slot rules for one court type.
type SlotPolicy struct {
	Location  *time.Location
	MinLead   time.Duration
	OpenHour  int // inclusive
	CloseHour int // exclusive
}

// DefaultSlotPolicy returns the club-wide defaults: 2h lead, open 08:00 to 22:00.
func DefaultSlotPolicy(loc *time.Location) SlotPolicy {
	return SlotPolicy{
		Location:  loc,
		MinLead:   2 * time.Hour,
		OpenHour:  8,
		CloseHour: 22,
	}
}

// WithHours overrides the operating hours from "HH:MM" strings. Empty or
// unparseable values keep the current hour.
func (p SlotPolicy) WithHours(openTime, closeTime string) SlotPolicy {
	if h, ok := request.WholeHour(openTime); ok {
		p.OpenHour = h
	}
	if h, ok := request.WholeHour(closeTime); ok {
		p.CloseHour = h
	}
	return p
}

// ParseHour parses "HH:MM" or "HH:MM:SS" into an hour of the day. Malformed
// input yields ErrInvalidHour; any non-zero minutes or seconds yield
// ErrHourNotAligned.
func ParseHour(s string) (int, error) {
	c, ok := request.ParseClock(s)
	if !ok || c.Hour > 23 {
		return 0, ErrInvalidHour
	}
	if !c.OnTheHour() {
		return 0, ErrHourNotAligned
	}
	return c.Hour, nil
}

// SlotStart is the calendar day of date at hour:00 in loc.
func SlotStart(date time.Time, hour int, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, loc)
}

// CheckSlot returns nil if the slot at date/hour is bookable, or the first
// rule it breaks.
func CheckSlot(date time.Time, hour string, existing []Interval, now time.Time, p SlotPolicy) error {
	h, err := ParseHour(hour)
	if err != nil {
		return err
	}
	return checkHour(date, h, existing, now, p)
}

func checkHour(date time.Time, hour int, existing []Interval, now time.Time, p SlotPolicy) error {
	start := SlotStart(date, hour, p.Location)

	if start.Before(now) {
		return ErrSlotInPast
	}
	if start.Sub(now) < p.MinLead {
		return ErrLeadTimeTooShort
	}
	if hour < p.OpenHour || hour >= p.CloseHour {
		return ErrOutsideOperatingHours
	}

	candidate := Interval{Start: start, End: start.Add(SlotDuration)}
	for _, e := range existing {
		if candidate.Overlaps(e) {
			return ErrSlotConflict
		}
	}
	return nil
}

// IsTimeSlotAvailable reports whether the slot is bookable. The error is
// non-nil only for an unusable hour string.
func IsTimeSlotAvailable(date time.Time, hour string, existing []Interval, now time.Time, p SlotPolicy) (bool, error) {
	err := CheckSlot(date, hour, existing, now, p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrInvalidHour), errors.Is(err, ErrHourNotAligned):
		return false, err
	default:
		return false, nil
	}
}

// HourSlot is the bookability of one operating hour.
type HourSlot struct {
	Hour      int
	Start     time.Time
	Available bool
	Reason    error
}

// DaySlots evaluates every operating hour of date.
func DaySlots(date time.Time, existing []Interval, now time.Time, p SlotPolicy) []HourSlot {
	slots := make([]HourSlot, 0, max(p.CloseHour-p.OpenHour, 0))
	for h := p.OpenHour; h < p.CloseHour; h++ {
		err := checkHour(date, h, existing, now, p)
		slots = append(slots, HourSlot{
			Hour:      h,
			Start:     SlotStart(date, h, p.Location),
			Available: err == nil,
			Reason:    err,
		})
	}
	return slots
}

// Intervals converts bookings to their time spans.
func Intervals(bookings []*Booking) []Interval {
	out := make([]Interval, len(bookings))
	for i, b := range bookings {
		out[i] = b.Interval()
	}
	return out
}

// FormatHour renders an hour as "HH:00".
func FormatHour(h int) string {
	return time.Date(0, 1, 1, h, 0, 0, 0, time.UTC).Format("15:04")
}

func sortedHours(set map[int]struct{}) []int {
	hours := make([]int, 0, len(set))
	for h := range set {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	return hours
}
