package booking

import (
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/bookingrule"
)

// GateResult is the outcome of the active-count and booking-window checks.
type GateResult struct {
	ActiveCount int
	Rule        *bookingrule.Rule // nil when the court type has no limits
	Err         error
}

// Blocked reports whether submission must be refused.
func (g GateResult) Blocked() bool {
	return g.Err != nil
}

// CheckGate applies a court type's rule to a member's active booking count and
// the requested calendar date. A nil rule never blocks.
func CheckGate(rule *bookingrule.Rule, activeCount int, date, now time.Time, loc *time.Location) GateResult {
	res := GateResult{ActiveCount: activeCount, Rule: rule}
	if rule == nil {
		return res
	}

	if activeCount >= rule.MaxActiveBookings {
		res.Err = ErrMaxActiveBookings
		return res
	}
	if DaysAhead(date, now, loc) > rule.MaxDaysAhead {
		res.Err = ErrTooFarAhead
	}
	return res
}

// DaysAhead counts venue-local calendar days from today to date.
func DaysAhead(date, now time.Time, loc *time.Location) int {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	target := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return int(target.Sub(today).Hours() / 24)
}
