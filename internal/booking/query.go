package booking

import (
	"context"
	"log/slog"
	"time"
)

// ExpiryNotifier is told when the read path sees holds that have expired but
// still exist. It must not block.
type ExpiryNotifier interface {
	Kick()
}

type nopNotifier struct{}

func (nopNotifier) Kick() {}

// Query is the read side used by availability and the selection flow.
type Query struct {
	repo     Repository
	location *time.Location
	notifier ExpiryNotifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewQuery creates a Query. A nil notifier disables expiry nudges.
func NewQuery(repo Repository, loc *time.Location, notifier ExpiryNotifier, logger *slog.Logger) *Query {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Query{
		repo:     repo,
		location: loc,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// ActiveOnDate returns the paid and unexpired pending bookings starting on the
// venue-local calendar day of date. Expired holds are filtered out but never
// deleted here. A failed query is logged and yields an empty list.
func (q *Query) ActiveOnDate(ctx context.Context, date time.Time) []*Booking {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, q.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	rows, err := q.repo.ListByDay(ctx, dayStart, dayEnd)
	if err != nil {
		q.logger.ErrorContext(ctx, "failed to load bookings for day",
			"date", dayStart.Format("2006-01-02"), "error", err)
		return nil
	}

	return q.retainLive(ctx, rows)
}

func (q *Query) retainLive(ctx context.Context, rows []*Booking) []*Booking {
	now := q.now()
	live := rows[:0:0]
	expired := 0
	for _, b := range rows {
		if b.IsExpiredHold(now) {
			expired++
			continue
		}
		if b.IsLive(now) {
			live = append(live, b)
		}
	}

	if expired > 0 {
		q.logger.DebugContext(ctx, "skipped expired holds", "count", expired)
		q.notifier.Kick()
	}
	return live
}

// OccupiedHours lists the venue-local hours covered by bookings of courtType,
// limited to one court when courtID is set. Each booking marks its start hour
// and every further hour it runs into on the same day.
func OccupiedHours(bookings []*Booking, courtType, courtID string, loc *time.Location) []int {
	set := make(map[int]struct{})
	for _, b := range bookings {
		if b.CourtType != courtType {
			continue
		}
		if courtID != "" && b.CourtID != courtID {
			continue
		}

		start := b.StartTime.In(loc)
		day := start.YearDay()
		first := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), 0, 0, 0, loc)
		for t := first; t.Before(b.EndTime); t = t.Add(time.Hour) {
			local := t.In(loc)
			if local.YearDay() != day {
				break
			}
			set[local.Hour()] = struct{}{}
		}
	}
	return sortedHours(set)
}

// ForCourt keeps the bookings of a single court.
func ForCourt(bookings []*Booking, courtID string) []*Booking {
	var out []*Booking
	for _, b := range bookings {
		if b.CourtID == courtID {
			out = append(out, b)
		}
	}
	return out
}

// ForCourtType keeps the bookings of one court type.
func ForCourtType(bookings []*Booking, courtType string) []*Booking {
	var out []*Booking
	for _, b := range bookings {
		if b.CourtType == courtType {
			out = append(out, b)
		}
	}
	return out
}
