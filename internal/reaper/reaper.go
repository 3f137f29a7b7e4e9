// Package reaper removes expired payment holds from storage.
//
// Reads never depend on it: expired holds stop counting as soon as their
// expiry passes. Deleting them only keeps the table and the exclusion
// constraint tidy, and emits booking.expired events.
package reaper

import (
	"context"
	"log/slog"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/booking"
)

// Store deletes expired holds and returns what it removed.
type Store interface {
	DeleteExpiredHolds(ctx context.Context, now time.Time) ([]*booking.Booking, error)
}

type Reaper struct {
	store    Store
	events   booking.EventPublisher
	logger   *slog.Logger
	interval time.Duration
	retry    []RetryOption
	kick     chan struct{}
	now      func() time.Time
}

// DefaultInterval is used when New is given a non-positive interval.
const DefaultInterval = time.Minute

// New creates a Reaper that sweeps every interval once Run is called.
func New(store Store, events booking.EventPublisher, interval time.Duration, logger *slog.Logger, retry ...RetryOption) *Reaper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Reaper{
		store:    store,
		events:   events,
		logger:   logger,
		interval: interval,
		retry:    retry,
		kick:     make(chan struct{}, 1),
		now:      time.Now,
	}
}

// Kick requests an early sweep. It never blocks; kicks that arrive while one
// is already pending are merged.
func (r *Reaper) Kick() {
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

// Sweep deletes every hold expired at the current time and publishes one
// booking.expired event per removed row.
func (r *Reaper) Sweep(ctx context.Context) (int, error) {
	now := r.now()

	var removed []*booking.Booking
	err := RetryWithExponentialBackoff(ctx, func(ctx context.Context) error {
		var err error
		removed, err = r.store.DeleteExpiredHolds(ctx, now)
		return err
	}, r.retry...)
	if err != nil {
		return 0, err
	}

	for _, b := range removed {
		if err := r.events.PublishJSON(ctx, booking.EventExpired, booking.NewEvent(booking.EventExpired, b, now)); err != nil {
			r.logger.WarnContext(ctx, "failed to publish booking event",
				"event", booking.EventExpired, "booking_id", b.ID, "error", err)
		}
	}

	if len(removed) > 0 {
		r.logger.InfoContext(ctx, "expired holds removed", "count", len(removed))
	}
	return len(removed), nil
}

// Run sweeps on every tick and on every kick until ctx is done.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.InfoContext(ctx, "hold reaper started", "interval", r.interval.String())

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "hold reaper stopped")
			return
		case <-ticker.C:
		case <-r.kick:
		}

		if _, err := r.Sweep(ctx); err != nil && ctx.Err() == nil {
			r.logger.ErrorContext(ctx, "failed to remove expired holds", "error", err)
		}
	}
}
