package booking

import (
	"context"
	"time"
)

// Routing keys of booking lifecycle events.
const (
	EventHeld      = "booking.held"
	EventPaid      = "booking.paid"
	EventCancelled = "booking.cancelled"
	EventExpired   = "booking.expired"
)

// Event is the message body published for each lifecycle change.
type Event struct {
	Type       string     `json:"type"`
	BookingID  string     `json:"booking_id"`
	CourtID    string     `json:"court_id"`
	UserID     string     `json:"user_id"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    time.Time  `json:"end_time"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NewEvent builds the event of type eventType for b.
func NewEvent(eventType string, b *Booking, at time.Time) Event {
	return Event{
		Type:       eventType,
		BookingID:  b.ID,
		CourtID:    b.CourtID,
		UserID:     b.UserID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		ExpiresAt:  b.ExpiresAt,
		OccurredAt: at.UTC(),
	}
}

// EventPublisher is the subset of mq.Publisher used for booking events.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}
