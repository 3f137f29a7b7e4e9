package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict      = apperror.New(http.StatusConflict, "time slot already booked")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
	ErrCourtNotFound     = apperror.New(http.StatusNotFound, "court not found")
	ErrCourtTypeNotFound = apperror.New(http.StatusNotFound, "court type not found")
	ErrCourtTypeDisabled = apperror.New(http.StatusConflict, "court type is not available for booking")
	ErrHoldExpired       = apperror.New(http.StatusGone, "payment hold has expired")
	ErrInvalidInput      = apperror.New(http.StatusBadRequest, "invalid input parameters")

	// Slot rules
	ErrInvalidHour           = apperror.New(http.StatusBadRequest, "hour must be HH:MM or HH:MM:SS")
	ErrHourNotAligned        = apperror.New(http.StatusBadRequest, "hour must be on the hour")
	ErrSlotInPast            = apperror.New(http.StatusBadRequest, "cannot book a slot in the past")
	ErrLeadTimeTooShort      = apperror.New(http.StatusBadRequest, "slot starts too soon")
	ErrOutsideOperatingHours = apperror.New(http.StatusBadRequest, "slot is outside operating hours")
	ErrSlotConflict          = apperror.New(http.StatusConflict, "slot overlaps an existing booking")

	// Gate
	ErrMaxActiveBookings = apperror.New(http.StatusConflict, "maximum active bookings reached for this court type")
	ErrTooFarAhead       = apperror.New(http.StatusBadRequest, "date is beyond the booking window")
)

type Status string

const (
	StatusPaid           Status = "paid"
	StatusPendingPayment Status = "pending_payment"
)

// Booking is a court reservation. Pending-payment bookings are holds that stop
// counting once ExpiresAt has passed, whether or not the row is gone yet.
type Booking struct {
	ID        string
	CourtID   string
	CourtName string
	CourtType string
	UserID    string
	UserName  *string
	StartTime time.Time
	EndTime   time.Time
	Status    Status
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpiredHold reports whether b is a pending hold whose expiry is at or before now.
func (b *Booking) IsExpiredHold(now time.Time) bool {
	return b.Status == StatusPendingPayment && b.ExpiresAt != nil && !b.ExpiresAt.After(now)
}

// IsLive reports whether b still occupies its slot at now.
func (b *Booking) IsLive(now time.Time) bool {
	switch b.Status {
	case StatusPaid:
		return true
	case StatusPendingPayment:
		return !b.IsExpiredHold(now)
	default:
		return false
	}
}

// Interval returns the half-open [start, end) span of b.
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

type Filter struct {
	UserID    string
	CourtID   string
	CourtType string
	Status    Status
	From      *time.Time // bookings ending after this time
	To        *time.Time // bookings starting before this time
	Page      int
	PageSize  int
	SortOrder string
}
