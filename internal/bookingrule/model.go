package bookingrule

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking rule not found")
	ErrUnknownCourtType = apperror.New(http.StatusBadRequest, "unknown court type")
	ErrInvalidLimits    = apperror.New(http.StatusBadRequest, "max_active_bookings must be at least 1 and max_days_ahead at least 0")
)

// Rule limits how a single member may book one court type.
type Rule struct {
	CourtType         string
	MaxActiveBookings int
	MaxDaysAhead      int
	UpdatedAt         time.Time
}
