package court

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "court not found")
	ErrEmptyName        = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidCourtType = apperror.New(http.StatusBadRequest, "invalid court_type")
	ErrNameTaken        = apperror.New(http.StatusConflict, "a court with this name already exists")
	ErrHasBookings      = apperror.New(http.StatusConflict, "court still has bookings")
)

// Court is a single bookable playing surface.
type Court struct {
	ID        string
	Name      string
	CourtType string // court_types.type_name
	CreatedAt time.Time
}

// Filter defines parameters for listing courts.
type Filter struct {
	CourtType string
}
