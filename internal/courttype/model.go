package courttype

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "court type not found")
	ErrTypeNameRequired = apperror.New(http.StatusBadRequest, "type name is required")
	ErrTypeNameTaken    = apperror.New(http.StatusConflict, "type name already exists")
	ErrInvalidHours     = apperror.New(http.StatusBadRequest, "operating hours must be whole hours with open before close")
	ErrInUse            = apperror.New(http.StatusConflict, "court type still has courts")
)

// CourtType is a category of playing surface (tennis, padel, football).
// Disabled types cannot be booked. Empty OpenTime/CloseTime fall back to the
// club-wide defaults.
type CourtType struct {
	ID          string
	TypeName    string
	DisplayName string
	IsEnabled   bool
	OpenTime    string // "HH:MM"
	CloseTime   string // "HH:MM"
	CreatedAt   time.Time
}

// Filter defines parameters for listing court types.
type Filter struct {
	EnabledOnly bool
}
