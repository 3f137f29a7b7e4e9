package http

import (
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/courttype"
)

// ListCourtTypesRequest defines query parameters for listing court types.
// Only supervisors and above may see disabled types.
type ListCourtTypesRequest struct {
	IncludeDisabled bool `form:"include_disabled"`
}

type CourtTypeResponse struct {
	ID          string    `json:"id"`
	TypeName    string    `json:"type_name"`
	DisplayName string    `json:"display_name"`
	IsEnabled   bool      `json:"is_enabled"`
	OpenTime    string    `json:"open_time,omitempty"`
	CloseTime   string    `json:"close_time,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewResponse(ct *courttype.CourtType) CourtTypeResponse {
	return CourtTypeResponse{
		ID:          ct.ID,
		TypeName:    ct.TypeName,
		DisplayName: ct.DisplayName,
		IsEnabled:   ct.IsEnabled,
		OpenTime:    ct.OpenTime,
		CloseTime:   ct.CloseTime,
		CreatedAt:   ct.CreatedAt,
	}
}

type CreateRequest struct {
	TypeName    string `json:"type_name" binding:"required,min=1,max=50"`
	DisplayName string `json:"display_name" binding:"max=100"`
	IsEnabled   *bool  `json:"is_enabled"`
	OpenTime    string `json:"open_time" binding:"omitempty,hour"`
	CloseTime   string `json:"close_time" binding:"omitempty,hour"`
}

type UpdateRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=1,max=100"`
	IsEnabled   *bool   `json:"is_enabled"`
	OpenTime    *string `json:"open_time" binding:"omitempty,hour"`
	CloseTime   *string `json:"close_time" binding:"omitempty,hour"`
}
