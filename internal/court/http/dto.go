package http

import (
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/court"
)

// ListCourtsRequest defines query parameters for listing courts.
type ListCourtsRequest struct {
	CourtType string `form:"court_type" binding:"omitempty,max=50"`
}

type CourtResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CourtType string    `json:"court_type"`
	CreatedAt time.Time `json:"created_at"`
}

func NewResponse(c *court.Court) CourtResponse {
	return CourtResponse{
		ID:        c.ID,
		Name:      c.Name,
		CourtType: c.CourtType,
		CreatedAt: c.CreatedAt,
	}
}

type CreateRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	CourtType string `json:"court_type" binding:"required,max=50"`
}

type UpdateRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	CourtType *string `json:"court_type" binding:"omitempty,max=50"`
}
