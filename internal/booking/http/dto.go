package http

import (
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/booking"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	CourtID   string `form:"court_id" binding:"omitempty,uuid"`
	CourtType string `form:"court_type" binding:"omitempty,max=50"`
	Status    string `form:"status" binding:"omitempty,oneof=paid pending_payment"`
	UserID    string `form:"user_id" binding:"omitempty,uuid"`
	From      string `form:"from" binding:"omitempty,date"`
	To        string `form:"to" binding:"omitempty,date"`
}

// AvailabilityRequest defines query parameters for GET /availability.
type AvailabilityRequest struct {
	Date      string `form:"date" binding:"required,date"`
	CourtType string `form:"court_type" binding:"required,max=50"`
	CourtID   string `form:"court_id" binding:"omitempty,uuid"`
}

// CreateBookingRequest reserves one hour on a court.
type CreateBookingRequest struct {
	CourtID string `json:"court_id" binding:"required,uuid"`
	Date    string `json:"date" binding:"required,date"`
	Hour    string `json:"hour" binding:"required,hour"`
}

type CourtTag struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CourtType string `json:"court_type"`
}

type BookingResponse struct {
	ID        string     `json:"id"`
	CourtID   string     `json:"court_id"`
	Court     CourtTag   `json:"court"`
	UserID    string     `json:"user_id"`
	UserName  *string    `json:"user_name,omitempty"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		CourtID:   b.CourtID,
		Court:     CourtTag{ID: b.CourtID, Name: b.CourtName, CourtType: b.CourtType},
		UserID:    b.UserID,
		UserName:  b.UserName,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
		ExpiresAt: b.ExpiresAt,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type SlotResponse struct {
	Hour      string    `json:"hour"`
	StartTime time.Time `json:"start_time"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

// SlotBooking is the public view of a booking in availability results.
// Member identities are not exposed.
type SlotBooking struct {
	ID        string     `json:"id"`
	Court     CourtTag   `json:"court"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type AvailabilityResponse struct {
	Date          string         `json:"date"`
	CourtType     string         `json:"court_type"`
	CourtID       string         `json:"court_id,omitempty"`
	OpenTime      string         `json:"open_time"`
	CloseTime     string         `json:"close_time"`
	OccupiedHours []string       `json:"occupied_hours"`
	Slots         []SlotResponse `json:"slots"`
	Bookings      []SlotBooking  `json:"bookings"`
}

func NewAvailabilityResponse(a *booking.Availability, policy booking.SlotPolicy) AvailabilityResponse {
	occupied := make([]string, len(a.OccupiedHours))
	for i, h := range a.OccupiedHours {
		occupied[i] = booking.FormatHour(h)
	}

	slots := make([]SlotResponse, len(a.Slots))
	for i, s := range a.Slots {
		slots[i] = SlotResponse{
			Hour:      booking.FormatHour(s.Hour),
			StartTime: s.Start,
			Available: s.Available,
		}
		if s.Reason != nil {
			slots[i].Reason = s.Reason.Error()
		}
	}

	bookings := make([]SlotBooking, len(a.Bookings))
	for i, b := range a.Bookings {
		bookings[i] = SlotBooking{
			ID:        b.ID,
			Court:     CourtTag{ID: b.CourtID, Name: b.CourtName, CourtType: b.CourtType},
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    string(b.Status),
			ExpiresAt: b.ExpiresAt,
		}
	}

	return AvailabilityResponse{
		Date:          a.Date.Format(request.DateLayout),
		CourtType:     a.CourtType.TypeName,
		CourtID:       a.CourtID,
		OpenTime:      clock(policy.OpenHour),
		CloseTime:     clock(policy.CloseHour),
		OccupiedHours: occupied,
		Slots:         slots,
		Bookings:      bookings,
	}
}

func clock(h int) string {
	if h == 24 {
		return "24:00"
	}
	return booking.FormatHour(h)
}

// PaymentWebhookRequest is the payment gateway callback body.
type PaymentWebhookRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	Status    string `json:"status" binding:"required"`
}
