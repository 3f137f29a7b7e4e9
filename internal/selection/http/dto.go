package http

import (
	"github.com/nekogravitycat/club-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/club-booking-backend/internal/booking/http"
	courtHttp "github.com/nekogravitycat/club-booking-backend/internal/court/http"
	courttypeHttp "github.com/nekogravitycat/club-booking-backend/internal/courttype/http"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/club-booking-backend/internal/selection"
)

type SetDateRequest struct {
	Date string `json:"date" binding:"required,date"`
}

type SelectCourtTypeRequest struct {
	CourtType string `json:"court_type" binding:"required,max=50"`
}

type SelectCourtRequest struct {
	CourtID string `json:"court_id" binding:"required,uuid"`
}

type SelectTimeRequest struct {
	Hour string `json:"hour" binding:"required,hour"`
}

type GateResponse struct {
	ActiveCount       int    `json:"active_count"`
	MaxActiveBookings *int   `json:"max_active_bookings,omitempty"`
	MaxDaysAhead      *int   `json:"max_days_ahead,omitempty"`
	Blocked           bool   `json:"blocked"`
	Reason            string `json:"reason,omitempty"`
}

type SelectionResponse struct {
	State         string                            `json:"state"`
	Date          string                            `json:"date"`
	CourtType     string                            `json:"court_type,omitempty"`
	CourtID       string                            `json:"court_id,omitempty"`
	Hour          string                            `json:"hour,omitempty"`
	CourtTypes    []courttypeHttp.CourtTypeResponse `json:"court_types"`
	Courts        []courtHttp.CourtResponse         `json:"courts"`
	OccupiedHours []string                          `json:"occupied_hours"`
	Slots         []bookingHttp.SlotResponse        `json:"slots"`
	Gate          *GateResponse                     `json:"gate,omitempty"`
	CanSubmit     bool                              `json:"can_submit"`
}

func NewSelectionResponse(v selection.View) SelectionResponse {
	resp := SelectionResponse{
		State:         v.State.String(),
		Date:          v.Date.Format(request.DateLayout),
		CourtType:     v.CourtType,
		CourtID:       v.CourtID,
		Hour:          v.Hour,
		CourtTypes:    make([]courttypeHttp.CourtTypeResponse, len(v.CourtTypes)),
		Courts:        make([]courtHttp.CourtResponse, len(v.Courts)),
		OccupiedHours: make([]string, len(v.OccupiedHours)),
		Slots:         make([]bookingHttp.SlotResponse, len(v.Slots)),
		CanSubmit:     v.CanSubmit,
	}

	for i, ct := range v.CourtTypes {
		resp.CourtTypes[i] = courttypeHttp.NewResponse(ct)
	}
	for i, c := range v.Courts {
		resp.Courts[i] = courtHttp.NewResponse(c)
	}
	for i, h := range v.OccupiedHours {
		resp.OccupiedHours[i] = booking.FormatHour(h)
	}
	for i, s := range v.Slots {
		resp.Slots[i] = bookingHttp.SlotResponse{
			Hour:      booking.FormatHour(s.Hour),
			StartTime: s.Start,
			Available: s.Available,
		}
		if s.Reason != nil {
			resp.Slots[i].Reason = s.Reason.Error()
		}
	}

	if v.Gate != nil {
		g := &GateResponse{ActiveCount: v.Gate.ActiveCount, Blocked: v.Gate.Blocked()}
		if v.Gate.Rule != nil {
			g.MaxActiveBookings = &v.Gate.Rule.MaxActiveBookings
			g.MaxDaysAhead = &v.Gate.Rule.MaxDaysAhead
		}
		if v.Gate.Err != nil {
			g.Reason = v.Gate.Err.Error()
		}
		resp.Gate = g
	}
	return resp
}
