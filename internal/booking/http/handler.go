package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/booking"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// Availability returns the day's live bookings, occupied hours and the
// bookability of each operating hour for a court type.
func (h *Handler) Availability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	date, err := request.ParseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "invalid date", err)
		return
	}

	a, err := h.service.Availability(c.Request.Context(), date, req.CourtType, req.CourtID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAvailabilityResponse(a, h.service.PolicyFor(a.CourtType)))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	date, err := request.ParseDate(body.Date)
	if err != nil {
		response.BadRequest(c, "invalid date", err)
		return
	}

	session, _ := auth.GetSession(c)

	b, err := h.service.Create(c.Request.Context(), session, booking.CreateRequest{
		CourtID: body.CourtID,
		Date:    date,
		Hour:    body.Hour,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	filter := booking.Filter{
		UserID:    req.UserID,
		CourtID:   req.CourtID,
		CourtType: req.CourtType,
		Status:    booking.Status(req.Status),
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortOrder: strings.ToUpper(req.SortOrder),
	}
	loc := h.service.PolicyFor(nil).Location
	if req.From != "" {
		from, err := request.ParseDate(req.From)
		if err != nil {
			response.BadRequest(c, "invalid from date", err)
			return
		}
		from = booking.SlotStart(from, 0, loc)
		filter.From = &from
	}
	if req.To != "" {
		to, err := request.ParseDate(req.To)
		if err != nil {
			response.BadRequest(c, "invalid to date", err)
			return
		}
		// Inclusive of the whole "to" day.
		end := booking.SlotStart(to.AddDate(0, 0, 1), 0, loc)
		filter.To = &end
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		response.Error(c, booking.ErrInvalidInput)
		return
	}

	session, _ := auth.GetSession(c)

	bookings, total, err := h.service.List(c.Request.Context(), session, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	session, _ := auth.GetSession(c)

	b, err := h.service.GetByID(c.Request.Context(), session, req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Delete cancels a booking. Owners may cancel their own; staff any.
func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	session, _ := auth.GetSession(c)

	if err := h.service.Cancel(c.Request.Context(), session, req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Confirm marks a hold as paid at the front desk.
// Access Control: operator and above.
func (h *Handler) Confirm(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	b, err := h.service.ConfirmPayment(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
