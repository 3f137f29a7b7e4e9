package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	bookingHttp "github.com/nekogravitycat/club-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/club-booking-backend/internal/selection"
)

type Handler struct {
	service selection.Service
}

func NewHandler(service selection.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) reply(c *gin.Context, v selection.View, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSelectionResponse(v))
}

func (h *Handler) Get(c *gin.Context) {
	session, _ := auth.GetSession(c)
	v, err := h.service.Get(c.Request.Context(), session)
	h.reply(c, v, err)
}

func (h *Handler) SetDate(c *gin.Context) {
	var req SetDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}
	date, err := request.ParseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "invalid date", err)
		return
	}

	session, _ := auth.GetSession(c)
	v, err := h.service.SetDate(c.Request.Context(), session, date)
	h.reply(c, v, err)
}

func (h *Handler) SelectCourtType(c *gin.Context) {
	var req SelectCourtTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	session, _ := auth.GetSession(c)
	v, err := h.service.SelectCourtType(c.Request.Context(), session, req.CourtType)
	h.reply(c, v, err)
}

func (h *Handler) SelectCourt(c *gin.Context) {
	var req SelectCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	session, _ := auth.GetSession(c)
	v, err := h.service.SelectCourt(c.Request.Context(), session, req.CourtID)
	h.reply(c, v, err)
}

func (h *Handler) SelectTime(c *gin.Context) {
	var req SelectTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	session, _ := auth.GetSession(c)
	v, err := h.service.SelectTime(c.Request.Context(), session, req.Hour)
	h.reply(c, v, err)
}

// BackToTypeSelection handles DELETE /selection/court-type.
func (h *Handler) BackToTypeSelection(c *gin.Context) {
	session, _ := auth.GetSession(c)
	v, err := h.service.BackToTypeSelection(c.Request.Context(), session)
	h.reply(c, v, err)
}

// Submit turns the selection into a pending-payment booking.
func (h *Handler) Submit(c *gin.Context) {
	session, _ := auth.GetSession(c)
	b, err := h.service.Submit(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookingHttp.NewBookingResponse(b))
}
