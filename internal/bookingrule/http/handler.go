package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/club-booking-backend/internal/bookingrule"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
)

type RuleResponse struct {
	CourtType         string    `json:"court_type"`
	MaxActiveBookings int       `json:"max_active_bookings"`
	MaxDaysAhead      int       `json:"max_days_ahead"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewResponse(r *bookingrule.Rule) RuleResponse {
	return RuleResponse{
		CourtType:         r.CourtType,
		MaxActiveBookings: r.MaxActiveBookings,
		MaxDaysAhead:      r.MaxDaysAhead,
		UpdatedAt:         r.UpdatedAt,
	}
}

type ByCourtTypeRequest struct {
	CourtType string `uri:"court_type" binding:"required,max=50"`
}

type SetRuleRequest struct {
	MaxActiveBookings int `json:"max_active_bookings" binding:"required,min=1"`
	MaxDaysAhead      int `json:"max_days_ahead" binding:"min=0"`
}

type Handler struct {
	service bookingrule.Service
}

func NewHandler(service bookingrule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	rules, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RuleResponse, len(rules))
	for i, r := range rules {
		items[i] = NewResponse(r)
	}

	c.JSON(http.StatusOK, response.NewListResponse(items))
}

// Set creates or replaces the rule of a court type.
// Access Control: supervisor and above.
func (h *Handler) Set(c *gin.Context) {
	var uri ByCourtTypeRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body SetRuleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	rule, err := h.service.Set(c.Request.Context(), bookingrule.Rule{
		CourtType:         uri.CourtType,
		MaxActiveBookings: body.MaxActiveBookings,
		MaxDaysAhead:      body.MaxDaysAhead,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(rule))
}
