package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/club-booking-backend/internal/auth"
	"github.com/nekogravitycat/club-booking-backend/internal/courttype"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/club-booking-backend/internal/pkg/response"
)

type Handler struct {
	service courttype.Service
}

func NewHandler(service courttype.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListCourtTypesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	session, _ := auth.GetSession(c)
	filter := courttype.Filter{
		EnabledOnly: !(req.IncludeDisabled && session.Role.AtLeast(auth.RoleSupervisor)),
	}

	cts, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CourtTypeResponse, len(cts))
	for i, ct := range cts {
		items[i] = NewResponse(ct)
	}

	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	ct, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	session, _ := auth.GetSession(c)
	if !ct.IsEnabled && !session.Role.AtLeast(auth.RoleSupervisor) {
		response.Error(c, courttype.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, NewResponse(ct))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	req := courttype.CreateRequest{
		TypeName:    body.TypeName,
		DisplayName: body.DisplayName,
		IsEnabled:   true,
		OpenTime:    body.OpenTime,
		CloseTime:   body.CloseTime,
	}
	if body.IsEnabled != nil {
		req.IsEnabled = *body.IsEnabled
	}

	ct, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(ct))
}

// Update toggles enablement or changes operating hours.
// Access Control: supervisor and above.
func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	ct, err := h.service.Update(c.Request.Context(), uri.ID, courttype.UpdateRequest{
		DisplayName: body.DisplayName,
		IsEnabled:   body.IsEnabled,
		OpenTime:    body.OpenTime,
		CloseTime:   body.CloseTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(ct))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
