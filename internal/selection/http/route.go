package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, memberMiddleware gin.HandlerFunc) {
	group := g.Group("/selection")
	group.Use(authMiddleware, memberMiddleware)
	{
		group.GET("", h.Get)
		group.PUT("/date", h.SetDate)
		group.PUT("/court-type", h.SelectCourtType)
		group.DELETE("/court-type", h.BackToTypeSelection)
		group.PUT("/court", h.SelectCourt)
		group.PUT("/time", h.SelectTime)
		group.POST("/submit", h.Submit)
	}
}
