package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking rule routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, memberMiddleware, supervisorMiddleware gin.HandlerFunc) {
	group := g.Group("/booking-rules")
	group.Use(authMiddleware)
	{
		group.GET("", memberMiddleware, h.List)
		group.PUT("/:court_type", supervisorMiddleware, h.Set)
	}
}
