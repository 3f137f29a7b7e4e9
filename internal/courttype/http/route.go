package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers court-type related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, memberMiddleware, supervisorMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/court-types")
	group.Use(authMiddleware)
	{
		group.GET("", memberMiddleware, h.List)
		group.GET("/:id", memberMiddleware, h.Get)
		group.PATCH("/:id", supervisorMiddleware, h.Update)
		group.POST("", adminMiddleware, h.Create)
		group.DELETE("/:id", adminMiddleware, h.Delete)
	}
}
