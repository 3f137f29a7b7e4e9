package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers court related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, memberMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/courts")
	group.Use(authMiddleware)
	{
		group.GET("", memberMiddleware, h.List)
		group.GET("/:id", memberMiddleware, h.Get)
		group.POST("", adminMiddleware, h.Create)
		group.PATCH("/:id", adminMiddleware, h.Update)
		group.DELETE("/:id", adminMiddleware, h.Delete)
	}
}
