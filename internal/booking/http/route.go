package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, wh *WebhookHandler, authMiddleware, memberMiddleware, operatorMiddleware gin.HandlerFunc) {
	g.GET("/availability", authMiddleware, memberMiddleware, h.Availability)

	group := g.Group("/bookings")
	group.Use(authMiddleware, memberMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.DELETE("/:id", h.Delete)
		group.POST("/:id/confirm", operatorMiddleware, h.Confirm)
	}

	// Signed by the payment gateway, not by a user token.
	g.POST("/payments/webhook", wh.Payment)
}
