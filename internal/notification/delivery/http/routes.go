package http

import (
	"github.com/gin-gonic/gin"

	"blognest-api/internal/middleware"
)

// RegisterRoutes mounts the notification endpoints. The stream route
// handles its own auth; see Subscribe.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("/stream", h.Subscribe)

		authed := notifications.Group("", mw.Auth())
		{
			authed.GET("", h.Get)
			authed.GET("/unread-count", h.UnreadCount)
			authed.GET("/unread-stats", h.UnreadStats)
			authed.PATCH("/read-all", h.MarkAllRead)
			authed.PATCH("/:id/read", h.MarkRead)
		}
	}
}
