package http

import (
	"github.com/gin-gonic/gin"

	"blognest-api/internal/middleware"
)

// RegisterRoutes mounts the message endpoints. The stream route handles
// its own auth; see SubscribeConversation.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	messages := r.Group("/messages")
	{
		messages.GET("/conversations/:userId/stream", h.SubscribeConversation)

		authed := messages.Group("", mw.Auth())
		{
			authed.POST("/text", h.SendText)
			authed.POST("/media", h.SendMedia)
			authed.POST("/media/upload", h.UploadMedia)
			authed.POST("/:id/recall", h.Recall)
			authed.DELETE("/:id", h.Delete)
			authed.GET("/conversations", h.ConversationSummaries)
			authed.GET("/conversations/:userId", h.ConversationPage)
			authed.PATCH("/conversations/:userId/read", h.MarkConversationRead)
			authed.GET("/unread-total", h.UnreadTotal)
		}
	}
}
