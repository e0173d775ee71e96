package http

import (
	"github.com/gin-gonic/gin"

	"blognest-api/internal/middleware"
)

// RegisterRoutes mounts the friend and follow endpoints.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	friends := r.Group("/friends", mw.Auth())
	{
		friends.POST("/requests", h.SendRequest)
		friends.GET("/requests/pending", h.Pending)
		friends.GET("/requests/pending-count", h.PendingCount)
		friends.POST("/requests/:id/respond", h.Respond)
		friends.DELETE("/:userId", h.DeleteFriend)
		friends.GET("/:userId/status", h.IsFriend)
	}

	follows := r.Group("/follows", mw.Auth())
	{
		follows.POST("/:userId", h.Follow)
		follows.DELETE("/:userId", h.Unfollow)
		follows.GET("/:userId/counts", h.FollowCounts)
		follows.GET("/:userId/status", h.IsFollowing)
	}
}
