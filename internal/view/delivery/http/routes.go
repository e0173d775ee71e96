package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the view counter endpoints. Views are recorded
// for anonymous readers too, so no auth middleware here.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	views := r.Group("/views")
	{
		views.POST("/:postId", h.Increment)
		views.GET("/:postId", h.Count)
	}
}
