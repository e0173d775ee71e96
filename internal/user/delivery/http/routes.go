package http

import (
	"github.com/gin-gonic/gin"

	"blognest-api/internal/middleware"
)

// RegisterRoutes mounts the user endpoints.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	users := r.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)

		authed := users.Group("", mw.Auth())
		{
			authed.GET("", h.GetByUsername)
			authed.GET("/me", h.Me)
			authed.PATCH("/me", h.UpdateProfile)
			authed.GET("/:id", h.Detail)
		}
	}
}
