package middleware

import (
	"strings"

	"blognest-api/pkg/response"
	"blognest-api/pkg/scope"

	"github.com/gin-gonic/gin"
)

// Auth returns a middleware that validates JWT tokens and sets the payload
// and scope in context. The token comes from the Authorization header, with
// fallbacks to the "token" query parameter (EventSource cannot set headers)
// and the auth cookie.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := m.extractToken(c)
		if tokenString == "" {
			m.logger.Warnf(c.Request.Context(), "Missing authentication token | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		payload, err := m.jwtManager.Verify(tokenString)
		if err != nil {
			m.logger.Warnf(c.Request.Context(), "Token verification failed: %v | Path: %s", err, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		ctx = scope.SetPayloadToContext(ctx, payload)
		ctx = scope.SetScopeToContext(ctx, scope.NewScope(payload))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func (m Middleware) extractToken(c *gin.Context) string {
	const bearerPrefix = "Bearer "

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, bearerPrefix) {
		if token := strings.TrimSpace(authHeader[len(bearerPrefix):]); token != "" {
			return token
		}
	}

	if token := c.Query("token"); token != "" {
		return token
	}

	if cookie, err := c.Cookie(m.cookieConfig.Name); err == nil && cookie != "" {
		return cookie
	}
	return ""
}
