package httpserver

import (
	"net/http"

	"blognest-api/pkg/errors"
	"blognest-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// healthCheck reports overall service health including stream stats.
// @Summary Health Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is healthy"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.redis.Ping(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Redis connection failed"))
		return
	}
	if err := srv.db.PingContext(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Database connection failed"))
		return
	}

	stats := srv.registry.Stats()
	chatStats := srv.conversations.Stats()

	response.OK(c, gin.H{
		"status":               "healthy",
		"service":              "blognest-api",
		"active_streams":       stats.ActiveChannels,
		"online_users":         stats.TotalUniqueUsers,
		"active_chat_streams":  chatStats.ActiveChannels,
		"active_conversations": chatStats.TotalUniqueUsers,
		"redis":                "connected",
		"postgres":             "connected",
	})
}

// readyCheck reports whether the service can take traffic.
// @Summary Readiness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is ready"
// @Failure 503 {object} map[string]interface{} "Service is not ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.redis.Ping(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Redis connection not available"))
		return
	}
	if err := srv.db.PingContext(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Database connection not available"))
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"service": "blognest-api",
	})
}

// liveCheck reports process liveness only.
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": "blognest-api",
	})
}
