package http

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"blognest-api/internal/realtime"
	"blognest-api/pkg/scope"
)

// Subscribe opens the caller's notification stream.
// The route bypasses the auth middleware: EventSource cannot set headers
// and expects errors as stream events, not JSON bodies. The token comes
// from the "token" query parameter, with header and cookie fallbacks.
// @Summary Subscribe to the notification stream
// @Description Server-sent events stream of real-time notifications. The first frame is a connected event carrying the pending friend request count.
// @Tags Notification
// @Param token query string true "JWT Token"
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /api/v1/notifications/stream [GET]
func (h *Handler) Subscribe(c *gin.Context) {
	ctx := c.Request.Context()

	h.setStreamHeaders(c)

	token := h.extractToken(c)
	if token == "" {
		h.writeErrorFrame(c, "missing authentication token")
		return
	}
	payload, err := h.jwtManager.Verify(token)
	if err != nil {
		h.l.Warnf(ctx, "internal.notification.delivery.http.Subscribe.Verify: %v", err)
		h.writeErrorFrame(c, "invalid or expired token")
		return
	}
	sc := scope.NewScope(payload)

	ch, err := h.uc.Subscribe(ctx, sc)
	if err != nil {
		h.l.Warnf(ctx, "internal.notification.delivery.http.Subscribe: %v", err)
		h.writeErrorFrame(c, "subscription unavailable")
		return
	}
	defer h.uc.Unregister(ch)

	heartbeat := time.NewTicker(h.sseConfig.HeartbeatInterval)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case frame, ok := <-ch.Receive():
			if !ok {
				return false
			}
			if err := sse.Encode(w, sse.Event{Event: frame.Event, Data: string(frame.Data)}); err != nil {
				return false
			}
			return true
		case <-heartbeat.C:
			if err := sse.Encode(w, sse.Event{Event: realtime.EventHeartbeat, Data: "ping"}); err != nil {
				return false
			}
			return true
		case <-ctx.Done():
			return false
		}
	})
}

func (h *Handler) setStreamHeaders(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
}

// writeErrorFrame emits one error event and completes the stream with
// status 200 so EventSource surfaces the message instead of retrying a
// JSON body it cannot parse.
func (h *Handler) writeErrorFrame(c *gin.Context, message string) {
	c.Status(http.StatusOK)
	sse.Encode(c.Writer, sse.Event{Event: realtime.EventError, Data: message})
	c.Writer.Flush()
}

func (h *Handler) extractToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}

	const bearerPrefix = "Bearer "
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, bearerPrefix) {
		if token := strings.TrimSpace(authHeader[len(bearerPrefix):]); token != "" {
			return token
		}
	}

	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie != "" {
		return cookie
	}
	return ""
}
