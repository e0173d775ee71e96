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

// SubscribeConversation opens the chat stream for one conversation.
// Auth mirrors the notification stream: token in query, header or
// cookie, with failures reported as stream error events.
// @Summary Subscribe to a conversation stream
// @Description Server-sent events stream for one conversation. The first frame carries the recent history snapshot.
// @Tags Message
// @Param userId path string true "Other participant ID"
// @Param token query string true "JWT Token"
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /api/v1/messages/conversations/{userId}/stream [GET]
func (h *Handler) SubscribeConversation(c *gin.Context) {
	ctx := c.Request.Context()

	h.setStreamHeaders(c)

	token := h.extractToken(c)
	if token == "" {
		h.writeErrorFrame(c, "missing authentication token")
		return
	}
	payload, err := h.jwtManager.Verify(token)
	if err != nil {
		h.l.Warnf(ctx, "internal.message.delivery.http.SubscribeConversation.Verify: %v", err)
		h.writeErrorFrame(c, "invalid or expired token")
		return
	}
	sc := scope.NewScope(payload)

	ch, err := h.uc.SubscribeConversation(ctx, sc, c.Param("userId"))
	if err != nil {
		h.l.Warnf(ctx, "internal.message.delivery.http.SubscribeConversation: %v", err)
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
