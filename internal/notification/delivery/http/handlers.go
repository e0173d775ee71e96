package http

import (
	"github.com/gin-gonic/gin"

	"blognest-api/pkg/response"
	"blognest-api/pkg/scope"
)

// Get lists the caller's notifications, newest first.
// @Summary List notifications
// @Tags Notification
// @Security BearerAuth
// @Param types query string false "Comma-separated type filter"
// @Param unreadOnly query bool false "Only unread notifications"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Resp
// @Router /api/v1/notifications [GET]
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	var req getReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(ctx, "internal.notification.delivery.http.Get.ShouldBindQuery: %v", err)
		response.Error(c, errBadRequest, h.d)
		return
	}

	sc := scope.GetScopeFromContext(ctx)
	out, err := h.uc.Get(ctx, sc, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, newListResp(out))
}

// UnreadCount returns the caller's unread notification count.
// @Summary Unread notification count
// @Tags Notification
// @Security BearerAuth
// @Success 200 {object} response.Resp
// @Router /api/v1/notifications/unread-count [GET]
func (h *Handler) UnreadCount(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	count, err := h.uc.UnreadCount(ctx, sc)
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, unreadCountResp{Count: count})
}

// UnreadStats returns unread counts bucketed per badge category.
// @Summary Unread notification stats
// @Tags Notification
// @Security BearerAuth
// @Success 200 {object} response.Resp
// @Router /api/v1/notifications/unread-stats [GET]
func (h *Handler) UnreadStats(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	stats, err := h.uc.UnreadStats(ctx, sc)
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, stats)
}

// MarkRead marks one notification as read.
// @Summary Mark notification read
// @Tags Notification
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/notifications/{id}/read [PATCH]
func (h *Handler) MarkRead(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	if err := h.uc.MarkRead(ctx, sc, c.Param("id")); err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, nil)
}

// MarkAllRead marks the caller's notifications as read, optionally
// limited to a set of types.
// @Summary Mark all notifications read
// @Tags Notification
// @Security BearerAuth
// @Param body body markAllReadReq false "Optional type filter"
// @Success 200 {object} response.Resp
// @Router /api/v1/notifications/read-all [PATCH]
func (h *Handler) MarkAllRead(c *gin.Context) {
	ctx := c.Request.Context()

	var req markAllReadReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.l.Warnf(ctx, "internal.notification.delivery.http.MarkAllRead.ShouldBindJSON: %v", err)
			response.Error(c, errBadRequest, h.d)
			return
		}
	}

	sc := scope.GetScopeFromContext(ctx)
	if err := h.uc.MarkAllRead(ctx, sc, req.toInput()); err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, nil)
}
