package http

import (
	"github.com/gin-gonic/gin"

	"blognest-api/internal/message"
	"blognest-api/pkg/response"
	"blognest-api/pkg/scope"
)

// SendText sends a text message to another user.
// @Summary Send a text message
// @Tags Message
// @Security BearerAuth
// @Param body body sendTextReq true "Message"
// @Success 200 {object} response.Resp
// @Router /api/v1/messages/text [POST]
func (h *Handler) SendText(c *gin.Context) {
	ctx := c.Request.Context()

	var req sendTextReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.message.delivery.http.SendText.ShouldBindJSON: %v", err)
		response.Error(c, errBadRequest, h.d)
		return
	}

	sc := scope.GetScopeFromContext(ctx)
	ev, err := h.uc.SendText(ctx, sc, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, ev)
}

// SendMedia sends an image or video message to another user.
// @Summary Send a media message
// @Tags Message
// @Security BearerAuth
// @Param body body sendMediaReq true "Message"
// @Success 200 {object} response.Resp
// @Router /api/v1/messages/media [POST]
func (h *Handler) SendMedia(c *gin.Context) {
	ctx := c.Request.Context()

	var req sendMediaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.message.delivery.http.SendMedia.ShouldBindJSON: %v", err)
		response.Error(c, errBadRequest, h.d)
		return
	}

	sc := scope.GetScopeFromContext(ctx)
	ev, err := h.uc.SendMedia(ctx, sc, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, ev)
}

// UploadMedia uploads a chat attachment and returns its URL.
// @Summary Upload a chat attachment
// @Tags Message
// @Security BearerAuth
// @Accept multipart/form-data
// @Param file formData file true "Attachment"
// @Success 200 {object} response.Resp
// @Router /api/v1/messages/media/upload [POST]
func (h *Handler) UploadMedia(c *gin.Context) {
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.l.Warnf(ctx, "internal.message.delivery.http.UploadMedia.FormFile: %v", err)
		response.Error(c, errBadRequest, h.d)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.l.Errorf(ctx, "internal.message.delivery.http.UploadMedia.Open: %v", err)
		response.Error(c, errBadRequest, h.d)
		return
	}
	defer file.Close()

	sc := scope.GetScopeFromContext(ctx)
	out, err := h.uc.UploadMedia(ctx, sc, message.UploadMediaInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, uploadResp{URL: out.URL})
}

// Recall withdraws a sent message for both participants.
// @Summary Recall a message
// @Tags Message
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/messages/{id}/recall [POST]
func (h *Handler) Recall(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	if err := h.uc.Recall(ctx, sc, c.Param("id")); err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, nil)
}

// Delete hides a message from the caller's own view only.
// @Summary Delete a message for me
// @Tags Message
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/messages/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	if err := h.uc.Delete(ctx, sc, c.Param("id")); err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, nil)
}

// ConversationPage pages through one conversation, newest first.
// @Summary List conversation messages
// @Tags Message
// @Security BearerAuth
// @Param userId path string true "Other participant ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Resp
// @Router /api/v1/messages/conversations/{userId} [GET]
func (h *Handler) ConversationPage(c *gin.Context) {
	ctx := c.Request.Context()

	var req pageReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(ctx, "internal.message.delivery.http.ConversationPage.ShouldBindQuery: %v", err)
		response.Error(c, errBadRequest, h.d)
		return
	}

	sc := scope.GetScopeFromContext(ctx)
	out, err := h.uc.ConversationPage(ctx, sc, message.PageInput{
		OtherUserID:   c.Param("userId"),
		PaginateQuery: req.PaginateQuery,
	})
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, newPageResp(out))
}

// MarkConversationRead marks every message from the other participant
// as read.
// @Summary Mark a conversation read
// @Tags Message
// @Security BearerAuth
// @Param userId path string true "Other participant ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/messages/conversations/{userId}/read [PATCH]
func (h *Handler) MarkConversationRead(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	if err := h.uc.MarkConversationRead(ctx, sc, c.Param("userId")); err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, nil)
}

// UnreadTotal returns the caller's unread message count across all
// conversations.
// @Summary Unread message total
// @Tags Message
// @Security BearerAuth
// @Success 200 {object} response.Resp
// @Router /api/v1/messages/unread-total [GET]
func (h *Handler) UnreadTotal(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	count, err := h.uc.UnreadTotal(ctx, sc)
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, unreadTotalResp{Count: count})
}

// ConversationSummaries lists a page of the caller's inbox.
// @Summary List conversation summaries
// @Tags Message
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Resp
// @Router /api/v1/messages/conversations [GET]
func (h *Handler) ConversationSummaries(c *gin.Context) {
	ctx := c.Request.Context()

	var req pageReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Warnf(ctx, "internal.message.delivery.http.ConversationSummaries.ShouldBindQuery: %v", err)
		response.Error(c, errBadRequest, h.d)
		return
	}

	sc := scope.GetScopeFromContext(ctx)
	out, err := h.uc.ConversationSummaries(ctx, sc, message.SummariesInput{
		PaginateQuery: req.PaginateQuery,
	})
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, newSummariesResp(out))
}
