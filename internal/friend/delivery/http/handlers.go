package http

import (
	"github.com/gin-gonic/gin"

	"blognest-api/internal/friend"
	"blognest-api/pkg/response"
	"blognest-api/pkg/scope"
)

// SendRequest sends a friend request.
// @Summary Send a friend request
// @Tags Friend
// @Security BearerAuth
// @Param body body sendRequestReq true "Request"
// @Success 200 {object} response.Resp
// @Router /api/v1/friends/requests [POST]
func (h *Handler) SendRequest(c *gin.Context) {
	ctx := c.Request.Context()

	var req sendRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.friend.delivery.http.SendRequest.ShouldBindJSON: %v", err)
		response.Error(c, errBadRequest, h.d)
		return
	}

	sc := scope.GetScopeFromContext(ctx)
	out, err := h.uc.SendRequest(ctx, sc, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, out)
}

// Respond accepts or rejects a pending friend request.
// @Summary Respond to a friend request
// @Tags Friend
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param body body respondReq true "Decision"
// @Success 200 {object} response.Resp
// @Router /api/v1/friends/requests/{id}/respond [POST]
func (h *Handler) Respond(c *gin.Context) {
	ctx := c.Request.Context()

	var req respondReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.friend.delivery.http.Respond.ShouldBindJSON: %v", err)
		response.Error(c, errBadRequest, h.d)
		return
	}

	sc := scope.GetScopeFromContext(ctx)
	if err := h.uc.Respond(ctx, sc, friend.RespondInput{
		RequestID: c.Param("id"),
		Accept:    req.Accept,
	}); err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, nil)
}

// Pending lists the caller's incoming pending friend requests.
// @Summary List pending friend requests
// @Tags Friend
// @Security BearerAuth
// @Success 200 {object} response.Resp
// @Router /api/v1/friends/requests/pending [GET]
func (h *Handler) Pending(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	requests, err := h.uc.Pending(ctx, sc)
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, requests)
}

// PendingCount returns the caller's pending friend request count.
// @Summary Pending friend request count
// @Tags Friend
// @Security BearerAuth
// @Success 200 {object} response.Resp
// @Router /api/v1/friends/requests/pending-count [GET]
func (h *Handler) PendingCount(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	count, err := h.uc.CountPending(ctx, sc.UserID)
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, pendingCountResp{Count: count})
}

// DeleteFriend removes an established friendship.
// @Summary Delete a friend
// @Tags Friend
// @Security BearerAuth
// @Param userId path string true "Friend user ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/friends/{userId} [DELETE]
func (h *Handler) DeleteFriend(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	if err := h.uc.DeleteFriend(ctx, sc, c.Param("userId")); err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, nil)
}

// IsFriend reports whether the caller and the given user are friends.
// @Summary Check friendship
// @Tags Friend
// @Security BearerAuth
// @Param userId path string true "Other user ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/friends/{userId}/status [GET]
func (h *Handler) IsFriend(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	isFriend, err := h.uc.IsFriend(ctx, sc.UserID, c.Param("userId"))
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, isFriendResp{IsFriend: isFriend})
}

// Follow starts following a user. Idempotent.
// @Summary Follow a user
// @Tags Friend
// @Security BearerAuth
// @Param userId path string true "Target user ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/follows/{userId} [POST]
func (h *Handler) Follow(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	if err := h.uc.Follow(ctx, sc, c.Param("userId")); err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, nil)
}

// Unfollow stops following a user. Idempotent.
// @Summary Unfollow a user
// @Tags Friend
// @Security BearerAuth
// @Param userId path string true "Target user ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/follows/{userId} [DELETE]
func (h *Handler) Unfollow(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	if err := h.uc.Unfollow(ctx, sc, c.Param("userId")); err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, nil)
}

// FollowCounts returns follower and following counts for a user.
// @Summary Follow counts
// @Tags Friend
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/follows/{userId}/counts [GET]
func (h *Handler) FollowCounts(c *gin.Context) {
	ctx := c.Request.Context()

	counts, err := h.uc.FollowCounts(ctx, c.Param("userId"))
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, counts)
}

// IsFollowing reports whether the caller follows the given user.
// @Summary Check follow status
// @Tags Friend
// @Security BearerAuth
// @Param userId path string true "Target user ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/follows/{userId}/status [GET]
func (h *Handler) IsFollowing(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	following, err := h.uc.IsFollowing(ctx, sc.UserID, c.Param("userId"))
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, isFollowingResp{IsFollowing: following})
}
