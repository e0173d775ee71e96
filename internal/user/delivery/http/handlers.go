package http

import (
	"github.com/gin-gonic/gin"

	"blognest-api/internal/user"
	"blognest-api/pkg/response"
	"blognest-api/pkg/scope"
)

// Register creates a new account.
// @Summary Register
// @Tags User
// @Param body body registerReq true "Credentials"
// @Success 200 {object} response.Resp
// @Router /api/v1/users/register [POST]
func (h *Handler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.user.delivery.http.Register.ShouldBindJSON: %v", err)
		response.Error(c, errBadRequest, h.d)
		return
	}

	out, err := h.uc.Register(ctx, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, newUserResp(out.User))
}

// Login authenticates and returns a JWT, also set as a cookie for the
// stream endpoints.
// @Summary Login
// @Tags User
// @Param body body loginReq true "Credentials"
// @Success 200 {object} response.Resp
// @Router /api/v1/users/login [POST]
func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.user.delivery.http.Login.ShouldBindJSON: %v", err)
		response.Error(c, errBadRequest, h.d)
		return
	}

	out, err := h.uc.Login(ctx, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	c.SetCookie(h.cookieCfg.Name, out.Token, h.cookieCfg.MaxAge, "/", h.cookieCfg.Domain, h.cookieCfg.Secure, true)
	response.OK(c, loginResp{
		User:  newUserResp(out.User),
		Token: out.Token,
	})
}

// Me returns the caller's own profile.
// @Summary My profile
// @Tags User
// @Security BearerAuth
// @Success 200 {object} response.Resp
// @Router /api/v1/users/me [GET]
func (h *Handler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	out, err := h.uc.DetailMe(ctx, sc)
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, newUserResp(out.User))
}

// Detail returns a user's public profile by ID.
// @Summary User profile
// @Tags User
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/users/{id} [GET]
func (h *Handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	sc := scope.GetScopeFromContext(ctx)
	out, err := h.uc.Detail(ctx, sc, c.Param("id"))
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, newUserResp(out.User))
}

// GetByUsername returns a user's public profile by username.
// @Summary User profile by username
// @Tags User
// @Security BearerAuth
// @Param username query string true "Username"
// @Success 200 {object} response.Resp
// @Router /api/v1/users [GET]
func (h *Handler) GetByUsername(c *gin.Context) {
	ctx := c.Request.Context()

	username := c.Query("username")
	if username == "" {
		response.Error(c, errBadRequest, h.d)
		return
	}

	sc := scope.GetScopeFromContext(ctx)
	usr, err := h.uc.GetOne(ctx, sc, user.GetOneInput{Username: username})
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, newUserResp(usr))
}

// UpdateProfile updates the caller's profile fields.
// @Summary Update my profile
// @Tags User
// @Security BearerAuth
// @Param body body updateProfileReq true "Profile fields"
// @Success 200 {object} response.Resp
// @Router /api/v1/users/me [PATCH]
func (h *Handler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.user.delivery.http.UpdateProfile.ShouldBindJSON: %v", err)
		response.Error(c, errBadRequest, h.d)
		return
	}

	sc := scope.GetScopeFromContext(ctx)
	out, err := h.uc.UpdateProfile(ctx, sc, req.toInput())
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, newUserResp(out.User))
}
