package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blognest-api/internal/view"
	"blognest-api/pkg/errors"
	"blognest-api/pkg/response"
)

type countResp struct {
	Views int64 `json:"views"`
}

// Increment records one view for a post.
// @Summary Record a post view
// @Tags View
// @Param postId path string true "Post ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/views/{postId} [POST]
func (h *Handler) Increment(c *gin.Context) {
	ctx := c.Request.Context()

	views, err := h.uc.Increment(ctx, c.Param("postId"))
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, countResp{Views: views})
}

// Count returns a post's view count.
// @Summary Post view count
// @Tags View
// @Param postId path string true "Post ID"
// @Success 200 {object} response.Resp
// @Router /api/v1/views/{postId} [GET]
func (h *Handler) Count(c *gin.Context) {
	ctx := c.Request.Context()

	views, err := h.uc.Count(ctx, c.Param("postId"))
	if err != nil {
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, countResp{Views: views})
}

func (h *Handler) mapError(err error) error {
	switch err {
	case view.ErrFieldRequired:
		return errors.NewHTTPError(http.StatusBadRequest, "Missing required field")
	default:
		panic(err)
	}
}
