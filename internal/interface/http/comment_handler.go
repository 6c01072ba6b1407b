package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/pkg/response"
	"github.com/oksasatya/go-blog-api/pkg/validation"
)

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type createCommentRequest struct {
	Text   string `json:"text" binding:"required"`
	PostID string `json:"post_id" binding:"required,uuid"`
}

type updateCommentRequest struct {
	Text string `json:"text"`
}

// List GET /comments?keyword=&page=&page_size=
func (h *CommentHandler) List(c *gin.Context) {
	keyword, page, pageSize := pagingParams(c)
	res, err := h.Svc.List(c.Request.Context(), keyword, page, pageSize)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": NewCommentViews(res.Items)}, "comments",
		gin.H{"page": res.Page, "pages": res.Pages})
}

// ListByPost GET /comments/post/:postId
func (h *CommentHandler) ListByPost(c *gin.Context) {
	comments, err := h.Svc.ListByPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, NewCommentViews(comments), "comments", nil)
}

// Get GET /comments/:id
func (h *CommentHandler) Get(c *gin.Context) {
	cm, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, NewCommentView(cm), "comment", nil)
}

// Create POST /comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	identity := middleware.IdentityFrom(c)
	cm, err := h.Svc.Create(c.Request.Context(), identity, req.PostID, req.Text)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, NewCommentView(cm), "comment created", nil)
}

// Update PUT /comments/:id (author only)
func (h *CommentHandler) Update(c *gin.Context) {
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	identity := middleware.IdentityFrom(c)
	cm, err := h.Svc.Update(c.Request.Context(), identity, c.Param("id"), req.Text)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, NewCommentView(cm), "comment updated", nil)
}

// Delete DELETE /comments/:id (author only)
func (h *CommentHandler) Delete(c *gin.Context) {
	identity := middleware.IdentityFrom(c)
	if err := h.Svc.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "comment deleted", nil)
}
