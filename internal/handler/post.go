package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"messenger/internal/service"
	"messenger/pkg/logger"
)

type PostHandler struct {
	postService service.PostService
	log         logger.Logger
}

func NewPostHandler(postService service.PostService, log logger.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		log:         log,
	}
}

type CreatePostRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Body   string `json:"body"`
}

type UpdatePostRequest struct {
	Body string `json:"body"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	if err := requireCaller(c, req.UserID); err != nil {
		_ = c.Error(err)
		return
	}

	post, err := h.postService.Create(c.Request.Context(), req.UserID, req.Body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	post, err := h.postService.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) List(c *gin.Context) {
	page, perPage, err := pageQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	posts, err := h.postService.List(c.Request.Context(), page, perPage)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) ListByUser(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	page, perPage, err := pageQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	posts, err := h.postService.ListByUser(c.Request.Context(), userID, page, perPage)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req UpdatePostRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	post, err := h.postService.Update(c.Request.Context(), id, req.Body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	deleted, err := h.postService.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": deleted})
}
