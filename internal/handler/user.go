package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"messenger/internal/domain"
	"messenger/internal/service"
	"messenger/pkg/logger"
)

type UserHandler struct {
	userService service.UserService
	log         logger.Logger
}

func NewUserHandler(userService service.UserService, log logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

type CreateUserRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Description *string `json:"description,omitempty"`
	Age         *int32  `json:"age,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Address     *string `json:"address,omitempty"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), &domain.User{
		Name:        req.Name,
		Email:       req.Email,
		Description: req.Description,
		Age:         req.Age,
		Gender:      req.Gender,
		Address:     req.Address,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) List(c *gin.Context) {
	page, perPage, err := pageQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	users, err := h.userService.List(c.Request.Context(), page, perPage)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req domain.UserUpdate
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	if err := requireCaller(c, id); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := requireCaller(c, id); err != nil {
		_ = c.Error(err)
		return
	}

	deleted, err := h.userService.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": deleted})
}
