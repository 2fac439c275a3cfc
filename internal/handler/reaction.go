package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"messenger/internal/service"
	apperrors "messenger/pkg/errors"
	"messenger/pkg/logger"
)

type ReactionHandler struct {
	reactionService service.ReactionService
	log             logger.Logger
}

func NewReactionHandler(reactionService service.ReactionService, log logger.Logger) *ReactionHandler {
	return &ReactionHandler{
		reactionService: reactionService,
		log:             log,
	}
}

type AddReactionRequest struct {
	UserID         int64 `json:"user_id" binding:"required"`
	ReactionTypeID int64 `json:"reaction_type_id" binding:"required"`
}

func (h *ReactionHandler) Add(c *gin.Context) {
	messageID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req AddReactionRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	if err := requireCaller(c, req.UserID); err != nil {
		_ = c.Error(err)
		return
	}

	reaction, err := h.reactionService.Add(c.Request.Context(), req.UserID, messageID, req.ReactionTypeID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, reaction)
}

// Remove soft-deletes the caller's reactions on the message. Without
// reaction_type_id every type is removed.
func (h *ReactionHandler) Remove(c *gin.Context) {
	messageID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	userID, err := optionalQueryID(c, "user_id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if userID == nil {
		_ = c.Error(apperrors.InvalidArgument("user_id is required"))
		return
	}
	reactionTypeID, err := optionalQueryID(c, "reaction_type_id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := requireCaller(c, *userID); err != nil {
		_ = c.Error(err)
		return
	}

	removed, err := h.reactionService.Remove(c.Request.Context(), *userID, messageID, reactionTypeID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed_count": removed})
}

func (h *ReactionHandler) ListForMessage(c *gin.Context) {
	messageID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	reactions, err := h.reactionService.ListForMessage(c.Request.Context(), messageID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reactions": reactions})
}

func (h *ReactionHandler) CountByType(c *gin.Context) {
	messageID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	counts, err := h.reactionService.CountByType(c.Request.Context(), messageID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

func (h *ReactionHandler) ListTypes(c *gin.Context) {
	types, err := h.reactionService.ListTypes(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reaction_types": types})
}

func (h *ReactionHandler) GetType(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	reactionType, err := h.reactionService.GetType(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if reactionType == nil {
		_ = c.Error(apperrors.ErrReactionTypeNotFound)
		return
	}

	c.JSON(http.StatusOK, reactionType)
}
