package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"messenger/internal/domain"
	"messenger/internal/service"
	"messenger/pkg/logger"
)

type MessageHandler struct {
	messageService service.MessageService
	log            logger.Logger
}

func NewMessageHandler(messageService service.MessageService, log logger.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		log:            log,
	}
}

type SendMessageRequest struct {
	SenderID   int64  `json:"sender_id" binding:"required"`
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	Content    string `json:"content"`
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	if err := requireCaller(c, req.SenderID); err != nil {
		_ = c.Error(err)
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), req.SenderID, req.ReceiverID, req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) List(c *gin.Context) {
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
	unreadOnly, err := boolQuery(c, "unread_only")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := requireCaller(c, userID); err != nil {
		_ = c.Error(err)
		return
	}

	list, err := h.messageService.List(c.Request.Context(), userID, unreadOnly, page, perPage)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *MessageHandler) GetConversation(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	peerID, err := pathID(c, "peerId")
	if err != nil {
		_ = c.Error(err)
		return
	}
	page, perPage, err := pageQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := requireCaller(c, userID); err != nil {
		_ = c.Error(err)
		return
	}

	conversation, err := h.messageService.GetConversation(c.Request.Context(), userID, peerID, page, perPage)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, conversation)
}

type MarkAsReadRequest struct {
	MessageID  *int64  `json:"message_id"`
	MessageIDs []int64 `json:"message_ids"`
	FromUserID *int64  `json:"from_user_id"`
	ToUserID   *int64  `json:"to_user_id"`
}

func (h *MessageHandler) MarkAsRead(c *gin.Context) {
	var req MarkAsReadRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	selector, err := domain.NewReadSelector(req.MessageID, req.MessageIDs, req.FromUserID, req.ToUserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// only the receiver marks a sender's messages as read
	if pair, ok := selector.(domain.ReadByUserPair); ok {
		if err := requireCaller(c, pair.ToUserID); err != nil {
			_ = c.Error(err)
			return
		}
	}

	updated, err := h.messageService.MarkAsRead(c.Request.Context(), selector)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated_count": updated})
}

func (h *MessageHandler) Delete(c *gin.Context) {
	messageID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	deleted, err := h.messageService.Delete(c.Request.Context(), messageID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": deleted})
}
