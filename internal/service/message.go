package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"messenger/internal/domain"
	"messenger/internal/observability"
	"messenger/internal/repository"
	apperrors "messenger/pkg/errors"
	"messenger/pkg/logger"
)

type MessageService interface {
	Send(ctx context.Context, senderID, receiverID int64, content string) (*domain.Message, error)
	List(ctx context.Context, userID int64, unreadOnly bool, page, perPage int) (*domain.MessageList, error)
	GetConversation(ctx context.Context, userID, peerID int64, page, perPage int) (*domain.Conversation, error)
	MarkAsRead(ctx context.Context, selector domain.ReadSelector) (int64, error)
	Delete(ctx context.Context, messageID int64) (bool, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	tracer      *observability.Tracer
	metrics     *observability.Metrics
	log         logger.Logger
}

func NewMessageService(messageRepo repository.MessageRepository, tracer *observability.Tracer, metrics *observability.Metrics, log logger.Logger) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		tracer:      tracer,
		metrics:     metrics,
		log:         log,
	}
}

func (s *messageService) Send(ctx context.Context, senderID, receiverID int64, content string) (msg *domain.Message, err error) {
	ctx, span := s.tracer.Start(ctx, "message.send", observability.UserID(senderID), observability.PeerID(receiverID))
	defer func() { s.tracer.End(span, err) }()

	if senderID <= 0 || receiverID <= 0 {
		return nil, apperrors.InvalidArgument("sender_id and receiver_id must be positive")
	}

	msg, err = s.messageRepo.Send(ctx, senderID, receiverID, content)
	if err != nil {
		return nil, err
	}

	s.metrics.MessageSent()
	s.log.Debug("Message sent", "message_id", msg.ID, "sender_id", senderID, "receiver_id", receiverID)
	return msg, nil
}

func (s *messageService) List(ctx context.Context, userID int64, unreadOnly bool, page, perPage int) (list *domain.MessageList, err error) {
	ctx, span := s.tracer.Start(ctx, "message.list", observability.UserID(userID), attribute.Bool("messenger.unread_only", unreadOnly))
	defer func() { s.tracer.End(span, err) }()

	p, err := domain.NewPage(page, perPage)
	if err != nil {
		return nil, err
	}

	return s.messageRepo.List(ctx, userID, unreadOnly, p)
}

func (s *messageService) GetConversation(ctx context.Context, userID, peerID int64, page, perPage int) (conv *domain.Conversation, err error) {
	ctx, span := s.tracer.Start(ctx, "message.conversation", observability.UserID(userID), observability.PeerID(peerID))
	defer func() { s.tracer.End(span, err) }()

	p, err := domain.NewPage(page, perPage)
	if err != nil {
		return nil, err
	}

	return s.messageRepo.GetConversation(ctx, userID, peerID, p)
}

func (s *messageService) MarkAsRead(ctx context.Context, selector domain.ReadSelector) (updated int64, err error) {
	ctx, span := s.tracer.Start(ctx, "message.mark_as_read")
	defer func() { s.tracer.End(span, err) }()

	if selector == nil {
		return 0, apperrors.ErrNoReadSelector
	}

	updated, err = s.messageRepo.MarkAsRead(ctx, selector)
	if err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int64("messenger.updated_count", updated))
	s.metrics.MessagesRead(updated)
	return updated, nil
}

func (s *messageService) Delete(ctx context.Context, messageID int64) (deleted bool, err error) {
	ctx, span := s.tracer.Start(ctx, "message.delete", observability.MessageID(messageID))
	defer func() { s.tracer.End(span, err) }()

	deleted, err = s.messageRepo.Delete(ctx, messageID)
	if err != nil {
		return false, err
	}

	if deleted {
		s.metrics.MessageDeleted()
		s.log.Info("Message deleted", "message_id", messageID)
	}
	return deleted, nil
}
