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

type ReactionService interface {
	Add(ctx context.Context, userID, messageID, reactionTypeID int64) (*domain.Reaction, error)
	Remove(ctx context.Context, userID, messageID int64, reactionTypeID *int64) (int64, error)
	ListForMessage(ctx context.Context, messageID int64) ([]*domain.Reaction, error)
	CountByType(ctx context.Context, messageID int64) ([]*domain.ReactionCount, error)
	ListTypes(ctx context.Context) ([]*domain.ReactionType, error)
	// GetType returns nil, nil when the type does not exist.
	GetType(ctx context.Context, id int64) (*domain.ReactionType, error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	tracer       *observability.Tracer
	metrics      *observability.Metrics
	log          logger.Logger
}

func NewReactionService(reactionRepo repository.ReactionRepository, tracer *observability.Tracer, metrics *observability.Metrics, log logger.Logger) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		tracer:       tracer,
		metrics:      metrics,
		log:          log,
	}
}

func (s *reactionService) Add(ctx context.Context, userID, messageID, reactionTypeID int64) (reaction *domain.Reaction, err error) {
	ctx, span := s.tracer.Start(ctx, "reaction.add",
		observability.UserID(userID), observability.MessageID(messageID), observability.ReactionTypeID(reactionTypeID))
	defer func() { s.tracer.End(span, err) }()

	if userID <= 0 || messageID <= 0 || reactionTypeID <= 0 {
		return nil, apperrors.InvalidArgument("user_id, message_id and reaction_type_id must be positive")
	}

	reaction, err = s.reactionRepo.Add(ctx, userID, messageID, reactionTypeID)
	if err != nil {
		return nil, err
	}

	s.metrics.ReactionAdded(reactionTypeID)
	return reaction, nil
}

func (s *reactionService) Remove(ctx context.Context, userID, messageID int64, reactionTypeID *int64) (removed int64, err error) {
	ctx, span := s.tracer.Start(ctx, "reaction.remove", observability.UserID(userID), observability.MessageID(messageID))
	defer func() { s.tracer.End(span, err) }()

	if reactionTypeID != nil {
		span.SetAttributes(observability.ReactionTypeID(*reactionTypeID))
	}

	removed, err = s.reactionRepo.Remove(ctx, userID, messageID, reactionTypeID)
	if err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int64("messenger.removed_count", removed))
	s.metrics.ReactionsRemovedCount(removed)
	return removed, nil
}

func (s *reactionService) ListForMessage(ctx context.Context, messageID int64) (reactions []*domain.Reaction, err error) {
	ctx, span := s.tracer.Start(ctx, "reaction.list", observability.MessageID(messageID))
	defer func() { s.tracer.End(span, err) }()

	return s.reactionRepo.ListForMessage(ctx, messageID)
}

func (s *reactionService) CountByType(ctx context.Context, messageID int64) (counts []*domain.ReactionCount, err error) {
	ctx, span := s.tracer.Start(ctx, "reaction.count_by_type", observability.MessageID(messageID))
	defer func() { s.tracer.End(span, err) }()

	return s.reactionRepo.CountByType(ctx, messageID)
}

func (s *reactionService) ListTypes(ctx context.Context) (types []*domain.ReactionType, err error) {
	ctx, span := s.tracer.Start(ctx, "reaction_type.list")
	defer func() { s.tracer.End(span, err) }()

	return s.reactionRepo.ListTypes(ctx)
}

func (s *reactionService) GetType(ctx context.Context, id int64) (reactionType *domain.ReactionType, err error) {
	ctx, span := s.tracer.Start(ctx, "reaction_type.get", observability.ReactionTypeID(id))
	defer func() { s.tracer.End(span, err) }()

	return s.reactionRepo.GetType(ctx, id)
}
