package service

import (
	"context"

	"messenger/internal/domain"
	"messenger/internal/repository"
	"messenger/pkg/logger"
)

type RateLimitService interface {
	// Allow counts one request for key against rule. When the counter store
	// fails the request is allowed and the error is returned for logging.
	Allow(ctx context.Context, key string, rule domain.RateLimitRule) (*domain.RateLimitDecision, error)
}

type rateLimitService struct {
	rateLimitRepo repository.RateLimitRepository
	log           logger.Logger
}

func NewRateLimitService(rateLimitRepo repository.RateLimitRepository, log logger.Logger) RateLimitService {
	return &rateLimitService{
		rateLimitRepo: rateLimitRepo,
		log:           log,
	}
}

func (s *rateLimitService) Allow(ctx context.Context, key string, rule domain.RateLimitRule) (*domain.RateLimitDecision, error) {
	limit := int64(rule.Requests)
	open := &domain.RateLimitDecision{Allowed: true, Limit: limit, Remaining: limit, ResetIn: rule.Window}

	if s.rateLimitRepo == nil {
		return open, nil
	}

	count, resetIn, err := s.rateLimitRepo.Hit(ctx, rule.Scope+":"+key, rule.Window)
	if err != nil {
		return open, err
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &domain.RateLimitDecision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetIn:   resetIn,
	}, nil
}
