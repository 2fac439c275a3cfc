package service

import (
	"messenger/internal/observability"
	"messenger/internal/repository"
	"messenger/pkg/logger"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks messenger/internal/service MessageService,PostService,RateLimitService,ReactionService,UserService

type Services struct {
	User      UserService
	Post      PostService
	Message   MessageService
	Reaction  ReactionService
	RateLimit RateLimitService
}

func NewServices(repos *repository.Repositories, tracer *observability.Tracer, metrics *observability.Metrics, log logger.Logger) *Services {
	return &Services{
		User:      NewUserService(repos.User, log),
		Post:      NewPostService(repos.Post, log),
		Message:   NewMessageService(repos.Message, tracer, metrics, log),
		Reaction:  NewReactionService(repos.Reaction, tracer, metrics, log),
		RateLimit: NewRateLimitService(repos.RateLimit, log),
	}
}
