package repository

import (
	"github.com/redis/go-redis/v9"
	"messenger/pkg/logger"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks messenger/internal/repository MessageRepository,PostRepository,RateLimitRepository,ReactionRepository,UserRepository

type Repositories struct {
	User      UserRepository
	Post      PostRepository
	Message   MessageRepository
	Reaction  ReactionRepository
	RateLimit RateLimitRepository
}

func NewRepositories(db DB, redis *redis.Client, log logger.Logger) *Repositories {
	repos := &Repositories{
		User:     NewUserRepository(db, log),
		Post:     NewPostRepository(db, log),
		Message:  NewMessageRepository(db, log),
		Reaction: NewReactionRepository(db, log),
	}

	if redis != nil {
		repos.RateLimit = NewRateLimitRepository(redis, log)
	} else {
		log.Warn("Redis client is nil, rate limit repository disabled")
	}

	return repos
}
