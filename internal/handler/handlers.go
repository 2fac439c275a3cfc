package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"messenger/internal/service"
	"messenger/pkg/logger"
)

type Handlers struct {
	Health   *HealthHandler
	User     *UserHandler
	Post     *PostHandler
	Message  *MessageHandler
	Reaction *ReactionHandler
}

func NewHandlers(services *service.Services, db Pinger, redis *redis.Client, log logger.Logger) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(db, redis, log),
		User:     NewUserHandler(services.User, log),
		Post:     NewPostHandler(services.Post, log),
		Message:  NewMessageHandler(services.Message, log),
		Reaction: NewReactionHandler(services.Reaction, log),
	}
}

// RegisterRoutes mounts the API operations on api, normally the /api/v1 group.
func (h *Handlers) RegisterRoutes(api gin.IRouter) {
	messages := api.Group("/messages")
	{
		messages.POST("", h.Message.Send)
		messages.POST("/read", h.Message.MarkAsRead)
		messages.DELETE("/:id", h.Message.Delete)

		messages.POST("/:id/reactions", h.Reaction.Add)
		messages.DELETE("/:id/reactions", h.Reaction.Remove)
		messages.GET("/:id/reactions", h.Reaction.ListForMessage)
		messages.GET("/:id/reactions/counts", h.Reaction.CountByType)
	}

	reactionTypes := api.Group("/reaction-types")
	{
		reactionTypes.GET("", h.Reaction.ListTypes)
		reactionTypes.GET("/:id", h.Reaction.GetType)
	}

	users := api.Group("/users")
	{
		users.POST("", h.User.Create)
		users.GET("", h.User.List)
		users.GET("/:id", h.User.GetByID)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)

		users.GET("/:id/messages", h.Message.List)
		users.GET("/:id/conversations/:peerId", h.Message.GetConversation)
		users.GET("/:id/posts", h.Post.ListByUser)
	}

	posts := api.Group("/posts")
	{
		posts.POST("", h.Post.Create)
		posts.GET("", h.Post.List)
		posts.GET("/:id", h.Post.GetByID)
		posts.PUT("/:id", h.Post.Update)
		posts.DELETE("/:id", h.Post.Delete)
	}
}
