package service

import (
	"context"
	"strings"

	"messenger/internal/domain"
	"messenger/internal/repository"
	apperrors "messenger/pkg/errors"
	"messenger/pkg/logger"
)

type PostService interface {
	Create(ctx context.Context, userID int64, body string) (*domain.Post, error)
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context, page, perPage int) (*domain.PostList, error)
	ListByUser(ctx context.Context, userID int64, page, perPage int) (*domain.PostList, error)
	Update(ctx context.Context, id int64, body string) (*domain.Post, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type postService struct {
	postRepo repository.PostRepository
	log      logger.Logger
}

func NewPostService(postRepo repository.PostRepository, log logger.Logger) PostService {
	return &postService{
		postRepo: postRepo,
		log:      log,
	}
}

var errEmptyBody = apperrors.InvalidArgument("body is required")

func (s *postService) Create(ctx context.Context, userID int64, body string) (*domain.Post, error) {
	if strings.TrimSpace(body) == "" {
		return nil, errEmptyBody
	}
	return s.postRepo.Create(ctx, userID, body)
}

func (s *postService) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *postService) List(ctx context.Context, page, perPage int) (*domain.PostList, error) {
	p, err := domain.NewPage(page, perPage)
	if err != nil {
		return nil, err
	}
	return s.postRepo.List(ctx, p)
}

func (s *postService) ListByUser(ctx context.Context, userID int64, page, perPage int) (*domain.PostList, error) {
	p, err := domain.NewPage(page, perPage)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListByUser(ctx, userID, p)
}

func (s *postService) Update(ctx context.Context, id int64, body string) (*domain.Post, error) {
	if strings.TrimSpace(body) == "" {
		return nil, errEmptyBody
	}
	return s.postRepo.Update(ctx, id, body)
}

func (s *postService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info("Post deleted", "post_id", id)
	}
	return deleted, nil
}
