package service

import (
	"context"
	"strings"

	"messenger/internal/domain"
	"messenger/internal/repository"
	apperrors "messenger/pkg/errors"
	"messenger/pkg/logger"
)

type UserService interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, page, perPage int) (*domain.UserList, error)
	Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      logger.Logger
}

func NewUserService(userRepo repository.UserRepository, log logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log,
	}
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.InvalidArgument("name is required")
	}
	return nil
}

func validateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return apperrors.InvalidArgument("email is invalid")
	}
	return nil
}

func validateAge(age *int32) error {
	if age != nil && *age < 0 {
		return apperrors.InvalidArgument("age must not be negative")
	}
	return nil
}

func (s *userService) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)

	if err := validateName(user.Name); err != nil {
		return nil, err
	}
	if err := validateEmail(user.Email); err != nil {
		return nil, err
	}
	if err := validateAge(user.Age); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User created", "user_id", user.ID)
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, page, perPage int) (*domain.UserList, error) {
	p, err := domain.NewPage(page, perPage)
	if err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, p)
}

// Update with no fields set returns the current user unchanged.
func (s *userService) Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	if update.IsEmpty() {
		return s.userRepo.GetByID(ctx, id)
	}
	if update.Name != nil {
		if err := validateName(*update.Name); err != nil {
			return nil, err
		}
	}
	if update.Email != nil {
		if err := validateEmail(*update.Email); err != nil {
			return nil, err
		}
	}
	if err := validateAge(update.Age); err != nil {
		return nil, err
	}

	return s.userRepo.Update(ctx, id, update)
}

func (s *userService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info("User deleted", "user_id", id)
	}
	return deleted, nil
}
