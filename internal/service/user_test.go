package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"messenger/internal/domain"
	"messenger/internal/repository/mocks"
	apperrors "messenger/pkg/errors"
	"messenger/pkg/logger"
)

func strPtr(v string) *string { return &v }

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name    string
		user    domain.User
		wantErr bool
	}{
		{name: "valid", user: domain.User{Name: " aiko ", Email: "aiko@example.com"}},
		{name: "missing name", user: domain.User{Name: "  ", Email: "aiko@example.com"}, wantErr: true},
		{name: "bad email", user: domain.User{Name: "aiko", Email: "aiko.example.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockUserRepository(ctrl)
			svc := NewUserService(repo, logger.NewNop())

			user := tt.user
			if !tt.wantErr {
				repo.EXPECT().Create(gomock.Any(), &user).DoAndReturn(func(_ context.Context, u *domain.User) error {
					u.ID = 1
					return nil
				})
			}

			got, err := svc.Create(context.Background(), &user)
			if tt.wantErr {
				assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, 1, got.ID)
			assert.Equal(t, "aiko", got.Name)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	svc := NewUserService(repo, logger.NewNop())
	ctx := context.Background()

	current := &domain.User{ID: 1, Name: "aiko"}
	repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(current, nil)

	got, err := svc.Update(ctx, 1, domain.UserUpdate{})
	require.NoError(t, err)
	assert.Same(t, current, got)

	_, err = svc.Update(ctx, 1, domain.UserUpdate{Email: strPtr("nope")})
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))

	update := domain.UserUpdate{Name: strPtr("ken")}
	repo.EXPECT().Update(gomock.Any(), int64(1), update).Return(&domain.User{ID: 1, Name: "ken"}, nil)
	got, err = svc.Update(ctx, 1, update)
	require.NoError(t, err)
	assert.Equal(t, "ken", got.Name)
}

func TestUserService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	svc := NewUserService(repo, logger.NewNop())

	repo.EXPECT().List(gomock.Any(), domain.Page{Number: 2, PerPage: 5}).Return(&domain.UserList{TotalCount: 6}, nil)

	list, err := svc.List(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 6, list.TotalCount)

	_, err = svc.List(context.Background(), 0, 5)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPage)
}
