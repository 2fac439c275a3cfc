package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"messenger/internal/domain"
	"messenger/internal/repository/mocks"
	"messenger/pkg/logger"
)

func TestRateLimitService_Allow(t *testing.T) {
	rule := domain.RateLimitRule{Scope: domain.RateLimitScopeIP, Requests: 2, Window: time.Minute}

	t.Run("counts down and then blocks", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRateLimitRepository(ctrl)
		svc := NewRateLimitService(repo, logger.NewNop())

		gomock.InOrder(
			repo.EXPECT().Hit(gomock.Any(), "ip:10.0.0.1", time.Minute).Return(int64(1), 50*time.Second, nil),
			repo.EXPECT().Hit(gomock.Any(), "ip:10.0.0.1", time.Minute).Return(int64(2), 49*time.Second, nil),
			repo.EXPECT().Hit(gomock.Any(), "ip:10.0.0.1", time.Minute).Return(int64(3), 48*time.Second, nil),
		)

		d, err := svc.Allow(context.Background(), "10.0.0.1", rule)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.EqualValues(t, 1, d.Remaining)

		d, err = svc.Allow(context.Background(), "10.0.0.1", rule)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.EqualValues(t, 0, d.Remaining)

		d, err = svc.Allow(context.Background(), "10.0.0.1", rule)
		require.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.EqualValues(t, 0, d.Remaining)
		assert.Equal(t, 48*time.Second, d.ResetIn)
	})

	t.Run("fails open", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockRateLimitRepository(ctrl)
		svc := NewRateLimitService(repo, logger.NewNop())

		repo.EXPECT().Hit(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), time.Duration(0), errors.New("connection refused"))

		d, err := svc.Allow(context.Background(), "10.0.0.1", rule)
		assert.Error(t, err)
		assert.True(t, d.Allowed)
	})

	t.Run("no store configured", func(t *testing.T) {
		svc := NewRateLimitService(nil, logger.NewNop())

		d, err := svc.Allow(context.Background(), "10.0.0.1", rule)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	})
}
