package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"messenger/internal/domain"
	"messenger/internal/observability"
	"messenger/internal/repository/mocks"
	apperrors "messenger/pkg/errors"
	"messenger/pkg/logger"
)

func newReactionService(t *testing.T) (ReactionService, *mocks.MockReactionRepository, *observability.Metrics) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockReactionRepository(ctrl)
	tracer, _ := newTestTracer()
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	return NewReactionService(repo, tracer, metrics, logger.NewNop()), repo, metrics
}

func TestReactionService_Add(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		svc, repo, metrics := newReactionService(t)
		want := &domain.Reaction{ID: 1, UserID: 5, MessageID: 100, ReactionTypeID: 1}
		repo.EXPECT().Add(gomock.Any(), int64(5), int64(100), int64(1)).Return(want, nil)

		got, err := svc.Add(context.Background(), 5, 100, 1)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ReactionsAdded.WithLabelValues("1")))
	})

	t.Run("duplicate", func(t *testing.T) {
		svc, repo, metrics := newReactionService(t)
		repo.EXPECT().Add(gomock.Any(), int64(5), int64(100), int64(1)).Return(nil, apperrors.ErrReactionExists)

		_, err := svc.Add(context.Background(), 5, 100, 1)
		assert.ErrorIs(t, err, apperrors.ErrReactionExists)
		assert.Zero(t, testutil.ToFloat64(metrics.ReactionsAdded.WithLabelValues("1")))
	})

	t.Run("invalid ids", func(t *testing.T) {
		svc, _, _ := newReactionService(t)

		_, err := svc.Add(context.Background(), 5, 100, 0)
		assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
	})
}

func TestReactionService_Remove(t *testing.T) {
	svc, repo, metrics := newReactionService(t)
	typeID := int64(1)
	repo.EXPECT().Remove(gomock.Any(), int64(5), int64(100), &typeID).Return(int64(1), nil)
	repo.EXPECT().Remove(gomock.Any(), int64(5), int64(100), nil).Return(int64(0), nil)

	n, err := svc.Remove(context.Background(), 5, 100, &typeID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = svc.Remove(context.Background(), 5, 100, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ReactionsRemoved))
}

func TestReactionService_Reads(t *testing.T) {
	svc, repo, _ := newReactionService(t)
	like := &domain.ReactionType{ID: 1, Name: "いいね", Emoji: "👍"}

	repo.EXPECT().ListForMessage(gomock.Any(), int64(100)).Return([]*domain.Reaction{{ID: 1}}, nil)
	repo.EXPECT().CountByType(gomock.Any(), int64(100)).Return([]*domain.ReactionCount{{ReactionType: like, Count: 1}}, nil)
	repo.EXPECT().ListTypes(gomock.Any()).Return([]*domain.ReactionType{like}, nil)
	repo.EXPECT().GetType(gomock.Any(), int64(1)).Return(like, nil)
	repo.EXPECT().GetType(gomock.Any(), int64(99)).Return(nil, nil)

	ctx := context.Background()

	reactions, err := svc.ListForMessage(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, reactions, 1)

	counts, err := svc.CountByType(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, like, counts[0].ReactionType)

	types, err := svc.ListTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 1)

	got, err := svc.GetType(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, like, got)

	missing, err := svc.GetType(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
