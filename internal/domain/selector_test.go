package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "messenger/pkg/errors"
)

func int64Ptr(v int64) *int64 { return &v }

func TestReadSelector_Precedence(t *testing.T) {
	t.Run("single id", func(t *testing.T) {
		sel, err := NewReadSelector(int64Ptr(7), nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, ReadByIDs{IDs: []int64{7}}, sel)
	})

	t.Run("id and ids are merged without duplicates", func(t *testing.T) {
		sel, err := NewReadSelector(int64Ptr(7), []int64{3, 7, 9}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, ReadByIDs{IDs: []int64{7, 3, 9}}, sel)
	})

	t.Run("ids win over user pair", func(t *testing.T) {
		sel, err := NewReadSelector(nil, []int64{1}, int64Ptr(10), int64Ptr(20))
		require.NoError(t, err)
		assert.IsType(t, ReadByIDs{}, sel)
	})

	t.Run("user pair", func(t *testing.T) {
		sel, err := NewReadSelector(nil, nil, int64Ptr(10), int64Ptr(20))
		require.NoError(t, err)
		assert.Equal(t, ReadByUserPair{FromUserID: 10, ToUserID: 20}, sel)
	})

	t.Run("zero message id counts as absent", func(t *testing.T) {
		sel, err := NewReadSelector(int64Ptr(0), nil, int64Ptr(10), int64Ptr(20))
		require.NoError(t, err)
		assert.IsType(t, ReadByUserPair{}, sel)
	})

	t.Run("half a pair is rejected", func(t *testing.T) {
		_, err := NewReadSelector(nil, nil, int64Ptr(10), nil)
		assert.True(t, errors.Is(err, apperrors.ErrNoReadSelector))
	})

	t.Run("empty selector is rejected", func(t *testing.T) {
		sel, err := NewReadSelector(nil, []int64{}, nil, nil)
		assert.Nil(t, sel)
		assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
	})
}
