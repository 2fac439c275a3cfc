package domain

import (
	apperrors "messenger/pkg/errors"
)

// ReadSelector picks the messages a mark-as-read call updates.
// It is either ReadByIDs or ReadByUserPair.
type ReadSelector interface {
	isReadSelector()
}

// ReadByIDs selects live messages by identifier.
type ReadByIDs struct {
	IDs []int64
}

// ReadByUserPair selects every live message sent by FromUserID to ToUserID.
type ReadByUserPair struct {
	FromUserID int64
	ToUserID   int64
}

func (ReadByIDs) isReadSelector()      {}
func (ReadByUserPair) isReadSelector() {}

// NewReadSelector applies the selector precedence: identifiers win over the
// user pair, and the pair needs both ends. A messageID of zero or less counts
// as absent. The identifier set is the union of messageID and messageIDs.
func NewReadSelector(messageID *int64, messageIDs []int64, fromUserID, toUserID *int64) (ReadSelector, error) {
	ids := make([]int64, 0, len(messageIDs)+1)
	seen := make(map[int64]struct{}, len(messageIDs)+1)
	add := func(id int64) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if messageID != nil && *messageID > 0 {
		add(*messageID)
	}
	for _, id := range messageIDs {
		add(id)
	}

	if len(ids) > 0 {
		return ReadByIDs{IDs: ids}, nil
	}
	if fromUserID != nil && toUserID != nil {
		return ReadByUserPair{FromUserID: *fromUserID, ToUserID: *toUserID}, nil
	}
	return nil, apperrors.ErrNoReadSelector
}
