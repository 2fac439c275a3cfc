package domain

import (
	"time"
)

// ReactionType is catalog data seeded by the schema migration.
type ReactionType struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Reaction is a user's typed reaction on a message. A user holds at most one
// live reaction per (message, type).
type Reaction struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	MessageID      int64      `json:"message_id"`
	ReactionTypeID int64      `json:"reaction_type_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

func (r *Reaction) IsLive() bool {
	return r.DeletedAt == nil
}

type ReactionCount struct {
	ReactionType *ReactionType `json:"reaction_type"`
	Count        int64         `json:"count"`
}
