package domain

import (
	"time"
)

type Post struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (p *Post) IsLive() bool {
	return p.DeletedAt == nil
}

type PostList struct {
	Posts      []*Post `json:"posts"`
	TotalCount int64   `json:"total_count"`
}
