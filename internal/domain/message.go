package domain

import (
	"time"
)

// Message is a direct message between two users.
type Message struct {
	ID         int64      `json:"id"`
	SenderID   int64      `json:"sender_id"`
	ReceiverID int64      `json:"receiver_id"`
	Content    string     `json:"content"`
	IsRead     bool       `json:"is_read"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

func (m *Message) IsLive() bool {
	return m.DeletedAt == nil
}

// MessageList is one page of a user's inbox. UnreadCount covers every live
// unread message addressed to the user, whatever filter produced the page.
type MessageList struct {
	Messages    []*Message `json:"messages"`
	TotalCount  int64      `json:"total_count"`
	UnreadCount int64      `json:"unread_count"`
}

// Conversation is one page of the messages exchanged between two users,
// most recent first.
type Conversation struct {
	Messages   []*Message `json:"messages"`
	TotalCount int64      `json:"total_count"`
}
