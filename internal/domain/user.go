package domain

import (
	"time"
)

type User struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Description *string    `json:"description,omitempty"`
	Age         *int32     `json:"age,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	Address     *string    `json:"address,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

func (u *User) IsLive() bool {
	return u.DeletedAt == nil
}

// UserUpdate holds the fields to change; nil fields are left untouched.
type UserUpdate struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Description *string `json:"description,omitempty"`
	Age         *int32  `json:"age,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Address     *string `json:"address,omitempty"`
}

func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Description == nil &&
		u.Age == nil && u.Gender == nil && u.Address == nil
}

type UserList struct {
	Users      []*User `json:"users"`
	TotalCount int64   `json:"total_count"`
}
