package model

import "time"

// LastMessage is the preview line shown in the chat list.
type LastMessage struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}

// Chat is one entry of the conversation list endpoint.
type Chat struct {
	ID           int64         `json:"id"`
	Participants []Participant `json:"participants"`
	LastMessage  *LastMessage  `json:"last_message,omitempty"`
	UpdatedAt    time.Time     `json:"updated_at"`
	UnreadCount  int           `json:"unread_count"`
}
