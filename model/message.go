package model

import "time"

// Participant identifies a message sender or a conversation counterpart.
// "self" comes from the session token, counterparts come from the chat directory.
type Participant struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentVideo AttachmentType = "video"
)

// Attachment is an optional media payload on a message.
type Attachment struct {
	Type AttachmentType `json:"type"`
	URL  string         `json:"url"`
}

// Message is a single chat message in the shape the mobile client consumes.
// IDs are timestamp-derived integers, unique within one conversation at insert
// time. IsRead only ever transitions false -> true.
type Message struct {
	ID         int64       `json:"id"`
	Sender     Participant `json:"sender"`
	Content    string      `json:"content"`
	CreatedAt  time.Time   `json:"created_at"`
	IsRead     bool        `json:"is_read"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// ConversationKey is the composite cache key. Two different counterparts under
// the same chat id are distinct entries on purpose; collapsing the key would
// change observable caching behavior for existing callers.
type ConversationKey struct {
	ChatID        int64
	CounterpartID int64
}
