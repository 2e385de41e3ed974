package models

import "time"

// ChatRole is the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry in a note's append-only chat log.
type ChatMessage struct {
	ID        string    `json:"id" db:"id"`
	NoteID    string    `json:"note_id" db:"note_id"`
	Role      ChatRole  `json:"role" db:"role"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HistoryMessage is a prior turn the client replays with a new chat request.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
