package services

import (
	"context"

	"luman/internal/domain/models"
)

// StreamWriter receives relay output as it is produced. Implementations
// are expected to flush each chunk so the client sees text while the
// model is still generating.
type StreamWriter interface {
	WriteChunk(text string) error
}

// ChatService relays per-note conversations to the language model
// gateway and keeps the message history.
type ChatService interface {
	// Relay persists the user message, streams the model's reply to w,
	// and persists the accumulated reply when the stream completes.
	Relay(ctx context.Context, req *RelayRequest, w StreamWriter) error

	// History returns a note's messages in chronological order.
	History(ctx context.Context, noteID string) ([]models.ChatMessage, error)
}

// RelayRequest represents one chat turn.
type RelayRequest struct {
	NoteID  string                  `json:"noteId"`
	Message string                  `json:"message"`
	History []models.HistoryMessage `json:"history"`
	UserID  string                  `json:"-"`
}
