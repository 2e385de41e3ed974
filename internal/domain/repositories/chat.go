package repositories

import (
	"context"

	"luman/internal/domain/models"
)

// ChatRepository persists the per-note chat log. Append-only.
type ChatRepository interface {
	Append(ctx context.Context, msg *models.ChatMessage) error
	ListByNote(ctx context.Context, noteID string) ([]models.ChatMessage, error)
}
