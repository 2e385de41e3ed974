package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/repositories"
)

// PostgresChatRepository implements the ChatRepository interface
type PostgresChatRepository struct {
	db     repositories.DBTX
	tables *TableNames
	logger *slog.Logger
}

// NewChatRepository creates a new chat repository
func NewChatRepository(config *RepositoryConfig) repositories.ChatRepository {
	return &PostgresChatRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Append appends a message to a note's chat log
func (r *PostgresChatRepository) Append(ctx context.Context, msg *models.ChatMessage) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (note_id, role, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.tables.ChatMessages)

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRow(ctx, query,
		msg.NoteID,
		msg.Role,
		msg.Content,
	).Scan(&msg.ID, &msg.CreatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("note %s: %w", msg.NoteID, domain.ErrNotFound)
		}
		return fmt.Errorf("append chat message: %w", err)
	}

	return nil
}

// ListByNote retrieves a note's chat history, oldest first
func (r *PostgresChatRepository) ListByNote(ctx context.Context, noteID string) ([]models.ChatMessage, error) {
	query := fmt.Sprintf(`
		SELECT id, note_id, role, content, created_at
		FROM %s
		WHERE note_id = $1
		ORDER BY created_at ASC
	`, r.tables.ChatMessages)

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.Query(ctx, query, noteID)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.NoteID,
			&msg.Role,
			&msg.Content,
			&msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat messages: %w", err)
	}

	return messages, nil
}
