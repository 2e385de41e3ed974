package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/repositories"
	"luman/internal/domain/services"
)

// taskService implements the TaskService interface.
type taskService struct {
	taskRepo  repositories.TaskRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(taskRepo repositories.TaskRepository, txManager repositories.TransactionManager, logger *slog.Logger) services.TaskService {
	return &taskService{
		taskRepo:  taskRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Sync upserts the extracted checklist items of a note. Items keep their
// editor-assigned id; items that arrive without one get a fresh UUID
// here, which the returned rows carry back to the client. Upserting by
// primary key means the same id can be sent any number of times and
// still map to a single row.
func (s *taskService) Sync(ctx context.Context, req *services.SyncTasksRequest) ([]models.Task, error) {
	if req.WorkspaceID == "" {
		return nil, fmt.Errorf("%w: workspaceId is required", domain.ErrValidation)
	}
	if req.Tasks == nil {
		return nil, fmt.Errorf("%w: tasks must be an array", domain.ErrValidation)
	}

	now := time.Now()
	rows := make([]models.Task, 0, len(req.Tasks))
	for _, input := range req.Tasks {
		content := strings.TrimSpace(input.Content)
		if content == "" {
			continue
		}

		id := input.ID
		if id == "" {
			id = uuid.NewString()
		}

		rows = append(rows, models.Task{
			ID:          id,
			WorkspaceID: req.WorkspaceID,
			NoteID:      req.NoteID,
			Content:     content,
			IsCompleted: input.Checked,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if len(rows) == 0 {
		return []models.Task{}, nil
	}

	// One editor flush lands as one transaction; a failed row rolls the
	// whole batch back.
	var stored []models.Task
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var txErr error
		stored, txErr = s.taskRepo.UpsertBatch(txCtx, rows)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tasks synced", "workspace_id", req.WorkspaceID, "count", len(stored))
	return stored, nil
}

func (s *taskService) ListOpen(ctx context.Context, workspaceID string) ([]models.Task, error) {
	return s.taskRepo.ListOpen(ctx, workspaceID)
}
