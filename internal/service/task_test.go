package service

import (
	"context"
	"errors"
	"testing"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/services"
)

func TestTaskSync(t *testing.T) {
	noteID := "note-1"

	t.Run("assigns uuids to new items and keeps existing ids", func(t *testing.T) {
		var upserted []models.Task
		repo := &mockTaskRepo{
			upsertFn: func(ctx context.Context, tasks []models.Task) ([]models.Task, error) {
				upserted = tasks
				return tasks, nil
			},
		}
		svc := NewTaskService(repo, passthroughTx{}, testLogger())

		stored, err := svc.Sync(context.Background(), &services.SyncTasksRequest{
			WorkspaceID: "ws-1",
			NoteID:      &noteID,
			Tasks: []services.TaskInput{
				{ID: "task-1", Content: "ship the release", Checked: true},
				{ID: "", Content: "write the changelog"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(stored) != 2 {
			t.Fatalf("got %d tasks, want 2", len(stored))
		}
		if upserted[0].ID != "task-1" {
			t.Errorf("first id = %q, want the editor-assigned id preserved", upserted[0].ID)
		}
		if !upserted[0].IsCompleted {
			t.Error("checked state was dropped")
		}
		if upserted[1].ID == "" {
			t.Error("expected a generated id for the id-less item")
		}
	})

	t.Run("re-sending the same id yields one row", func(t *testing.T) {
		repo := &mockTaskRepo{}
		svc := NewTaskService(repo, passthroughTx{}, testLogger())

		first, err := svc.Sync(context.Background(), &services.SyncTasksRequest{
			WorkspaceID: "ws-1",
			Tasks:       []services.TaskInput{{ID: "task-1", Content: "ship it"}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := svc.Sync(context.Background(), &services.SyncTasksRequest{
			WorkspaceID: "ws-1",
			Tasks:       []services.TaskInput{{ID: "task-1", Content: "ship it", Checked: true}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first[0].ID != second[0].ID {
			t.Errorf("ids diverged across syncs: %q vs %q", first[0].ID, second[0].ID)
		}
	})

	t.Run("blank content skipped", func(t *testing.T) {
		var upserted []models.Task
		repo := &mockTaskRepo{
			upsertFn: func(ctx context.Context, tasks []models.Task) ([]models.Task, error) {
				upserted = tasks
				return tasks, nil
			},
		}
		svc := NewTaskService(repo, passthroughTx{}, testLogger())

		stored, err := svc.Sync(context.Background(), &services.SyncTasksRequest{
			WorkspaceID: "ws-1",
			Tasks: []services.TaskInput{
				{ID: "task-1", Content: "   "},
				{ID: "task-2", Content: "real work"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(stored) != 1 || len(upserted) != 1 {
			t.Fatalf("got %d stored tasks, want 1", len(stored))
		}
		if upserted[0].ID != "task-2" {
			t.Errorf("kept id = %q, want task-2", upserted[0].ID)
		}
	})

	t.Run("all items blank skips the repository entirely", func(t *testing.T) {
		repo := &mockTaskRepo{
			upsertFn: func(ctx context.Context, tasks []models.Task) ([]models.Task, error) {
				t.Fatal("empty batch must not reach the repository")
				return nil, nil
			},
		}
		svc := NewTaskService(repo, passthroughTx{}, testLogger())

		stored, err := svc.Sync(context.Background(), &services.SyncTasksRequest{
			WorkspaceID: "ws-1",
			Tasks:       []services.TaskInput{{Content: "  "}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored == nil || len(stored) != 0 {
			t.Errorf("stored = %v, want empty non-nil slice", stored)
		}
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewTaskService(&mockTaskRepo{}, passthroughTx{}, testLogger())

		if _, err := svc.Sync(context.Background(), &services.SyncTasksRequest{Tasks: []services.TaskInput{}}); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("missing workspace: error = %v, want ErrValidation", err)
		}
		if _, err := svc.Sync(context.Background(), &services.SyncTasksRequest{WorkspaceID: "ws-1"}); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("nil tasks: error = %v, want ErrValidation", err)
		}
	})

	t.Run("failed batch surfaces the error", func(t *testing.T) {
		repo := &mockTaskRepo{
			upsertFn: func(ctx context.Context, tasks []models.Task) ([]models.Task, error) {
				return nil, errors.New("deadlock detected")
			},
		}
		svc := NewTaskService(repo, passthroughTx{}, testLogger())

		_, err := svc.Sync(context.Background(), &services.SyncTasksRequest{
			WorkspaceID: "ws-1",
			Tasks:       []services.TaskInput{{ID: "task-1", Content: "ship it"}},
		})
		if err == nil {
			t.Fatal("expected the repository error to propagate")
		}
	})
}
