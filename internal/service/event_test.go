package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/services"
)

func TestEventCreate(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	t.Run("defaults the type", func(t *testing.T) {
		svc := NewEventService(&mockEventRepo{}, testLogger())

		event, err := svc.Create(context.Background(), &services.CreateEventRequest{
			Title:     "Sprint review",
			StartTime: &start,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if event.EventType != models.EventTypeEvent {
			t.Errorf("type = %q, want event default", event.EventType)
		}
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewEventService(&mockEventRepo{}, testLogger())

		tests := []struct {
			name string
			req  services.CreateEventRequest
		}{
			{"missing title", services.CreateEventRequest{StartTime: &start}},
			{"missing start time", services.CreateEventRequest{Title: "Sprint review"}},
			{"unknown type", services.CreateEventRequest{Title: "Sprint review", StartTime: &start, EventType: "party"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := svc.Create(context.Background(), &tt.req); !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("error = %v, want ErrValidation", err)
				}
			})
		}
	})
}

func TestEventUpdatePartial(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	repo := &mockEventRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.Event, error) {
			return &models.Event{
				ID:        id,
				Title:     "Sprint review",
				StartTime: start,
				EventType: models.EventTypeReminder,
			}, nil
		},
	}
	svc := NewEventService(repo, testLogger())

	t.Run("marks completion without touching the rest", func(t *testing.T) {
		done := true
		event, err := svc.Update(context.Background(), "ev-1", &services.UpdateEventRequest{IsCompleted: &done})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !event.IsCompleted {
			t.Error("completion flag not applied")
		}
		if event.Title != "Sprint review" || event.EventType != models.EventTypeReminder {
			t.Errorf("untouched fields changed: %+v", event)
		}
	})

	t.Run("blank title rejected", func(t *testing.T) {
		blank := "  "
		if _, err := svc.Update(context.Background(), "ev-1", &services.UpdateEventRequest{Title: &blank}); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		missing := &mockEventRepo{}
		svc := NewEventService(missing, testLogger())

		done := true
		if _, err := svc.Update(context.Background(), "ghost", &services.UpdateEventRequest{IsCompleted: &done}); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestCheckMembership(t *testing.T) {
	repo := &mockMemberRepo{
		getFn: func(ctx context.Context, orgID, userID string) (*models.OrganizationMember, error) {
			if userID == "member" {
				return &models.OrganizationMember{OrganizationID: orgID, UserID: userID, Role: models.RoleAdmin}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	svc := NewMembershipService(repo, testLogger())

	t.Run("member", func(t *testing.T) {
		role, err := svc.CheckMembership(context.Background(), "org-1", "member")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if role != models.RoleAdmin {
			t.Errorf("role = %q, want admin", role)
		}
	})

	t.Run("non-member maps to forbidden", func(t *testing.T) {
		_, err := svc.CheckMembership(context.Background(), "org-1", "outsider")
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("error = %v, want ErrForbidden", err)
		}
	})

	t.Run("missing ids", func(t *testing.T) {
		_, err := svc.CheckMembership(context.Background(), "", "member")
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("error = %v, want ErrValidation", err)
		}
	})
}
