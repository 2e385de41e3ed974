package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"luman/internal/domain"
	"luman/internal/domain/models"
	"luman/internal/domain/repositories"
	"luman/internal/domain/services"
)

// eventService implements the EventService interface.
type eventService struct {
	eventRepo repositories.EventRepository
	logger    *slog.Logger
}

// NewEventService creates a new event service.
func NewEventService(eventRepo repositories.EventRepository, logger *slog.Logger) services.EventService {
	return &eventService{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// Create creates an event. Title and start time are mandatory; the type
// defaults to a plain event.
func (s *eventService) Create(ctx context.Context, req *services.CreateEventRequest) (*models.Event, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.StartTime == nil {
		return nil, fmt.Errorf("%w: title and startTime are required", domain.ErrValidation)
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = string(models.EventTypeEvent)
	}
	if !models.ValidEventType(eventType) {
		return nil, fmt.Errorf("%w: invalid event type %q", domain.ErrValidation, eventType)
	}

	now := time.Now()
	event := &models.Event{
		Title:       title,
		Description: req.Description,
		StartTime:   *req.StartTime,
		EndTime:     req.EndTime,
		AllDay:      req.AllDay,
		EventType:   models.EventType(eventType),
		WorkspaceID: req.WorkspaceID,
		NoteID:      req.NoteID,
		CreatedBy:   req.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("event created", "id", event.ID, "type", event.EventType)
	return event, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) List(ctx context.Context, workspaceID string) ([]models.Event, error) {
	return s.eventRepo.List(ctx, workspaceID)
}

func (s *eventService) OrganizationCalendar(ctx context.Context) ([]models.OrganizationEvent, error) {
	return s.eventRepo.ListWithWorkspace(ctx)
}

// Update applies a full update, keeping current values for nil fields.
func (s *eventService) Update(ctx context.Context, id string, req *services.UpdateEventRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
		}
		event.Title = title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = req.EndTime
	}
	if req.AllDay != nil {
		event.AllDay = *req.AllDay
	}
	if req.EventType != nil {
		if !models.ValidEventType(*req.EventType) {
			return nil, fmt.Errorf("%w: invalid event type %q", domain.ErrValidation, *req.EventType)
		}
		event.EventType = models.EventType(*req.EventType)
	}
	if req.IsCompleted != nil {
		event.IsCompleted = *req.IsCompleted
	}
	if req.WorkspaceID != nil {
		event.WorkspaceID = req.WorkspaceID
	}
	if req.NoteID != nil {
		event.NoteID = req.NoteID
	}
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	return s.eventRepo.Delete(ctx, id)
}
