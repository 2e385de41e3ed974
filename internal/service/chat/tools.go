package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"luman/internal/domain/services"
	"luman/internal/editor"
)

// Toolbox builds the per-request tool registry. Tools are bound to the
// note the conversation belongs to, so the model never has to know ids
// it was not given.
type Toolbox struct {
	notes  services.NoteService
	events services.EventService
	logger *slog.Logger
}

// NewToolbox creates a toolbox over the note and event services.
func NewToolbox(notes services.NoteService, events services.EventService, logger *slog.Logger) *Toolbox {
	return &Toolbox{
		notes:  notes,
		events: events,
		logger: logger,
	}
}

// Registry returns the tools for one conversation turn.
func (t *Toolbox) Registry(noteID, userID string) *Registry {
	r := NewRegistry()
	r.Register(&scheduleNoteTool{events: t.events, noteID: noteID, userID: userID})
	r.Register(&searchNotesTool{notes: t.notes})
	r.Register(&getNoteContentTool{notes: t.notes, noteID: noteID})
	r.Register(&applyTagsTool{notes: t.notes, noteID: noteID})
	return r
}

// scheduleNoteTool creates a calendar event linked to the current note.
type scheduleNoteTool struct {
	events services.EventService
	noteID string
	userID string
}

func (t *scheduleNoteTool) Definition() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "schedule_note",
			Description: "Schedule a calendar event or reminder linked to the current note.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"title": {
						Type:        jsonschema.String,
						Description: "Event title",
					},
					"start_time": {
						Type:        jsonschema.String,
						Description: "Start time in RFC 3339 format, e.g. 2026-03-01T14:00:00Z",
					},
					"end_time": {
						Type:        jsonschema.String,
						Description: "Optional end time in RFC 3339 format",
					},
					"description": {
						Type:        jsonschema.String,
						Description: "Optional event description",
					},
					"event_type": {
						Type:        jsonschema.String,
						Enum:        []string{"event", "reminder", "task"},
						Description: "Kind of calendar entry, defaults to event",
					},
					"all_day": {
						Type:        jsonschema.Boolean,
						Description: "Whether the event covers the whole day",
					},
				},
				Required: []string{"title", "start_time"},
			},
		},
	}
}

func (t *scheduleNoteTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	title, _ := args["title"].(string)
	rawStart, _ := args["start_time"].(string)
	start, err := time.Parse(time.RFC3339, rawStart)
	if err != nil {
		return nil, fmt.Errorf("start_time must be RFC 3339: %w", err)
	}

	req := &services.CreateEventRequest{
		Title:     title,
		StartTime: &start,
		NoteID:    &t.noteID,
	}
	if desc, ok := args["description"].(string); ok {
		req.Description = desc
	}
	if eventType, ok := args["event_type"].(string); ok {
		req.EventType = eventType
	}
	if allDay, ok := args["all_day"].(bool); ok {
		req.AllDay = allDay
	}
	if rawEnd, ok := args["end_time"].(string); ok && rawEnd != "" {
		end, err := time.Parse(time.RFC3339, rawEnd)
		if err != nil {
			return nil, fmt.Errorf("end_time must be RFC 3339: %w", err)
		}
		req.EndTime = &end
	}
	if t.userID != "" {
		req.CreatedBy = &t.userID
	}

	event, err := t.events.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"scheduled":  true,
		"event_id":   event.ID,
		"title":      event.Title,
		"start_time": event.StartTime.Format(time.RFC3339),
	}, nil
}

// searchNotesTool finds notes by title.
type searchNotesTool struct {
	notes services.NoteService
}

func (t *searchNotesTool) Definition() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "search_notes",
			Description: "Search notes by title.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"query": {
						Type:        jsonschema.String,
						Description: "Text to look for in note titles",
					},
					"workspace_id": {
						Type:        jsonschema.String,
						Description: "Optional workspace to search within",
					},
				},
				Required: []string{"query"},
			},
		},
	}
}

func (t *searchNotesTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	query, _ := args["query"].(string)
	workspaceID, _ := args["workspace_id"].(string)

	notes, err := t.notes.Search(ctx, workspaceID, query)
	if err != nil {
		return nil, err
	}

	results := make([]map[string]interface{}, 0, len(notes))
	for _, n := range notes {
		results = append(results, map[string]interface{}{
			"id":         n.ID,
			"title":      n.Title,
			"created_at": n.CreatedAt.Format(time.RFC3339),
		})
	}
	return map[string]interface{}{"results": results}, nil
}

// getNoteContentTool returns a note's content as Markdown.
type getNoteContentTool struct {
	notes  services.NoteService
	noteID string
}

func (t *getNoteContentTool) Definition() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "get_note_content",
			Description: "Read a note's content. Without a note_id the current note is read.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"note_id": {
						Type:        jsonschema.String,
						Description: "Note to read, defaults to the current note",
					},
				},
			},
		},
	}
}

func (t *getNoteContentTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	noteID := t.noteID
	if id, ok := args["note_id"].(string); ok && id != "" {
		noteID = id
	}

	note, err := t.notes.Get(ctx, noteID)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":         note.ID,
		"title":      note.Title,
		"tags":       note.Tags,
		"content":    editor.ToMarkdown(note.Content),
		"word_count": editor.CountWords(note.Content),
	}, nil
}

// applyTagsTool replaces a note's tags.
type applyTagsTool struct {
	notes  services.NoteService
	noteID string
}

func (t *applyTagsTool) Definition() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "apply_tags",
			Description: "Replace the tags on the current note.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"tags": {
						Type:        jsonschema.Array,
						Items:       &jsonschema.Definition{Type: jsonschema.String},
						Description: "Full set of tags for the note",
					},
				},
				Required: []string{"tags"},
			},
		},
	}
}

func (t *applyTagsTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	raw, ok := args["tags"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("tags must be an array of strings")
	}

	tags := make([]string, 0, len(raw))
	for _, item := range raw {
		if tag, ok := item.(string); ok && tag != "" {
			tags = append(tags, tag)
		}
	}

	if err := t.notes.UpdateTags(ctx, t.noteID, tags); err != nil {
		return nil, err
	}
	return map[string]interface{}{"applied": true, "tags": tags}, nil
}
