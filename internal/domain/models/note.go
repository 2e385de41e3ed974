package models

import (
	"encoding/json"
	"time"
)

// EmptyDoc is the editor document a freshly created note starts with.
func EmptyDoc() map[string]interface{} {
	return map[string]interface{}{
		"type":    "doc",
		"content": []interface{}{},
	}
}

// Note is a rich-text document with tags and an optional due date.
// Content holds the editor's JSON tree; ContentHTML the pre-rendered
// (syntax-highlighted) HTML the client sends alongside it.
type Note struct {
	ID           string                 `json:"id" db:"id"`
	WorkspaceID  string                 `json:"workspace_id" db:"workspace_id"`
	Title        string                 `json:"title" db:"title"`
	Content      map[string]interface{} `json:"content" db:"content"`
	ContentHTML  string                 `json:"content_html,omitempty" db:"content_html"`
	Tags         []string               `json:"tags" db:"tags"`
	DueDate      *time.Time             `json:"due_date" db:"due_date"`
	TemplateType string                 `json:"template_type" db:"template_type"`
	Revision     int                    `json:"revision" db:"revision"`
	CreatedAt    time.Time              `json:"created_at" db:"created_at"`
	LastEditedAt time.Time              `json:"last_edited_at" db:"last_edited_at"`
}

// NoteSummary is the list-endpoint projection of a note.
type NoteSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// IsEmptyContent reports whether the content is absent or an empty JSON
// object. An autosave with empty content is treated as a no-op, never as a
// request to wipe the note.
func IsEmptyContent(content map[string]interface{}) bool {
	return len(content) == 0
}

// RawContent marshals the content tree for storage. jsonb columns round-trip
// via map[string]interface{}, so this only exists for callers that need the
// serialized form.
func (n *Note) RawContent() ([]byte, error) {
	return json.Marshal(n.Content)
}
