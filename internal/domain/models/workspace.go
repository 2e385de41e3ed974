package models

import "time"

// Workspace is a named collection of notes within an organization.
type Workspace struct {
	ID             string    `json:"id" db:"id"`
	OwnerName      string    `json:"owner_name" db:"owner_name"`
	Role           string    `json:"role" db:"role"`
	OrganizationID *string   `json:"organization_id" db:"organization_id"`
	OwnerID        string    `json:"owner_id" db:"owner_id"`
	FolderID       *string   `json:"folder_id" db:"folder_id"`
	Color          string    `json:"color" db:"color"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// WorkspaceFolder groups workspaces inside an organization. No nesting.
type WorkspaceFolder struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Color          string    `json:"color" db:"color"`
	OrganizationID string    `json:"organization_id" db:"organization_id"`
	CreatedBy      string    `json:"created_by" db:"created_by"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
