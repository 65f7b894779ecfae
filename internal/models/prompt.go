package models

import (
	"time"

	"github.com/google/uuid"
)

// Prompt is the canonical library entry. Body is Markdown; tags are
// lower-cased and deduplicated; an empty folder means "Library".
type Prompt struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OwnerID   uuid.UUID `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body_md" db:"body_md"`
	Tags      []string  `json:"tags" db:"tags"`
	Folder    string    `json:"folder" db:"folder"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PromptVersion is an append-only full-body snapshot. Versions are never
// mutated or reordered; newest-first by CreatedAt is the presentation order.
type PromptVersion struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PromptID  uuid.UUID `json:"prompt_id" db:"prompt_id"`
	Body      string    `json:"body_md" db:"body_md"`
	Notes     string    `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
