package prompt

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/promptsmith/promptsmith/internal/models"
)

// SearchFilter narrows a caller-scoped prompt listing. Query matches the
// title or body as a substring, Folder is an exact match, and every tag in
// Tags must be present on a matching prompt.
type SearchFilter struct {
	Query  string
	Folder string
	Tags   []string
}

// Store is the persistence boundary for prompts and their versions. The
// service injects it so the core stays testable without a database; the
// production implementation is PostgresStore.
//
// Methods that pair a prompt write with a version write must apply both
// atomically. Lookup methods return ErrNotFound for missing rows; methods
// taking an owner report (false, nil) when no row matched the id+owner
// pair, which callers fold into ErrNotFound.
type Store interface {
	// CreatePrompt inserts p and its initial version snapshot together.
	CreatePrompt(ctx context.Context, p *models.Prompt, v *models.PromptVersion) error

	// UpdatePrompt overwrites the editable fields of the prompt matching
	// p.ID and p.OwnerID, inserts v, and fills p.CreatedAt from the stored
	// row.
	UpdatePrompt(ctx context.Context, p *models.Prompt, v *models.PromptVersion) (bool, error)

	DeletePrompt(ctx context.Context, id, owner uuid.UUID) (bool, error)
	GetPrompt(ctx context.Context, id uuid.UUID) (*models.Prompt, error)

	InsertVersion(ctx context.Context, v *models.PromptVersion) error
	GetVersion(ctx context.Context, id uuid.UUID) (*models.PromptVersion, error)

	// ListVersions returns promptID's snapshots newest-first.
	ListVersions(ctx context.Context, promptID uuid.UUID) ([]models.PromptVersion, error)

	// SetPromptBody copies a snapshot body onto the live prompt without
	// touching the version history.
	SetPromptBody(ctx context.Context, id, owner uuid.UUID, body string, updatedAt time.Time) (bool, error)

	// SearchPrompts lists owner's prompts matching f, updated_at descending.
	SearchPrompts(ctx context.Context, owner uuid.UUID, f SearchFilter) ([]models.Prompt, error)
}
