// Package prompt implements the prompt library: CRUD over prompts, the
// append-only version history paired with every deliberate save, and
// caller-scoped search. Versions represent deliberate saves; restore is
// time travel, not a new save point.
package prompt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/promptsmith/promptsmith/internal/identity"
	"github.com/promptsmith/promptsmith/internal/models"
)

// Version notes written by the automatic pairing rules. NoteOptimized is
// the conventional annotation clients send when committing an optimized
// draft as an explicit version.
const (
	NoteInitial    = "Initial version"
	NoteEdited     = "Edited"
	NoteDuplicated = "Duplicated from existing prompt"
	NoteOptimized  = "AI optimized variant"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// caller resolves the authenticated user or fails the operation outright.
func caller(ctx context.Context) (uuid.UUID, error) {
	uid := identity.UserIDFromContext(ctx)
	if uid == uuid.Nil {
		return uuid.Nil, ErrUnauthenticated
	}
	return uid, nil
}

// Create inserts a prompt owned by the caller plus its initial version.
func (s *Service) Create(ctx context.Context, in Input) (*models.Prompt, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	in, err = validateInput(in)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &models.Prompt{
		ID:        uuid.New(),
		OwnerID:   uid,
		Title:     in.Title,
		Body:      in.Body,
		Tags:      in.Tags,
		Folder:    in.Folder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	v := snapshot(p, NoteInitial, now)

	if err := s.store.CreatePrompt(ctx, p, v); err != nil {
		return nil, fmt.Errorf("create prompt: %w", err)
	}
	return NormalizePrompt(p), nil
}

// Update overwrites the caller's prompt and pairs an "Edited" version.
// A prompt owned by someone else is indistinguishable from a missing one.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*models.Prompt, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	in, err = validateInput(in)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &models.Prompt{
		ID:        id,
		OwnerID:   uid,
		Title:     in.Title,
		Body:      in.Body,
		Tags:      in.Tags,
		Folder:    in.Folder,
		UpdatedAt: now,
	}
	v := snapshot(p, NoteEdited, now)

	ok, err := s.store.UpdatePrompt(ctx, p, v)
	if err != nil {
		return nil, fmt.Errorf("update prompt: %w", err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	return NormalizePrompt(p), nil
}

// Delete removes the caller's prompt. Versions go with it (cascade).
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	uid, err := caller(ctx)
	if err != nil {
		return err
	}
	ok, err := s.store.DeletePrompt(ctx, id, uid)
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Get returns the caller's prompt with its versions, newest first.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Prompt, []models.PromptVersion, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.store.GetPrompt(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if p.OwnerID != uid {
		return nil, nil, ErrNotFound
	}
	versions, err := s.store.ListVersions(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list versions: %w", err)
	}
	return NormalizePrompt(p), versions, nil
}

// Duplicate copies the caller's prompt under a " (Copy)" title and pairs
// a "Duplicated from existing prompt" version on the new prompt.
func (s *Service) Duplicate(ctx context.Context, id uuid.UUID) (*models.Prompt, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	src, err := s.store.GetPrompt(ctx, id)
	if err != nil {
		return nil, err
	}
	if src.OwnerID != uid {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	dup := &models.Prompt{
		ID:        uuid.New(),
		OwnerID:   uid,
		Title:     src.Title + " (Copy)",
		Body:      src.Body,
		Tags:      append([]string(nil), src.Tags...),
		Folder:    src.Folder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	v := snapshot(dup, NoteDuplicated, now)

	if err := s.store.CreatePrompt(ctx, dup, v); err != nil {
		return nil, fmt.Errorf("duplicate prompt: %w", err)
	}
	return NormalizePrompt(dup), nil
}

// CreateVersion inserts an explicit version snapshot, notes unmodified.
func (s *Service) CreateVersion(ctx context.Context, promptID uuid.UUID, body, notes string) (*models.PromptVersion, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, ValidationError("version body is required")
	}
	p, err := s.store.GetPrompt(ctx, promptID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != uid {
		return nil, ErrNotFound
	}

	v := &models.PromptVersion{
		ID:        uuid.New(),
		PromptID:  promptID,
		Body:      body,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.InsertVersion(ctx, v); err != nil {
		return nil, fmt.Errorf("create version: %w", err)
	}
	return v, nil
}

// RestoreVersion copies a snapshot's body back onto the live prompt and
// bumps updated_at. No version row is written: the restored state becomes
// a save point only through the next ordinary update.
func (s *Service) RestoreVersion(ctx context.Context, versionID uuid.UUID) (uuid.UUID, error) {
	uid, err := caller(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	v, err := s.store.GetVersion(ctx, versionID)
	if err != nil {
		return uuid.Nil, err
	}
	p, err := s.store.GetPrompt(ctx, v.PromptID)
	if err != nil {
		return uuid.Nil, err
	}
	if p.OwnerID != uid {
		return uuid.Nil, ErrNotFound
	}

	ok, err := s.store.SetPromptBody(ctx, p.ID, uid, v.Body, time.Now().UTC())
	if err != nil {
		return uuid.Nil, fmt.Errorf("restore version: %w", err)
	}
	if !ok {
		return uuid.Nil, ErrNotFound
	}
	return p.ID, nil
}

// Search lists the caller's prompts matching f, updated_at descending.
func (s *Service) Search(ctx context.Context, f SearchFilter) ([]models.Prompt, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	f.Query = strings.TrimSpace(f.Query)
	f.Tags = normalizeTags(f.Tags)

	prompts, err := s.store.SearchPrompts(ctx, uid, f)
	if err != nil {
		return nil, fmt.Errorf("search prompts: %w", err)
	}
	for i := range prompts {
		NormalizePrompt(&prompts[i])
	}
	return prompts, nil
}

func snapshot(p *models.Prompt, notes string, at time.Time) *models.PromptVersion {
	return &models.PromptVersion{
		ID:        uuid.New(),
		PromptID:  p.ID,
		Body:      p.Body,
		Notes:     notes,
		CreatedAt: at,
	}
}
