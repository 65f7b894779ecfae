package prompt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promptsmith/promptsmith/internal/models"
)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreatePrompt(ctx context.Context, p *models.Prompt, v *models.PromptVersion) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO prompts (id, user_id, title, body_md, tags, folder, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.OwnerID, p.Title, p.Body, p.Tags, p.Folder, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prompt: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO prompt_versions (id, prompt_id, body_md, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		v.ID, v.PromptID, v.Body, v.Notes, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prompt version: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdatePrompt(ctx context.Context, p *models.Prompt, v *models.PromptVersion) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE prompts SET title = $1, body_md = $2, tags = $3, folder = $4, updated_at = $5
		 WHERE id = $6 AND user_id = $7
		 RETURNING created_at`,
		p.Title, p.Body, p.Tags, p.Folder, p.UpdatedAt, p.ID, p.OwnerID,
	).Scan(&p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update prompt: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO prompt_versions (id, prompt_id, body_md, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		v.ID, v.PromptID, v.Body, v.Notes, v.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert prompt version: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

func (s *PostgresStore) DeletePrompt(ctx context.Context, id, owner uuid.UUID) (bool, error) {
	ct, err := s.db.Exec(ctx,
		`DELETE FROM prompts WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return false, fmt.Errorf("delete prompt: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (s *PostgresStore) GetPrompt(ctx context.Context, id uuid.UUID) (*models.Prompt, error) {
	var p models.Prompt
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, title, body_md, tags, COALESCE(folder, ''), created_at, updated_at
		 FROM prompts WHERE id = $1`, id,
	).Scan(&p.ID, &p.OwnerID, &p.Title, &p.Body, &p.Tags, &p.Folder, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get prompt: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) InsertVersion(ctx context.Context, v *models.PromptVersion) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO prompt_versions (id, prompt_id, body_md, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		v.ID, v.PromptID, v.Body, v.Notes, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert version: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetVersion(ctx context.Context, id uuid.UUID) (*models.PromptVersion, error) {
	var v models.PromptVersion
	err := s.db.QueryRow(ctx,
		`SELECT id, prompt_id, body_md, COALESCE(notes, ''), created_at
		 FROM prompt_versions WHERE id = $1`, id,
	).Scan(&v.ID, &v.PromptID, &v.Body, &v.Notes, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}
	return &v, nil
}

func (s *PostgresStore) ListVersions(ctx context.Context, promptID uuid.UUID) ([]models.PromptVersion, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, prompt_id, body_md, COALESCE(notes, ''), created_at
		 FROM prompt_versions WHERE prompt_id = $1 ORDER BY created_at DESC`, promptID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var versions []models.PromptVersion
	for rows.Next() {
		var v models.PromptVersion
		if err := rows.Scan(&v.ID, &v.PromptID, &v.Body, &v.Notes, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (s *PostgresStore) SetPromptBody(ctx context.Context, id, owner uuid.UUID, body string, updatedAt time.Time) (bool, error) {
	ct, err := s.db.Exec(ctx,
		`UPDATE prompts SET body_md = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`,
		body, updatedAt, id, owner)
	if err != nil {
		return false, fmt.Errorf("set prompt body: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (s *PostgresStore) SearchPrompts(ctx context.Context, owner uuid.UUID, f SearchFilter) ([]models.Prompt, error) {
	query := `SELECT id, user_id, title, body_md, tags, COALESCE(folder, ''), created_at, updated_at
			  FROM prompts WHERE user_id = $1`
	args := []interface{}{owner}
	argIdx := 2

	if f.Query != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR body_md ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+f.Query+"%")
		argIdx++
	}
	if f.Folder != "" {
		query += fmt.Sprintf(" AND folder = $%d", argIdx)
		args = append(args, f.Folder)
		argIdx++
	}
	if len(f.Tags) > 0 {
		query += fmt.Sprintf(" AND tags @> $%d", argIdx)
		args = append(args, f.Tags)
		argIdx++
	}

	query += " ORDER BY updated_at DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search prompts: %w", err)
	}
	defer rows.Close()

	var prompts []models.Prompt
	for rows.Next() {
		var p models.Prompt
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Body, &p.Tags, &p.Folder, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}
