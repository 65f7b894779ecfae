// Package audit records a best-effort trail of prompt mutations per user.
// Failures to write a row are logged by callers and never fail the
// triggering request.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/promptsmith/promptsmith/internal/identity"
	"github.com/promptsmith/promptsmith/internal/models"
)

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

type LogEntry struct {
	Action       string
	ResourceType string
	ResourceID   *uuid.UUID
	Details      map[string]interface{}
}

func (s *Service) Log(ctx context.Context, entry LogEntry) error {
	uid := identity.UserIDFromContext(ctx)
	if uid == uuid.Nil {
		return fmt.Errorf("audit log: no user in context")
	}

	details, _ := json.Marshal(entry.Details)

	_, err := s.db.Exec(ctx,
		`INSERT INTO audit_logs (user_id, action, resource_type, resource_id, details)
		 VALUES ($1, $2, $3, $4, $5)`,
		uid, entry.Action, entry.ResourceType, entry.ResourceID, details,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List returns the caller's own audit entries, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.AuditLog, error) {
	uid := identity.UserIDFromContext(ctx)
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, action, resource_type, resource_id, details, created_at
		 FROM audit_logs WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		uid, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.ResourceType, &l.ResourceID, &l.Details, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
