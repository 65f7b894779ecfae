package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile mirrors the hosted auth provider's profile row. The API does not
// read or write it yet; it exists so the schema matches the auth backend.
type Profile struct {
	ID          uuid.UUID `json:"id" db:"id"`
	DisplayName string    `json:"display_name,omitempty" db:"display_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
