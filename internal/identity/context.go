// Package identity carries the authenticated caller through request context.
// The API never authenticates users itself; the auth middleware resolves the
// hosted provider's token into an Identity and stashes it here.
package identity

import (
	"context"

	"github.com/google/uuid"
)

type Identity struct {
	UserID uuid.UUID
	Email  string
}

type contextKey string

const identityKey contextKey = "identity"

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

// UserIDFromContext returns uuid.Nil when no identity is present.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if id := FromContext(ctx); id != nil {
		return id.UserID
	}
	return uuid.Nil
}
