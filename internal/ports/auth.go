package ports

// Package ports defines interfaces (hexagonal ports) for auth-related
// behavior. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"

	domainauth "github.com/hirewire/hirewire-api/internal/domain/auth"
)

// SessionStore retrieves user sessions written by the auth gateway.
// This service is read-only toward sessions in production: it never creates
// them on behalf of real logins.
type SessionStore interface {
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionWriter persists sessions. Only development tooling (seeded logins)
// writes sessions from this service; the gateway owns the production path.
type SessionWriter interface {
	Save(ctx context.Context, session domainauth.Session) error
}

// RoleMapper maps identity-provider groups to application roles.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}
