package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/hirewire/hirewire-api/internal/domain/auth"
	"github.com/hirewire/hirewire-api/internal/ports"
)

var errSessionExpired = errors.New("session expired")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Sessions ports.SessionStore
	Roles    ports.RoleMapper
	// Writer is optional and only used for dev session minting.
	Writer ports.SessionWriter
}

// AuthService validates gateway-issued sessions and maps identity groups to
// application roles. Login itself happens in the auth gateway; this service
// only reads what the gateway persisted.
type AuthService struct {
	sessions ports.SessionStore
	roles    ports.RoleMapper
	writer   ports.SessionWriter
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		sessions: opts.Sessions,
		roles:    opts.Roles,
		writer:   opts.Writer,
	}
}

// GetSession retrieves a session by ID, reaping it when expired.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// MintDevSessionInput groups parameters for MintDevSession.
type MintDevSessionInput struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Groups    []string
	TTL       time.Duration
}

// MintDevSession creates a session directly, bypassing the gateway. This
// exists for local development and seeded demos only; it requires a
// configured session writer.
func (s *AuthService) MintDevSession(
	ctx context.Context,
	input MintDevSessionInput,
) (*domainauth.Session, error) {
	if s.writer == nil {
		return nil, errors.New("session writer not configured")
	}
	if input.UserID == "" {
		return nil, errors.New("user ID is required")
	}
	ttl := input.TTL
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}

	session := domainauth.Session{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Role:      s.roles.Map(input.Groups),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.writer.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &session, nil
}
