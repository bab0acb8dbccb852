package config

import (
	"strings"
	"time"
)

// AuthConfig groups session and role-mapping configuration. Authentication
// itself happens at the gateway; this service only reads the sessions the
// gateway writes to Redis and maps the forwarded groups to roles.
type AuthConfig struct {
	// SessionKeyPrefix is the Redis key prefix the gateway uses for sessions.
	SessionKeyPrefix string `env:"AUTH_SESSION_KEY_PREFIX" envDefault:"session:"`

	// AdminGroup is the directory group granting the admin role.
	AdminGroup string `env:"AUTH_ADMIN_GROUP" envDefault:"hirewire-admins"`

	// RecruiterGroup is the directory group granting the recruiter role.
	RecruiterGroup string `env:"AUTH_RECRUITER_GROUP" envDefault:"hirewire-recruiters"`

	// HiringManagerGroup is the directory group granting the hiring_manager role.
	HiringManagerGroup string `env:"AUTH_HM_GROUP" envDefault:"hirewire-managers"`

	// DevSessionTTL is the lifetime of sessions minted by dev tooling.
	DevSessionTTL time.Duration `env:"AUTH_DEV_SESSION_TTL" envDefault:"8h"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	a.SessionKeyPrefix = strings.TrimSpace(a.SessionKeyPrefix)
	if a.SessionKeyPrefix == "" {
		a.SessionKeyPrefix = "session:"
	}
	if a.DevSessionTTL <= 0 {
		a.DevSessionTTL = 8 * time.Hour
	}
}
