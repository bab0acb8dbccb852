package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/hirewire/hirewire-api/config"
	"github.com/hirewire/hirewire-api/internal/adapters/authroles"
	redisadapter "github.com/hirewire/hirewire-api/internal/adapters/redis"
	"github.com/hirewire/hirewire-api/internal/data"
	"github.com/hirewire/hirewire-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Analytics *service.AnalyticsService
	Auth      *service.AuthService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildServices creates the application services from storage handles.
func BuildServices(deps ServiceDeps) (ServiceContainer, error) {
	if deps.DB == nil {
		return ServiceContainer{}, fmt.Errorf("build services: database handle is required")
	}

	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
		cfg.Sanitize()
	}

	opts := service.AnalyticsServiceOptions{Repos: buildRepositories(deps.DB)}
	// A nil *slog.Logger must not become a non-nil DebugLogger interface.
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}
	analytics, err := service.NewAnalyticsService(opts)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build analytics service: %w", err)
	}

	container := ServiceContainer{Analytics: analytics}

	// The auth service needs Redis to read gateway sessions. Without Redis
	// the API still serves /healthz but rejects every analytics call.
	if deps.RedisClient != nil {
		store := redisadapter.NewSessionStoreWithPrefix(deps.RedisClient, cfg.Auth.SessionKeyPrefix)
		container.Auth = service.NewAuthService(service.AuthServiceOptions{
			Sessions: store,
			Writer:   store,
			Roles: authroles.StaticRoleMapper{
				AdminGroup:         cfg.Auth.AdminGroup,
				RecruiterGroup:     cfg.Auth.RecruiterGroup,
				HiringManagerGroup: cfg.Auth.HiringManagerGroup,
			},
		})
	} else if deps.Logger != nil {
		deps.Logger.Warn("no redis client; session auth disabled")
	}

	return container, nil
}

// buildRepositories builds the repositories backing the analytics service; no
// business rules here.
func buildRepositories(db *sql.DB) service.AnalyticsRepos {
	return service.AnalyticsRepos{
		Jobs:         data.NewJobRepo(db),
		Applications: data.NewApplicationRepo(db),
		Stages:       data.NewStageRepo(db),
		Transitions:  data.NewTransitionRepo(db),
		Users:        data.NewUserRepo(db),
	}
}
