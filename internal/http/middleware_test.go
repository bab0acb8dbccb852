package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/hirewire/hirewire-api/internal/domain/auth"
)

// stubAuthService resolves a single known session id.
type stubAuthService struct {
	session *domainauth.Session
}

func (s *stubAuthService) GetSession(_ context.Context, sessionID string) (*domainauth.Session, error) {
	if s.session != nil && s.session.ID == sessionID {
		return s.session, nil
	}
	return nil, errors.New("session not found")
}

func (s *stubAuthService) Logout(context.Context, string) error { return nil }

func sessionFixture(role domainauth.Role) *domainauth.Session {
	return &domainauth.Session{
		ID: "sess-1", UserID: "user-1", Role: role,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func authedRequest(sessionID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/analytics/dropoff", nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	}
	return req
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	authSvc := &stubAuthService{session: sessionFixture(domainauth.RoleRecruiter)}
	var captured *domainauth.Session
	handler := RequireAuth(authSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("no cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest(""))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest("sess-bogus"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid session reaches handler", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest("sess-1"))
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, "user-1", captured.UserID)
	})

	t.Run("guest session rejected", func(t *testing.T) {
		guestSvc := &stubAuthService{session: sessionFixture(domainauth.RoleGuest)}
		guarded := RequireAuth(guestSvc)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, authedRequest("sess-1"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed role", func(t *testing.T) {
		authSvc := &stubAuthService{session: sessionFixture(domainauth.RoleAdmin)}
		rec := httptest.NewRecorder()
		RequireRole(authSvc, domainauth.RoleAdmin)(next).ServeHTTP(rec, authedRequest("sess-1"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		authSvc := &stubAuthService{session: sessionFixture(domainauth.RoleRecruiter)}
		rec := httptest.NewRecorder()
		RequireRole(authSvc, domainauth.RoleAdmin)(next).ServeHTTP(rec, authedRequest("sess-1"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		authSvc := &stubAuthService{}
		rec := httptest.NewRecorder()
		RequireRole(authSvc, domainauth.RoleAdmin)(next).ServeHTTP(rec, authedRequest(""))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRouterHealthz(t *testing.T) {
	t.Parallel()

	router := NewRouter(RouterServices{Auth: &stubAuthService{}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterAnalyticsRequiresAuth(t *testing.T) {
	t.Parallel()

	router := NewRouter(RouterServices{Auth: &stubAuthService{}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analytics/hiring-metrics", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
