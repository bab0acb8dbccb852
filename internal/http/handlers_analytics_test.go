package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/hirewire/hirewire-api/internal/domain/auth"
	"github.com/hirewire/hirewire-api/internal/domain/model"
	"github.com/hirewire/hirewire-api/internal/mocks"
	"github.com/hirewire/hirewire-api/internal/service"
)

type handlerMocks struct {
	jobs        *mocks.MockJobRepository
	apps        *mocks.MockApplicationRepository
	stages      *mocks.MockStageRepository
	transitions *mocks.MockTransitionRepository
	users       *mocks.MockUserRepository
}

func newAnalyticsHandlers(t *testing.T) (handlerMocks, *AnalyticsHandlers) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := handlerMocks{
		jobs:        mocks.NewMockJobRepository(ctrl),
		apps:        mocks.NewMockApplicationRepository(ctrl),
		stages:      mocks.NewMockStageRepository(ctrl),
		transitions: mocks.NewMockTransitionRepository(ctrl),
		users:       mocks.NewMockUserRepository(ctrl),
	}
	svc, err := service.NewAnalyticsService(service.AnalyticsServiceOptions{
		Repos: service.AnalyticsRepos{
			Jobs:         m.jobs,
			Applications: m.apps,
			Stages:       m.stages,
			Transitions:  m.transitions,
			Users:        m.users,
		},
	})
	require.NoError(t, err)
	return m, &AnalyticsHandlers{Svc: svc}
}

func requestWithSession(method, target string, session *domainauth.Session) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(SetSessionInContext(req.Context(), session))
}

func testAdminSession() *domainauth.Session {
	return &domainauth.Session{
		ID: "sess-1", UserID: "user-admin", Role: domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestHiringMetricsHandler_EmptyScope(t *testing.T) {
	t.Parallel()
	m, h := newAnalyticsHandlers(t)

	m.stages.EXPECT().ListAll(gomock.Any()).Return(nil, nil)
	m.jobs.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

	rec := httptest.NewRecorder()
	h.HiringMetrics(rec, requestWithSession(http.MethodGet, "/api/analytics/hiring-metrics", testAdminSession()))

	require.Equal(t, http.StatusOK, rec.Code)

	var body model.HiringMetricsReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Zero(t, body.TotalApplications)
	assert.Nil(t, body.TimeToFill.Overall)
}

func TestHiringMetricsHandler_MalformedDate(t *testing.T) {
	t.Parallel()
	_, h := newAnalyticsHandlers(t)

	rec := httptest.NewRecorder()
	h.HiringMetrics(rec, requestWithSession(http.MethodGet,
		"/api/analytics/hiring-metrics?startDate=notadate", testAdminSession()))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_query", body["error"])
	assert.NotEmpty(t, body["message"])
}

func TestHiringMetricsHandler_NoSessionForbidden(t *testing.T) {
	t.Parallel()
	_, h := newAnalyticsHandlers(t)

	rec := httptest.NewRecorder()
	h.HiringMetrics(rec, httptest.NewRequest(http.MethodGet, "/api/analytics/hiring-metrics", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "forbidden", body["error"])
}

func TestReviewLatencyHandler_BadBuckets(t *testing.T) {
	t.Parallel()
	_, h := newAnalyticsHandlers(t)

	rec := httptest.NewRecorder()
	h.ReviewLatency(rec, requestWithSession(http.MethodGet,
		"/api/analytics/hm-feedback?waitBuckets=7,2", testAdminSession()))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewLatencyHandler_PassesOptions(t *testing.T) {
	t.Parallel()
	m, h := newAnalyticsHandlers(t)

	// No review stages resolve, so the report short-circuits to its empty shape.
	m.stages.EXPECT().ListAll(gomock.Any()).Return(nil, nil)
	m.jobs.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

	rec := httptest.NewRecorder()
	h.ReviewLatency(rec, requestWithSession(http.MethodGet,
		"/api/analytics/hm-feedback?reviewStageIds=stage-x&waitBuckets=2,7", testAdminSession()))

	require.Equal(t, http.StatusOK, rec.Code)

	var body model.ReviewLatencyReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.AverageDays)
	assert.Zero(t, body.SampleSize)
	assert.Empty(t, body.Buckets)
}

func TestReviewLatencyHandler_ConfiguredDefaultBuckets(t *testing.T) {
	t.Parallel()
	m, h := newAnalyticsHandlers(t)
	h.DefaultWaitBuckets = []int{2, 7}

	// A review stage resolves but no applications are in scope, so the
	// report is empty yet still histogrammed with the configured thresholds.
	m.stages.EXPECT().ListAll(gomock.Any()).Return([]*model.PipelineStage{
		{ID: "stage-review", Name: "HM Review", Order: 2, Role: model.StageRoleReview},
	}, nil)
	m.jobs.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

	rec := httptest.NewRecorder()
	h.ReviewLatency(rec, requestWithSession(http.MethodGet,
		"/api/analytics/hm-feedback", testAdminSession()))

	require.Equal(t, http.StatusOK, rec.Code)

	var body model.ReviewLatencyReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Buckets, 3)
	assert.Equal(t, "<= 2 d", body.Buckets[0].Label)
	assert.Equal(t, "2-7 d", body.Buckets[1].Label)
	assert.Equal(t, "> 7 d", body.Buckets[2].Label)
}

func TestSourcePerformanceHandler_EmptyIsArray(t *testing.T) {
	t.Parallel()
	m, h := newAnalyticsHandlers(t)

	m.stages.EXPECT().ListAll(gomock.Any()).Return(nil, nil)
	m.jobs.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

	rec := httptest.NewRecorder()
	h.SourcePerformance(rec, requestWithSession(http.MethodGet,
		"/api/analytics/source-performance", testAdminSession()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestStageHistoryHandler_CapsLimit(t *testing.T) {
	t.Parallel()
	m, h := newAnalyticsHandlers(t)

	m.transitions.EXPECT().
		ListHistory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, opts model.StageHistoryListOptions) ([]*model.StageTransition, error) {
			assert.Equal(t, 500, opts.Limit)
			require.NotNil(t, opts.ApplicationID)
			assert.Equal(t, "app-1", *opts.ApplicationID)
			return nil, nil
		})

	rec := httptest.NewRecorder()
	h.StageHistory(rec, requestWithSession(http.MethodGet,
		"/api/stage-history?applicationId=app-1&limit=99999", testAdminSession()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestStageHistoryHandler_ConfiguredPageSize(t *testing.T) {
	t.Parallel()
	m, h := newAnalyticsHandlers(t)
	h.HistoryPageSize = 25

	m.transitions.EXPECT().
		ListHistory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, opts model.StageHistoryListOptions) ([]*model.StageTransition, error) {
			assert.Equal(t, 25, opts.Limit)
			return nil, nil
		})

	rec := httptest.NewRecorder()
	h.StageHistory(rec, requestWithSession(http.MethodGet,
		"/api/stage-history", testAdminSession()))

	require.Equal(t, http.StatusOK, rec.Code)
}
