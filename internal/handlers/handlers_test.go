package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"literasi-backend/internal/docstore"
	"literasi-backend/internal/logger"
	"literasi-backend/internal/models"
	"literasi-backend/internal/repository"
	"literasi-backend/internal/services"
)

type testEnv struct {
	store  docstore.Store
	router http.Handler
}

func newTestEnv(t *testing.T, store docstore.Store) *testEnv {
	t.Helper()
	if docstore.IsConnected(store) {
		activities := repository.NewActivityRepo(store, nil, nil)
		require.NoError(t, repository.Seed(context.Background(), activities, repository.NewBadgeRepo(store), logger.Nop()))
	}

	childRepo := repository.NewChildRepo(store)
	activityRepo := repository.NewActivityRepo(store, nil, nil)
	progressRepo := repository.NewProgressRepo(store)
	badgeRepo := repository.NewBadgeRepo(store)

	system := NewSystemHandler(services.NewDiagnosticsService(store, true, false))
	children := NewChildHandler(services.NewChildService(childRepo))
	catalog := NewCatalogHandler(services.NewCatalogService(activityRepo, badgeRepo))
	learning := NewLearningHandler(
		services.NewRecommendationService(activityRepo),
		services.NewProgressService(progressRepo, childRepo, nil, logger.Nop()),
		services.NewReportService(progressRepo),
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Get("/", system.Root)
	r.Get("/test", system.Test)
	r.Get("/activities", catalog.ListActivities)
	r.Get("/badges", catalog.ListBadges)
	r.Get("/children", children.List)
	r.Post("/children", children.Create)
	r.Post("/recommend", learning.Recommend)
	r.Post("/progress", learning.SubmitProgress)
	r.Post("/report", learning.Report)

	return &testEnv{store: store, router: r}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func (e *testEnv) createChild(t *testing.T, name string) string {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/children", map[string]interface{}{"name": name, "age": 6})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[map[string]string](t, rr)["id"]
}

// ─── System ───

func TestRoot(t *testing.T) {
	env := newTestEnv(t, docstore.NewMemory())
	rr := env.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Gamified Early Digital Literacy API running", decode[map[string]string](t, rr)["message"])
}

func TestDiagnostics(t *testing.T) {
	env := newTestEnv(t, docstore.NewMemory())
	rr := env.do(t, http.MethodGet, "/test", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	d := decode[models.Diagnostics](t, rr)
	assert.Equal(t, "✅ Connected", d.Database)
	assert.Equal(t, "✅ Set", d.DatabaseURL)
	assert.Equal(t, "❌ Not Set", d.DatabaseName)
	assert.Equal(t, []string{"activity", "badge"}, d.Collections)
}

func TestDiagnostics_DisconnectedStillOK(t *testing.T) {
	env := newTestEnv(t, docstore.Disconnected{})
	rr := env.do(t, http.MethodGet, "/test", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Not Connected", decode[models.Diagnostics](t, rr).ConnectionStatus)
}

func TestDisconnectedStore_Returns500(t *testing.T) {
	env := newTestEnv(t, docstore.Disconnected{})

	for _, rr := range []*httptest.ResponseRecorder{
		env.do(t, http.MethodGet, "/children", nil),
		env.do(t, http.MethodGet, "/activities", nil),
		env.do(t, http.MethodPost, "/children", map[string]interface{}{"name": "A", "age": 5}),
	} {
		require.Equal(t, http.StatusInternalServerError, rr.Code)
		resp := decode[models.ErrorResponse](t, rr)
		assert.Equal(t, "STORE_UNAVAILABLE", resp.Error.Code)
		assert.Equal(t, "Database not connected", resp.Error.Message)
		assert.NotEmpty(t, resp.Error.RequestID)
	}
}

// ─── Children ───

func TestChildren_CreateAndList(t *testing.T) {
	env := newTestEnv(t, docstore.NewMemory())
	id := env.createChild(t, "Rina")

	rr := env.do(t, http.MethodGet, "/children", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["id"])
	assert.Equal(t, "Rina", list[0]["name"])
	assert.Equal(t, float64(1), list[0]["level"])
	assert.Equal(t, float64(0), list[0]["xp"])
	assert.Equal(t, []interface{}{}, list[0]["badges"])
	assert.Nil(t, list[0]["avatar"])
}

func TestChildren_CreateValidation(t *testing.T) {
	env := newTestEnv(t, docstore.NewMemory())

	tests := []struct {
		name  string
		body  interface{}
		field string
	}{
		{"missing name", map[string]interface{}{"age": 5}, "name"},
		{"too young", map[string]interface{}{"name": "A", "age": 2}, "age"},
		{"too old", map[string]interface{}{"name": "A", "age": 11}, "age"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, "/children", tc.body)
			require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			resp := decode[models.ErrorResponse](t, rr)
			assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
			assert.Contains(t, resp.Error.Fields, tc.field)
		})
	}

	rr := env.do(t, http.MethodPost, "/children", "{not json")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestDecode_WrongFieldType(t *testing.T) {
	env := newTestEnv(t, docstore.NewMemory())

	tests := []struct {
		name    string
		path    string
		body    string
		field   string
		message string
	}{
		{"age as string", "/children", `{"name":"Ayu","age":"seven"}`, "age", "must be an integer"},
		{"name as number", "/children", `{"name":7,"age":6}`, "name", "must be a string"},
		{
			"accuracy as string", "/progress",
			`{"child_id":"` + docstore.NewID().String() + `","activity_id":"` + docstore.NewID().String() + `","accuracy":"high","duration_sec":30}`,
			"accuracy", "must be a number",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, tc.path, tc.body)
			require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			resp := decode[models.ErrorResponse](t, rr)
			assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
			assert.Equal(t, "Validation failed", resp.Error.Message)
			assert.Equal(t, tc.message, resp.Error.Fields[tc.field])
		})
	}

	rr := env.do(t, http.MethodPost, "/children", "{not json")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	resp := decode[models.ErrorResponse](t, rr)
	assert.Equal(t, "Invalid request body", resp.Error.Message)
	assert.Empty(t, resp.Error.Fields)
}

// ─── Catalog ───

func TestActivities(t *testing.T) {
	env := newTestEnv(t, docstore.NewMemory())

	rr := env.do(t, http.MethodGet, "/activities", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	all := decode[[]models.Activity](t, rr)
	assert.Len(t, all, 12)
	assert.False(t, all[0].ID.IsZero())

	rr = env.do(t, http.MethodGet, "/activities?topic=etika_digital&difficulty=hard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	hard := decode[[]models.Activity](t, rr)
	require.Len(t, hard, 1)
	assert.Equal(t, "Jadi Penolong Online", hard[0].Title)

	rr = env.do(t, http.MethodGet, "/activities?limit=3", nil)
	assert.Len(t, decode[[]models.Activity](t, rr), 3)

	rr = env.do(t, http.MethodGet, "/activities?limit=many", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestBadges(t *testing.T) {
	env := newTestEnv(t, docstore.NewMemory())
	rr := env.do(t, http.MethodGet, "/badges", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	badges := decode[[]models.Badge](t, rr)
	require.Len(t, badges, 4)
	assert.Equal(t, "starter", badges[0].Code)
}

// ─── Recommend ───

func TestRecommend(t *testing.T) {
	env := newTestEnv(t, docstore.NewMemory())
	id := env.createChild(t, "Dodi")

	rr := env.do(t, http.MethodPost, "/recommend", map[string]interface{}{
		"child_id":        id,
		"last_accuracy":   0.7,
		"last_difficulty": "hard",
		"preferred_topic": "berpikir_kritis",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	res := decode[models.RecommendationResponse](t, rr)
	assert.Equal(t, models.DifficultyHard, res.NextDifficulty)
	assert.Equal(t, "Akurasi sedang → pertahankan tingkat saat ini", res.Reasoning)
	assert.Equal(t, models.TopicCriticalThinking, res.SuggestedTopics[0])
	assert.Len(t, res.Activities, 4)
}

func TestRecommend_InvalidInput(t *testing.T) {
	env := newTestEnv(t, docstore.NewMemory())

	rr := env.do(t, http.MethodPost, "/recommend", map[string]interface{}{"child_id": "123"})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, decode[models.ErrorResponse](t, rr).Error.Fields, "child_id")

	rr = env.do(t, http.MethodPost, "/recommend", map[string]interface{}{
		"child_id":      docstore.NewID().String(),
		"last_accuracy": 1.2,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, decode[models.ErrorResponse](t, rr).Error.Fields, "last_accuracy")
}

// ─── Progress & Report ───

func TestProgressAndReport(t *testing.T) {
	env := newTestEnv(t, docstore.NewMemory())
	id := env.createChild(t, "Wati")

	submit := func(accuracy float64, duration int) *httptest.ResponseRecorder {
		return env.do(t, http.MethodPost, "/progress", map[string]interface{}{
			"child_id":     id,
			"activity_id":  docstore.NewID().String(),
			"accuracy":     accuracy,
			"duration_sec": duration,
		})
	}

	rr := submit(0.8, 50)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	res := decode[map[string]interface{}](t, rr)
	assert.Equal(t, float64(15), res["xp"])
	assert.Equal(t, float64(2), res["stars"])
	assert.Equal(t, float64(1), res["level"])
	assert.Equal(t, []interface{}{"starter"}, res["badges"])
	assert.NotEmpty(t, res["progress_id"])

	rr = submit(1.0, 70)
	require.Equal(t, http.StatusOK, rr.Code)
	res = decode[map[string]interface{}](t, rr)
	assert.Equal(t, float64(35), res["xp"])
	assert.Equal(t, []interface{}{"starter"}, res["badges"])

	rr = env.do(t, http.MethodPost, "/report", map[string]interface{}{"child_id": id})
	require.Equal(t, http.StatusOK, rr.Code)
	report := decode[models.Report](t, rr)
	require.Len(t, report.Items, 2)
	assert.Equal(t, 2, report.Summary.TotalSessions)
	assert.InDelta(t, 0.9, report.Summary.AvgAccuracy, 1e-9)
	assert.Equal(t, 60, report.Summary.AvgDurationSec)
	assert.Equal(t, id, report.Items[0].ChildID.String())
	assert.False(t, report.Items[0].ID.IsZero())
}

func TestProgress_UnknownChild(t *testing.T) {
	env := newTestEnv(t, docstore.NewMemory())

	rr := env.do(t, http.MethodPost, "/progress", map[string]interface{}{
		"child_id":     docstore.NewID().String(),
		"activity_id":  docstore.NewID().String(),
		"accuracy":     0.5,
		"duration_sec": 30,
	})
	require.Equal(t, http.StatusNotFound, rr.Code)
	resp := decode[models.ErrorResponse](t, rr)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "Child not found", resp.Error.Message)
}

func TestProgress_MissingFields(t *testing.T) {
	env := newTestEnv(t, docstore.NewMemory())

	rr := env.do(t, http.MethodPost, "/progress", map[string]interface{}{"child_id": docstore.NewID().String()})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	fields := decode[models.ErrorResponse](t, rr).Error.Fields
	assert.Equal(t, "is required", fields["activity_id"])
	assert.Equal(t, "is required", fields["accuracy"])
	assert.Equal(t, "is required", fields["duration_sec"])
}

func TestReport_EmptyHistory(t *testing.T) {
	env := newTestEnv(t, docstore.NewMemory())

	rr := env.do(t, http.MethodPost, "/report", map[string]interface{}{"child_id": docstore.NewID().String(), "limit": 5})
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[map[string]interface{}](t, rr)
	assert.Equal(t, []interface{}{}, body["items"])
	assert.Equal(t, map[string]interface{}{
		"total_sessions":   float64(0),
		"avg_accuracy":     float64(0),
		"avg_duration_sec": float64(0),
	}, body["summary"])
}
