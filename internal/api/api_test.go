package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/assessgen/internal/assessment"
	"github.com/abhisek/assessgen/internal/catalog"
	"github.com/abhisek/assessgen/internal/executor"
	"github.com/abhisek/assessgen/internal/llm"
	"github.com/abhisek/assessgen/internal/metrics"
	"github.com/abhisek/assessgen/internal/planner"
	"github.com/abhisek/assessgen/internal/problemgen"
	"github.com/abhisek/assessgen/internal/store"
)

type testEnv struct {
	router  http.Handler
	catalog *catalog.MemoryStore
	events  store.EventRepo
	mock    *llm.MockProvider
	metrics *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cat, err := catalog.NewMemoryStore(
		catalog.Problem{ID: "a1", Text: "2 + 2", Topic: "Arithmetic", Difficulty: 1, EstimatedMinutes: 1},
		catalog.Problem{ID: "a2", Text: "12 * 12", Topic: "Arithmetic", Difficulty: 2, EstimatedMinutes: 2},
		catalog.Problem{ID: "f1", Text: "1/2 + 1/4", Topic: "Fractions", Difficulty: 2, EstimatedMinutes: 2},
		catalog.Problem{ID: "f2", Text: "3/4 - 1/3", Topic: "Fractions", Difficulty: 3, EstimatedMinutes: 3},
	)
	require.NoError(t, err)

	s, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	events := s.EventRepo()

	m := metrics.New()
	mock := llm.NewMockProvider()

	svc := assessment.NewService(assessment.Deps{
		Planner:  planner.New(planner.DefaultConfig()),
		Catalog:  cat,
		Executor: executor.DefaultConfig(),
		Events:   events,
		Metrics:  m,
	})

	router := NewRouter(Deps{
		Catalog:        cat,
		Assessments:    svc,
		Generator:      problemgen.New(mock, problemgen.DefaultConfig()),
		History:        events,
		Metrics:        m,
		RequestTimeout: 5 * time.Second,
	})

	return &testEnv{router: router, catalog: cat, events: events, mock: mock, metrics: m}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) count(t *testing.T) int {
	t.Helper()
	n, err := e.catalog.Count(context.Background())
	require.NoError(t, err)
	return n
}

func decodeAppError(t *testing.T, w *httptest.ResponseRecorder) AppError {
	t.Helper()
	var appErr AppError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appErr), w.Body.String())
	return appErr
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"up"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = env.do(t, http.MethodGet, "/healthz/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready","problems":4}`, w.Body.String())
}

type brokenCatalog struct{ catalog.Repository }

func (brokenCatalog) Get(context.Context, string) (catalog.Problem, error) {
	return catalog.Problem{}, &catalog.UnavailableError{Op: "get", Err: errors.New("disk gone")}
}

func (brokenCatalog) ListByTopic(context.Context, string, int) ([]catalog.Problem, error) {
	return nil, &catalog.UnavailableError{Op: "list", Err: errors.New("disk gone")}
}

func TestReady_CatalogDown(t *testing.T) {
	router := NewRouter(Deps{Catalog: brokenCatalog{}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestIDPropagated(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}

func TestListProblems(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		query  string
		status int
		ids    []string
	}{
		{"all", "", http.StatusOK, []string{"a1", "a2", "f1", "f2"}},
		{"by topic", "?topic=Fractions", http.StatusOK, []string{"f1", "f2"}},
		{"by difficulty", "?difficulty=2", http.StatusOK, []string{"a2", "f1"}},
		{"topic and difficulty", "?topic=Fractions&difficulty=3", http.StatusOK, []string{"f2"}},
		{"no match", "?topic=Geometry", http.StatusOK, []string{}},
		{"bad difficulty", "?difficulty=9", http.StatusBadRequest, nil},
		{"non-numeric difficulty", "?difficulty=hard", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/api/problems"+tt.query, "")
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status != http.StatusOK {
				assert.Equal(t, CodeValidation, decodeAppError(t, w).Code)
				return
			}

			var got []catalog.Problem
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			ids := make([]string, len(got))
			for i, p := range got {
				ids[i] = p.ID
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestProblemCRUD(t *testing.T) {
	env := newTestEnv(t)

	body := `{"id":"g1","text":"Area of a 3 by 4 rectangle?","topic":"Geometry","difficulty":2,"estimated_time_to_solve_minutes":2}`
	w := env.do(t, http.MethodPost, "/api/problems", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/problems", body)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, CodeConflict, decodeAppError(t, w).Code)

	w = env.do(t, http.MethodGet, "/api/problems/g1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got catalog.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Geometry", got.Topic)

	w = env.do(t, http.MethodPut, "/api/problems/g1", `{"text":"Area of a 5 by 4 rectangle?","topic":"Geometry","difficulty":3,"estimated_time_to_solve_minutes":3}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "g1", got.ID)
	assert.Equal(t, 3, got.Difficulty)

	w = env.do(t, http.MethodPut, "/api/problems/g1", `{"id":"other","text":"x","topic":"Geometry","difficulty":3,"estimated_time_to_solve_minutes":3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/problems/missing", `{"text":"x","topic":"Geometry","difficulty":3,"estimated_time_to_solve_minutes":3}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, "/api/problems/g1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodDelete, "/api/problems/g1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeNotFound, decodeAppError(t, w).Code)

	w = env.do(t, http.MethodGet, "/api/problems/g1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProblem_Invalid(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"id":`},
		{"missing text", `{"id":"x","topic":"T","difficulty":1,"estimated_time_to_solve_minutes":1}`},
		{"difficulty out of range", `{"id":"x","text":"t","topic":"T","difficulty":7,"estimated_time_to_solve_minutes":1}`},
		{"zero minutes", `{"id":"x","text":"t","topic":"T","difficulty":1,"estimated_time_to_solve_minutes":0}`},
		{"wrong type", `{"id":"x","text":"t","topic":"T","difficulty":"one","estimated_time_to_solve_minutes":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/problems", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, CodeValidation, decodeAppError(t, w).Code)
		})
	}
	assert.Equal(t, 4, env.count(t))
}

func TestGenerateAssessment(t *testing.T) {
	env := newTestEnv(t)

	body := `{
		"student_profile": {"id": "s1", "mastered_topics": ["Arithmetic"], "learning_goals": ["Fractions"]},
		"assessment_request": {"max_total_time_minutes": 4, "pedagogical_strategy": "new_topic_introduction"}
	}`
	w := env.do(t, http.MethodPost, "/api/assessments/generate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		AssessmentID string `json:"assessment_id"`
		Planner      struct {
			ReasoningLog []string `json:"reasoning_log"`
			Plan         struct {
				TargetTopics []string `json:"target_topics"`
				NumProblems  int      `json:"num_problems"`
				Difficulty   [2]int   `json:"difficulty_range"`
				Strategy     string   `json:"pedagogical_strategy"`
			} `json:"assessment_plan"`
		} `json:"planner_output"`
		Executor struct {
			Selected    []catalog.Problem `json:"selected_problems"`
			Total       int               `json:"total_estimated_time_minutes"`
			Constraints map[string]int    `json:"constraints"`
		} `json:"executor_output"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))

	assert.NotEmpty(t, res.AssessmentID)
	assert.Equal(t, "Strategy selected: NEW_TOPIC_INTRODUCTION.", res.Planner.ReasoningLog[0])
	assert.Equal(t, []string{"Fractions"}, res.Planner.Plan.TargetTopics)
	assert.Equal(t, [2]int{1, 3}, res.Planner.Plan.Difficulty)
	assert.Equal(t, "NEW_TOPIC_INTRODUCTION", res.Planner.Plan.Strategy)

	// f1 (2 min) then f2 (3 min) would exceed 4 minutes.
	require.Len(t, res.Executor.Selected, 1)
	assert.Equal(t, "f1", res.Executor.Selected[0].ID)
	assert.Equal(t, 2, res.Executor.Total)
	assert.Equal(t, map[string]int{"max_total_time_minutes": 4}, res.Executor.Constraints)

	w = env.do(t, http.MethodGet, "/api/assessments/history?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	var hist struct {
		Events []historyEvent `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hist))
	require.Len(t, hist.Events, 1)
	assert.Equal(t, res.AssessmentID, hist.Events[0].AssessmentID)
	assert.Equal(t, []string{"f1"}, hist.Events[0].SelectedIDs)
}

func TestGenerateAssessment_Invalid(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"unknown strategy", `{"student_profile":{"id":"s","mastered_topics":[],"learning_goals":[]},"assessment_request":{"max_total_time_minutes":10,"pedagogical_strategy":"CRAM"}}`},
		{"negative budget", `{"student_profile":{"id":"s","mastered_topics":[],"learning_goals":[]},"assessment_request":{"max_total_time_minutes":-1,"pedagogical_strategy":"REVIEW"}}`},
		{"missing profile", `{"assessment_request":{"max_total_time_minutes":10,"pedagogical_strategy":"REVIEW"}}`},
		{"fractional budget", `{"student_profile":{"id":"s","mastered_topics":[],"learning_goals":[]},"assessment_request":{"max_total_time_minutes":1.5,"pedagogical_strategy":"REVIEW"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/assessments/generate", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, CodeValidation, decodeAppError(t, w).Code)
		})
	}
}

func TestGenerateAssessment_CatalogUnavailable(t *testing.T) {
	svc := assessment.NewService(assessment.Deps{
		Planner: planner.New(planner.DefaultConfig()),
		Catalog: brokenCatalog{},
	})
	router := NewRouter(Deps{Catalog: brokenCatalog{}, Assessments: svc})

	body := `{"student_profile":{"id":"s","mastered_topics":["Arithmetic"],"learning_goals":[]},"assessment_request":{"max_total_time_minutes":10,"pedagogical_strategy":"REVIEW"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/assessments/generate", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, CodeCatalogUnavailable, decodeAppError(t, w).Code)
}

func TestGenerateProblem(t *testing.T) {
	env := newTestEnv(t)
	env.mock.AddResponse(llm.MockResponse{Content: json.RawMessage(`{
		"text": "What is 3/4 + 1/8?",
		"topic": "Fractions",
		"difficulty": 2,
		"estimated_time_to_solve_minutes": 3,
		"answer": "7/8",
		"answer_type": "fraction"
	}`)})

	w := env.do(t, http.MethodPost, "/api/problems/generate", `{"topic":"Fractions","difficulty":2}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var p catalog.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Fractions", p.Topic)
	assert.Equal(t, 5, env.count(t))

	require.Equal(t, 1, env.mock.CallCount())
	assert.Contains(t, env.mock.Calls[0].Messages[0].Content, "1/2 + 1/4", "existing topic texts go into the prompt")
}

func TestGenerateProblem_Failures(t *testing.T) {
	env := newTestEnv(t)

	// Empty mock queue: provider unavailable.
	w := env.do(t, http.MethodPost, "/api/problems/generate", `{"topic":"Fractions","difficulty":2}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, CodeLLMUnavailable, decodeAppError(t, w).Code)

	w = env.do(t, http.MethodPost, "/api/problems/generate", `{"topic":"Fractions"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	router := NewRouter(Deps{Catalog: env.catalog})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/problems/generate", strings.NewReader(`{"topic":"Fractions","difficulty":2}`)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, 4, env.count(t))
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/assessments/history?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/assessments/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"events":[]}`, w.Body.String())

	router := NewRouter(Deps{Catalog: env.catalog})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/assessments/history", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/api/problems", "")

	w := env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `assessgen_http_requests_total{method="GET",route="/api/problems",status="200"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeNotFound, decodeAppError(t, w).Code)
}

func TestRecovery(t *testing.T) {
	router := NewRouter(Deps{Catalog: panicCatalog{}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/problems/x", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, CodeInternalError, decodeAppError(t, w).Code)
}

type panicCatalog struct{ catalog.Repository }

func (panicCatalog) Get(context.Context, string) (catalog.Problem, error) {
	panic("boom")
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", &catalog.NotFoundError{ID: "x"}, 404, CodeNotFound},
		{"conflict", &catalog.ConflictError{ID: "x"}, 409, CodeConflict},
		{"invalid", &catalog.InvalidProblemError{Field: "text", Message: "must not be empty"}, 400, CodeValidation},
		{"unavailable wrapped", errors.Join(errors.New("ctx"), &catalog.UnavailableError{Op: "list"}), 503, CodeCatalogUnavailable},
		{"deadline", context.DeadlineExceeded, 504, CodeTimeout},
		{"draft rejected", &problemgen.ValidationError{Validator: "math-check", Message: "wrong"}, 502, CodeGenerationFailed},
		{"rate limited", &llm.ErrRateLimit{Err: errors.New("429")}, 503, CodeLLMUnavailable},
		{"unknown strategy", &planner.UnknownStrategyError{Value: "CRAM"}, 400, CodeValidation},
		{"other", errors.New("boom"), 500, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toAppError(tt.err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.code, got.Code)
		})
	}
}
