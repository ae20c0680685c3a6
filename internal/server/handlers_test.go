package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/vovakirdan/grammar-arcade/internal/game"
	"github.com/vovakirdan/grammar-arcade/internal/quiz"
)

// memStore is an in-memory Store for handler tests.
type memStore struct {
	mu        sync.Mutex
	best      map[string]float64
	completed map[string]bool
	results   []game.Result
}

func newMemStore() *memStore {
	return &memStore{
		best:      make(map[string]float64),
		completed: make(map[string]bool),
	}
}

func key(userID, mode string) string { return userID + "/" + mode }

func (m *memStore) BestTime(_ context.Context, userID, mode string) (float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	best, ok := m.best[key(userID, mode)]
	return best, ok, nil
}

func (m *memStore) SaveResult(_ context.Context, res game.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, res)
	return nil
}

func (m *memStore) UpsertBestTime(_ context.Context, userID, mode string, elapsed float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best[key(userID, mode)] = elapsed
	return nil
}

func (m *memStore) SetCompleted(_ context.Context, userID, mode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed[key(userID, mode)] = true
	return nil
}

func (m *memStore) IsCompleted(_ context.Context, userID, mode string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completed[key(userID, mode)], nil
}

func newTestServer(store Store) *Server {
	return New(Options{
		Source: quiz.BuiltinSource{},
		Store:  store,
	})
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(newMemStore())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", rec.Code)
	}
}

func TestQuestionsEndpoint(t *testing.T) {
	srv := newTestServer(newMemStore())

	req := httptest.NewRequest(http.MethodGet, "/api/questions/runner", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}

	var questions []quiz.Question
	if err := json.NewDecoder(rec.Body).Decode(&questions); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(questions) == 0 {
		t.Error("no questions returned for a known mode")
	}
}

func TestQuestionsEndpointUnknownMode(t *testing.T) {
	srv := newTestServer(newMemStore())

	req := httptest.NewRequest(http.MethodGet, "/api/questions/pinball", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", rec.Code)
	}
}

func TestProgressEndpoint(t *testing.T) {
	store := newMemStore()
	store.best["alice/runner"] = 42.5
	store.completed["alice/runner"] = true
	srv := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/api/progress/alice/runner", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}

	var resp struct {
		UserID    string   `json:"user_id"`
		Mode      string   `json:"mode"`
		BestTime  *float64 `json:"best_time"`
		Completed bool     `json:"completed"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.UserID != "alice" || resp.Mode != "runner" {
		t.Errorf("identity fields = %q/%q", resp.UserID, resp.Mode)
	}
	if resp.BestTime == nil || *resp.BestTime != 42.5 {
		t.Errorf("best_time = %v, expected 42.5", resp.BestTime)
	}
	if !resp.Completed {
		t.Error("completed = false, expected true")
	}
}

func TestProgressEndpointNoHistory(t *testing.T) {
	srv := newTestServer(newMemStore())

	req := httptest.NewRequest(http.MethodGet, "/api/progress/nobody/racing", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200 for a user with no history", rec.Code)
	}

	var resp struct {
		BestTime  *float64 `json:"best_time"`
		Completed bool     `json:"completed"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.BestTime != nil {
		t.Errorf("best_time = %v, expected null", *resp.BestTime)
	}
	if resp.Completed {
		t.Error("completed = true, expected false")
	}
}

func postResult(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/results", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestResultsEndpointSaves(t *testing.T) {
	store := newMemStore()
	srv := newTestServer(store)

	rec := postResult(t, srv,
		`{"user_id":"alice","mode":"runner","elapsed":33.5,"score":120,"won":true,"questions_answered":12}`)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, expected 202", rec.Code)
	}
	if len(store.results) != 1 {
		t.Fatalf("saved %d results, expected 1", len(store.results))
	}
	if store.results[0].Score != 120 || !store.results[0].Won {
		t.Errorf("saved result = %+v", store.results[0])
	}
}

func TestResultsEndpointBestTimeRule(t *testing.T) {
	store := newMemStore()
	store.best["alice/runner"] = 30.0
	srv := newTestServer(store)

	// Slower win must not replace the best.
	postResult(t, srv, `{"user_id":"alice","mode":"runner","elapsed":45.0,"score":120,"won":true}`)
	if store.best["alice/runner"] != 30.0 {
		t.Errorf("best after slower win = %v, expected 30", store.best["alice/runner"])
	}

	// Faster win replaces it.
	postResult(t, srv, `{"user_id":"alice","mode":"runner","elapsed":25.0,"score":120,"won":true}`)
	if store.best["alice/runner"] != 25.0 {
		t.Errorf("best after faster win = %v, expected 25", store.best["alice/runner"])
	}
}

func TestResultsEndpointCompletionRule(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		key       string
		completed bool
	}{
		{
			name:      "runner at threshold",
			body:      `{"user_id":"a","mode":"runner","elapsed":10,"score":100,"won":true}`,
			key:       "a/runner",
			completed: true,
		},
		{
			name:      "runner below threshold despite win",
			body:      `{"user_id":"b","mode":"runner","elapsed":10,"score":90,"won":true}`,
			key:       "b/runner",
			completed: false,
		},
		{
			name:      "racing win completes",
			body:      `{"user_id":"c","mode":"racing","elapsed":10,"score":40,"won":true}`,
			key:       "c/racing",
			completed: true,
		},
		{
			name:      "racing loss does not complete",
			body:      `{"user_id":"d","mode":"racing","elapsed":10,"score":200,"won":false}`,
			key:       "d/racing",
			completed: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			srv := newTestServer(store)

			rec := postResult(t, srv, tc.body)
			if rec.Code != http.StatusAccepted {
				t.Fatalf("status = %d, expected 202", rec.Code)
			}
			if store.completed[tc.key] != tc.completed {
				t.Errorf("completed = %v, expected %v", store.completed[tc.key], tc.completed)
			}
		})
	}
}

func TestResultsEndpointBadRequests(t *testing.T) {
	srv := newTestServer(newMemStore())

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{broken`},
		{"missing user", `{"mode":"runner","score":10}`},
		{"missing mode", `{"user_id":"alice","score":10}`},
		{"unknown mode", `{"user_id":"alice","mode":"pinball","score":10}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := postResult(t, srv, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, expected 400", rec.Code)
			}
		})
	}
}

func TestProgressEndpointsDisabledWithoutStore(t *testing.T) {
	srv := New(Options{Source: quiz.BuiltinSource{}})

	req := httptest.NewRequest(http.MethodGet, "/api/progress/alice/runner", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code == http.StatusOK {
		t.Error("progress endpoint served without a store")
	}
}

func TestChatRouteWiring(t *testing.T) {
	stub := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	srv := New(Options{Source: quiz.BuiltinSource{}, Chat: stub})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, expected the chat handler to be mounted", rec.Code)
	}
}
