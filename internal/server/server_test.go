package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/leaplogic/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Config{
		Addr:            "127.0.0.1:0",
		ShutdownTimeout: time.Second,
		MaxFormulas:     3,
		Concurrency:     2,
		Logger:          testutil.NewTestLogger(t),
	})
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAnalyze_Single(t *testing.T) {
	rec := post(t, newTestServer(t).Handler(), `{"formula": "P -> P"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Reports []struct {
			Input        string   `json:"input"`
			Valid        bool     `json:"valid"`
			Formatted    string   `json:"formatted"`
			Propositions []string `json:"propositions"`
			Tautology    string   `json:"tautology"`
		} `json:"reports"`
		Summary struct {
			Total       int `json:"total"`
			Tautologies int `json:"tautologies"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Reports, 1)

	r := resp.Reports[0]
	assert.True(t, r.Valid)
	assert.Equal(t, "(P → P)", r.Formatted)
	assert.Equal(t, []string{"P"}, r.Propositions)
	assert.Equal(t, "yes", r.Tautology)
	assert.Equal(t, 1, resp.Summary.Total)
	assert.Equal(t, 1, resp.Summary.Tautologies)
}

func TestAnalyze_Batch(t *testing.T) {
	rec := post(t, newTestServer(t).Handler(), `{"formula": "P", "formulas": ["P∧Q∨R", "X"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Reports, 3)
	assert.Equal(t, "P", resp.Reports[0].Input)
	assert.False(t, resp.Reports[1].Valid)
	assert.Contains(t, resp.Reports[1].Error, "invalid syntax")
	assert.Empty(t, resp.Reports[1].Tautology)
	assert.Equal(t, "X", resp.Reports[2].Formatted)
	assert.Equal(t, 1, resp.Summary.Invalid)
	assert.Equal(t, 2, resp.Summary.NotTautology)
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		errMsg string
	}{
		{name: "empty", body: `{}`, status: http.StatusBadRequest, errMsg: "no formula given"},
		{name: "malformed", body: `{"formula":`, status: http.StatusBadRequest, errMsg: "invalid request body"},
		{name: "unknown field", body: `{"expr": "P"}`, status: http.StatusBadRequest, errMsg: "invalid request body"},
		{name: "too many", body: `{"formulas": ["A","B","C","D"]}`, status: http.StatusRequestEntityTooLarge, errMsg: "too many formulas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, newTestServer(t).Handler(), tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tt.errMsg)
		})
	}
}

func TestAnalyze_RequiresJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader("P"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	newTestServer(t).Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestHealthAndOperators(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","max_propositions":15}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/operators", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var ops map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ops))
	assert.Equal(t, []string{"->", "→"}, ops["→"])
}

func TestServeListener_Shutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- newTestServer(t).ServeListener(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
