package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivam1584818/fb-group-finder-backend/internal/common"
	"github.com/shivam1584818/fb-group-finder-backend/internal/config"
	"github.com/shivam1584818/fb-group-finder-backend/internal/models"
	"github.com/shivam1584818/fb-group-finder-backend/internal/scanner"
)

type mockScanner struct {
	scanFunc func(ctx context.Context, target string) (*models.ScanResult, error)
	targets  []string
}

func (m *mockScanner) Scan(ctx context.Context, target string) (*models.ScanResult, error) {
	m.targets = append(m.targets, target)
	if m.scanFunc != nil {
		return m.scanFunc(ctx, target)
	}
	return &models.ScanResult{Matches: []models.Match{}}, nil
}

type mockGuard struct {
	err error
}

func (g *mockGuard) Admit() error {
	return g.err
}

func newTestRouter(apiKey string, s Scanner, guard AdmissionGuard) http.Handler {
	cfg := config.NewDefaultServerConfig()
	cfg.APIKey = apiKey
	cfg.MaxBodyBytes = 1024
	return SetupRouter(cfg, s, guard, zerolog.Nop())
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

func TestScan_Success(t *testing.T) {
	ms := &mockScanner{
		scanFunc: func(ctx context.Context, target string) (*models.ScanResult, error) {
			return &models.ScanResult{
				Matches: []models.Match{
					{Label: "Cats", Location: "https://www.facebook.com/groups/cats/", SecondarySignal: true},
				},
				TotalVisited: 3,
				Failures:     nil,
			}, nil
		},
	}

	w := doRequest(t, newTestRouter("", ms, nil), http.MethodPost, "/scan", `{"postUrl":"https://example.com/post/42"}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"groups":[{"name":"Cats","link":"https://www.facebook.com/groups/cats/","auto":true}],"scanned":3}`, w.Body.String())
	assert.Equal(t, []string{"https://example.com/post/42"}, ms.targets)
}

func TestScan_EmptyResultSerializesEmptyArray(t *testing.T) {
	w := doRequest(t, newTestRouter("", &mockScanner{}, nil), http.MethodPost, "/scan", `{"postUrl":"https://example.com/post/42"}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"groups":[],"scanned":0}`, w.Body.String())
}

func TestScan_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"missing postUrl", `{}`, http.StatusBadRequest, "postUrl required"},
		{"empty postUrl", `{"postUrl":""}`, http.StatusBadRequest, "postUrl required"},
		{"malformed json", `{"postUrl":`, http.StatusBadRequest, "invalid request body"},
		{"body too large", `{"postUrl":"` + strings.Repeat("a", 2048) + `"}`, http.StatusRequestEntityTooLarge, "request body too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := &mockScanner{}
			w := doRequest(t, newTestRouter("", ms, nil), http.MethodPost, "/scan", tt.body, nil)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decodeMessage(t, w))
			assert.Empty(t, ms.targets)
		})
	}
}

func TestScan_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", fmt.Errorf("%w: postUrl must be an absolute http(s) URL", scanner.ErrInvalidInput), http.StatusBadRequest},
		{"auth failure", fmt.Errorf("%w: credentials rejected", scanner.ErrAuthFailure), http.StatusInternalServerError},
		{"discovery failure", fmt.Errorf("%w: search blocked", scanner.ErrDiscoveryFailure), http.StatusInternalServerError},
		{"unavailable", common.WrapError(common.ErrServiceUnavailable, "browser not running"), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := &mockScanner{
				scanFunc: func(ctx context.Context, target string) (*models.ScanResult, error) {
					return nil, tt.err
				},
			}
			w := doRequest(t, newTestRouter("", ms, nil), http.MethodPost, "/scan", `{"postUrl":"https://example.com/post/42"}`, nil)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.err.Error(), decodeMessage(t, w))
		})
	}
}

func TestScan_APIKey(t *testing.T) {
	body := `{"postUrl":"https://example.com/post/42"}`

	t.Run("missing key", func(t *testing.T) {
		ms := &mockScanner{}
		w := doRequest(t, newTestRouter("secret", ms, nil), http.MethodPost, "/scan", body, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid API key", decodeMessage(t, w))
		assert.Empty(t, ms.targets)
	})

	t.Run("wrong key", func(t *testing.T) {
		w := doRequest(t, newTestRouter("secret", &mockScanner{}, nil), http.MethodPost, "/scan", body, map[string]string{"X-API-Key": "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid key", func(t *testing.T) {
		w := doRequest(t, newTestRouter("secret", &mockScanner{}, nil), http.MethodPost, "/scan", body, map[string]string{"X-API-Key": "secret"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("health is public", func(t *testing.T) {
		w := doRequest(t, newTestRouter("secret", &mockScanner{}, nil), http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestScan_GuardRejects(t *testing.T) {
	ms := &mockScanner{}
	guard := &mockGuard{err: common.WrapError(common.ErrServiceUnavailable, "memory pressure")}

	w := doRequest(t, newTestRouter("", ms, guard), http.MethodPost, "/scan", `{"postUrl":"https://example.com/post/42"}`, nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, ms.targets)
}

func TestCORS(t *testing.T) {
	w := doRequest(t, newTestRouter("secret", &mockScanner{}, nil), http.MethodOptions, "/scan", "", map[string]string{"Origin": "https://app.example"})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-API-Key")
}

func TestHealth(t *testing.T) {
	w := doRequest(t, newTestRouter("", &mockScanner{}, nil), http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "resources")
}

func TestNewHTTPServer(t *testing.T) {
	cfg := config.NewDefaultServerConfig()
	srv := NewHTTPServer(cfg, http.NewServeMux())
	assert.Equal(t, ":3000", srv.Addr)
}
