package adapthttp

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hydration/internal/adapter/weather"
	"hydration/internal/app"
	"hydration/internal/domain"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	s := &Server{log: slog.New(slog.NewJSONHandler(&buf, nil))}

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Context().Value(requestIDContextKey) == nil {
			t.Error("expected request id in context")
		}
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("OK"))
	})
	handler := s.loggingMiddleware(nextHandler)

	req := httptest.NewRequest("GET", "/api/test-path", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("Expected status %d, got %d", http.StatusTeapot, w.Code)
	}
	reqID := w.Header().Get("X-Request-ID")
	if reqID == "" {
		t.Error("expected generated X-Request-ID header")
	}

	logOutput := buf.String()
	for _, want := range []string{`"method":"GET"`, `"path":"/api/test-path"`, `"status":418`, reqID} {
		if !strings.Contains(logOutput, want) {
			t.Errorf("log output missing %s. Got: %s", want, logOutput)
		}
	}
}

func TestLoggingMiddlewareKeepsRequestID(t *testing.T) {
	s := &Server{log: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))}
	handler := s.loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected caller request id echoed, got %q", got)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: bad amount", domain.ErrValidation), http.StatusBadRequest},
		{"period", app.ErrInvalidPeriod, http.StatusBadRequest},
		{"credentials", app.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired session", app.ErrSessionExpired, http.StatusUnauthorized},
		{"bearer", fmt.Errorf("%w: signature", app.ErrInvalidToken), http.StatusUnauthorized},
		{"premium", app.ErrPremiumRequired, http.StatusPaymentRequired},
		{"no profile", app.ErrProfileRequired, http.StatusNotFound},
		{"taken", app.ErrUsernameTaken, http.StatusConflict},
		{"weather fetch", fmt.Errorf("%w: status 500", weather.ErrFetch), http.StatusBadGateway},
		{"weather off", app.ErrWeatherUnavailable, http.StatusServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusFor(tc.err); got != tc.want {
				t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestMetricLabels(t *testing.T) {
	s := New(Services{}, t.TempDir(), nil)
	_ = s.Handler()

	routes := []struct {
		path string
		want string
	}{
		{"/api/intake", "/api/intake"},
		{"/api/intake/recent", "/api/intake/recent"},
		{"/api/intake/x1", "unmatched"},
		{"/api/random-123", "unmatched"},
		{"/api", "unmatched"},
		{"/metrics", "/metrics"},
		{"/assets/app.js", "static"},
	}
	for _, tc := range routes {
		if got := s.metricRoute(tc.path); got != tc.want {
			t.Errorf("metricRoute(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}

	methods := map[string]string{"GET": "GET", "DELETE": "DELETE", "BREW": "OTHER", "get": "OTHER"}
	for in, want := range methods {
		if got := metricMethod(in); got != want {
			t.Errorf("metricMethod(%q) = %q, want %q", in, got, want)
		}
	}
}
