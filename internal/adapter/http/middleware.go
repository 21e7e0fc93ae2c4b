package adapthttp

import (
	"context"
	"net/http"
	"strings"
	"time"

	"hydration/internal/app"
	"hydration/internal/domain"
	"hydration/internal/observability"

	"github.com/google/uuid"
)

type contextKey string

const (
	userContextKey      contextKey = "user"
	requestIDContextKey contextKey = "request_id"
)

// devUser is attached to every request when auth is disabled.
var devUser = &domain.User{ID: 1, Username: "dev"}

// authMiddleware resolves the caller from forward auth headers, a bearer
// token or the session cookie, in that order.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.disableAuth {
			next.ServeHTTP(w, withUser(r, devUser))
			return
		}

		if s.forwardAuth {
			if remoteUser := r.Header.Get("Remote-User"); remoteUser != "" {
				user, err := s.svc.Auth.ValidateForwardAuth(r.Context(), remoteUser)
				if err == nil && user != nil {
					next.ServeHTTP(w, withUser(r, user))
					return
				}
			}
		}

		if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && s.svc.Tokens != nil {
			userID, err := s.svc.Tokens.Parse(bearer)
			if err != nil {
				writeError(w, http.StatusUnauthorized, err)
				return
			}
			user, err := s.svc.Auth.GetUser(r.Context(), userID)
			if err != nil {
				writeError(w, http.StatusUnauthorized, err)
				return
			}
			next.ServeHTTP(w, withUser(r, user))
			return
		}

		cookie, err := r.Cookie("session")
		if err != nil {
			writeError(w, http.StatusUnauthorized, app.ErrSessionNotFound)
			return
		}

		user, err := s.svc.Auth.ValidateSession(r.Context(), cookie.Value, r.UserAgent())
		if err != nil {
			s.fail(w, r, err)
			return
		}

		next.ServeHTTP(w, withUser(r, user))
	})
}

func withUser(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userContextKey, user))
}

// currentUser returns the authenticated caller. Protected handlers can rely
// on it being non-nil.
func currentUser(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware tags each request with an ID, logs it and records its
// latency.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		r = r.WithContext(context.WithValue(r.Context(), requestIDContextKey, reqID))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		d := time.Since(start)
		observability.ObserveHTTPRequest(metricMethod(r.Method), s.metricRoute(r.URL.Path), rec.status, d)

		log := s.log
		if log == nil {
			return
		}
		log.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", d.Milliseconds(),
			"request_id", reqID,
		)
	})
}

// metricRoute maps a request path onto a bounded label set: a registered API
// path, "/metrics", "unmatched" for other API paths and "static" for the SPA.
func (s *Server) metricRoute(path string) string {
	switch {
	case path == "/metrics":
		return "/metrics"
	case path == "/api" || strings.HasPrefix(path, "/api/"):
		if _, ok := s.routes[path]; ok {
			return path
		}
		return "unmatched"
	}
	return "static"
}

func metricMethod(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return method
	}
	return "OTHER"
}
