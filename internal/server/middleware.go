package server

import (
	"context"
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/balkashynov/tally/internal/app"
	"github.com/balkashynov/tally/internal/auth"
	"github.com/balkashynov/tally/internal/models"
)

type ctxKey string

const sessionKey ctxKey = "user"

// RequestIDHeader carries the id assigned to each request
const RequestIDHeader = "X-Request-ID"

// WithRequestLogging logs every request once it has been served
func WithRequestLogging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// WithSession reads the session cookie into the request context and rejects
// requests without one.
func WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := readSessionCookie(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, auth.ErrNoSession)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin lets only admin sessions through. Must run after WithSession.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := app.RequireAdmin(SessionFromContext(r.Context())); err != nil {
			writeError(w, http.StatusForbidden, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromContext returns the session stored by WithSession, or the zero session
func SessionFromContext(ctx context.Context) models.Session {
	session, _ := ctx.Value(sessionKey).(models.Session)
	return session
}
