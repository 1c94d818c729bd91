package adapthttp

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"feedback/internal/app"
	"feedback/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	userContextKey      contextKey = "user"
	requestIDContextKey contextKey = "request_id"
)

func userFromContext(r *http.Request) *domain.User {
	u, _ := r.Context().Value(userContextKey).(*domain.User)
	return u
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

// authMiddleware resolves the caller from a bearer token, the forward auth
// header, or the session cookie, in that order.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.authenticate(r)
		if errors.Is(err, errUnauthenticated) {
			writeError(w, http.StatusUnauthorized, err)
			return
		}
		if err != nil {
			s.internalError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

var errUnauthenticated = errors.New("unauthorized")

func (s *Server) authenticate(r *http.Request) (*domain.User, error) {
	ctx := r.Context()

	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		claims, err := s.svc.Tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return nil, errUnauthenticated
		}
		user, err := s.svc.Auth.UserByLogin(ctx, claims.Subject)
		if errors.Is(err, app.ErrUserNotFound) {
			return nil, errUnauthenticated
		}
		return user, err
	}

	if remoteUser := r.Header.Get("Remote-User"); remoteUser != "" && s.trustProxy {
		user, err := s.svc.Auth.ValidateForwardAuth(ctx, remoteUser)
		if err == nil && user != nil {
			return user, nil
		}
		s.log.Warn("forward auth rejected", zap.String("remote_user", remoteUser), zap.Error(err))
	}

	cookie, err := r.Cookie("session")
	if err != nil {
		return nil, errUnauthenticated
	}
	user, err := s.svc.Auth.ValidateSession(ctx, cookie.Value, r.UserAgent())
	if errors.Is(err, app.ErrSessionNotFound) || errors.Is(err, app.ErrSessionExpired) || errors.Is(err, app.ErrUserNotFound) {
		return nil, errUnauthenticated
	}
	return user, err
}

// requestIDMiddleware propagates X-Request-ID, minting one when absent.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		s.log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", requestIDFromContext(r.Context())),
		)
	})
}
