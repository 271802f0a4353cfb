package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shootdesk/shootdesk-api/internal/pkg/errorhandler"
	"github.com/shootdesk/shootdesk-api/internal/pkg/logger"
	"github.com/shootdesk/shootdesk-api/internal/pkg/response"
	"github.com/shootdesk/shootdesk-api/internal/pkg/tenant"
)

type contextKey string

const (
	SessionKey   contextKey = "session"
	RequestIDKey contextKey = "request_id"
)

// SessionResolver turns a bearer token into a live session.
// It returns tenant.ErrUnauthenticated for unknown, expired or revoked tokens.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*tenant.Session, error)
}

// Session returns middleware that resolves the bearer token into a session.
// Requests without a valid session are rejected with 401 before any handler runs.
func Session(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				response.Unauthorized(w)
				return
			}

			sess, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				if errors.Is(err, tenant.ErrUnauthenticated) {
					response.Unauthorized(w)
					return
				}
				errorhandler.HandleInternal(r.Context(), w, "session lookup failed", err)
				return
			}

			l := logger.FromContext(r.Context()).With().
				Str("user_id", sess.UserID).
				Str("organization_id", sess.OrganizationID).
				Logger()

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			ctx = logger.WithContext(ctx, &l)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOrganization rejects sessions without an active organization with 403
func RequireOrganization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := GetSession(r.Context()).Scope(); err != nil {
			if errors.Is(err, tenant.ErrNoOrganization) {
				response.NoOrganization(w)
				return
			}
			response.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSession extracts the resolved session from context
func GetSession(ctx context.Context) *tenant.Session {
	if s, ok := ctx.Value(SessionKey).(*tenant.Session); ok {
		return s
	}
	return nil
}

// GetScope returns the tenant scope of the request session
func GetScope(ctx context.Context) (tenant.Scope, error) {
	return GetSession(ctx).Scope()
}

// WithSession stores a session in ctx
func WithSession(ctx context.Context, s *tenant.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
