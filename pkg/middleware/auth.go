package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hfarhan/workhub/internal/auth"
	"github.com/hfarhan/workhub/internal/rbac"
	"github.com/hfarhan/workhub/internal/session"
	"github.com/hfarhan/workhub/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ClaimsKey is the context key for the validated token claims
	ClaimsKey ContextKey = "claims"
)

// Authenticator validates bearer tokens and checks them against the
// revocation store before admitting a request.
type Authenticator struct {
	secret   string
	issuer   string
	sessions session.Store
}

// NewAuthenticator creates an Authenticator with its dependencies injected
func NewAuthenticator(secret, issuer string, sessions session.Store) *Authenticator {
	return &Authenticator{secret: secret, issuer: issuer, sessions: sessions}
}

// Require rejects requests without a valid, unrevoked token
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.validate(r)
		if !ok {
			response.Unauthorized(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// Optional admits every request, attaching claims when a valid token is
// present. Used by endpoints whose answer differs for anonymous callers
// rather than being closed to them.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := a.validate(r); ok {
			r = r.WithContext(withClaims(r.Context(), claims))
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) validate(r *http.Request) (*auth.Claims, bool) {
	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return nil, false
	}
	claims, err := auth.ParseToken(a.secret, a.issuer, token)
	if err != nil {
		return nil, false
	}
	revoked, err := a.sessions.Revoked(r.Context(), claims.ID)
	if err != nil || revoked {
		return nil, false
	}
	return claims, true
}

func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// RequireRoles gates a subtree to the given roles. Unauthenticated requests
// get 401; an authenticated caller with the wrong role gets 403 together with
// its own dashboard path, never a bounce back to login.
func RequireRoles(roles ...rbac.Role) func(http.Handler) http.Handler {
	allowed := rbac.NewRoleSet(roles...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}
			role := rbac.Role(claims.Role)
			if !rbac.Allowed(role, allowed) {
				response.ForbiddenWithRedirect(w, "Insufficient role", role.DashboardPath())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetClaims extracts the validated claims from the request context
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims, ok
}

// GetUser extracts the session identity from the request context
func GetUser(ctx context.Context) (session.User, bool) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return session.User{}, false
	}
	return claims.User(), true
}
