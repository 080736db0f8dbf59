package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/pkg/httperr"
	"github.com/inkpost/inkpost/internal/pkg/logger"
	"github.com/inkpost/inkpost/internal/port"
)

type identityKey struct{}

// RequireAuth resolves the caller's session and attaches the identity to the
// request context. With roles given, the caller's role must be among them.
// 401 without a session, 403 for an unverified email or a wrong role.
func RequireAuth(resolver port.SessionResolver, roles ...domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				httperr.WriteError(w, r, httperr.Unauthorized("you are unauthorized"))
				return
			}
			identity, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				logger.From(r.Context()).Error("session resolve failed", "err", err)
				httperr.WriteError(w, r, httperr.Unauthorized("you are unauthorized"))
				return
			}
			if identity == nil {
				httperr.WriteError(w, r, httperr.Unauthorized("you are unauthorized"))
				return
			}
			if !identity.EmailVerified {
				httperr.WriteError(w, r, httperr.Forbidden("email verification required"))
				return
			}
			if len(roles) > 0 && !roleAllowed(identity.Role, roles) {
				httperr.WriteError(w, r, httperr.Forbidden("forbidden access"))
				return
			}
			ctx := context.WithValue(r.Context(), identityKey{}, *identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentIdentity returns the identity the auth middleware attached, if any.
func CurrentIdentity(r *http.Request) (port.Identity, bool) {
	identity, ok := r.Context().Value(identityKey{}).(port.Identity)
	return identity, ok
}

func bearerToken(r *http.Request) string {
	token := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		if c, err := r.Cookie("session_token"); err == nil {
			token = c.Value
		}
	}
	return token
}

func roleAllowed(role domain.UserRole, allowed []domain.UserRole) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
