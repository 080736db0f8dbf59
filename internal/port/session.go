package port

import (
	"context"

	"github.com/inkpost/inkpost/internal/domain"
)

// Identity is the caller resolved from a session token.
type Identity struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Role          domain.UserRole `json:"role"`
	EmailVerified bool            `json:"emailVerified"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}

// SessionResolver maps an inbound credential to an identity. Session issuance
// belongs to the external auth provider; this side only reads. A nil identity
// with nil error means no session resolved.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}
