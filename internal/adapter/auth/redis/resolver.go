// Package authredis resolves session tokens against the auth provider's
// session records in Redis.
package authredis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/port"
)

const sessionPrefix = "session:"

// sessionRecord is the provider's wire shape for a stored session.
type sessionRecord struct {
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Resolver struct {
	client *redis.Client
	users  port.UserRepository
}

func NewResolver(client *redis.Client, users port.UserRepository) *Resolver {
	return &Resolver{client: client, users: users}
}

func (r *Resolver) Resolve(ctx context.Context, token string) (*port.Identity, error) {
	raw, err := r.client.Get(ctx, sessionPrefix+token).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec sessionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, err
	}
	if !rec.ExpiresAt.IsZero() && time.Now().After(rec.ExpiresAt) {
		return nil, nil
	}
	user, err := r.users.FindByID(ctx, rec.UserID)
	if err != nil {
		if err == port.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	if user.Status != domain.UserActive {
		return nil, nil
	}
	return &port.Identity{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
	}, nil
}

var _ port.SessionResolver = (*Resolver)(nil)
