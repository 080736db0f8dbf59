// Package authmemory provides a fake session resolver for tests.
package authmemory

import (
	"context"
	"sync"

	"github.com/inkpost/inkpost/internal/port"
)

type Resolver struct {
	mu       sync.RWMutex
	sessions map[string]port.Identity
}

func NewResolver() *Resolver {
	return &Resolver{sessions: make(map[string]port.Identity)}
}

// Put registers a token as a valid session for identity.
func (r *Resolver) Put(token string, identity port.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = identity
}

func (r *Resolver) Revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}

func (r *Resolver) Resolve(ctx context.Context, token string) (*port.Identity, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	identity, ok := r.sessions[token]
	if !ok {
		return nil, nil
	}
	return &identity, nil
}

var _ port.SessionResolver = (*Resolver)(nil)
