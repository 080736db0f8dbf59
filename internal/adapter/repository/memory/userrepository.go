package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/port"
)

type UserRepositoryStub struct {
	mu   sync.RWMutex
	data map[string]domain.User
}

func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{data: make(map[string]domain.User)}
}

func (r *UserRepositoryStub) Save(ctx context.Context, entity *domain.User) error {
	if entity == nil {
		return fmt.Errorf("entity is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[entity.ID] = *entity
	return nil
}

func (r *UserRepositoryStub) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entity, ok := r.data[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &entity, nil
}

func (r *UserRepositoryStub) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.data {
		if item.Email == email {
			return &item, nil
		}
	}
	return nil, port.ErrNotFound
}

var _ port.UserRepository = (*UserRepositoryStub)(nil)
