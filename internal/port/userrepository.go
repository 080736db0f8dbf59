package port

//go:generate go run go.uber.org/mock/mockgen@latest -source=$GOFILE -destination=mocks/mock_$GOFILE -package=mocks

import (
	"context"

	"github.com/inkpost/inkpost/internal/domain"
)

// UserRepository reads the user rows owned by the auth provider.
type UserRepository interface {
	Save(ctx context.Context, entity *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
