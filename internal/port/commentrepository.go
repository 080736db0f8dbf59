package port

//go:generate go run go.uber.org/mock/mockgen@latest -source=$GOFILE -destination=mocks/mock_$GOFILE -package=mocks

import (
	"context"

	"github.com/inkpost/inkpost/internal/domain"
)

// CommentRepository defines storage operations for Comment.
type CommentRepository interface {
	Save(ctx context.Context, entity *domain.Comment) error
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByParent(ctx context.Context, parentID string) (int64, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Comment, error)
	// ListApprovedByPost returns every APPROVED comment of the post,
	// regardless of nesting; tree assembly happens in the service.
	ListApprovedByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	// CountByPost counts comments of the post across all statuses.
	CountByPost(ctx context.Context, postID string) (int64, error)
}
