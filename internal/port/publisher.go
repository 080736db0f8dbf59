package port

import (
	"context"

	"github.com/inkpost/inkpost/internal/domain"
)

type Publisher interface {
	PublishPostCreated(ctx context.Context, event domain.PostCreated) error
	PublishPostDeleted(ctx context.Context, event domain.PostDeleted) error
	PublishCommentCreated(ctx context.Context, event domain.CommentCreated) error
	PublishCommentModerated(ctx context.Context, event domain.CommentModerated) error
}
