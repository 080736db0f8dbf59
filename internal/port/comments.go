package port

import (
	"context"

	"github.com/inkpost/inkpost/internal/domain"
)

type Comments interface {
	CreateComment(ctx context.Context, req CreateCommentRequest) (CreateCommentResponse, error)
	GetComment(ctx context.Context, req GetCommentRequest) (GetCommentResponse, error)
	ListCommentsByAuthor(ctx context.Context, req ListCommentsByAuthorRequest) (ListCommentsByAuthorResponse, error)
	UpdateComment(ctx context.Context, req UpdateCommentRequest) (UpdateCommentResponse, error)
	DeleteComment(ctx context.Context, req DeleteCommentRequest) (DeleteCommentResponse, error)
	ModerateComment(ctx context.Context, req ModerateCommentRequest) (ModerateCommentResponse, error)
}

// Request/Response DTOs

type CreateCommentRequest struct {
	PostID   string  `json:"postId"`
	Content  string  `json:"content"`
	ParentID *string `json:"parentId"`
	AuthorID string  `json:"authorId"`
}

type CreateCommentResponse struct {
	Comment domain.Comment `json:"comment"`
}

type GetCommentRequest struct {
	ID string `json:"id"`
}

type GetCommentResponse struct {
	Comment domain.Comment `json:"comment"`
}

type ListCommentsByAuthorRequest struct {
	AuthorID string `json:"authorId"`
}

type ListCommentsByAuthorResponse struct {
	Data []domain.Comment `json:"data"`
}

type UpdateCommentRequest struct {
	ID       string
	Content  string
	CallerID string
	IsAdmin  bool
}

type UpdateCommentResponse struct {
	Comment domain.Comment `json:"comment"`
}

type DeleteCommentRequest struct {
	ID       string
	CallerID string
	IsAdmin  bool
}

type DeleteCommentResponse struct {
	Ok bool `json:"ok"`
}

type ModerateCommentRequest struct {
	ID      string
	Status  domain.CommentStatus
	IsAdmin bool
}

type ModerateCommentResponse struct {
	Comment domain.Comment `json:"comment"`
}
