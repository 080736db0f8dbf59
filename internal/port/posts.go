package port

import (
	"context"

	"github.com/inkpost/inkpost/internal/domain"
)

type Posts interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (CreatePostResponse, error)
	ListPosts(ctx context.Context, req ListPostsRequest) (ListPostsResponse, error)
	GetPost(ctx context.Context, req GetPostRequest) (GetPostResponse, error)
	ListMyPosts(ctx context.Context, req ListMyPostsRequest) (ListMyPostsResponse, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) (UpdatePostResponse, error)
	DeletePost(ctx context.Context, req DeletePostRequest) (DeletePostResponse, error)
}

// Request/Response DTOs

type CreatePostRequest struct {
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Thumbnail  string            `json:"thumbnail"`
	Tags       []string          `json:"tags"`
	IsFeatured bool              `json:"isFeatured"`
	Status     domain.PostStatus `json:"status"`
	AuthorID   string            `json:"authorId"`
}

type CreatePostResponse struct {
	Post domain.Post `json:"post"`
}

type ListPostsRequest struct {
	Filter PostFilter
	Page   Pagination
	Sort   Sort
}

type PageInfo struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

type ListPostsResponse struct {
	Data       []PostWithCount `json:"data"`
	Pagination PageInfo        `json:"pagination"`
}

type GetPostRequest struct {
	ID string `json:"id"`
}

// CommentNode is one comment plus its approved replies, two levels deep.
type CommentNode struct {
	domain.Comment
	Replies []CommentNode `json:"replies"`
}

type GetPostResponse struct {
	Post         domain.Post   `json:"post"`
	Comments     []CommentNode `json:"comments"`
	CommentCount int64         `json:"commentCount"`
}

type ListMyPostsRequest struct {
	AuthorID string `json:"authorId"`
}

type ListMyPostsResponse struct {
	Data []domain.Post `json:"data"`
}

type UpdatePostRequest struct {
	ID       string
	Update   PostUpdate
	CallerID string
	IsAdmin  bool
}

type UpdatePostResponse struct {
	Post domain.Post `json:"post"`
}

type DeletePostRequest struct {
	ID       string
	CallerID string
	IsAdmin  bool
}

type DeletePostResponse struct {
	Ok bool `json:"ok"`
}
