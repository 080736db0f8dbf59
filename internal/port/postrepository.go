package port

//go:generate go run go.uber.org/mock/mockgen@latest -source=$GOFILE -destination=mocks/mock_$GOFILE -package=mocks

import (
	"context"
	"strings"

	"github.com/inkpost/inkpost/internal/domain"
)

// PostFilter is the conjunction of independently-optional predicates for the
// post listing. A zero filter matches every post.
type PostFilter struct {
	Search     string
	Tags       []string
	IsFeatured *bool
	Status     domain.PostStatus
	AuthorID   string
}

// Matches evaluates the filter against a single post. The Postgres adapter
// compiles the same predicates to SQL; this form backs the in-memory adapter
// and keeps the combination logic store-independent.
func (f PostFilter) Matches(p *domain.Post) bool {
	if f.Search != "" {
		s := strings.ToLower(f.Search)
		hit := strings.Contains(strings.ToLower(p.Title), s) ||
			strings.Contains(strings.ToLower(p.Content), s)
		if !hit {
			for _, t := range p.Tags {
				if t == f.Search {
					hit = true
					break
				}
			}
		}
		if !hit {
			return false
		}
	}
	for _, want := range f.Tags {
		found := false
		for _, t := range p.Tags {
			if t == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.IsFeatured != nil && p.IsFeatured != *f.IsFeatured {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.AuthorID != "" && p.AuthorID != f.AuthorID {
		return false
	}
	return true
}

// PostWithCount annotates a post with its comment count for list responses.
type PostWithCount struct {
	domain.Post
	CommentCount int64 `json:"commentCount"`
}

// PostUpdate is a partial update; nil fields are left untouched.
type PostUpdate struct {
	Title      *string
	Content    *string
	Thumbnail  *string
	Tags       *[]string
	IsFeatured *bool
	Status     *domain.PostStatus
}

// PostRepository defines storage operations for Post.
type PostRepository interface {
	Save(ctx context.Context, entity *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// FindOwner loads only the author reference of a post.
	FindOwner(ctx context.Context, id string) (string, error)
	Update(ctx context.Context, id string, upd PostUpdate) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
	// FindMany returns one page of posts matching the filter plus the total
	// matching count ignoring pagination.
	FindMany(ctx context.Context, filter PostFilter, page Pagination, sort Sort) ([]PostWithCount, int64, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
	// IncrementViews adds exactly one view, reporting ErrNotFound for a
	// missing post.
	IncrementViews(ctx context.Context, id string) error
}
