// Package memory provides in-memory repository implementations used by tests
// and local runs without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/port"
)

type PostRepositoryStub struct {
	mu   sync.RWMutex
	data map[string]domain.Post

	// CountComments, when set, annotates FindMany results; the postgres
	// adapter does this with a subquery.
	CountComments func(ctx context.Context, postID string) (int64, error)
}

func NewPostRepositoryStub() *PostRepositoryStub {
	return &PostRepositoryStub{data: make(map[string]domain.Post)}
}

func (r *PostRepositoryStub) Save(ctx context.Context, entity *domain.Post) error {
	if entity == nil {
		return fmt.Errorf("entity is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[entity.ID] = *entity
	return nil
}

func (r *PostRepositoryStub) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entity, ok := r.data[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &entity, nil
}

func (r *PostRepositoryStub) FindOwner(ctx context.Context, id string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entity, ok := r.data[id]
	if !ok {
		return "", port.ErrNotFound
	}
	return entity.AuthorID, nil
}

func (r *PostRepositoryStub) Update(ctx context.Context, id string, upd port.PostUpdate) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entity, ok := r.data[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	if upd.Title != nil {
		entity.Title = *upd.Title
	}
	if upd.Content != nil {
		entity.Content = *upd.Content
	}
	if upd.Thumbnail != nil {
		entity.Thumbnail = *upd.Thumbnail
	}
	if upd.Tags != nil {
		entity.Tags = *upd.Tags
	}
	if upd.IsFeatured != nil {
		entity.IsFeatured = *upd.IsFeatured
	}
	if upd.Status != nil {
		entity.Status = *upd.Status
	}
	r.data[id] = entity
	return &entity, nil
}

func (r *PostRepositoryStub) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return port.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *PostRepositoryStub) FindMany(ctx context.Context, filter port.PostFilter, page port.Pagination, srt port.Sort) ([]port.PostWithCount, int64, error) {
	r.mu.RLock()
	var matched []domain.Post
	for _, item := range r.data {
		p := item
		if filter.Matches(&p) {
			matched = append(matched, p)
		}
	}
	r.mu.RUnlock()

	sortPosts(matched, srt)

	total := int64(len(matched))
	skip := page.Skip()
	if skip >= len(matched) {
		return []port.PostWithCount{}, total, nil
	}
	end := skip + page.Limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]port.PostWithCount, 0, end-skip)
	for _, p := range matched[skip:end] {
		item := port.PostWithCount{Post: p}
		if r.CountComments != nil {
			n, err := r.CountComments(ctx, p.ID)
			if err != nil {
				return nil, 0, err
			}
			item.CommentCount = n
		}
		out = append(out, item)
	}
	return out, total, nil
}

func (r *PostRepositoryStub) ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []domain.Post
	for _, item := range r.data {
		if item.AuthorID == authorID {
			res = append(res, item)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (r *PostRepositoryStub) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entity, ok := r.data[id]
	if !ok {
		return port.ErrNotFound
	}
	entity.Views++
	r.data[id] = entity
	return nil
}

func sortPosts(items []domain.Post, srt port.Sort) {
	less := func(a, b domain.Post) bool {
		switch srt.Field {
		case "title":
			return a.Title < b.Title
		case "views":
			return a.Views < b.Views
		case "updatedAt":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if srt.Order == port.SortAsc {
			return less(items[i], items[j])
		}
		return less(items[j], items[i])
	})
}

var _ port.PostRepository = (*PostRepositoryStub)(nil)
