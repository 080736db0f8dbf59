package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/port"
)

type CommentRepositoryStub struct {
	mu   sync.RWMutex
	data map[string]domain.Comment
}

func NewCommentRepositoryStub() *CommentRepositoryStub {
	return &CommentRepositoryStub{data: make(map[string]domain.Comment)}
}

func (r *CommentRepositoryStub) Save(ctx context.Context, entity *domain.Comment) error {
	if entity == nil {
		return fmt.Errorf("entity is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[entity.ID] = *entity
	return nil
}

func (r *CommentRepositoryStub) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entity, ok := r.data[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &entity, nil
}

func (r *CommentRepositoryStub) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return port.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *CommentRepositoryStub) DeleteByParent(ctx context.Context, parentID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, item := range r.data {
		if item.ParentID != nil && *item.ParentID == parentID {
			delete(r.data, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *CommentRepositoryStub) ListByAuthor(ctx context.Context, authorID string) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []domain.Comment
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

func (r *CommentRepositoryStub) ListApprovedByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []domain.Comment
	for _, item := range r.data {
		if item.PostID == postID && item.Status == domain.CommentApproved {
			res = append(res, item)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

func (r *CommentRepositoryStub) CountByPost(ctx context.Context, postID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, item := range r.data {
		if item.PostID == postID {
			n++
		}
	}
	return n, nil
}

var _ port.CommentRepository = (*CommentRepositoryStub)(nil)
