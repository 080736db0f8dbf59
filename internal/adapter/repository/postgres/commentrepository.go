package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/port"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

const commentColumns = "id, content, status, author_id, post_id, parent_id, created_at, updated_at"

func (r *CommentRepository) Save(ctx context.Context, entity *domain.Comment) error {
	exec := getExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, `
		INSERT INTO comments (`+commentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`, entity.ID, entity.Content, entity.Status, entity.AuthorID, entity.PostID,
		entity.ParentID, entity.CreatedAt, entity.UpdatedAt)
	return err
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	exec := getExecutor(ctx, r.pool)
	row := exec.QueryRow(ctx, "SELECT "+commentColumns+" FROM comments WHERE id = $1", id)
	return scanComment(row)
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	exec := getExecutor(ctx, r.pool)
	tag, err := exec.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) DeleteByParent(ctx context.Context, parentID string) (int64, error) {
	exec := getExecutor(ctx, r.pool)
	tag, err := exec.Exec(ctx, "DELETE FROM comments WHERE parent_id = $1", parentID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *CommentRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Comment, error) {
	return r.list(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE author_id = $1 ORDER BY created_at DESC", authorID)
}

func (r *CommentRepository) ListApprovedByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	return r.list(ctx,
		"SELECT "+commentColumns+" FROM comments WHERE post_id = $1 AND status = $2 ORDER BY created_at",
		postID, domain.CommentApproved)
}

func (r *CommentRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	exec := getExecutor(ctx, r.pool)
	var n int64
	err := exec.QueryRow(ctx, "SELECT count(*) FROM comments WHERE post_id = $1", postID).Scan(&n)
	return n, err
}

func (r *CommentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Comment, error) {
	exec := getExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.Status, &c.AuthorID, &c.PostID,
			&c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(&c.ID, &c.Content, &c.Status, &c.AuthorID, &c.PostID,
		&c.ParentID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

var _ port.CommentRepository = (*CommentRepository)(nil)
