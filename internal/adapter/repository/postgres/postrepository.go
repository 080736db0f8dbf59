// Package postgres provides pgx implementations of the repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpost/inkpost/internal/domain"
	"github.com/inkpost/inkpost/internal/port"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const postColumns = "id, title, content, thumbnail, tags, is_featured, status, views, author_id, created_at, updated_at"

// sortColumns whitelists API sort fields against real columns.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"views":     "views",
}

func (r *PostRepository) Save(ctx context.Context, entity *domain.Post) error {
	exec := getExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, `
		INSERT INTO posts (`+postColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			thumbnail = EXCLUDED.thumbnail,
			tags = EXCLUDED.tags,
			is_featured = EXCLUDED.is_featured,
			status = EXCLUDED.status,
			views = EXCLUDED.views,
			updated_at = EXCLUDED.updated_at
	`, entity.ID, entity.Title, entity.Content, entity.Thumbnail, entity.Tags,
		entity.IsFeatured, entity.Status, entity.Views, entity.AuthorID,
		entity.CreatedAt, entity.UpdatedAt)
	return err
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	exec := getExecutor(ctx, r.pool)
	row := exec.QueryRow(ctx, "SELECT "+postColumns+" FROM posts WHERE id = $1", id)
	return scanPost(row)
}

func (r *PostRepository) FindOwner(ctx context.Context, id string) (string, error) {
	exec := getExecutor(ctx, r.pool)
	var authorID string
	err := exec.QueryRow(ctx, "SELECT author_id FROM posts WHERE id = $1", id).Scan(&authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", port.ErrNotFound
	}
	return authorID, err
}

func (r *PostRepository) Update(ctx context.Context, id string, upd port.PostUpdate) (*domain.Post, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Content != nil {
		add("content", *upd.Content)
	}
	if upd.Thumbnail != nil {
		add("thumbnail", *upd.Thumbnail)
	}
	if upd.Tags != nil {
		add("tags", *upd.Tags)
	}
	if upd.IsFeatured != nil {
		add("is_featured", *upd.IsFeatured)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}

	exec := getExecutor(ctx, r.pool)
	row := exec.QueryRow(ctx,
		"UPDATE posts SET "+strings.Join(sets, ", ")+" WHERE id = $1 RETURNING "+postColumns, args...)
	return scanPost(row)
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	exec := getExecutor(ctx, r.pool)
	tag, err := exec.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (r *PostRepository) FindMany(ctx context.Context, filter port.PostFilter, page port.Pagination, sort port.Sort) ([]port.PostWithCount, int64, error) {
	where, args := buildPostWhere(filter)

	orderCol, ok := sortColumns[sort.Field]
	if !ok {
		orderCol = "created_at"
	}
	direction := "DESC"
	if sort.Order == port.SortAsc {
		direction = "ASC"
	}

	exec := getExecutor(ctx, r.pool)

	query := fmt.Sprintf(`
		SELECT %s,
			(SELECT count(*) FROM comments c WHERE c.post_id = posts.id) AS comment_count
		FROM posts
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, postColumns, where, orderCol, direction, len(args)+1, len(args)+2)

	rows, err := exec.Query(ctx, query, append(args, page.Limit, page.Skip())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []port.PostWithCount
	for rows.Next() {
		var p port.PostWithCount
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Thumbnail, &p.Tags,
			&p.IsFeatured, &p.Status, &p.Views, &p.AuthorID, &p.CreatedAt,
			&p.UpdatedAt, &p.CommentCount); err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := exec.QueryRow(ctx, "SELECT count(*) FROM posts "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	exec := getExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx,
		"SELECT "+postColumns+" FROM posts WHERE author_id = $1 ORDER BY created_at DESC", authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Post
	for rows.Next() {
		p, err := scanPostRows(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (r *PostRepository) IncrementViews(ctx context.Context, id string) error {
	exec := getExecutor(ctx, r.pool)
	tag, err := exec.Exec(ctx, "UPDATE posts SET views = views + 1 WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// buildPostWhere compiles the filter into an AND-joined WHERE clause with
// positional args. Absent filters add no clause.
func buildPostWhere(filter port.PostFilter) (string, []any) {
	var clauses []string
	var args []any
	next := func(v any) int {
		args = append(args, v)
		return len(args)
	}

	if filter.Search != "" {
		n := next(filter.Search)
		clauses = append(clauses, fmt.Sprintf(
			"(title ILIKE '%%' || $%d || '%%' OR content ILIKE '%%' || $%d || '%%' OR $%d = ANY(tags))", n, n, n))
	}
	if len(filter.Tags) > 0 {
		n := next(filter.Tags)
		clauses = append(clauses, fmt.Sprintf("tags @> $%d", n))
	}
	if filter.IsFeatured != nil {
		n := next(*filter.IsFeatured)
		clauses = append(clauses, fmt.Sprintf("is_featured = $%d", n))
	}
	if filter.Status != "" {
		n := next(filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", n))
	}
	if filter.AuthorID != "" {
		n := next(filter.AuthorID)
		clauses = append(clauses, fmt.Sprintf("author_id = $%d", n))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Thumbnail, &p.Tags,
		&p.IsFeatured, &p.Status, &p.Views, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPostRows(rows pgx.Rows) (*domain.Post, error) {
	var p domain.Post
	err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Thumbnail, &p.Tags,
		&p.IsFeatured, &p.Status, &p.Views, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ port.PostRepository = (*PostRepository)(nil)
