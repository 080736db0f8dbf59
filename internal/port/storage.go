package port

import "errors"

// ErrNotFound is returned by repositories when the requested row does not
// exist. Services translate it into the transport error taxonomy.
var ErrNotFound = errors.New("not found")

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Pagination carries 1-based page selection. Skip is always (page-1)*limit.
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return p
}

func (p Pagination) Skip() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages is ceil(total/limit).
func (p Pagination) TotalPages(total int64) int64 {
	limit := int64(p.Limit)
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

type Sort struct {
	Field string
	Order SortOrder
}

func (s Sort) Normalize() Sort {
	if s.Field == "" {
		s.Field = "createdAt"
	}
	if s.Order != SortAsc && s.Order != SortDesc {
		s.Order = SortDesc
	}
	return s
}
