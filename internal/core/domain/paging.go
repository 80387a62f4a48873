package domain

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PagedResult is the backend's pageable envelope payload.
type PagedResult[T any] struct {
	Content       []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Number        int   `json:"number"`
}

// HasNext reports whether a page after the current one exists.
func (p *PagedResult[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages
}

// HasPrevious reports whether a page before the current one exists.
func (p *PagedResult[T]) HasPrevious() bool {
	return p.Number > 0
}

// PageRequest carries the common listing parameters. Page is 0-based.
type PageRequest struct {
	Page    int
	Size    int
	OrderBy string
	Order   string
}

// Normalize fills defaults and caps the page size.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = DefaultPageSize
	}
	if r.Size > MaxPageSize {
		r.Size = MaxPageSize
	}
	if r.OrderBy == "" {
		r.OrderBy = "nome"
	}
	if r.Order != "desc" {
		r.Order = "asc"
	}
	return r
}

// IdLabel is the minimal projection used by selection dropdowns.
type IdLabel struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}
