package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Paging limits. MaxPage keeps Page*Size and Page+1 from overflowing.
const (
	DefaultPageSize = 20
	MaxPageSize     = 2000
	MaxPage         = math.MaxInt/MaxPageSize - 1
)

// ErrInvalidSort is returned when a sort property is not sortable.
var ErrInvalidSort = errors.New("invalid sort property")

// Order is one sort key.
type Order struct {
	Property string
	Desc     bool
}

// PageRequest selects a zero-based page of results.
type PageRequest struct {
	Page int
	Size int
	Sort []Order
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Normalize clamps page and size into range.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// WithDefaultSort returns p with sort set to def when the caller gave none.
func (p PageRequest) WithDefaultSort(def ...Order) PageRequest {
	if len(p.Sort) == 0 {
		p.Sort = def
	}
	return p
}

// ParseSort parses "property[,asc|desc]" values.
func ParseSort(values []string) ([]Order, error) {
	var out []Order
	for _, v := range values {
		parts := strings.Split(v, ",")
		prop := strings.TrimSpace(parts[0])
		if prop == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSort, v)
		}
		o := Order{Property: prop}
		if len(parts) > 1 {
			switch strings.ToLower(strings.TrimSpace(parts[len(parts)-1])) {
			case "desc":
				o.Desc = true
			case "asc", "":
			default:
				return nil, fmt.Errorf("%w: %q", ErrInvalidSort, v)
			}
		}
		out = append(out, o)
	}
	return out, nil
}

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Content []T
	Number  int
	Size    int
	Total   int64
}

// TotalPages returns the number of pages for Total rows of Size.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 1
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages()
}

// MapPage converts the content of a page, keeping its metadata. The
// result's content is never nil.
func MapPage[T, U any](p Page[T], f func([]T) []U) Page[U] {
	content := f(p.Content)
	if content == nil {
		content = []U{}
	}
	return Page[U]{Content: content, Number: p.Number, Size: p.Size, Total: p.Total}
}
