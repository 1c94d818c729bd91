package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"feedback/internal/domain"
)

type compareFunc[E any] func(a, b *E) int

// collection is an id-keyed table of one record type. Owners are stored as
// bare ids; reads fill in the login from the users list.
type collection[E any] struct {
	db   *DB
	rows map[int64]E
	seq  int64

	id      func(*E) *int64
	owner   func(*E) **domain.UserRef
	date    func(*E) domain.Date // nil for undated records
	compare map[string]compareFunc[E]
}

func newCollection[E any](db *DB, id func(*E) *int64, owner func(*E) **domain.UserRef, date func(*E) domain.Date, fields map[string]compareFunc[E]) *collection[E] {
	c := &collection[E]{db: db, rows: make(map[int64]E), id: id, owner: owner, date: date, compare: fields}
	c.compare["id"] = func(a, b *E) int { return cmp.Compare(*id(a), *id(b)) }
	c.compare["userId"] = func(a, b *E) int { return cmp.Compare(ownerID(*owner(a)), ownerID(*owner(b))) }
	c.compare["userLogin"] = func(a, b *E) int { return cmp.Compare((*owner(a)).LoginOrEmpty(), (*owner(b)).LoginOrEmpty()) }
	return c
}

func compareDates(a, b domain.Date) int { return a.Compare(b.Time) }
func compareFloats(a, b float64) int { return cmp.Compare(a, b) }
func compareInts(a, b int) int { return cmp.Compare(a, b) }
func compareStrings(a, b string) int { return cmp.Compare(a, b) }

func ownerID(ref *domain.UserRef) int64 {
	if ref == nil {
		return 0
	}
	return ref.ID
}

// joined returns a copy of row with the owner's login resolved. Callers hold db.mu.
func (c *collection[E]) joined(row E) *E {
	if ref := *c.owner(&row); ref != nil {
		*c.owner(&row) = &domain.UserRef{ID: ref.ID, Login: c.db.loginOf(ref.ID)}
	}
	return &row
}

// Save inserts the record, or replaces the row with its id. An id that
// matches no row is inserted under a fresh id.
func (c *collection[E]) Save(ctx context.Context, e *E) (*E, error) {
	if e == nil {
		return nil, errors.New("save: nil record")
	}
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	row := *e
	id := c.id(&row)
	if _, ok := c.rows[*id]; *id == 0 || !ok {
		c.seq++
		*id = c.seq
	}
	if ref := *c.owner(&row); ref != nil {
		*c.owner(&row) = &domain.UserRef{ID: ref.ID}
	}
	c.rows[*id] = row
	return c.joined(row), nil
}

// FindByID returns the record, or nil when no row has the id.
func (c *collection[E]) FindByID(ctx context.Context, id int64) (*E, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	row, ok := c.rows[id]
	if !ok {
		return nil, nil
	}
	return c.joined(row), nil
}

// FindAll returns one page of rows visible in scope, plus the scoped total.
func (c *collection[E]) FindAll(ctx context.Context, scope domain.Scope, page domain.PageRequest) (domain.Page[E], error) {
	page = page.Normalize()
	for _, o := range page.Sort {
		if _, ok := c.compare[o.Property]; !ok {
			return domain.Page[E]{}, fmt.Errorf("%w: %s", domain.ErrInvalidSort, o.Property)
		}
	}
	if c.date == nil {
		scope.From, scope.To = domain.Date{}, domain.Date{}
	}

	c.db.mu.Lock()
	matched := make([]E, 0, len(c.rows))
	for _, row := range c.rows {
		var d domain.Date
		if c.date != nil {
			d = c.date(&row)
		}
		if scope.Includes(*c.owner(&row), d) {
			matched = append(matched, *c.joined(row))
		}
	}
	c.db.mu.Unlock()

	slices.SortFunc(matched, func(a, b E) int {
		for _, o := range page.Sort {
			r := c.compare[o.Property](&a, &b)
			if o.Desc {
				r = -r
			}
			if r != 0 {
				return r
			}
		}
		return cmp.Compare(*c.id(&a), *c.id(&b))
	})

	total := int64(len(matched))
	start := min(page.Offset(), len(matched))
	end := min(start+page.Size, len(matched))
	return domain.Page[E]{
		Content: slices.Clone(matched[start:end]),
		Number:  page.Page,
		Size:    page.Size,
		Total:   total,
	}, nil
}

// Delete removes the row. Absent ids are not an error.
func (c *collection[E]) Delete(ctx context.Context, id int64) error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	delete(c.rows, id)
	return nil
}

// Count returns the number of rows.
func (c *collection[E]) Count(ctx context.Context) (int64, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	return int64(len(c.rows)), nil
}
