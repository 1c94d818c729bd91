package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"feedback/internal/domain"
)

// table is a Repository over one record table. Every table has a BIGSERIAL
// id and a nullable user_id; reads join users for the owner's login.
type table[E any] struct {
	db       *DB
	name     string
	columns  []string
	dated    bool
	sortable map[string]string

	id     func(*E) *int64
	owner  func(*E) **domain.UserRef
	values func(*E) []any
	dest   func(*E) []any
}

// sortColumns maps API property names to SQL expressions. id and the
// owner's login are sortable everywhere.
func sortColumns(props map[string]string) map[string]string {
	out := map[string]string{
		"id":        "t.id",
		"userId":    "t.user_id",
		"userLogin": "u.login",
	}
	for prop, col := range props {
		out[prop] = "t." + col
	}
	return out
}

type scanner interface {
	Scan(dest ...any) error
}

func (t *table[E]) selectSQL() string {
	cols := make([]string, 0, len(t.columns)+3)
	cols = append(cols, "t.id")
	for _, c := range t.columns {
		cols = append(cols, "t."+c)
	}
	cols = append(cols, "t.user_id", "u.login")
	return "SELECT " + strings.Join(cols, ", ") + " FROM " + t.name + " t LEFT JOIN users u ON u.id = t.user_id"
}

func (t *table[E]) insertSQL() string {
	cols := append(append([]string{}, t.columns...), "user_id")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		t.name, strings.Join(cols, ", "), placeholders(1, len(cols)))
}

func (t *table[E]) updateSQL() string {
	sets := make([]string, 0, len(t.columns)+1)
	for i, c := range append(append([]string{}, t.columns...), "user_id") {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+1))
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", t.name, strings.Join(sets, ", "), len(sets)+1)
}

func placeholders(from, n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ps, ", ")
}

func (t *table[E]) scan(row scanner) (*E, error) {
	var (
		e      E
		userID sql.NullInt64
		login  sql.NullString
	)
	dest := append([]any{t.id(&e)}, t.dest(&e)...)
	dest = append(dest, &userID, &login)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if userID.Valid {
		*t.owner(&e) = &domain.UserRef{ID: userID.Int64, Login: login.String}
	}
	return &e, nil
}

func ownerArg(ref *domain.UserRef) any {
	if ref == nil {
		return nil
	}
	return ref.ID
}

// Save inserts the record, or updates it when it carries an id. An id that
// matches no row is inserted under a fresh id. The stored row is re-read in
// the same transaction so the owner's login is populated.
func (t *table[E]) Save(ctx context.Context, e *E) (*E, error) {
	var saved *E
	err := withTx(ctx, t.db.sql, func(ctx context.Context, tx dbtx) error {
		id := *t.id(e)
		args := append(t.values(e), ownerArg(*t.owner(e)))

		if id != 0 {
			res, err := tx.ExecContext(ctx, t.updateSQL(), append(args, id)...)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				id = 0
			}
		}
		if id == 0 {
			if err := tx.QueryRowContext(ctx, t.insertSQL(), args...).Scan(&id); err != nil {
				return err
			}
		}

		var err error
		saved, err = t.findByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", t.name, err)
	}
	return saved, nil
}

// FindByID returns the record, or nil when no row has the id.
func (t *table[E]) FindByID(ctx context.Context, id int64) (*E, error) {
	e, err := t.findByID(ctx, t.db.sql, id)
	if err != nil {
		return nil, fmt.Errorf("find %s %d: %w", t.name, id, err)
	}
	return e, nil
}

func (t *table[E]) findByID(ctx context.Context, q dbtx, id int64) (*E, error) {
	e, err := t.scan(q.QueryRowContext(ctx, t.selectSQL()+" WHERE t.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

// FindAll returns one page of rows visible in scope, plus the scoped total.
func (t *table[E]) FindAll(ctx context.Context, scope domain.Scope, page domain.PageRequest) (domain.Page[E], error) {
	page = page.Normalize()
	orderBy, err := t.orderBy(page.Sort)
	if err != nil {
		return domain.Page[E]{}, err
	}
	where, args := t.where(scope)

	var total int64
	countSQL := "SELECT COUNT(*) FROM " + t.name + " t" + where
	if err := t.db.sql.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return domain.Page[E]{}, fmt.Errorf("count %s: %w", t.name, err)
	}

	q := t.selectSQL() + where + orderBy + fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	rows, err := t.db.sql.QueryContext(ctx, q, append(args, page.Size, page.Offset())...)
	if err != nil {
		return domain.Page[E]{}, fmt.Errorf("list %s: %w", t.name, err)
	}
	defer rows.Close()

	content := make([]E, 0, page.Size)
	for rows.Next() {
		e, err := t.scan(rows)
		if err != nil {
			return domain.Page[E]{}, fmt.Errorf("list %s: %w", t.name, err)
		}
		content = append(content, *e)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[E]{}, fmt.Errorf("list %s: %w", t.name, err)
	}
	return domain.Page[E]{Content: content, Number: page.Page, Size: page.Size, Total: total}, nil
}

func (t *table[E]) where(scope domain.Scope) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if scope.OwnerID != nil {
		add("t.user_id = $%d", *scope.OwnerID)
	}
	if t.dated && !scope.From.IsZero() {
		add("t.date >= $%d", scope.From)
	}
	if t.dated && !scope.To.IsZero() {
		add("t.date <= $%d", scope.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (t *table[E]) orderBy(sort []domain.Order) (string, error) {
	if len(sort) == 0 {
		return " ORDER BY t.id", nil
	}
	parts := make([]string, 0, len(sort))
	for _, o := range sort {
		col, ok := t.sortable[o.Property]
		if !ok {
			return "", fmt.Errorf("%w: %s", domain.ErrInvalidSort, o.Property)
		}
		if o.Desc {
			col += " DESC NULLS LAST"
		}
		parts = append(parts, col)
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// Delete removes the row. Absent ids are not an error.
func (t *table[E]) Delete(ctx context.Context, id int64) error {
	if _, err := t.db.sql.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete %s %d: %w", t.name, id, err)
	}
	return nil
}

// Count returns the number of rows in the table.
func (t *table[E]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := t.db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.name).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.name, err)
	}
	return n, nil
}
