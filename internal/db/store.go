package db

import (
	"context"
	"fmt"

	"github.com/david/tender-finder/internal/reconcile"
)

// shortlistCols mirrors reconcile.Columns.
const shortlistCols = `title, deadline, published, organization, type,
	reference, country, status, difficulty, url`

// Store keeps the shortlist in the shortlist_rows table. The header is
// implicit: it counts as row 1 so the table behaves like a sheet.
type Store struct {
	db Querier
}

func NewStore(db Querier) *Store {
	return &Store{db: db}
}

// RowCount implements reconcile.Table.
func (s *Store) RowCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM shortlist_rows").Scan(&n); err != nil {
		return 0, fmt.Errorf("count shortlist rows: %w", err)
	}
	return n + 1, nil
}

// ClearDataRows implements reconcile.Table.
func (s *Store) ClearDataRows(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, "DELETE FROM shortlist_rows"); err != nil {
		return fmt.Errorf("clear shortlist rows: %w", err)
	}
	return nil
}

// AppendRow implements reconcile.Table.
func (s *Store) AppendRow(ctx context.Context, values []string) error {
	if len(values) != len(reconcile.Columns) {
		return fmt.Errorf("append shortlist row: got %d values, want %d", len(values), len(reconcile.Columns))
	}

	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO shortlist_rows (position, `+shortlistCols+`)
		VALUES ((SELECT COALESCE(MAX(position), 1) + 1 FROM shortlist_rows),
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("append shortlist row: %w", err)
	}
	return nil
}

// ListRows returns the data rows in sheet order.
func (s *Store) ListRows(ctx context.Context) ([][]string, error) {
	rows, err := s.db.Query(ctx, "SELECT "+shortlistCols+" FROM shortlist_rows ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("list shortlist rows: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		vals := make([]string, len(reconcile.Columns))
		dest := make([]any, len(vals))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan shortlist row: %w", err)
		}
		out = append(out, vals)
	}
	return out, rows.Err()
}
