package reconcile

import (
	"context"
	"errors"

	"github.com/david/tender-finder/internal/models"
)

// Columns is the header row every table is expected to carry.
var Columns = []string{
	"Title", "Deadline", "Published", "Organization", "Type",
	"Reference", "Country", "Status", "Difficulty", "URL",
}

// Row renders a tender in column order. Empty fields stay empty.
func Row(t models.Tender) []string {
	return []string{
		t.Title,
		t.Deadline,
		t.Published,
		t.Organization,
		t.Type,
		t.Reference,
		t.Country,
		t.Status,
		t.Difficulty.String(),
		t.URL,
	}
}

// Reconcile discards every data row of table and appends one row per
// tender, in order. It returns how many rows were appended. The first
// failure stops the run and leaves the table as it is; nothing is rolled back.
func Reconcile(ctx context.Context, table Table, tenders []models.Tender) (int, error) {
	used, err := table.RowCount(ctx)
	if err != nil {
		return 0, asStoreError("count", 0, err)
	}

	if used > 1 {
		if err := table.ClearDataRows(ctx); err != nil {
			return 0, asStoreError("clear", 0, err)
		}
	}

	for i, t := range tenders {
		if err := table.AppendRow(ctx, Row(t)); err != nil {
			return i, asStoreError("append", i+2, err)
		}
	}
	return len(tenders), nil
}

func asStoreError(op string, row int, err error) error {
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Row: row, Err: err}
}
