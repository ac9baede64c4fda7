// Package reconcile replaces the rows of an external table with the
// current shortlist.
package reconcile

import (
	"context"
	"errors"
	"fmt"
)

// Table is a remote sheet whose first row holds headers and whose data
// starts on row 2.
type Table interface {
	// RowCount returns the number of used rows, header included.
	RowCount(ctx context.Context) (int, error)
	// ClearDataRows removes every row after the header.
	ClearDataRows(ctx context.Context) error
	// AppendRow adds one row after the last used row.
	AppendRow(ctx context.Context, values []string) error
}

// ErrStoreAuth marks failures to authenticate against the store.
var ErrStoreAuth = errors.New("store authentication failed")

// StoreError wraps any failure talking to the store.
type StoreError struct {
	Op  string // count, clear, append, auth, connect
	Row int    // sheet row number for append failures
	Err error
}

func (e *StoreError) Error() string {
	if e.Op == "append" && e.Row > 0 {
		return fmt.Sprintf("store %s row %d: %v", e.Op, e.Row, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// AuthError builds the StoreError returned when credentials are rejected.
func AuthError(err error) *StoreError {
	return &StoreError{Op: "auth", Err: fmt.Errorf("%w: %v", ErrStoreAuth, err)}
}
