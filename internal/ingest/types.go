package ingest

import (
	"context"
	"errors"
	"fmt"
)

// Link is the anchor found in a row's first cell.
type Link struct {
	Text string
	Href string // resolved against the page URL; empty when the anchor has none
}

// RawRow is one listing row as the portal rendered it, before any validation.
type RawRow struct {
	Cells     []string
	TitleLink *Link // nil when the first cell carries no anchor
}

// HasTitleLink reports whether the first cell contains an anchor.
func (r RawRow) HasTitleLink() bool {
	return r.TitleLink != nil
}

// RowSelectors tells the extractors where rows and cells live in the page.
type RowSelectors struct {
	Row  string
	Cell string
}

func (s RowSelectors) row() string {
	if s.Row == "" {
		return "tr"
	}
	return s.Row
}

func (s RowSelectors) cell() string {
	if s.Cell == "" {
		return "td"
	}
	return s.Cell
}

// Fetcher retrieves the listing rows of a portal page once any client-side
// rendering has finished. A failed fetch returns a *FetchError.
type Fetcher interface {
	Fetch(ctx context.Context, portalURL string) ([]RawRow, error)
}

// FetchError reports a rendering or network failure for a portal page.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsFetchError reports whether err came from a Fetcher.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

var (
	ErrTooFewCells = errors.New("row has fewer than 7 cells")
	ErrNoTitleLink = errors.New("first cell has no link")
	ErrEmptyTitle  = errors.New("title link has no text")
)

// ParseError marks a row that could not become a Tender.
type ParseError struct {
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Index, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
