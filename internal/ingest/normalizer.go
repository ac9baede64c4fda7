package ingest

import (
	"iter"

	"go.uber.org/zap"

	"github.com/david/tender-finder/internal/models"
)

// Column positions of the portal listing. Nothing outside this file should
// know about them.
const (
	colTitle = iota
	colDeadline
	colPublished
	colOrganization
	colType
	colReference
	colCountry

	minCells
)

// FromRaw converts a RawRow into a Tender. Rows with fewer than seven cells
// or without a titled link in the first cell are rejected, never repaired.
func FromRaw(raw RawRow) (models.Tender, error) {
	if len(raw.Cells) < minCells {
		return models.Tender{}, ErrTooFewCells
	}
	if !raw.HasTitleLink() {
		return models.Tender{}, ErrNoTitleLink
	}

	title := normalizeSpace(raw.TitleLink.Text)
	if title == "" {
		return models.Tender{}, ErrEmptyTitle
	}

	t := models.Tender{
		Title:        title,
		Deadline:     cell(raw.Cells, colDeadline),
		Published:    cell(raw.Cells, colPublished),
		Organization: cell(raw.Cells, colOrganization),
		Type:         cell(raw.Cells, colType),
		Reference:    cell(raw.Cells, colReference),
		Country:      cell(raw.Cells, colCountry),
		Status:       models.StatusActive,
		URL:          models.Unknown,
	}
	if raw.TitleLink.Href != "" {
		t.URL = raw.TitleLink.Href
	}
	return t, nil
}

func cell(cells []string, i int) string {
	if i >= len(cells) {
		return models.Unknown
	}
	return normalizeSpace(cells[i])
}

// NormalizeStats counts what happened to the rows of one pass.
type NormalizeStats struct {
	Rows       int
	Malformed  int
	Irrelevant int
	Kept       int
}

// Normalizer turns raw rows into relevant tenders.
type Normalizer struct {
	Keywords Keywords
	Log      *zap.Logger
	Stats    NormalizeStats
}

func NewNormalizer(kw Keywords, log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{Keywords: kw, Log: log}
}

// Tenders lazily yields one Tender per valid row whose title matches a
// keyword. Malformed rows are logged and skipped; off-topic ones are dropped
// silently. Stats is updated as the sequence is consumed.
func (n *Normalizer) Tenders(rows []RawRow) iter.Seq[models.Tender] {
	return func(yield func(models.Tender) bool) {
		for i, raw := range rows {
			n.Stats.Rows++

			t, err := FromRaw(raw)
			if err != nil {
				n.Stats.Malformed++
				n.Log.Debug("skipping row", zap.Error(&ParseError{Index: i, Err: err}))
				continue
			}

			if !n.Keywords.Match(t.Title) {
				n.Stats.Irrelevant++
				continue
			}

			n.Stats.Kept++
			if !yield(t) {
				return
			}
		}
	}
}
