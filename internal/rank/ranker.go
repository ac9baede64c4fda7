package rank

import (
	"cmp"
	"slices"

	"github.com/david/tender-finder/internal/models"
)

// Shortlist orders tenders easiest first and keeps at most limit of them.
// Tenders with the same difficulty keep their input order. The input slice
// is not modified.
func Shortlist(tenders []models.Tender, limit int) []models.Tender {
	if limit < 0 {
		limit = 0
	}

	sorted := slices.Clone(tenders)
	slices.SortStableFunc(sorted, func(a, b models.Tender) int {
		return cmp.Compare(a.Difficulty.Score(), b.Difficulty.Score())
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	if sorted == nil {
		return []models.Tender{}
	}
	return sorted
}
