package ingest

import (
	"strings"

	"golang.org/x/text/cases"
)

// Keywords is the set of interests a tender title must mention to be kept.
type Keywords struct {
	terms  []string // as configured
	folded []string
}

// NewKeywords builds the relevance gate. Blank and duplicate terms
// (compared case-insensitively) are dropped.
func NewKeywords(terms []string) Keywords {
	kw := Keywords{terms: mergeUniqueFold(nil, terms)}
	caser := cases.Fold()
	for _, t := range kw.terms {
		kw.folded = append(kw.folded, caser.String(t))
	}
	return kw
}

// Match reports whether title contains at least one term, ignoring case.
func (k Keywords) Match(title string) bool {
	if len(k.folded) == 0 {
		return false
	}
	t := cases.Fold().String(title)
	for _, term := range k.folded {
		if strings.Contains(t, term) {
			return true
		}
	}
	return false
}

// Terms returns the configured terms after deduplication.
func (k Keywords) Terms() []string {
	return append([]string(nil), k.terms...)
}

func (k Keywords) Len() int { return len(k.terms) }
