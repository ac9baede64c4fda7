package rank

import (
	"strings"

	"github.com/david/tender-finder/internal/models"
)

// Procurement types that usually attract price-only competition.
var easyTypes = []string{"Request for quotation", "Invitation to bid"}

// Procurement types that need a technical proposal.
var moderateTypes = []string{"Request for proposal"}

// Classify maps the portal's procurement type text to a difficulty.
// Matching is a case-sensitive substring test; easy types are checked first.
// Anything unrecognized, including empty text, is Complex.
func Classify(procurementType string) models.Difficulty {
	if containsAny(procurementType, easyTypes) {
		return models.Easy
	}
	if containsAny(procurementType, moderateTypes) {
		return models.Moderate
	}
	return models.Complex
}

// Annotate returns a copy of t with its difficulty set from its type.
func Annotate(t models.Tender) models.Tender {
	t.Difficulty = Classify(t.Type)
	return t
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
