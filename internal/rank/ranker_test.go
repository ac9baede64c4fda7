package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david/tender-finder/internal/models"
)

func tender(title string, d models.Difficulty) models.Tender {
	return models.Tender{Title: title, Difficulty: d}
}

func titles(ts []models.Tender) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Title)
	}
	return out
}

func TestShortlist_StableByDifficulty(t *testing.T) {
	in := []models.Tender{
		tender("C1", models.Complex),
		tender("E1", models.Easy),
		tender("M1", models.Moderate),
		tender("E2", models.Easy),
	}

	got := Shortlist(in, 10)

	assert.Equal(t, []string{"E1", "E2", "M1", "C1"}, titles(got))
	// input order untouched
	assert.Equal(t, []string{"C1", "E1", "M1", "E2"}, titles(in))
}

func TestShortlist_Limit(t *testing.T) {
	in := []models.Tender{
		tender("C1", models.Complex),
		tender("E1", models.Easy),
		tender("M1", models.Moderate),
		tender("E2", models.Easy),
	}

	tests := []struct {
		name     string
		limit    int
		expected []string
	}{
		{name: "truncates", limit: 2, expected: []string{"E1", "E2"}},
		{name: "exact", limit: 4, expected: []string{"E1", "E2", "M1", "C1"}},
		{name: "zero", limit: 0, expected: []string{}},
		{name: "negative treated as zero", limit: -3, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, titles(Shortlist(in, tt.limit)))
		})
	}
}

func TestShortlist_Empty(t *testing.T) {
	got := Shortlist(nil, 5)
	require.NotNil(t, got)
	assert.Empty(t, got)

	got = Shortlist([]models.Tender{}, 5)
	assert.Empty(t, got)
}

func TestShortlist_ManyEqualKeepsOrder(t *testing.T) {
	var in []models.Tender
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		in = append(in, tender(name, models.Moderate))
	}
	in = append(in, tender("easy", models.Easy))

	got := Shortlist(in, 5)

	assert.Equal(t, []string{"easy", "a", "b", "c", "d"}, titles(got))
}
