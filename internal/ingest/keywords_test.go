package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywords_Match(t *testing.T) {
	kw := NewKeywords([]string{"office furniture", "Office Supplies", "office chairs"})

	tests := []struct {
		title    string
		expected bool
	}{
		{title: "Supply of OFFICE FURNITURE for Nairobi", expected: true},
		{title: "office supplies and stationery", expected: true},
		{title: "Ergonomic Office Chairs", expected: true},
		{title: "Office cleaning", expected: false},
		{title: "Vehicles", expected: false},
		{title: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, kw.Match(tt.title))
		})
	}
}

func TestKeywords_OfficeAsPlainEntry(t *testing.T) {
	kw := NewKeywords([]string{"office"})
	assert.True(t, kw.Match("Head Office refurbishment"))
	assert.False(t, kw.Match("Laboratory reagents"))
}

func TestNewKeywords_DedupesAndDropsBlanks(t *testing.T) {
	kw := NewKeywords([]string{"office", " Office ", "", "  ", "chairs"})

	assert.Equal(t, []string{"office", "chairs"}, kw.Terms())
	assert.Equal(t, 2, kw.Len())
}

func TestNewKeywords_DedupesUnderCaseFolding(t *testing.T) {
	kw := NewKeywords([]string{"straße", "STRASSE", "Büro", "BÜRO"})

	assert.Equal(t, []string{"straße", "Büro"}, kw.Terms())
	assert.True(t, kw.Match("Strasse lighting"))
}

func TestKeywords_EmptyMatchesNothing(t *testing.T) {
	kw := NewKeywords(nil)
	assert.False(t, kw.Match("office"))
}
