package ingest

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
)

var strictPolicy = bluemonday.StrictPolicy()

// normalizeSpace collapses multiple spaces into one and trims the string.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// selectionText returns the visible text of s. Tags are stripped from the
// element's inner HTML; escaped characters such as &lt; come back literally.
func selectionText(s *goquery.Selection) string {
	inner, err := s.Html()
	if err != nil {
		return s.Text()
	}
	return html.UnescapeString(strictPolicy.Sanitize(inner))
}

// mergeUniqueFold appends items to dst, skipping blanks and entries already
// present under case folding.
func mergeUniqueFold(dst []string, items []string) []string {
	caser := cases.Fold()
	seen := make(map[string]struct{}, len(dst))
	for _, v := range dst {
		k := caser.String(strings.TrimSpace(v))
		if k != "" {
			seen[k] = struct{}{}
		}
	}

	for _, v := range items {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		k := caser.String(v)
		if _, ok := seen[k]; ok {
			continue
		}
		dst = append(dst, v)
		seen[k] = struct{}{}
	}

	return dst
}
