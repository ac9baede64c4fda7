package ingest

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// ExtractRows walks every row of a listing page. Rows are returned as found;
// deciding which of them are tenders is the normalizer's job.
func ExtractRows(doc *goquery.Document, sel RowSelectors, pageURL string) []RawRow {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	var rows []RawRow
	doc.Find(sel.row()).Each(func(_ int, s *goquery.Selection) {
		rows = append(rows, rowFromSelection(s, sel.cell(), base))
	})
	return rows
}

func rowFromSelection(s *goquery.Selection, cellSelector string, base *url.URL) RawRow {
	cells := s.Find(cellSelector)
	row := RawRow{Cells: make([]string, 0, cells.Length())}

	cells.Each(func(_ int, c *goquery.Selection) {
		row.Cells = append(row.Cells, selectionText(c))
	})

	if cells.Length() == 0 {
		return row
	}

	anchor := cells.First().Find("a").First()
	if anchor.Length() == 0 {
		return row
	}

	link := &Link{Text: selectionText(anchor)}
	if href, ok := anchor.Attr("href"); ok {
		link.Href = resolveURL(base, href)
	}
	row.TitleLink = link
	return row
}
