package ingest

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// listingHTML mirrors the portal's notice table: a header row, two tenders,
// a row without a link and a short row.
const listingHTML = `<html><body>
<table id="notices">
<tr><th>Title</th><th>Deadline</th><th>Published</th><th>Organization</th><th>Type</th><th>Reference</th><th>Country</th></tr>
<tr class="tender-row">
  <td><a href="/Public/Notice/1001?utm_source=mail#top">  Supply of Office   Chairs </a></td>
  <td>15-Mar-2026 17:00</td><td>01-Feb-2026</td><td>UNDP</td>
  <td>Invitation to bid</td><td>ITB/2026/01</td><td>Kenya</td>
</tr>
<tr class="tender-row">
  <td><a href="https://WWW.UNGM.org/Public/Notice/1002">Office furniture framework</a></td>
  <td>20-Mar-2026</td><td>02-Feb-2026</td><td>UNICEF</td>
  <td>Request for proposal</td><td>RFP-88</td><td>Peru</td>
</tr>
<tr class="tender-row">
  <td>Office cleaning services</td>
  <td>21-Mar-2026</td><td>03-Feb-2026</td><td>WFP</td>
  <td>Request for quotation</td><td>RFQ-9</td><td>Chad</td>
</tr>
<tr class="tender-row"><td><a href="/Public/Notice/1004">Office paper</a></td><td>22-Mar-2026</td></tr>
</table>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func fullRow(title, typ string) RawRow {
	return RawRow{
		Cells:     []string{title, "01-Jan-2027", "01-Dec-2026", "UNOPS", typ, "REF-1", "Ghana"},
		TitleLink: &Link{Text: title, Href: "https://www.ungm.org/Public/Notice/" + strings.ReplaceAll(title, " ", "-")},
	}
}
