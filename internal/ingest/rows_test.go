package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRows(t *testing.T) {
	doc := mustDoc(t, listingHTML)

	rows := ExtractRows(doc, RowSelectors{}, "https://www.ungm.org/Public/Notice")

	require.Len(t, rows, 5)

	header := rows[0]
	assert.Empty(t, header.Cells, "header uses th cells")
	assert.False(t, header.HasTitleLink())

	first := rows[1]
	require.Len(t, first.Cells, 7)
	require.True(t, first.HasTitleLink())
	assert.Equal(t, "  Supply of Office   Chairs ", first.TitleLink.Text)
	assert.Equal(t, "https://www.ungm.org/Public/Notice/1001", first.TitleLink.Href)
	assert.Equal(t, "Invitation to bid", first.Cells[4])

	assert.Equal(t, "https://www.ungm.org/Public/Notice/1002", rows[2].TitleLink.Href)

	assert.False(t, rows[3].HasTitleLink())
	assert.Len(t, rows[3].Cells, 7)

	assert.Len(t, rows[4].Cells, 2)
}

func TestExtractRows_CustomSelectors(t *testing.T) {
	html := `<div class="list">
<div class="tender-row"><span class="c"><a href="n/7">Office desks</a></span><span class="c">x</span></div>
<div class="tender-row"><span class="c">no link</span></div>
</div>`

	rows := ExtractRows(mustDoc(t, html), RowSelectors{Row: ".tender-row", Cell: ".c"}, "https://portal.example/notices/")

	require.Len(t, rows, 2)
	require.True(t, rows[0].HasTitleLink())
	assert.Equal(t, "https://portal.example/notices/n/7", rows[0].TitleLink.Href)
	assert.Equal(t, []string{"Office desks", "x"}, rows[0].Cells)
	assert.False(t, rows[1].HasTitleLink())
}

func TestExtractRows_CellText(t *testing.T) {
	html := `<table><tr>
<td><a href="/n/9">Office supplies &lt;Lot A&gt; &amp; chairs</a></td>
<td>Request for <b>quotation</b></td>
<td>O&#39;Brien &lt;b&gt;</td>
</tr></table>`

	rows := ExtractRows(mustDoc(t, html), RowSelectors{}, "https://www.ungm.org/")

	require.Len(t, rows, 1)
	require.True(t, rows[0].HasTitleLink())
	assert.Equal(t, "Office supplies <Lot A> & chairs", rows[0].TitleLink.Text)
	assert.Equal(t, []string{
		"Office supplies <Lot A> & chairs",
		"Request for quotation",
		"O'Brien <b>",
	}, rows[0].Cells)
}

func TestExtractRows_AnchorWithoutHref(t *testing.T) {
	html := `<table><tr><td><a>Office chairs</a></td></tr></table>`

	rows := ExtractRows(mustDoc(t, html), RowSelectors{}, "https://www.ungm.org/")

	require.Len(t, rows, 1)
	require.True(t, rows[0].HasTitleLink())
	assert.Equal(t, "", rows[0].TitleLink.Href)
}
