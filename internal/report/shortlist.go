// Package report prints the shortlist for whoever runs the job.
package report

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/david/tender-finder/internal/models"
)

const maxTitleWidth = 60

// RenderShortlist writes the shortlist as a table, easiest first.
func RenderShortlist(w io.Writer, tenders []models.Tender) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Title", "Deadline", "Organization", "Type", "Difficulty", "URL"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Title", WidthMax: maxTitleWidth, WidthMaxEnforcer: text.WrapSoft},
	})

	for i, tender := range tenders {
		t.AppendRow(table.Row{
			i + 1,
			tender.Title,
			tender.Deadline,
			tender.Organization,
			tender.Type,
			tender.Difficulty.String(),
			tender.URL,
		})
	}

	t.AppendFooter(table.Row{"", "", "", "", "", "Total", len(tenders)})
	t.Render()
}
