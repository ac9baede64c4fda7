package main

import (
	"context"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/david/tender-finder/internal/config"
	"github.com/david/tender-finder/internal/db"
	"github.com/david/tender-finder/internal/reconcile"
)

// Prints the shortlist currently held by the postgres backend.
func main() {
	cfg, err := config.Load(os.Getenv("TENDERBOT_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	rows, err := db.NewStore(pool).ListRows(ctx)
	if err != nil {
		log.Fatal(err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	header := table.Row{}
	for _, c := range reconcile.Columns {
		header = append(header, c)
	}
	t.AppendHeader(header)

	for _, r := range rows {
		row := table.Row{}
		for _, v := range r {
			row = append(row, v)
		}
		t.AppendRow(row)
	}
	t.Render()
}
