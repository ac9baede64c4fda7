package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david/tender-finder/internal/config"
	"github.com/david/tender-finder/internal/ingest"
	"github.com/david/tender-finder/internal/reconcile"
)

type countingTable struct {
	rows [][]string
}

func (c *countingTable) RowCount(context.Context) (int, error) { return len(c.rows) + 1, nil }
func (c *countingTable) ClearDataRows(context.Context) error   { c.rows = nil; return nil }
func (c *countingTable) AppendRow(_ context.Context, v []string) error {
	c.rows = append(c.rows, v)
	return nil
}

func TestLazyTableOpensOnce(t *testing.T) {
	opened, closed := 0, 0
	inner := &countingTable{}
	lt := &lazyTable{open: func(context.Context) (reconcile.Table, func(), error) {
		opened++
		return inner, func() { closed++ }, nil
	}}

	ctx := context.Background()
	n, err := lt.RowCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, lt.AppendRow(ctx, []string{"a"}))
	require.NoError(t, lt.ClearDataRows(ctx))
	lt.Close()

	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, closed)
}

func TestLazyTableNeverOpenedNeverClosed(t *testing.T) {
	lt := &lazyTable{open: func(context.Context) (reconcile.Table, func(), error) {
		t.Fatal("store should not be opened")
		return nil, nil, nil
	}}
	lt.Close()
}

func TestLazyTableOpenFailure(t *testing.T) {
	boom := &reconcile.StoreError{Op: "connect", Err: reconcile.ErrStoreAuth}
	lt := &lazyTable{open: func(context.Context) (reconcile.Table, func(), error) {
		return nil, nil, boom
	}}

	_, err := lt.RowCount(context.Background())
	assert.ErrorIs(t, err, reconcile.ErrStoreAuth)
	assert.True(t, errors.Is(lt.AppendRow(context.Background(), nil), reconcile.ErrStoreAuth))
}

func TestNewFetcherPicksRenderer(t *testing.T) {
	pc := config.PortalConfig{
		Renderer:              config.RendererColly,
		RowSelector:           "tr",
		CellSelector:          "td",
		RequestTimeoutSeconds: 5,
		UserAgent:             "test-agent",
	}
	f, ok := newFetcher(pc, nil).(*ingest.CollyFetcher)
	require.True(t, ok)
	assert.Equal(t, "test-agent", f.UserAgent)
	assert.Equal(t, "tr", f.Selectors.Row)

	pc.Renderer = config.RendererRod
	pc.WaitSelector = ".tender-row"
	pc.ChromeBin = "/usr/bin/chromium"
	r, ok := newFetcher(pc, nil).(*ingest.RodFetcher)
	require.True(t, ok)
	assert.Equal(t, ".tender-row", r.WaitSelector)
	assert.Equal(t, "/usr/bin/chromium", r.Bin)
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "limit", "dry-run", "renderer"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
