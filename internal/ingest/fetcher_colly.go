package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// CollyFetcher reads listing rows from server-rendered HTML. It performs a
// single request per run with no retries.
type CollyFetcher struct {
	Selectors      RowSelectors
	UserAgent      string
	RequestTimeout time.Duration
	MaxBodySize    int // bytes, 0 = unlimited
	DetectCharset  bool
	Log            *zap.Logger
}

// NewCollyFetcher creates a CollyFetcher with sensible defaults.
func NewCollyFetcher(sel RowSelectors, log *zap.Logger) *CollyFetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &CollyFetcher{
		Selectors:      sel,
		UserAgent:      defaultUserAgent,
		RequestTimeout: 30 * time.Second,
		MaxBodySize:    10 * 1024 * 1024, // 10MB
		DetectCharset:  true,
		Log:            log,
	}
}

// buildCollector creates a configured Colly collector.
func (f *CollyFetcher) buildCollector(ctx context.Context) *colly.Collector {
	opts := []colly.CollectorOption{
		colly.UserAgent(f.UserAgent),
		colly.MaxBodySize(f.MaxBodySize),
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	}
	if f.DetectCharset {
		opts = append(opts, colly.DetectCharset())
	}

	c := colly.NewCollector(opts...)
	c.SetRequestTimeout(f.RequestTimeout)
	return c
}

// Fetch implements Fetcher.
func (f *CollyFetcher) Fetch(ctx context.Context, portalURL string) ([]RawRow, error) {
	c := f.buildCollector(ctx)

	var rows []RawRow
	var fetchErr error
	cellSel := f.Selectors.cell()

	c.OnHTML(f.Selectors.row(), func(e *colly.HTMLElement) {
		rows = append(rows, rowFromSelection(e.DOM, cellSel, e.Request.URL))
	})

	c.OnRequest(func(r *colly.Request) {
		f.Log.Debug("visiting portal", zap.String("url", r.URL.String()))
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			err = fmt.Errorf("status %d: %w", r.StatusCode, err)
		}
		fetchErr = err
	})

	visitErr := c.Visit(portalURL)
	c.Wait()

	// OnError carries the status code, so prefer it over Visit's error.
	if fetchErr != nil {
		return nil, &FetchError{URL: portalURL, Err: fetchErr}
	}
	if visitErr != nil {
		return nil, &FetchError{URL: portalURL, Err: visitErr}
	}
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{URL: portalURL, Err: err}
	}
	return rows, nil
}
