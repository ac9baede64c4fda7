package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// RodFetcher renders the portal in headless Chrome so rows built by
// client-side scripts are present before extraction.
type RodFetcher struct {
	Selectors RowSelectors
	// WaitSelector must match before the page is read. Empty means only
	// wait for the load event.
	WaitSelector string
	WaitTimeout  time.Duration
	UserAgent    string
	Bin          string // Chrome binary; empty lets the launcher find or download one
	Headless     bool
	Log          *zap.Logger
}

func NewRodFetcher(sel RowSelectors, waitSelector string, waitTimeout time.Duration, log *zap.Logger) *RodFetcher {
	if log == nil {
		log = zap.NewNop()
	}
	if waitTimeout <= 0 {
		waitTimeout = 10 * time.Second
	}
	return &RodFetcher{
		Selectors:    sel,
		WaitSelector: waitSelector,
		WaitTimeout:  waitTimeout,
		UserAgent:    defaultUserAgent,
		Headless:     true,
		Log:          log,
	}
}

func (f *RodFetcher) launcher() *launcher.Launcher {
	l := launcher.New().
		Headless(f.Headless).
		NoSandbox(true).
		Set("disable-dev-shm-usage")
	if f.Bin != "" {
		l = l.Bin(f.Bin)
	}
	return l
}

// Fetch implements Fetcher. A wait selector that never appears within
// WaitTimeout is reported as a FetchError.
func (f *RodFetcher) Fetch(ctx context.Context, portalURL string) ([]RawRow, error) {
	html, err := f.render(ctx, portalURL)
	if err != nil {
		return nil, &FetchError{URL: portalURL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &FetchError{URL: portalURL, Err: fmt.Errorf("parse rendered page: %w", err)}
	}
	return ExtractRows(doc, f.Selectors, portalURL), nil
}

func (f *RodFetcher) render(ctx context.Context, portalURL string) (string, error) {
	l := f.launcher()
	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launch browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			f.Log.Debug("close browser", zap.Error(err))
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}

	if f.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.UserAgent}); err != nil {
			return "", fmt.Errorf("set user agent: %w", err)
		}
	}

	f.Log.Debug("rendering portal", zap.String("url", portalURL))
	if err := page.Navigate(portalURL); err != nil {
		return "", fmt.Errorf("navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load: %w", err)
	}

	if f.WaitSelector != "" {
		if _, err := page.Timeout(f.WaitTimeout).Element(f.WaitSelector); err != nil {
			return "", fmt.Errorf("wait for %q: %w", f.WaitSelector, err)
		}
	}

	return page.HTML()
}
