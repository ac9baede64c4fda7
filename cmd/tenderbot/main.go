package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/david/tender-finder/internal/config"
	"github.com/david/tender-finder/internal/db"
	"github.com/david/tender-finder/internal/gsheets"
	"github.com/david/tender-finder/internal/ingest"
	"github.com/david/tender-finder/internal/logger"
	"github.com/david/tender-finder/internal/reconcile"
	"github.com/david/tender-finder/internal/report"
)

type flags struct {
	configPath string
	limit      int
	dryRun     bool
	renderer   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "tenderbot",
		Short:         "Shortlist the easiest matching tenders and sync them to the review sheet",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			if cmd.Flags().Changed("limit") {
				cfg.Shortlist.Limit = f.limit
			}
			if cmd.Flags().Changed("renderer") {
				cfg.Portal.Renderer = f.renderer
			}
			if f.dryRun {
				cfg.DryRun = true
			}
			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().IntVar(&f.limit, "limit", 10, "maximum number of tenders in the shortlist")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print the shortlist without updating the store")
	cmd.Flags().StringVar(&f.renderer, "renderer", config.RendererRod, "page renderer: rod or colly")
	return cmd
}

func run(parent context.Context, cfg *config.Config) error {
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer func() { _ = log.Sync() }()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var table reconcile.Table
	if !cfg.DryRun {
		lt := &lazyTable{open: func(ctx context.Context) (reconcile.Table, func(), error) {
			return openTable(ctx, cfg.Store, log)
		}}
		defer lt.Close()
		table = lt
	}

	p := ingest.NewPipeline(
		newFetcher(cfg.Portal, log),
		table,
		cfg.Portal.URL,
		ingest.NewKeywords(cfg.Keywords),
		cfg.Shortlist.Limit,
		log,
	)
	p.DryRun = cfg.DryRun

	out := p.Run(ctx)
	if len(out.Shortlist) > 0 {
		report.RenderShortlist(os.Stdout, out.Shortlist)
	}

	if !out.Success {
		return out.Err
	}
	return nil
}

func newFetcher(pc config.PortalConfig, log *zap.Logger) ingest.Fetcher {
	sel := ingest.RowSelectors{Row: pc.RowSelector, Cell: pc.CellSelector}

	if pc.Renderer == config.RendererColly {
		f := ingest.NewCollyFetcher(sel, log)
		if pc.RequestTimeoutSeconds > 0 {
			f.RequestTimeout = pc.RequestTimeout()
		}
		if pc.UserAgent != "" {
			f.UserAgent = pc.UserAgent
		}
		return f
	}

	f := ingest.NewRodFetcher(sel, pc.WaitSelector, pc.WaitTimeout(), log)
	if pc.UserAgent != "" {
		f.UserAgent = pc.UserAgent
	}
	f.Bin = pc.ChromeBin
	return f
}

// lazyTable defers connecting to the store until the pipeline reaches
// reconciliation, so runs that end early never dial it.
type lazyTable struct {
	open  func(ctx context.Context) (reconcile.Table, func(), error)
	t     reconcile.Table
	close func()
}

func (l *lazyTable) get(ctx context.Context) (reconcile.Table, error) {
	if l.t != nil {
		return l.t, nil
	}
	t, closeFn, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	l.t, l.close = t, closeFn
	return t, nil
}

func (l *lazyTable) RowCount(ctx context.Context) (int, error) {
	t, err := l.get(ctx)
	if err != nil {
		return 0, err
	}
	return t.RowCount(ctx)
}

func (l *lazyTable) ClearDataRows(ctx context.Context) error {
	t, err := l.get(ctx)
	if err != nil {
		return err
	}
	return t.ClearDataRows(ctx)
}

func (l *lazyTable) AppendRow(ctx context.Context, values []string) error {
	t, err := l.get(ctx)
	if err != nil {
		return err
	}
	return t.AppendRow(ctx, values)
}

func (l *lazyTable) Close() {
	if l.close != nil {
		l.close()
	}
}

func openTable(ctx context.Context, sc config.StoreConfig, log *zap.Logger) (reconcile.Table, func(), error) {
	if sc.Backend == config.BackendPostgres {
		pool, err := db.Connect(ctx, sc.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.ApplyMigrations(ctx, pool, log); err != nil {
			pool.Close()
			return nil, nil, &reconcile.StoreError{Op: "connect", Err: err}
		}
		return db.NewStore(pool), pool.Close, nil
	}

	t, err := gsheets.New(ctx, gsheets.Options{
		SpreadsheetID:   sc.SpreadsheetID,
		SheetName:       sc.SheetName,
		CredentialsJSON: []byte(sc.CredentialsJSON),
		CredentialsFile: sc.CredentialsFile,
	})
	if err != nil {
		return nil, nil, err
	}
	log.Debug("using worksheet", zap.String("sheet", t.SheetName()))
	return t, func() {}, nil
}
