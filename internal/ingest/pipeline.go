package ingest

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/david/tender-finder/internal/models"
	"github.com/david/tender-finder/internal/rank"
	"github.com/david/tender-finder/internal/reconcile"
)

// Stage is the last step a run reached.
type Stage int

const (
	StageIdle Stage = iota
	StageFetching
	StageNormalizing
	StageClassifying
	StageRanking
	StageReconciling
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageFetching:
		return "fetching"
	case StageNormalizing:
		return "normalizing"
	case StageClassifying:
		return "classifying"
	case StageRanking:
		return "ranking"
	case StageReconciling:
		return "reconciling"
	case StageDone:
		return "done"
	}
	return "unknown"
}

// Outcome summarizes one run for logging and the process exit status.
type Outcome struct {
	RunID      string
	Stage      Stage // Done once Run returns
	LastStage  Stage // stage the run was in when it ended
	Fetched    int
	Normalized NormalizeStats
	Shortlist  []models.Tender
	Reconciled int
	Attempted  bool // reconciliation was started
	Success    bool
	FetchErr   error
	Err        error
}

// Pipeline runs one fetch, shortlist and sync pass.
type Pipeline struct {
	Fetcher   Fetcher
	Table     reconcile.Table // may be nil when DryRun is set
	PortalURL string
	Keywords  Keywords
	Limit     int
	DryRun    bool
	Log       *zap.Logger

	newRunID func() string
}

func NewPipeline(fetcher Fetcher, table reconcile.Table, portalURL string, kw Keywords, limit int, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		Fetcher:   fetcher,
		Table:     table,
		PortalURL: portalURL,
		Keywords:  kw,
		Limit:     limit,
		Log:       log,
		newRunID:  uuid.NewString,
	}
}

// Run executes the pipeline. A fetch failure or an empty result ends the run
// successfully without touching the table; only a store failure makes the
// outcome unsuccessful.
func (p *Pipeline) Run(ctx context.Context) Outcome {
	out := Outcome{RunID: p.runID(), Stage: StageIdle}
	log := p.Log.With(zap.String("run_id", out.RunID), zap.String("portal", p.PortalURL))
	log.Info("tender run started", zap.Strings("keywords", p.Keywords.Terms()), zap.Int("limit", p.Limit))

	out.Stage = StageFetching
	rows, err := p.Fetcher.Fetch(ctx, p.PortalURL)
	if err != nil {
		log.Error("fetch failed, no tenders this run", zap.Error(err))
		out.FetchErr = err
		return p.finish(log, out, true)
	}
	out.Fetched = len(rows)
	log.Info("rows fetched", zap.Int("rows", out.Fetched))
	if len(rows) == 0 {
		log.Info("no rows returned, store left untouched")
		return p.finish(log, out, true)
	}

	out.Stage = StageNormalizing
	n := NewNormalizer(p.Keywords, log)
	tenders := slices.Collect(n.Tenders(rows))
	out.Normalized = n.Stats
	log.Info("tenders found",
		zap.Int("relevant", n.Stats.Kept),
		zap.Int("malformed", n.Stats.Malformed),
		zap.Int("off_topic", n.Stats.Irrelevant),
	)
	if len(tenders) == 0 {
		log.Info("no relevant tenders, store left untouched")
		return p.finish(log, out, true)
	}

	out.Stage = StageClassifying
	for i := range tenders {
		tenders[i] = rank.Annotate(tenders[i])
	}

	out.Stage = StageRanking
	out.Shortlist = rank.Shortlist(tenders, p.Limit)
	log.Info("shortlist selected", zap.Int("selected", len(out.Shortlist)), zap.Int("candidates", len(tenders)))
	if len(out.Shortlist) == 0 {
		log.Info("shortlist is empty, store left untouched")
		return p.finish(log, out, true)
	}

	if p.DryRun {
		log.Info("dry run, skipping store sync")
		return p.finish(log, out, true)
	}

	out.Stage = StageReconciling
	out.Attempted = true
	out.Reconciled, err = reconcile.Reconcile(ctx, p.Table, out.Shortlist)
	if err != nil {
		log.Error("store sync failed", zap.Error(err), zap.Int("rows_written", out.Reconciled))
		out.Err = err
		return p.finish(log, out, false)
	}
	log.Info("store synced", zap.Int("rows", out.Reconciled))
	return p.finish(log, out, true)
}

func (p *Pipeline) finish(log *zap.Logger, out Outcome, success bool) Outcome {
	out.LastStage = out.Stage
	out.Stage = StageDone
	out.Success = success
	log.Info("tender run finished",
		zap.Bool("success", out.Success),
		zap.Int("reconciled", out.Reconciled),
		zap.Stringer("last_stage", out.LastStage),
	)
	return out
}

func (p *Pipeline) runID() string {
	if p.newRunID == nil {
		return uuid.NewString()
	}
	return p.newRunID()
}
