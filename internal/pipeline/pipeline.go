package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MarketBreadth/internal/collector"
	"MarketBreadth/internal/model"
	"MarketBreadth/internal/narrative"
	"MarketBreadth/internal/recorder"
	"MarketBreadth/internal/strategy"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options wires the pipeline stages together.
type Options struct {
	Fetcher    collector.Fetcher
	Recorder   recorder.Recorder
	Collect    collector.Options
	PanelTitle string
	Now        func() time.Time
	Logger     zerolog.Logger
}

// Validate asserts the options are usable.
func (o *Options) Validate() error {
	var errs error
	if o.Fetcher == nil {
		errs = errors.Join(errs, fmt.Errorf("fetcher cannot be nil"))
	}
	if o.Recorder == nil {
		errs = errors.Join(errs, fmt.Errorf("recorder cannot be nil"))
	}
	if len(o.Collect.Tickers) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no tickers provided"))
	}
	return errs
}

// Pipeline runs fetch, metrics, narrative and export once.
type Pipeline struct {
	RunID     string
	Collector *collector.Collector
	Recorder  recorder.Recorder

	panelTitle string
	now        func() time.Time
	log        zerolog.Logger
	engineLog  zerolog.Logger
}

// Result describes a completed run.
type Result struct {
	RunID    string
	Stats    collector.Stats
	Metrics  []model.TickerMetric
	Summary  model.MarketSummary
	Document *model.ExportDocument
}

// New creates a pipeline with a fresh run id.
func New(opts Options) (*Pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	runID := uuid.NewString()
	lg := opts.Logger.With().Str("run_id", runID).Logger()
	opts.Collect.Logger = lg

	return &Pipeline{
		RunID:      runID,
		Collector:  collector.NewCollector(opts.Fetcher, opts.Collect),
		Recorder:   opts.Recorder,
		panelTitle: opts.PanelTitle,
		now:        opts.Now,
		log:        lg.With().Str("component", "pipeline").Logger(),
		engineLog:  lg.With().Str("component", "strategy").Logger(),
	}, nil
}

// Run executes one pass. It fails only when no ticker yielded data, the
// context is cancelled, or the document cannot be written; nothing is
// written on failure.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	p.log.Info().Msg("run started")

	table, stats, err := p.Collector.Collect(ctx)
	if err != nil {
		p.log.Error().Err(err).Int("failed", stats.Failed).Int("empty", stats.Empty).Msg("collection failed")
		return nil, fmt.Errorf("collect market data: %w", err)
	}
	p.log.Info().
		Int("requested", stats.Requested).
		Int("fetched", stats.Fetched).
		Int("empty", stats.Empty).
		Int("failed", stats.Failed).
		Int("rows", table.Len()).
		Msg("collection complete")

	metrics, summary := strategy.Evaluate(table, p.engineLog)
	summary.ExecutiveSummary = narrative.BuildExecutiveSummary(p.panelTitle, summary, metrics)
	p.log.Info().
		Int("total", summary.TotalStocks).
		Int("advances", summary.Advances).
		Int("declines", summary.Declines).
		Str("sentiment", summary.Sentiment.Label).
		Msg("market summary computed")

	doc := recorder.BuildDocument(p.now(), summary, metrics, table)
	if err := p.Recorder.Record(doc); err != nil {
		return nil, fmt.Errorf("record export with %s recorder: %w", p.Recorder.Name(), err)
	}
	p.log.Info().Str("recorder", p.Recorder.Name()).Int("tickers", len(doc.Tickers)).Msg("export recorded")

	return &Result{
		RunID:    p.RunID,
		Stats:    stats,
		Metrics:  metrics,
		Summary:  summary,
		Document: doc,
	}, nil
}
