package collector

import (
	"context"
	"fmt"
	"time"

	"MarketBreadth/internal/model"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Options configures a Collector.
type Options struct {
	Tickers           []string
	MaxRetries        int           // attempts per ticker, including the first
	RetryBackoff      time.Duration // wait between attempts
	InterRequestDelay time.Duration // pause after every ticker
	Logger            zerolog.Logger
	// NewTimer supplies the timer used for retry waits and the pause after
	// each ticker; nil uses a wall-clock timer.
	NewTimer func() backoff.Timer
}

// Stats counts the per-ticker outcomes of a collection run.
type Stats struct {
	Requested int
	Fetched   int
	Empty     int
	Failed    int
}

// Collector fetches every configured ticker sequentially and aggregates the
// results into a SeriesTable.
type Collector struct {
	Fetcher Fetcher
	opts    Options
	log     zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, opts Options) *Collector {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return &Collector{
		Fetcher: fetcher,
		opts:    opts,
		log:         opts.Logger.With().Str("component", "collector").Str("source", fetcher.Name()).Logger(),
	}
}

// Collect fetches all tickers one after another, pausing InterRequestDelay
// after each one whatever its outcome. A ticker that fails after every retry
// or returns no data is skipped. ErrNoData is returned when no ticker
// produced bars.
func (c *Collector) Collect(ctx context.Context) (*model.SeriesTable, Stats, error) {
	table := model.NewSeriesTable()
	stats := Stats{Requested: len(c.opts.Tickers)}

	for _, ticker := range c.opts.Tickers {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		bars, err := c.fetchWithRetry(ctx, ticker)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, stats, ctx.Err()
			}
			stats.Failed++
			c.log.Warn().Err(err).Str("ticker", ticker).Int("attempts", c.opts.MaxRetries).Msg("giving up on ticker")
		case len(bars) == 0:
			stats.Empty++
			c.log.Info().Str("ticker", ticker).Msg("no data for ticker")
		default:
			stats.Fetched++
			table.Append(ticker, bars)
			c.log.Debug().Str("ticker", ticker).Int("bars", len(bars)).Msg("fetched")
		}

		if err := c.pause(ctx); err != nil {
			return nil, stats, fmt.Errorf("inter-request delay: %w", err)
		}
	}

	if table.Len() == 0 {
		return nil, stats, ErrNoData
	}
	return table, stats, nil
}

// pause blocks for InterRequestDelay or until ctx is done.
func (c *Collector) pause(ctx context.Context) error {
	if c.opts.InterRequestDelay <= 0 {
		return nil
	}
	timer := c.newTimer()
	timer.Start(c.opts.InterRequestDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C():
		return nil
	}
}

func (c *Collector) newTimer() backoff.Timer {
	if c.opts.NewTimer != nil {
		return c.opts.NewTimer()
	}
	return &wallTimer{}
}

// wallTimer is a backoff.Timer on the real clock.
type wallTimer struct {
	timer *time.Timer
}

func (t *wallTimer) Start(d time.Duration) {
	if t.timer == nil {
		t.timer = time.NewTimer(d)
		return
	}
	t.timer.Reset(d)
}

func (t *wallTimer) Stop() {
	if t.timer != nil {
		t.timer.Stop()
	}
}

func (t *wallTimer) C() <-chan time.Time { return t.timer.C }

// fetchWithRetry runs up to MaxRetries attempts spaced by RetryBackoff.
func (c *Collector) fetchWithRetry(ctx context.Context, ticker string) ([]model.RawBar, error) {
	var bars []model.RawBar
	attempt := 0
	operation := func() error {
		attempt++
		var err error
		bars, err = c.Fetcher.FetchHistory(ctx, ticker)
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.log.Debug().Err(err).Str("ticker", ticker).
			Int("attempt", attempt).Dur("retry_in", wait).Msg("fetch attempt failed")
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.opts.RetryBackoff), uint64(c.opts.MaxRetries-1)),
		ctx,
	)
	if err := backoff.RetryNotifyWithTimer(operation, policy, notify, c.newTimer()); err != nil {
		return nil, err
	}
	return bars, nil
}
