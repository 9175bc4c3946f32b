// Package sampler draws a count-weighted card sample from Scryfall.
//
// A run fetches one card from the rare pool, then keeps fetching from the
// other pool until the target size is reached. Repeated names are folded
// into an existing entry while the duplicate budget lasts; after that they
// are discarded and fetched again.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ramonehamilton/beejlander/internal/cards/cardtext"
	"github.com/ramonehamilton/beejlander/internal/cards/collection"
	"github.com/ramonehamilton/beejlander/internal/cards/query"
	"github.com/ramonehamilton/beejlander/internal/metrics"
)

const (
	DefaultTargetTotal        = 100
	DefaultDuplicateTolerance = 5
	DefaultProgressEvery      = 10
)

// Fetcher returns the raw text of one random card matching a query.
type Fetcher interface {
	RandomCardText(ctx context.Context, query string) (string, error)
}

// Budget bounds a run.
type Budget struct {
	TargetTotal        int // total copies in the finished sample, rare pick included
	DuplicateTolerance int // duplicates that may be folded into existing entries
}

// DefaultBudget returns the standard 100-card, 5-duplicate budget.
func DefaultBudget() Budget {
	return Budget{
		TargetTotal:        DefaultTargetTotal,
		DuplicateTolerance: DefaultDuplicateTolerance,
	}
}

// Validate checks the budget values.
func (b Budget) Validate() error {
	if b.TargetTotal < 1 {
		return fmt.Errorf("target total must be at least 1, got %d", b.TargetTotal)
	}
	if b.DuplicateTolerance < 0 {
		return fmt.Errorf("duplicate tolerance must not be negative, got %d", b.DuplicateTolerance)
	}
	return nil
}

// Progress reports how many cards have been accepted so far.
type Progress struct {
	Accepted int
	Target   int
}

// Config configures a Sampler.
type Config struct {
	Fetcher       Fetcher
	Budget        Budget
	Logger        *slog.Logger
	Progress      func(Progress)      // called on the run goroutine; may be nil
	ProgressEvery int                 // default: 10
	Metrics       *metrics.RunMetrics // may be nil
}

// Sampler runs sampling runs. A Sampler holds no per-run state and may be
// reused, but each run is strictly sequential.
type Sampler struct {
	fetcher       Fetcher
	budget        Budget
	logger        *slog.Logger
	progress      func(Progress)
	progressEvery int
	metrics       *metrics.RunMetrics
}

// New creates a Sampler.
func New(config Config) (*Sampler, error) {
	if config.Fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if config.Budget == (Budget{}) {
		config.Budget = DefaultBudget()
	}
	if err := config.Budget.Validate(); err != nil {
		return nil, fmt.Errorf("invalid budget: %w", err)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.ProgressEvery <= 0 {
		config.ProgressEvery = DefaultProgressEvery
	}

	return &Sampler{
		fetcher:       config.Fetcher,
		budget:        config.Budget,
		logger:        config.Logger,
		progress:      config.Progress,
		progressEvery: config.ProgressEvery,
		metrics:       config.Metrics,
	}, nil
}

// run holds the mutable state of one sampling run.
type run struct {
	*Sampler
	logger    *slog.Logger
	cards     *collection.Collection
	tolerance int
	accepted  int // cards accepted from the other pool
}

// Run draws a sample. On success the returned collection holds exactly
// Budget.TargetTotal copies and belongs to the caller. Any fetch or parse
// failure aborts the run and returns a *RunError with no collection.
//
// Once the duplicate budget is spent, repeated names are re-fetched without
// limit; cancel ctx to stop a run that cannot make progress.
func (s *Sampler) Run(ctx context.Context, queries query.Queries) (*collection.Collection, error) {
	r := &run{
		Sampler:   s,
		logger:    s.logger.With("run_id", uuid.NewString()),
		cards:     collection.New(),
		tolerance: s.budget.DuplicateTolerance,
	}

	r.logger.Info("Sampling started",
		"target", s.budget.TargetTotal,
		"duplicateTolerance", s.budget.DuplicateTolerance)

	rare, err := r.draw(ctx, queries.Rare)
	if err != nil {
		return nil, r.fail(err)
	}
	r.cards.Add(rare)
	r.logger.Debug("Rare pick", "name", rare.Name)
	r.report()

	for r.accepted < s.budget.TargetTotal-1 {
		record, err := r.draw(ctx, queries.Other)
		if err != nil {
			return nil, r.fail(err)
		}

		if !r.cards.Contains(record.Name) {
			r.cards.Add(record)
			r.accept()
			continue
		}

		if r.tolerance > 0 {
			r.cards.Increment(record.Name)
			r.tolerance--
			if s.metrics != nil {
				s.metrics.IncrementDuplicates()
			}
			r.logger.Debug("Duplicate absorbed", "name", record.Name, "toleranceRemaining", r.tolerance)
			r.accept()
			continue
		}

		if s.metrics != nil {
			s.metrics.IncrementDiscarded()
		}
		r.logger.Debug("Duplicate discarded", "name", record.Name)
	}

	r.logger.Info("Sampling finished", "distinct", r.cards.Len(), "total", r.cards.Total())
	if s.metrics != nil {
		r.logger.Info("Sampling metrics", s.metrics.Summary().LogAttrs()...)
	}

	return r.cards, nil
}

// draw fetches and parses one card.
func (r *run) draw(ctx context.Context, q string) (cardtext.Record, error) {
	if err := ctx.Err(); err != nil {
		return cardtext.Record{}, &RunError{Stage: StageCancelled, Err: err}
	}

	start := time.Now()
	raw, err := r.fetcher.RandomCardText(ctx, q)
	if r.metrics != nil {
		r.metrics.RecordFetch(time.Since(start))
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return cardtext.Record{}, &RunError{Stage: StageCancelled, Err: err}
		}
		return cardtext.Record{}, &RunError{Stage: StageFetch, Err: err}
	}

	record, err := cardtext.Parse(raw)
	if err != nil {
		return cardtext.Record{}, &RunError{Stage: StageParse, Err: err}
	}
	return record, nil
}

func (r *run) accept() {
	r.accepted++
	r.report()
}

// report notifies progress whenever the running total, rare pick included,
// reaches a multiple of progressEvery.
func (r *run) report() {
	total := r.accepted + 1
	if r.progress == nil || total%r.progressEvery != 0 {
		return
	}
	r.progress(Progress{Accepted: total, Target: r.budget.TargetTotal})
}

func (r *run) fail(err error) error {
	r.logger.Error("Sampling aborted", "error", err, "accepted", r.accepted)
	return err
}
