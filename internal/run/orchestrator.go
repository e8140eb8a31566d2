// Package run orchestrates one compilation run: fan-out generation and
// validation across all enabled targets, then a single synchronization
// point that drives the consistency and optimization analyzers.
package run

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/polyforge/polyforge/internal/consistency"
	"github.com/polyforge/polyforge/internal/errors"
	"github.com/polyforge/polyforge/internal/generate"
	"github.com/polyforge/polyforge/internal/log"
	"github.com/polyforge/polyforge/internal/optimize"
	"github.com/polyforge/polyforge/internal/spec"
	"github.com/polyforge/polyforge/internal/target"
	"github.com/polyforge/polyforge/internal/validate"
)

// Generator produces one result per (specification, target) pair.
type Generator interface {
	Generate(ctx context.Context, s *spec.Specification, tgt target.Target) (*generate.Result, error)
}

// Validator scores one generation result.
type Validator interface {
	Validate(s *spec.Specification, tgt target.Target, result *generate.Result) *validate.Outcome
}

// Options bound a run's concurrency and time budget.
type Options struct {
	// Concurrency caps simultaneous target tasks. Zero means one task
	// per target.
	Concurrency int

	// TargetTimeout bounds a single target task.
	TargetTimeout time.Duration

	// RunTimeout bounds total wall clock for the run. Zero disables it.
	RunTimeout time.Duration

	// MaxRetries is how many times a transient task failure is retried.
	MaxRetries int

	// RetryBackoff is the base delay between retries, doubled each
	// attempt.
	RetryBackoff time.Duration

	// CacheSize is the generation memoization capacity in results.
	// Zero disables memoization.
	CacheSize int
}

// DefaultOptions matches an interactive CLI invocation.
func DefaultOptions() Options {
	return Options{
		Concurrency:   4,
		TargetTimeout: 30 * time.Second,
		MaxRetries:    2,
		RetryBackoff:  100 * time.Millisecond,
		CacheSize:     64,
	}
}

// TargetResult pairs everything a run knows about one target: the
// immutable generation result and its validation outcome.
type TargetResult struct {
	Target   target.Target     `json:"target" yaml:"target"`
	Result   *generate.Result  `json:"result" yaml:"result"`
	Outcome  *validate.Outcome `json:"outcome" yaml:"outcome"`
	Attempts int               `json:"attempts" yaml:"attempts"`
	Duration time.Duration     `json:"duration" yaml:"duration"`
	CacheHit bool              `json:"cache_hit,omitempty" yaml:"cache_hit,omitempty"`
}

// Result is the aggregate output of one run. When Incomplete is true it
// holds exactly the targets that finished before cancellation; there is
// never a silent omission otherwise.
type Result struct {
	RunID        string               `json:"run_id" yaml:"run_id"`
	SpecID       string               `json:"spec_id" yaml:"spec_id"`
	SpecName     string               `json:"spec_name" yaml:"spec_name"`
	SpecHash     string               `json:"spec_hash" yaml:"spec_hash"`
	State        State                `json:"state" yaml:"state"`
	Incomplete   bool                 `json:"incomplete" yaml:"incomplete"`
	Targets      []TargetResult       `json:"targets" yaml:"targets"`
	Consistency  *consistency.Report  `json:"consistency" yaml:"consistency"`
	Optimization *optimize.Report     `json:"optimization" yaml:"optimization"`
	StartedAt    time.Time            `json:"started_at" yaml:"started_at"`
	FinishedAt   time.Time            `json:"finished_at" yaml:"finished_at"`
}

// FailedTargets returns the ids of targets whose generation or
// validation did not succeed.
func (r *Result) FailedTargets() []string {
	var failed []string
	for _, tr := range r.Targets {
		if tr.Result == nil || !tr.Result.Success {
			failed = append(failed, tr.Target.ID)
		}
	}
	return failed
}

type cacheKey struct {
	specHash string
	targetID string
}

// Orchestrator drives the per-run state machine. It is the single
// writer of the aggregate result collection; target tasks only fill
// their own pre-reserved slot.
type Orchestrator struct {
	logger      *log.Logger
	catalog     *target.Catalog
	generator   Generator
	validator   Validator
	consistency *consistency.Analyzer
	optimize    *optimize.Analyzer
	opts        Options

	cache *lru.Cache[cacheKey, *generate.Result]

	newRunID func() string
}

// New builds an orchestrator around the standard pipeline.
func New(logger *log.Logger, catalog *target.Catalog, opts Options) *Orchestrator {
	return NewWithPipeline(logger, catalog,
		generate.New(logger), validate.New(logger), opts)
}

// NewWithPipeline accepts injected generation and validation stages.
func NewWithPipeline(logger *log.Logger, catalog *target.Catalog, g Generator, v Validator, opts Options) *Orchestrator {
	o := &Orchestrator{
		logger:      logger,
		catalog:     catalog,
		generator:   g,
		validator:   v,
		consistency: consistency.New(logger),
		optimize:    optimize.New(logger),
		opts:        opts,
		newRunID:    newRunID,
	}
	if opts.CacheSize > 0 {
		// Capacity is validated above zero, so construction cannot fail.
		o.cache, _ = lru.New[cacheKey, *generate.Result](opts.CacheSize)
	}
	return o
}

// Run compiles the specification against the enabled targets. An empty
// targetIDs slice enables every catalog target. A non-nil Result is
// returned for every outcome except a Failed run; a cancelled or timed
// out run returns both the partial Result and the run-level error.
func (o *Orchestrator) Run(ctx context.Context, s *spec.Specification, targetIDs []string) (*Result, error) {
	res := &Result{
		RunID:     o.newRunID(),
		SpecID:    s.ID,
		SpecName:  s.Name,
		State:     StatePending,
		StartedAt: time.Now(),
	}

	if err := spec.CheckSchemaVersion(s); err != nil {
		res.State = StateFailed
		return nil, err
	}

	hash, err := spec.Hash(s)
	if err != nil {
		res.State = StateFailed
		return nil, errors.Wrap(errors.ErrCodeRunFailed, "canonicalize specification", err)
	}
	res.SpecHash = hash

	enabled := o.catalog
	if len(targetIDs) > 0 {
		enabled, err = o.catalog.Subset(targetIDs)
		if err != nil {
			res.State = StateFailed
			return nil, err
		}
	}
	targets := enabled.List()

	runCtx := ctx
	cancel := context.CancelFunc(func() {})
	if o.opts.RunTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, o.opts.RunTimeout)
	}
	defer cancel()

	o.setState(res, StateGenerating)
	slots := o.fanOut(runCtx, s, hash, targets)
	o.setState(res, StateValidating)

	// The barrier above never proceeds on partial data unless the run
	// itself was cut short.
	if runErr := runCtx.Err(); runErr != nil {
		res.Incomplete = true
		for _, slot := range slots {
			if slot != nil {
				res.Targets = append(res.Targets, *slot)
			}
		}
		o.analyze(res, s)
		res.FinishedAt = time.Now()
		o.logger.Warn("run ended early",
			"run_id", res.RunID,
			"completed", len(res.Targets),
			"enabled", len(targets))
		var earlyErr error
		if stderrors.Is(runErr, context.DeadlineExceeded) && ctx.Err() == nil {
			earlyErr = errors.New(errors.ErrCodeRunTimeout, "compilation run exceeded its time budget")
		} else {
			earlyErr = errors.NewRunCancelledError()
		}
		o.logger.With("run_id", res.RunID).LogError(earlyErr)
		return res, earlyErr
	}

	for _, slot := range slots {
		res.Targets = append(res.Targets, *slot)
	}

	o.analyze(res, s)
	res.FinishedAt = time.Now()
	o.logger.Info("run complete",
		"run_id", res.RunID,
		"targets", len(res.Targets),
		"failed", len(res.FailedTargets()),
		"duration", res.FinishedAt.Sub(res.StartedAt))
	return res, nil
}

// fanOut runs one task per target under a bounded-concurrency
// semaphore. Each task owns its slot exclusively until the WaitGroup
// barrier; the slice is pre-sized so no locking is needed.
func (o *Orchestrator) fanOut(ctx context.Context, s *spec.Specification, hash string, targets []target.Target) []*TargetResult {
	slots := make([]*TargetResult, len(targets))
	var wg sync.WaitGroup

	limit := o.opts.Concurrency
	if limit <= 0 {
		limit = len(targets)
	}
	sem := make(chan struct{}, limit)

	for i, tgt := range targets {
		wg.Add(1)
		go func(index int, tgt target.Target) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			// A cancelled run schedules no further tasks; the slot
			// stays empty rather than recording a fabricated failure.
			if ctx.Err() != nil {
				return
			}
			slots[index] = o.runTarget(ctx, s, hash, tgt)
		}(i, tgt)
	}

	wg.Wait()
	return slots
}

// runTarget generates and validates one target, retrying transient
// failures with doubling backoff. Deterministic failures come back as
// failed results and are recorded immediately, never retried. A nil
// return means the run was cancelled mid-task.
func (o *Orchestrator) runTarget(ctx context.Context, s *spec.Specification, hash string, tgt target.Target) *TargetResult {
	start := time.Now()
	tr := &TargetResult{Target: tgt}

	key := cacheKey{specHash: hash, targetID: tgt.ID}
	if o.cache != nil {
		if cached, ok := o.cache.Get(key); ok {
			o.logger.Debug("generation cache hit", "target", tgt.ID, "spec_hash", hash)
			tr.Result = cached
			tr.CacheHit = true
			tr.Outcome = o.validator.Validate(s, tgt, tr.Result)
			tr.Duration = time.Since(start)
			return tr
		}
	}

	backoff := o.opts.RetryBackoff
	for attempt := 0; ; attempt++ {
		tr.Attempts = attempt + 1

		taskCtx := ctx
		cancel := context.CancelFunc(func() {})
		if o.opts.TargetTimeout > 0 {
			taskCtx, cancel = context.WithTimeout(ctx, o.opts.TargetTimeout)
		}
		result, err := o.generator.Generate(taskCtx, s, tgt)
		cancel()

		if err == nil {
			tr.Result = result
			if o.cache != nil && result.Success {
				o.cache.Add(key, result)
			}
			break
		}

		if ctx.Err() != nil {
			// Run-level cancellation, not a task condition.
			return nil
		}
		if stderrors.Is(err, context.DeadlineExceeded) {
			o.logger.Warn("target task timed out",
				"target", tgt.ID, "timeout", o.opts.TargetTimeout)
			tr.Result = generate.FailedResult(tgt.ID, s.ID, hash,
				generate.ErrKindTargetTimeout,
				errors.NewTargetTimeoutError(tgt.ID, o.opts.TargetTimeout.String()).Error())
			break
		}

		if attempt >= o.opts.MaxRetries {
			tr.Result = generate.FailedResult(tgt.ID, s.ID, hash,
				generate.ErrKindInternal,
				errors.Wrap(errors.ErrCodeGenerateFailed, "generation failed after retries", err).Error())
			break
		}
		o.logger.WithError(err).Debug("retrying target after transient failure",
			"target", tgt.ID, "attempt", attempt+1)
		if backoff > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil
			}
			backoff *= 2
		}
	}

	tr.Outcome = o.validator.Validate(s, tgt, tr.Result)
	tr.Duration = time.Since(start)
	return tr
}

// analyze is the single synchronization point after fan-out. The
// analyzers only read the published results.
func (o *Orchestrator) analyze(res *Result, s *spec.Specification) {
	o.setState(res, StateAnalyzing)

	targets := make([]target.Target, len(res.Targets))
	results := make([]*generate.Result, len(res.Targets))
	for i, tr := range res.Targets {
		targets[i] = tr.Target
		results[i] = tr.Result
	}
	res.Consistency = o.consistency.Analyze(s, results)
	res.Optimization = o.optimize.Analyze(targets, results)

	o.setState(res, StateDone)
}

func newRunID() string {
	return uuid.NewString()
}

func (o *Orchestrator) setState(res *Result, next State) {
	o.logger.Debug("run state transition",
		"run_id", res.RunID, "from", string(res.State), "to", string(next))
	res.State = next
}
