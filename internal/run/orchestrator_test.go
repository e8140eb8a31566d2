package run

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyforge/polyforge/internal/errors"
	"github.com/polyforge/polyforge/internal/generate"
	"github.com/polyforge/polyforge/internal/log"
	"github.com/polyforge/polyforge/internal/spec"
	"github.com/polyforge/polyforge/internal/target"
	"github.com/polyforge/polyforge/internal/validate"
)

func quietLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.LevelError
	cfg.Output = log.NewOutput(io.Discard)
	return log.New(cfg)
}

func shopSpec() *spec.Specification {
	return &spec.Specification{
		ID:            "spec-shop",
		Name:          "Shop",
		SchemaVersion: "1.0",
		Entities: []spec.Entity{
			{
				Name: "User",
				Fields: []spec.Field{
					{Name: "id", Type: "uuid", Required: true},
					{Name: "email", Type: "string", Required: true},
				},
			},
		},
	}
}

func fastOptions() Options {
	opts := DefaultOptions()
	opts.TargetTimeout = 5 * time.Second
	opts.RetryBackoff = time.Millisecond
	return opts
}

func TestRunProducesOneResultPerTarget(t *testing.T) {
	o := New(quietLogger(), target.Builtin(), fastOptions())

	res, err := o.Run(context.Background(), shopSpec(), []string{"web-react", "backend-nodejs"})
	require.NoError(t, err)

	assert.Equal(t, StateDone, res.State)
	assert.False(t, res.Incomplete)
	assert.NotEmpty(t, res.RunID)
	assert.Len(t, res.SpecHash, 64)
	require.Len(t, res.Targets, 2)

	seen := map[string]int{}
	for _, tr := range res.Targets {
		seen[tr.Target.ID]++
		require.NotNil(t, tr.Result)
		require.NotNil(t, tr.Outcome)
		assert.True(t, tr.Result.Success)
		assert.True(t, tr.Outcome.Passed)
		assert.Equal(t, 1, tr.Attempts)
	}
	assert.Equal(t, map[string]int{"web-react": 1, "backend-nodejs": 1}, seen)

	require.NotNil(t, res.Consistency)
	require.NotNil(t, res.Optimization)
	assert.Empty(t, res.FailedTargets())
}

func TestRunAllTargetsOrderedByCatalog(t *testing.T) {
	o := New(quietLogger(), target.Builtin(), fastOptions())

	res, err := o.Run(context.Background(), shopSpec(), nil)
	require.NoError(t, err)
	require.Len(t, res.Targets, target.Builtin().Len())

	want := target.Builtin().List()
	for i, tr := range res.Targets {
		assert.Equal(t, want[i].ID, tr.Target.ID)
	}
}

func TestRunInvalidSpecReachesDone(t *testing.T) {
	s := shopSpec()
	s.Entities[0].Relationships = []spec.Relationship{
		{Name: "ghost", Kind: "one-to-many", Target: "X"},
	}
	o := New(quietLogger(), target.Builtin(), fastOptions())

	res, err := o.Run(context.Background(), s, nil)
	require.NoError(t, err, "per-target failures are data, not run failures")

	assert.Equal(t, StateDone, res.State)
	assert.False(t, res.Incomplete)
	require.Len(t, res.Targets, target.Builtin().Len())
	for _, tr := range res.Targets {
		assert.False(t, tr.Result.Success)
		assert.Equal(t, generate.ErrKindSpecInvalid, tr.Result.ErrorKind)
		assert.False(t, tr.Outcome.Passed)
	}
	assert.Len(t, res.FailedTargets(), target.Builtin().Len())
	require.NotNil(t, res.Consistency, "the evidence trail survives an all-failed run")
}

func TestRunUnsupportedSchemaVersionFails(t *testing.T) {
	s := shopSpec()
	s.SchemaVersion = "9.9"
	o := New(quietLogger(), target.Builtin(), fastOptions())

	res, err := o.Run(context.Background(), s, nil)
	assert.Nil(t, res, "a failed run has no usable report")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSchemaVersionUnsupported))
}

func TestRunUnknownTargetFails(t *testing.T) {
	o := New(quietLogger(), target.Builtin(), fastOptions())

	res, err := o.Run(context.Background(), shopSpec(), []string{"web-react", "amiga"})
	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeTargetNotFound))
}

// gateGenerator completes instantly for targets in fast, and blocks on
// the context for everything else.
type gateGenerator struct {
	fast      map[string]bool
	completed atomic.Int32
	done      chan string
}

func (g *gateGenerator) Generate(ctx context.Context, s *spec.Specification, tgt target.Target) (*generate.Result, error) {
	if g.fast[tgt.ID] {
		g.completed.Add(1)
		if g.done != nil {
			g.done <- tgt.ID
		}
		return &generate.Result{TargetID: tgt.ID, SpecID: s.ID, Success: true}, nil
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func fakeCatalog(t *testing.T, n int) *target.Catalog {
	t.Helper()
	targets := make([]target.Target, n)
	for i := range targets {
		targets[i] = target.Target{
			ID:       fmt.Sprintf("t%d", i),
			Platform: target.PlatformWeb,
			Baseline: target.Baseline{BundleSizeKB: 100, ExecOpsPerMS: 10, MemoryMB: 10, StartupMS: 100},
		}
	}
	catalog, err := target.NewCatalog(targets...)
	require.NoError(t, err)
	return catalog
}

func TestRunCancelledAfterPartialCompletion(t *testing.T) {
	catalog := fakeCatalog(t, 5)
	gen := &gateGenerator{
		fast: map[string]bool{"t0": true, "t1": true},
		done: make(chan string, 2),
	}

	opts := Options{Concurrency: 5, MaxRetries: 0, CacheSize: 0}
	o := NewWithPipeline(quietLogger(), catalog, gen, validate.New(quietLogger()), opts)

	ctx, cancel := context.WithCancel(context.Background())
	resCh := make(chan *Result, 1)
	errCh := make(chan error, 1)
	go func() {
		s := &spec.Specification{ID: "partial", Name: "Partial", SchemaVersion: "1.0"}
		res, err := o.Run(ctx, s, nil)
		resCh <- res
		errCh <- err
	}()

	// Wait for exactly the two fast targets, then cancel the run.
	<-gen.done
	<-gen.done
	cancel()

	res := <-resCh
	err := <-errCh
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRunCancelled))

	require.NotNil(t, res, "a cancelled run still yields its partial report")
	assert.True(t, res.Incomplete)
	require.Len(t, res.Targets, 2, "exactly the completed targets appear")
	ids := []string{res.Targets[0].Target.ID, res.Targets[1].Target.ID}
	assert.ElementsMatch(t, []string{"t0", "t1"}, ids)
	require.NotNil(t, res.Consistency)
}

func TestRunTargetTimeoutRecordedAsFailure(t *testing.T) {
	catalog := fakeCatalog(t, 2)
	gen := &gateGenerator{fast: map[string]bool{"t0": true}}

	opts := Options{Concurrency: 2, TargetTimeout: 20 * time.Millisecond, MaxRetries: 0}
	o := NewWithPipeline(quietLogger(), catalog, gen, validate.New(quietLogger()), opts)

	s := &spec.Specification{ID: "timeout", Name: "Timeout", SchemaVersion: "1.0"}
	res, err := o.Run(context.Background(), s, nil)
	require.NoError(t, err, "a per-target timeout never aborts the run")

	assert.Equal(t, StateDone, res.State)
	assert.False(t, res.Incomplete)
	require.Len(t, res.Targets, 2)
	assert.True(t, res.Targets[0].Result.Success)
	assert.False(t, res.Targets[1].Result.Success)
	assert.Equal(t, generate.ErrKindTargetTimeout, res.Targets[1].Result.ErrorKind)
	assert.Equal(t, []string{"t1"}, res.FailedTargets())
}

// flakyGenerator fails a fixed number of times before succeeding.
type flakyGenerator struct {
	remaining atomic.Int32
}

func (g *flakyGenerator) Generate(_ context.Context, s *spec.Specification, tgt target.Target) (*generate.Result, error) {
	if g.remaining.Add(-1) >= 0 {
		return nil, fmt.Errorf("template store unavailable")
	}
	return &generate.Result{TargetID: tgt.ID, SpecID: s.ID, Success: true}, nil
}

func TestRunRetriesTransientFailures(t *testing.T) {
	catalog := fakeCatalog(t, 1)
	gen := &flakyGenerator{}
	gen.remaining.Store(2)

	opts := Options{Concurrency: 1, MaxRetries: 2, RetryBackoff: time.Millisecond}
	o := NewWithPipeline(quietLogger(), catalog, gen, validate.New(quietLogger()), opts)

	s := &spec.Specification{ID: "flaky", Name: "Flaky", SchemaVersion: "1.0"}
	res, err := o.Run(context.Background(), s, nil)
	require.NoError(t, err)

	require.Len(t, res.Targets, 1)
	assert.True(t, res.Targets[0].Result.Success)
	assert.Equal(t, 3, res.Targets[0].Attempts)
}

func TestRunExhaustedRetriesRecordedAsFailure(t *testing.T) {
	catalog := fakeCatalog(t, 1)
	gen := &flakyGenerator{}
	gen.remaining.Store(10)

	opts := Options{Concurrency: 1, MaxRetries: 1, RetryBackoff: time.Millisecond}
	o := NewWithPipeline(quietLogger(), catalog, gen, validate.New(quietLogger()), opts)

	s := &spec.Specification{ID: "flaky", Name: "Flaky", SchemaVersion: "1.0"}
	res, err := o.Run(context.Background(), s, nil)
	require.NoError(t, err)

	require.Len(t, res.Targets, 1)
	assert.False(t, res.Targets[0].Result.Success)
	assert.Equal(t, generate.ErrKindInternal, res.Targets[0].Result.ErrorKind)
	assert.Contains(t, res.Targets[0].Result.ErrorDetail, string(errors.ErrCodeGenerateFailed))
	assert.Equal(t, 2, res.Targets[0].Attempts)
}

func TestRunMemoizesGeneration(t *testing.T) {
	opts := fastOptions()
	o := New(quietLogger(), target.Builtin(), opts)
	s := shopSpec()

	first, err := o.Run(context.Background(), s, []string{"web-react"})
	require.NoError(t, err)
	assert.False(t, first.Targets[0].CacheHit)

	second, err := o.Run(context.Background(), s, []string{"web-react"})
	require.NoError(t, err)
	assert.True(t, second.Targets[0].CacheHit)
	assert.Equal(t, first.Targets[0].Result.Bundle.AllArtifacts(),
		second.Targets[0].Result.Bundle.AllArtifacts())
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRunIdempotentOutput(t *testing.T) {
	o1 := New(quietLogger(), target.Builtin(), Options{Concurrency: 1})
	o2 := New(quietLogger(), target.Builtin(), Options{Concurrency: 1})
	s := shopSpec()

	a, err := o1.Run(context.Background(), s, []string{"backend-go"})
	require.NoError(t, err)
	b, err := o2.Run(context.Background(), s, []string{"backend-go"})
	require.NoError(t, err)

	assert.Equal(t, a.SpecHash, b.SpecHash)
	filesA := a.Targets[0].Result.Bundle.AllArtifacts()
	filesB := b.Targets[0].Result.Bundle.AllArtifacts()
	require.Equal(t, len(filesA), len(filesB))
	for i := range filesA {
		assert.Equal(t, filesA[i].Content, filesB[i].Content)
	}
}

func TestStateTerminal(t *testing.T) {
	assert.True(t, StateDone.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateGenerating.Terminal())
}
