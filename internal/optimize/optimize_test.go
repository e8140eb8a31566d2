package optimize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyforge/polyforge/internal/generate"
	"github.com/polyforge/polyforge/internal/log"
	"github.com/polyforge/polyforge/internal/spec"
	"github.com/polyforge/polyforge/internal/target"
)

func quietLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.LevelError
	return log.New(cfg)
}

func sampleSpec() *spec.Specification {
	return &spec.Specification{
		ID:            "spec-opt",
		Name:          "Sample",
		SchemaVersion: "1.0",
		Entities: []spec.Entity{
			{Name: "Item", Fields: []spec.Field{{Name: "id", Type: "uuid", Required: true}}},
		},
	}
}

func compiled(t *testing.T, s *spec.Specification, ids ...string) ([]target.Target, []*generate.Result) {
	t.Helper()
	g := generate.New(quietLogger())
	targets := make([]target.Target, 0, len(ids))
	results := make([]*generate.Result, 0, len(ids))
	for _, id := range ids {
		tgt, err := target.Builtin().Get(id)
		require.NoError(t, err)
		result, err := g.Generate(context.Background(), s, tgt)
		require.NoError(t, err)
		targets = append(targets, tgt)
		results = append(results, result)
	}
	return targets, results
}

func TestAnalyzeImprovements(t *testing.T) {
	targets, results := compiled(t, sampleSpec(), "web-react", "backend-go", "mobile-ios")

	report := New(quietLogger()).Analyze(targets, results)
	require.NotEmpty(t, report.Categories)

	for _, cr := range report.Categories {
		require.NotEmpty(t, cr.Metrics)
		for _, m := range cr.Metrics {
			assert.Equal(t, cr.Category, m.Category)
			assert.Greater(t, m.Baseline, 0.0, "%s/%s", m.TargetID, m.Category)
			assert.GreaterOrEqual(t, m.ImprovementPct, 0.0, "optimizations only reduce cost")
			assert.LessOrEqual(t, m.ImprovementPct, 100.0)
			assert.NotEmpty(t, m.Technique)
		}
	}

	assert.NotEmpty(t, report.Summary.BestPerforming)
	assert.NotEmpty(t, report.Summary.MostOptimized)
	assert.Greater(t, report.Summary.OverallImprovement, 0.0)
}

func TestImprovementExactZero(t *testing.T) {
	for _, tt := range []struct {
		name                string
		baseline, optimized float64
		want                float64
	}{
		{"equal values", 250, 250, 0},
		{"zero baseline", 0, 10, 0},
		{"negative baseline", -5, 1, 0},
		{"real reduction", 100, 70, 0.3},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got := improvement(tt.baseline, tt.optimized)
			if tt.want == 0 {
				// Exactly zero, never negative zero or NaN.
				assert.True(t, got == 0)
			} else {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestFailedResultsContributeNothing(t *testing.T) {
	s := sampleSpec()
	targets, results := compiled(t, s, "web-react")
	tgt, err := target.Builtin().Get("backend-go")
	require.NoError(t, err)
	targets = append(targets, tgt)
	results = append(results,
		generate.FailedResult(tgt.ID, s.ID, "", generate.ErrKindTargetTimeout, "deadline"))

	report := New(quietLogger()).Analyze(targets, results)
	for _, cr := range report.Categories {
		for _, m := range cr.Metrics {
			assert.NotEqual(t, "backend-go", m.TargetID)
		}
	}
	assert.Equal(t, "web-react", report.Summary.BestPerforming)
	assert.Equal(t, "web-react", report.Summary.MostOptimized)
}

func TestSummaryTieBreaksByRegistrationOrder(t *testing.T) {
	s := sampleSpec()
	mk := func(id string) (target.Target, *generate.Result) {
		tgt := target.Target{
			ID:       id,
			Platform: target.PlatformWeb,
			Baseline: target.Baseline{BundleSizeKB: 100, ExecOpsPerMS: 10, MemoryMB: 50, StartupMS: 400},
		}
		result := &generate.Result{TargetID: id, SpecID: s.ID, Success: true}
		result.Metrics = generate.PerformanceMetrics{
			BundleSizeKB:  100,
			ExecMSPerKOps: 100,
			MemoryMB:      50,
			StartupMS:     400,
		}
		return tgt, result
	}

	tgtA, resA := mk("alpha")
	tgtB, resB := mk("beta")
	report := New(quietLogger()).Analyze(
		[]target.Target{tgtA, tgtB}, []*generate.Result{resA, resB})

	assert.Equal(t, "alpha", report.Summary.BestPerforming)
	assert.Equal(t, "alpha", report.Summary.MostOptimized)
}

func TestAnalyzeEmptyRun(t *testing.T) {
	report := New(quietLogger()).Analyze(nil, nil)
	assert.Empty(t, report.Categories)
	assert.Zero(t, report.Summary.OverallImprovement)
	assert.Empty(t, report.Summary.BestPerforming)
	assert.Empty(t, report.Summary.MostOptimized)
}

func TestRecommendations(t *testing.T) {
	tgt := target.Target{
		ID:       "exp",
		Maturity: target.MaturityExperimental,
		Baseline: target.Baseline{BundleSizeKB: 10, ExecOpsPerMS: 1, MemoryMB: 1, StartupMS: 1},
	}
	result := &generate.Result{TargetID: "exp", Success: true}

	report := New(quietLogger()).Analyze([]target.Target{tgt}, []*generate.Result{result})
	require.Len(t, report.Summary.Recommendations, 2)
	assert.Contains(t, report.Summary.Recommendations[0], "declares no optimizations")
	assert.Contains(t, report.Summary.Recommendations[1], "experimental")
}
