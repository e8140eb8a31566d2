// Package optimize aggregates the optimization techniques each target
// declares and the improvement they produced against the target's own
// declared baseline. Like the consistency analyzer it only reads
// generation results; it never recomputes anything.
package optimize

import (
	"fmt"

	"github.com/polyforge/polyforge/internal/generate"
	"github.com/polyforge/polyforge/internal/log"
	"github.com/polyforge/polyforge/internal/target"
)

// Metric is one (target, optimization) measurement.
type Metric struct {
	TargetID       string                      `json:"target_id" yaml:"target_id"`
	Category       target.OptimizationCategory `json:"category" yaml:"category"`
	Technique      string                      `json:"technique" yaml:"technique"`
	Impact         target.ImpactLevel          `json:"impact" yaml:"impact"`
	Baseline       float64                     `json:"baseline" yaml:"baseline"`
	Optimized      float64                     `json:"optimized" yaml:"optimized"`
	ImprovementPct float64                     `json:"improvement_pct" yaml:"improvement_pct"`
}

// CategoryReport groups the metrics of one optimization category.
type CategoryReport struct {
	Category           target.OptimizationCategory `json:"category" yaml:"category"`
	Metrics            []Metric                    `json:"metrics" yaml:"metrics"`
	AverageImprovement float64                     `json:"average_improvement" yaml:"average_improvement"`
}

// Summary names the standout targets of a run. Ties are broken by
// catalog registration order, which is the order results arrive in.
type Summary struct {
	OverallImprovement float64  `json:"overall_improvement" yaml:"overall_improvement"`
	BestPerforming     string   `json:"best_performing" yaml:"best_performing"`
	MostOptimized      string   `json:"most_optimized" yaml:"most_optimized"`
	Recommendations    []string `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
}

// Report is the derived optimization aggregate for one run.
type Report struct {
	Categories []CategoryReport `json:"categories" yaml:"categories"`
	Summary    Summary          `json:"summary" yaml:"summary"`
}

// Category returns the report for one category, or a zero report.
func (r *Report) Category(c target.OptimizationCategory) CategoryReport {
	for _, cr := range r.Categories {
		if cr.Category == c {
			return cr
		}
	}
	return CategoryReport{Category: c}
}

// Analyzer computes optimization improvements per target.
type Analyzer struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Analyze pairs each result with its target (same index, catalog
// registration order) and measures every optimization the target
// declares. Failed results contribute no metrics.
func (a *Analyzer) Analyze(targets []target.Target, results []*generate.Result) *Report {
	report := &Report{}
	byCategory := map[target.OptimizationCategory][]Metric{}
	aggregate := map[string]float64{}

	for i, result := range results {
		if i >= len(targets) || !result.Success {
			continue
		}
		tgt := targets[i]
		for _, opt := range tgt.Optimizations {
			m := Metric{
				TargetID:  tgt.ID,
				Category:  opt.Category,
				Technique: opt.Technique,
				Impact:    opt.Impact,
				Baseline:  tgt.Baseline.CostFor(opt.Category),
				Optimized: result.Metrics.CostFor(opt.Category),
			}
			m.ImprovementPct = improvement(m.Baseline, m.Optimized) * 100
			byCategory[opt.Category] = append(byCategory[opt.Category], m)
			aggregate[tgt.ID] += m.ImprovementPct
		}
	}

	var overallSum float64
	var overallCount int
	for _, c := range categories() {
		metrics, ok := byCategory[c]
		if !ok {
			continue
		}
		var sum float64
		for _, m := range metrics {
			sum += m.ImprovementPct
		}
		avg := sum / float64(len(metrics))
		report.Categories = append(report.Categories, CategoryReport{
			Category:           c,
			Metrics:            metrics,
			AverageImprovement: avg,
		})
		overallSum += sum
		overallCount += len(metrics)
	}
	if overallCount > 0 {
		report.Summary.OverallImprovement = overallSum / float64(overallCount)
	}

	report.Summary.BestPerforming = bestPerforming(targets, results, aggregate)
	report.Summary.MostOptimized = mostOptimized(targets, results)
	report.Summary.Recommendations = recommendations(targets, results)
	return report
}

// improvement is (baseline - optimized) / baseline. A zero or negative
// baseline yields 0, and equal values yield exactly 0.
func improvement(baseline, optimized float64) float64 {
	if baseline <= 0 {
		return 0
	}
	if baseline == optimized {
		return 0
	}
	return (baseline - optimized) / baseline
}

func categories() []target.OptimizationCategory {
	return []target.OptimizationCategory{
		target.OptimizePerformance,
		target.OptimizeMemory,
		target.OptimizeSize,
		target.OptimizeBattery,
	}
}

// bestPerforming is the target with the highest aggregate improvement.
// Strict comparison keeps the earlier-registered target on ties.
func bestPerforming(targets []target.Target, results []*generate.Result, aggregate map[string]float64) string {
	best := ""
	bestScore := 0.0
	for i, result := range results {
		if i >= len(targets) || !result.Success {
			continue
		}
		score := aggregate[targets[i].ID]
		if best == "" || score > bestScore {
			best = targets[i].ID
			bestScore = score
		}
	}
	return best
}

// mostOptimized is the successful target with the smallest emitted
// bundle estimate.
func mostOptimized(targets []target.Target, results []*generate.Result) string {
	best := ""
	bestSize := 0.0
	for i, result := range results {
		if i >= len(targets) || !result.Success {
			continue
		}
		size := result.Metrics.BundleSizeKB
		if best == "" || size < bestSize {
			best = targets[i].ID
			bestSize = size
		}
	}
	return best
}

func recommendations(targets []target.Target, results []*generate.Result) []string {
	var recs []string
	for i, result := range results {
		if i >= len(targets) || !result.Success {
			continue
		}
		tgt := targets[i]
		if len(tgt.Optimizations) == 0 {
			recs = append(recs,
				fmt.Sprintf("target %s declares no optimizations; output ships at baseline cost", tgt.ID))
		}
		if tgt.Maturity == target.MaturityExperimental {
			recs = append(recs,
				fmt.Sprintf("target %s templates are experimental; review output before shipping", tgt.ID))
		}
	}
	return recs
}
