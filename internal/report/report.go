// Package report turns one run's aggregate output into the evidence
// report, the only artifact exposed outside the pipeline. Build is a
// pure function: deterministic given identical inputs, which is what
// makes golden-file testing of reports possible.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/polyforge/polyforge/internal/consistency"
	"github.com/polyforge/polyforge/internal/optimize"
	"github.com/polyforge/polyforge/internal/run"
	"github.com/polyforge/polyforge/internal/validate"
)

// Summary is the run's headline numbers.
type Summary struct {
	RunID            string    `json:"run_id" yaml:"run_id"`
	SpecID           string    `json:"spec_id" yaml:"spec_id"`
	SpecName         string    `json:"spec_name" yaml:"spec_name"`
	SpecHash         string    `json:"spec_hash" yaml:"spec_hash"`
	State            string    `json:"state" yaml:"state"`
	Incomplete       bool      `json:"incomplete" yaml:"incomplete"`
	TotalTargets     int       `json:"total_targets" yaml:"total_targets"`
	SucceededTargets int       `json:"succeeded_targets" yaml:"succeeded_targets"`
	FailedTargets    int       `json:"failed_targets" yaml:"failed_targets"`
	TotalArtifacts   int       `json:"total_artifacts" yaml:"total_artifacts"`
	TotalVariations  int       `json:"total_variations" yaml:"total_variations"`
	StartedAt        time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt       time.Time `json:"finished_at" yaml:"finished_at"`
}

// TargetHighlight is the per-target digest surfaced in the report.
type TargetHighlight struct {
	TargetID         string   `json:"target_id" yaml:"target_id"`
	Platform         string   `json:"platform" yaml:"platform"`
	Framework        string   `json:"framework" yaml:"framework"`
	Language         string   `json:"language" yaml:"language"`
	Success          bool     `json:"success" yaml:"success"`
	ErrorKind        string   `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	ErrorDetail      string   `json:"error_detail,omitempty" yaml:"error_detail,omitempty"`
	DefaultTemplate  bool     `json:"default_template,omitempty" yaml:"default_template,omitempty"`
	Artifacts        int      `json:"artifacts" yaml:"artifacts"`
	BundleSizeKB     float64  `json:"bundle_size_kb" yaml:"bundle_size_kb"`
	Consistency      float64  `json:"consistency" yaml:"consistency"`
	Completeness     float64  `json:"completeness" yaml:"completeness"`
	Accuracy         float64  `json:"accuracy" yaml:"accuracy"`
	Traceability     float64  `json:"traceability" yaml:"traceability"`
	ValidationPassed bool     `json:"validation_passed" yaml:"validation_passed"`
	FailedAxes       []string `json:"failed_axes,omitempty" yaml:"failed_axes,omitempty"`
	CacheHit         bool     `json:"cache_hit,omitempty" yaml:"cache_hit,omitempty"`
}

// ValidationSummary aggregates one axis across all targets.
type ValidationSummary struct {
	Axis              string  `json:"axis" yaml:"axis"`
	PassedTargets     int     `json:"passed_targets" yaml:"passed_targets"`
	FailedTargets     int     `json:"failed_targets" yaml:"failed_targets"`
	AverageConfidence float64 `json:"average_confidence" yaml:"average_confidence"`
}

// EvidenceReport is the immutable top-level output of a run.
type EvidenceReport struct {
	Summary      Summary             `json:"summary" yaml:"summary"`
	Targets      []TargetHighlight   `json:"targets" yaml:"targets"`
	Consistency  *consistency.Report `json:"consistency" yaml:"consistency"`
	Optimization *optimize.Report    `json:"optimization" yaml:"optimization"`
	Validation   []ValidationSummary `json:"validation" yaml:"validation"`
	Conclusions  []string            `json:"conclusions" yaml:"conclusions"`
}

// Build assembles the evidence report from the run aggregate. It only
// reads its input and has no side effects.
func Build(res *run.Result) *EvidenceReport {
	r := &EvidenceReport{
		Summary: Summary{
			RunID:      res.RunID,
			SpecID:     res.SpecID,
			SpecName:   res.SpecName,
			SpecHash:   res.SpecHash,
			State:      string(res.State),
			Incomplete: res.Incomplete,
			StartedAt:  res.StartedAt,
			FinishedAt: res.FinishedAt,
		},
		Consistency:  res.Consistency,
		Optimization: res.Optimization,
	}

	for _, tr := range res.Targets {
		r.Summary.TotalTargets++
		h := TargetHighlight{
			TargetID:  tr.Target.ID,
			Platform:  string(tr.Target.Platform),
			Framework: string(tr.Target.Framework),
			Language:  tr.Target.Language,
			CacheHit:  tr.CacheHit,
		}
		if tr.Result != nil {
			h.Success = tr.Result.Success
			h.ErrorKind = string(tr.Result.ErrorKind)
			h.ErrorDetail = tr.Result.ErrorDetail
			h.DefaultTemplate = tr.Result.DefaultTemplate
			h.Artifacts = len(tr.Result.Bundle.AllArtifacts())
			h.BundleSizeKB = tr.Result.Metrics.BundleSizeKB
			h.Consistency = tr.Result.Score.Consistency
			h.Completeness = tr.Result.Score.Completeness
			h.Accuracy = tr.Result.Score.Accuracy
			h.Traceability = tr.Result.Score.Traceability
			r.Summary.TotalArtifacts += h.Artifacts
		}
		if tr.Outcome != nil {
			h.ValidationPassed = tr.Outcome.Passed
			for _, ar := range tr.Outcome.Axes {
				if !ar.Passed {
					h.FailedAxes = append(h.FailedAxes, string(ar.Axis))
				}
			}
		}
		if h.Success {
			r.Summary.SucceededTargets++
		} else {
			r.Summary.FailedTargets++
		}
		r.Targets = append(r.Targets, h)
	}

	if res.Consistency != nil {
		r.Summary.TotalVariations = res.Consistency.TotalVariations
	}
	r.Validation = validationSummaries(res)
	r.Conclusions = conclusions(r)
	return r
}

func validationSummaries(res *run.Result) []ValidationSummary {
	summaries := make([]ValidationSummary, 0, len(validate.Axes()))
	for _, axis := range validate.Axes() {
		s := ValidationSummary{Axis: string(axis)}
		var confidence float64
		var scored int
		for _, tr := range res.Targets {
			if tr.Outcome == nil {
				continue
			}
			ar := tr.Outcome.Axis(axis)
			if ar.Passed {
				s.PassedTargets++
			} else {
				s.FailedTargets++
			}
			confidence += ar.Confidence
			scored++
		}
		if scored > 0 {
			s.AverageConfidence = confidence / float64(scored)
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// conclusions derives the free-text findings. Each sentence is a
// deterministic function of the report's numbers, so the same run
// always concludes the same things.
func conclusions(r *EvidenceReport) []string {
	var out []string

	switch {
	case r.Summary.Incomplete:
		out = append(out, fmt.Sprintf(
			"Run ended early: %d of the enabled targets completed; treat this report as partial evidence.",
			r.Summary.TotalTargets))
	case r.Summary.FailedTargets == 0:
		out = append(out, fmt.Sprintf(
			"All %d targets compiled successfully with %d artifacts emitted.",
			r.Summary.TotalTargets, r.Summary.TotalArtifacts))
	default:
		out = append(out, fmt.Sprintf(
			"%d of %d targets failed; per-target details are recorded above.",
			r.Summary.FailedTargets, r.Summary.TotalTargets))
	}

	if r.Consistency != nil {
		if r.Summary.TotalVariations == 0 && r.Summary.FailedTargets == 0 {
			out = append(out,
				"No cross-target variations were recorded: business logic, data models, and contracts are uniform across all outputs.")
		} else if r.Summary.TotalVariations > 0 {
			dims := dimensionsWithVariations(r.Consistency)
			out = append(out, fmt.Sprintf(
				"%d variations were recorded across dimensions: %s.",
				r.Summary.TotalVariations, joinSorted(dims)))
		}
	}

	if r.Optimization != nil && r.Optimization.Summary.BestPerforming != "" {
		out = append(out, fmt.Sprintf(
			"Best performing target: %s; smallest bundle: %s; mean optimization improvement %.1f%%.",
			r.Optimization.Summary.BestPerforming,
			r.Optimization.Summary.MostOptimized,
			r.Optimization.Summary.OverallImprovement))
	}

	for _, h := range r.Targets {
		if h.DefaultTemplate {
			out = append(out, fmt.Sprintf(
				"Target %s was compiled with the generic web template; review its output manually.", h.TargetID))
		}
	}
	return out
}

func dimensionsWithVariations(c *consistency.Report) []string {
	var dims []string
	for _, m := range c.Dimensions {
		if len(m.Variations) > 0 {
			dims = append(dims, string(m.Dimension))
		}
	}
	return dims
}

func joinSorted(items []string) string {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	out := ""
	for i, s := range sorted {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
