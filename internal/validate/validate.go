// Package validate scores one generation result along six independent
// axes. An axis failure is recorded data, never an abort: the
// orchestrator runs every axis for every target and surfaces the
// outcomes in the evidence report.
package validate

import (
	"fmt"
	"strings"

	"github.com/polyforge/polyforge/internal/generate"
	"github.com/polyforge/polyforge/internal/log"
	"github.com/polyforge/polyforge/internal/spec"
	"github.com/polyforge/polyforge/internal/target"
)

// Axis identifies one validation dimension.
type Axis string

const (
	AxisSyntax             Axis = "syntax"
	AxisSemantics          Axis = "semantics"
	AxisBusinessLogic      Axis = "business-logic"
	AxisPlatformCompliance Axis = "platform-compliance"
	AxisPerformance        Axis = "performance"
	AxisSecurity           Axis = "security"
)

// Axes lists every axis in its fixed evaluation order.
func Axes() []Axis {
	return []Axis{
		AxisSyntax,
		AxisSemantics,
		AxisBusinessLogic,
		AxisPlatformCompliance,
		AxisPerformance,
		AxisSecurity,
	}
}

// AxisResult is the score for one axis of one target's result.
type AxisResult struct {
	Axis       Axis     `json:"axis" yaml:"axis"`
	Passed     bool     `json:"passed" yaml:"passed"`
	Confidence float64  `json:"confidence" yaml:"confidence"`
	Evidence   []string `json:"evidence,omitempty" yaml:"evidence,omitempty"`
}

// Outcome holds the six axis results for one target.
type Outcome struct {
	TargetID string       `json:"target_id" yaml:"target_id"`
	Passed   bool         `json:"passed" yaml:"passed"`
	Axes     []AxisResult `json:"axes" yaml:"axes"`
}

// Axis returns the result for the named axis, or a zero result if the
// outcome predates it.
func (o *Outcome) Axis(a Axis) AxisResult {
	for _, r := range o.Axes {
		if r.Axis == a {
			return r
		}
	}
	return AxisResult{Axis: a}
}

// bundleTolerance is how far the estimated bundle metrics may exceed
// the target's declared baseline before the performance axis fails.
const bundleTolerance = 1.10

// Validator checks generation results against the specification and
// the target's declared characteristics.
type Validator struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate scores the result on all six axes. The result is read-only;
// validation never recomputes generation.
func (v *Validator) Validate(s *spec.Specification, tgt target.Target, result *generate.Result) *Outcome {
	outcome := &Outcome{TargetID: result.TargetID}

	if !result.Success {
		detail := result.ErrorDetail
		if detail == "" {
			detail = string(result.ErrorKind)
		}
		for _, a := range Axes() {
			outcome.Axes = append(outcome.Axes, AxisResult{
				Axis:       a,
				Passed:     false,
				Confidence: 1.0,
				Evidence:   []string{"generation failed: " + detail},
			})
		}
		return outcome
	}

	outcome.Axes = []AxisResult{
		checkSyntax(result),
		checkSemantics(s, result),
		checkBusinessLogic(s, result),
		checkPlatformCompliance(result),
		checkPerformance(tgt, result),
		checkSecurity(s, result),
	}

	outcome.Passed = true
	for _, r := range outcome.Axes {
		if !r.Passed {
			outcome.Passed = false
			v.logger.Debug("validation axis failed",
				"target", result.TargetID, "axis", string(r.Axis))
		}
	}
	return outcome
}

// checkSyntax verifies well-formedness of the emitted artifacts. The
// templates are known-valid, so this axis is deterministic: it can only
// fail on a malformed artifact record.
func checkSyntax(result *generate.Result) AxisResult {
	r := AxisResult{Axis: AxisSyntax, Passed: true, Confidence: 1.0}
	for _, a := range result.Bundle.AllArtifacts() {
		switch {
		case a.Path == "":
			r.Passed = false
			r.Evidence = append(r.Evidence, "artifact with empty path")
		case a.Content == "":
			r.Passed = false
			r.Evidence = append(r.Evidence, fmt.Sprintf("artifact %s has no content", a.Path))
		case a.Size != len(a.Content):
			r.Passed = false
			r.Evidence = append(r.Evidence, fmt.Sprintf("artifact %s size mismatch", a.Path))
		case len(a.Hash) != 64:
			r.Passed = false
			r.Evidence = append(r.Evidence, fmt.Sprintf("artifact %s has malformed hash", a.Path))
		}
	}
	if r.Passed {
		r.Evidence = append(r.Evidence,
			fmt.Sprintf("%d artifacts well-formed", len(result.Bundle.AllArtifacts())))
	}
	return r
}

// checkSemantics verifies type and shape fidelity between the
// specification's entities and the emitted models.
func checkSemantics(s *spec.Specification, result *generate.Result) AxisResult {
	r := AxisResult{Axis: AxisSemantics, Passed: true, Confidence: 1.0}
	if len(s.Entities) == 0 {
		r.Evidence = append(r.Evidence, "no entities declared")
		return r
	}

	total, preserved := 0, 0
	for _, e := range s.Entities {
		fields, ok := result.Contract.Models[e.Name]
		if !ok {
			r.Passed = false
			r.Evidence = append(r.Evidence, fmt.Sprintf("entity %s has no emitted model", e.Name))
			total += len(e.Fields)
			continue
		}
		emitted := make(map[string]generate.ModelField, len(fields))
		for _, f := range fields {
			emitted[f.Name] = f
		}
		for _, f := range e.Fields {
			total++
			ef, ok := emitted[f.Name]
			switch {
			case !ok:
				r.Passed = false
				r.Evidence = append(r.Evidence,
					fmt.Sprintf("field %s.%s missing from emitted model", e.Name, f.Name))
			case ef.Required != f.Required:
				r.Passed = false
				r.Evidence = append(r.Evidence,
					fmt.Sprintf("field %s.%s required flag not preserved", e.Name, f.Name))
			default:
				preserved++
			}
		}
	}
	if total > 0 {
		r.Confidence = float64(preserved) / float64(total)
	}
	if r.Passed {
		r.Evidence = append(r.Evidence,
			fmt.Sprintf("%d/%d fields preserved across %d models", preserved, total, len(s.Entities)))
	}
	return r
}

// checkBusinessLogic verifies every flow produced an emitted code path.
func checkBusinessLogic(s *spec.Specification, result *generate.Result) AxisResult {
	r := AxisResult{Axis: AxisBusinessLogic, Passed: true, Confidence: 1.0}
	if len(s.Flows) == 0 {
		r.Evidence = append(r.Evidence, "no flows declared")
		return r
	}

	screens := make(map[string]bool, len(result.Contract.Screens))
	for _, name := range result.Contract.Screens {
		screens[name] = true
	}
	sources := artifactSources(result)

	covered := 0
	for _, f := range s.Flows {
		if screens[f.Name] && sources["flow:"+f.Name] {
			covered++
			continue
		}
		r.Passed = false
		r.Evidence = append(r.Evidence, fmt.Sprintf("flow %s has no emitted code path", f.Name))
	}
	r.Confidence = float64(covered) / float64(len(s.Flows))
	if r.Passed {
		r.Evidence = append(r.Evidence,
			fmt.Sprintf("all %d flows mapped to artifacts", len(s.Flows)))
	}
	return r
}

// checkPlatformCompliance verifies the capabilities the specification
// needs are actually declared by the target. The generator records the
// mapping; this axis judges it.
func checkPlatformCompliance(result *generate.Result) AxisResult {
	r := AxisResult{Axis: AxisPlatformCompliance, Passed: true, Confidence: 1.0}
	if len(result.Features) == 0 {
		r.Evidence = append(r.Evidence, "no platform capabilities required")
		return r
	}

	supported := 0
	for _, f := range result.Features {
		if f.Supported {
			supported++
			continue
		}
		r.Passed = false
		r.Evidence = append(r.Evidence,
			fmt.Sprintf("required capability %s not declared by target", f.Name))
	}
	r.Confidence = float64(supported) / float64(len(result.Features))
	if r.Passed {
		r.Evidence = append(r.Evidence,
			fmt.Sprintf("all %d required capabilities declared", len(result.Features)))
	}
	if result.DefaultTemplate {
		r.Evidence = append(r.Evidence, strings.Join(result.Notes, "; "))
	}
	return r
}

// checkPerformance verifies the estimated bundle metrics stay within
// tolerance of the target's declared baseline.
func checkPerformance(tgt target.Target, result *generate.Result) AxisResult {
	r := AxisResult{Axis: AxisPerformance, Passed: true, Confidence: 1.0}

	checks := []struct {
		name      string
		estimated float64
		baseline  float64
	}{
		{"bundle size", result.Metrics.BundleSizeKB, tgt.Baseline.BundleSizeKB},
		{"memory", result.Metrics.MemoryMB, tgt.Baseline.MemoryMB},
		{"startup time", result.Metrics.StartupMS, tgt.Baseline.StartupMS},
		{"execution cost", result.Metrics.ExecMSPerKOps, tgt.Baseline.CostFor(target.OptimizePerformance)},
	}
	for _, c := range checks {
		if c.baseline <= 0 {
			continue
		}
		if c.estimated > c.baseline*bundleTolerance {
			r.Passed = false
			r.Evidence = append(r.Evidence,
				fmt.Sprintf("%s %.1f exceeds baseline %.1f", c.name, c.estimated, c.baseline))
		}
	}
	if r.Passed {
		r.Evidence = append(r.Evidence, "estimated metrics within baseline tolerance")
	}
	return r
}

// checkSecurity verifies every declared compliance rule is reflected in
// at least one emitted artifact.
func checkSecurity(s *spec.Specification, result *generate.Result) AxisResult {
	r := AxisResult{Axis: AxisSecurity, Passed: true, Confidence: 1.0}
	if len(s.Compliance) == 0 {
		r.Evidence = append(r.Evidence, "no compliance rules declared")
		return r
	}

	sources := artifactSources(result)
	controls := make(map[string]bool, len(result.Contract.SecurityControls))
	for _, id := range result.Contract.SecurityControls {
		controls[id] = true
	}

	reflected := 0
	for _, rule := range s.Compliance {
		if controls[rule.ID] && sources["compliance:"+rule.ID] {
			reflected++
			continue
		}
		r.Passed = false
		r.Evidence = append(r.Evidence,
			fmt.Sprintf("compliance rule %s not reflected in any artifact", rule.ID))
	}
	r.Confidence = float64(reflected) / float64(len(s.Compliance))
	if r.Passed {
		r.Evidence = append(r.Evidence,
			fmt.Sprintf("all %d compliance rules reflected", len(s.Compliance)))
	}
	return r
}

func artifactSources(result *generate.Result) map[string]bool {
	sources := make(map[string]bool)
	for _, a := range result.Bundle.AllArtifacts() {
		sources[a.Source] = true
	}
	return sources
}
