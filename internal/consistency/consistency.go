// Package consistency compares generation results across all targets of
// one run and scores how uniformly the specification's contracts were
// preserved. It is a pure aggregation over read-only results: it never
// recomputes generation and is deterministic given the same inputs.
package consistency

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/polyforge/polyforge/internal/generate"
	"github.com/polyforge/polyforge/internal/log"
	"github.com/polyforge/polyforge/internal/spec"
)

// Dimension identifies one tracked consistency dimension.
type Dimension string

const (
	DimBusinessLogic Dimension = "business-logic"
	DimDataModels    Dimension = "data-models"
	DimUI            Dimension = "ui"
	DimAPIContracts  Dimension = "api-contracts"
	DimErrorHandling Dimension = "error-handling"
	DimSecurity      Dimension = "security"
)

// Dimensions lists every dimension in its fixed reporting order.
func Dimensions() []Dimension {
	return []Dimension{
		DimBusinessLogic,
		DimDataModels,
		DimUI,
		DimAPIContracts,
		DimErrorHandling,
		DimSecurity,
	}
}

// Impact classifies how much a variation matters: a divergence on a
// required field is high, on an optional field medium, and purely
// cosmetic naming low.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// Variation is one recorded divergence between a target's emitted
// contract and the specification's declared shape.
type Variation struct {
	TargetID    string    `json:"target_id" yaml:"target_id"`
	Dimension   Dimension `json:"dimension" yaml:"dimension"`
	Description string    `json:"description" yaml:"description"`
	Impact      Impact    `json:"impact" yaml:"impact"`
}

// Metric scores one dimension across all targets of a run.
type Metric struct {
	Dimension    Dimension   `json:"dimension" yaml:"dimension"`
	Consistency  float64     `json:"consistency" yaml:"consistency"`
	Completeness float64     `json:"completeness" yaml:"completeness"`
	Accuracy     float64     `json:"accuracy" yaml:"accuracy"`
	Variations   []Variation `json:"variations,omitempty" yaml:"variations,omitempty"`
}

// Report is the derived, read-only aggregate over one run's results.
type Report struct {
	Dimensions      []Metric `json:"dimensions" yaml:"dimensions"`
	TotalVariations int      `json:"total_variations" yaml:"total_variations"`
}

// Dimension returns the metric for the named dimension, or a zero
// metric if it is absent.
func (r *Report) Dimension(d Dimension) Metric {
	for _, m := range r.Dimensions {
		if m.Dimension == d {
			return m
		}
	}
	return Metric{Dimension: d}
}

// Analyzer scores cross-target consistency against the specification's
// own declared contracts as the reference baseline.
type Analyzer struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Analyze builds the consistency report for one run. Results arrive in
// catalog registration order and are only read.
func (a *Analyzer) Analyze(s *spec.Specification, results []*generate.Result) *Report {
	report := &Report{}
	for _, d := range Dimensions() {
		m := a.scoreDimension(s, d, results)
		report.TotalVariations += len(m.Variations)
		report.Dimensions = append(report.Dimensions, m)
	}
	if report.TotalVariations > 0 {
		a.logger.Debug("consistency variations recorded", "count", report.TotalVariations)
	}
	return report
}

func (a *Analyzer) scoreDimension(s *spec.Specification, d Dimension, results []*generate.Result) Metric {
	m := Metric{Dimension: d}
	if len(results) == 0 {
		return m
	}

	clean := 0
	var completenessSum, accuracySum float64
	for _, result := range results {
		variations := a.findVariations(s, d, result)
		if len(variations) == 0 {
			clean++
		}
		m.Variations = append(m.Variations, variations...)
		completenessSum += dimensionCompleteness(s, d, result)
		accuracySum += result.Score.Accuracy
	}

	n := float64(len(results))
	m.Consistency = float64(clean) / n
	m.Completeness = completenessSum / n
	m.Accuracy = accuracySum / n
	return m
}

// findVariations compares one target's emitted contract for one
// dimension against the specification's declared shape.
func (a *Analyzer) findVariations(s *spec.Specification, d Dimension, result *generate.Result) []Variation {
	if !result.Success {
		detail := result.ErrorDetail
		if detail == "" {
			detail = string(result.ErrorKind)
		}
		return []Variation{{
			TargetID:    result.TargetID,
			Dimension:   d,
			Description: "generation failed: " + detail,
			Impact:      ImpactHigh,
		}}
	}

	switch d {
	case DimBusinessLogic:
		return flowVariations(s, d, result, "flow has no emitted logic")
	case DimDataModels:
		return modelVariations(s, result)
	case DimUI:
		variations := flowVariations(s, d, result, "flow has no emitted surface")
		if result.DefaultTemplate {
			// Template degradation is recorded as a variation on the
			// rendered surface, never as an error.
			variations = append(variations, Variation{
				TargetID:    result.TargetID,
				Dimension:   d,
				Description: "no dedicated template set for the target framework; output uses the generic web templates",
				Impact:      ImpactMedium,
			})
		}
		return variations
	case DimAPIContracts:
		return a.contractVariations(s, result)
	case DimErrorHandling:
		if result.Contract.ErrorHandling == "" {
			return []Variation{{
				TargetID:    result.TargetID,
				Dimension:   d,
				Description: "no error handling contract emitted",
				Impact:      ImpactMedium,
			}}
		}
	case DimSecurity:
		return securityVariations(s, result)
	}
	return nil
}

func flowVariations(s *spec.Specification, d Dimension, result *generate.Result, reason string) []Variation {
	screens := make(map[string]bool, len(result.Contract.Screens))
	for _, name := range result.Contract.Screens {
		screens[name] = true
	}

	var variations []Variation
	for _, f := range s.Flows {
		if !screens[f.Name] {
			variations = append(variations, Variation{
				TargetID:    result.TargetID,
				Dimension:   d,
				Description: fmt.Sprintf("%s: %s", f.Name, reason),
				Impact:      ImpactHigh,
			})
		}
	}
	return variations
}

func modelVariations(s *spec.Specification, result *generate.Result) []Variation {
	var variations []Variation
	for _, e := range s.Entities {
		fields, ok := result.Contract.Models[e.Name]
		if !ok {
			variations = append(variations, Variation{
				TargetID:    result.TargetID,
				Dimension:   DimDataModels,
				Description: fmt.Sprintf("entity %s has no emitted model", e.Name),
				Impact:      ImpactHigh,
			})
			continue
		}
		emitted := make(map[string]generate.ModelField, len(fields))
		for _, f := range fields {
			emitted[f.Name] = f
		}
		for _, f := range e.Fields {
			ef, ok := emitted[f.Name]
			switch {
			case !ok && f.Required:
				variations = append(variations, Variation{
					TargetID:    result.TargetID,
					Dimension:   DimDataModels,
					Description: fmt.Sprintf("required field %s.%s missing", e.Name, f.Name),
					Impact:      ImpactHigh,
				})
			case !ok:
				variations = append(variations, Variation{
					TargetID:    result.TargetID,
					Dimension:   DimDataModels,
					Description: fmt.Sprintf("optional field %s.%s missing", e.Name, f.Name),
					Impact:      ImpactMedium,
				})
			case ef.Required != f.Required:
				variations = append(variations, Variation{
					TargetID:    result.TargetID,
					Dimension:   DimDataModels,
					Description: fmt.Sprintf("field %s.%s required flag diverges", e.Name, f.Name),
					Impact:      ImpactHigh,
				})
			case ef.Name != f.Name:
				variations = append(variations, Variation{
					TargetID:    result.TargetID,
					Dimension:   DimDataModels,
					Description: fmt.Sprintf("field %s.%s renamed to %s", e.Name, f.Name, ef.Name),
					Impact:      ImpactLow,
				})
			}
		}
	}
	return variations
}

// contractVariations compares emitted API operations against the flows
// declared in the specification. Targets that publish an OpenAPI
// document are checked through it; others through the structured
// endpoint list.
func (a *Analyzer) contractVariations(s *spec.Specification, result *generate.Result) []Variation {
	var variations []Variation

	declared := make(map[string]bool, len(result.Contract.Endpoints))
	for _, ep := range result.Contract.Endpoints {
		declared[ep.Flow] = true
	}
	for _, f := range s.Flows {
		if !declared[f.Name] {
			variations = append(variations, Variation{
				TargetID:    result.TargetID,
				Dimension:   DimAPIContracts,
				Description: fmt.Sprintf("flow %s has no emitted endpoint", f.Name),
				Impact:      ImpactHigh,
			})
		}
	}

	contract, ok := result.Bundle.FindByPath("api/openapi.json")
	if !ok {
		return variations
	}
	doc, err := openapi3.NewLoader().LoadFromData([]byte(contract.Content))
	if err != nil {
		variations = append(variations, Variation{
			TargetID:    result.TargetID,
			Dimension:   DimAPIContracts,
			Description: "emitted OpenAPI document does not parse: " + err.Error(),
			Impact:      ImpactHigh,
		})
		return variations
	}
	if err := doc.Validate(context.Background()); err != nil {
		variations = append(variations, Variation{
			TargetID:    result.TargetID,
			Dimension:   DimAPIContracts,
			Description: "emitted OpenAPI document is invalid: " + err.Error(),
			Impact:      ImpactHigh,
		})
		return variations
	}
	for _, ep := range result.Contract.Endpoints {
		item := doc.Paths.Find(ep.Path)
		if item == nil || item.GetOperation(ep.Method) == nil {
			variations = append(variations, Variation{
				TargetID:    result.TargetID,
				Dimension:   DimAPIContracts,
				Description: fmt.Sprintf("endpoint %s %s missing from OpenAPI document", ep.Method, ep.Path),
				Impact:      ImpactMedium,
			})
		}
	}
	return variations
}

func securityVariations(s *spec.Specification, result *generate.Result) []Variation {
	controls := make(map[string]bool, len(result.Contract.SecurityControls))
	for _, id := range result.Contract.SecurityControls {
		controls[id] = true
	}

	var variations []Variation
	for _, rule := range s.Compliance {
		if !controls[rule.ID] {
			variations = append(variations, Variation{
				TargetID:    result.TargetID,
				Dimension:   DimSecurity,
				Description: fmt.Sprintf("compliance rule %s not reflected", rule.ID),
				Impact:      ImpactHigh,
			})
		}
	}
	return variations
}

// dimensionCompleteness is the fraction of the specification's elements
// relevant to one dimension that produced some artifact for this
// target. A specification with no relevant elements scores 0.
func dimensionCompleteness(s *spec.Specification, d Dimension, result *generate.Result) float64 {
	sources := make(map[string]bool)
	for _, a := range result.Bundle.AllArtifacts() {
		sources[a.Source] = true
	}

	var total, produced int
	switch d {
	case DimDataModels:
		for _, e := range s.Entities {
			total++
			if sources["entity:"+e.Name] {
				produced++
			}
		}
	case DimBusinessLogic, DimUI, DimAPIContracts:
		for _, f := range s.Flows {
			total++
			if sources["flow:"+f.Name] {
				produced++
			}
		}
	case DimSecurity:
		for _, rule := range s.Compliance {
			total++
			if sources["compliance:"+rule.ID] {
				produced++
			}
		}
	case DimErrorHandling:
		total++
		if result.Contract.ErrorHandling != "" {
			produced++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(produced) / float64(total)
}
