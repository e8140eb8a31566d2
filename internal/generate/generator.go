package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/polyforge/polyforge/internal/log"
	"github.com/polyforge/polyforge/internal/spec"
	"github.com/polyforge/polyforge/internal/target"
)

// TemplateSource prepares template resources for a framework before
// generation. The built-in source is in-memory and never fails; an
// externally sourced implementation may fail transiently, in which case
// the orchestrator retries the target with backoff.
type TemplateSource interface {
	Prepare(ctx context.Context, fw target.Framework) error
}

type builtinSource struct{}

func (builtinSource) Prepare(context.Context, target.Framework) error { return nil }

// Generator compiles one specification snapshot against one target.
// It is stateless apart from its collaborators and safe for concurrent
// use across targets.
type Generator struct {
	logger *log.Logger
	source TemplateSource
}

// New creates a Generator with the built-in in-memory template source.
func New(logger *log.Logger) *Generator {
	return NewWithSource(logger, builtinSource{})
}

// NewWithSource creates a Generator with an injected template source.
func NewWithSource(logger *log.Logger, source TemplateSource) *Generator {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Generator{logger: logger, source: source}
}

// Generate compiles the specification for one target. Semantic failures
// (a structurally invalid specification) are recorded on the returned
// Result with success=false; a non-nil error is returned only for
// infrastructure problems (template source unavailable, context done)
// that the orchestrator may retry or convert into a recorded failure.
func (g *Generator) Generate(ctx context.Context, s *spec.Specification, tgt target.Target) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	specHash, err := spec.Hash(s)
	if err != nil {
		return nil, fmt.Errorf("hash spec: %w", err)
	}

	if err := g.source.Prepare(ctx, tgt.Framework); err != nil {
		return nil, fmt.Errorf("prepare templates for %s: %w", tgt.Framework, err)
	}

	if err := s.Validate(); err != nil {
		g.logger.WithError(err).Warn("specification structurally invalid",
			"target", tgt.ID)
		return FailedResult(tgt.ID, s.ID, specHash, ErrKindSpecInvalid, err.Error()), nil
	}

	set, mapped := templatesFor(tgt.Framework)
	if !mapped {
		g.logger.Warn("no template set for framework, using generic web template",
			"target", tgt.ID, "framework", tgt.Framework)
	}

	result := &Result{
		TargetID:        tgt.ID,
		SpecID:          s.ID,
		SpecHash:        specHash,
		Success:         true,
		DefaultTemplate: !mapped,
		Contract: Contract{
			Models:        make(map[string][]ModelField, len(s.Entities)),
			ErrorHandling: "structured-error-responses",
		},
	}
	if !mapped {
		result.Notes = append(result.Notes,
			fmt.Sprintf("framework %q has no dedicated template set; generic web template applied", tgt.Framework))
	}

	endpoints := deriveEndpoints(s)
	result.Contract.Endpoints = endpoints

	// One component and one model artifact per entity.
	for _, e := range s.Entities {
		path, content := set.component(e)
		result.Bundle.Files = append(result.Bundle.Files,
			newArtifact(path, KindComponent, set.language, content, "entity:"+e.Name))

		path, content = set.model(e)
		result.Bundle.Files = append(result.Bundle.Files,
			newArtifact(path, KindModel, set.language, content, "entity:"+e.Name))

		fields := make([]ModelField, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = ModelField{Name: f.Name, Type: set.mapType(f.Type), Required: f.Required}
		}
		result.Contract.Models[e.Name] = fields
	}

	// One page/route artifact per flow.
	for _, f := range s.Flows {
		path, content := set.page(f)
		result.Bundle.Files = append(result.Bundle.Files,
			newArtifact(path, KindPage, set.language, content, "flow:"+f.Name))
		result.Contract.Screens = append(result.Contract.Screens, f.Name)
	}

	// One service artifact per architecture component.
	for _, c := range s.Architecture.Components {
		path, content := set.service(c)
		result.Bundle.Files = append(result.Bundle.Files,
			newArtifact(path, KindService, set.language, content, "component:"+c.Name))
	}

	// One artifact per compliance rule, so every declared rule is
	// reflected somewhere in the output.
	for _, rule := range s.Compliance {
		path, content := securityArtifact(set.language, rule)
		result.Bundle.Files = append(result.Bundle.Files,
			newArtifact(path, KindService, set.language, content, "compliance:"+rule.ID))
		result.Contract.SecurityControls = append(result.Contract.SecurityControls, rule.ID)
	}

	// Backend targets additionally publish their API contract as an
	// OpenAPI document.
	if tgt.Platform == target.PlatformBackend {
		doc, err := buildOpenAPIDoc(s, endpoints)
		if err != nil {
			return nil, fmt.Errorf("build openapi contract: %w", err)
		}
		data, err := doc.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("marshal openapi contract: %w", err)
		}
		result.Bundle.Files = append(result.Bundle.Files,
			newArtifact("api/openapi.json", KindContract, "json", string(data), "architecture"))
	}

	// Manifest: config, dependencies, command triple, docs.
	m := manifestFor(tgt.Framework)
	result.Bundle.Config = append(result.Bundle.Config,
		newArtifact(m.configPath, KindConfig, set.language, m.configContent(s), "spec"))
	result.Bundle.Dependencies = m.dependencies
	result.Bundle.Commands = m.commands
	result.Bundle.Docs = append(result.Bundle.Docs,
		newArtifact("README.md", KindDocs, "markdown", readme(s, tgt, m.commands), "spec"))

	result.Features = platformFeatures(s, tgt)
	result.Score = preservationScore(s, result)
	result.Metrics = estimateMetrics(tgt, time.Since(start))

	g.logger.Debug("generation complete",
		"target", tgt.ID,
		"artifacts", len(result.Bundle.AllArtifacts()),
		"bytes", result.Bundle.TotalSizeBytes())

	return result, nil
}

func newArtifact(path string, kind ArtifactKind, language, content, source string) Artifact {
	return Artifact{
		Path:     path,
		Kind:     kind,
		Language: language,
		Size:     len(content),
		Hash:     spec.HashBytes([]byte(content)),
		Content:  content,
		Source:   source,
	}
}

// deriveEndpoints maps each flow to one API endpoint. The method follows
// the flow's first entity-touching step; the path is a deterministic
// function of the flow name, identical for every target.
func deriveEndpoints(s *spec.Specification) []Endpoint {
	endpoints := make([]Endpoint, 0, len(s.Flows))
	for _, f := range s.Flows {
		method := "POST"
		for _, step := range f.Steps {
			if step.Entity == "" {
				continue
			}
			switch step.Action {
			case "read":
				method = "GET"
			case "update":
				method = "PUT"
			case "delete":
				method = "DELETE"
			}
			break
		}
		endpoints = append(endpoints, Endpoint{
			Method: method,
			Path:   "/flows/" + kebab(f.Name),
			Flow:   f.Name,
		})
	}
	return endpoints
}

// platformFeatures maps what the specification needs onto the target's
// declared capability set.
func platformFeatures(s *spec.Specification, tgt target.Target) []PlatformFeature {
	var needed []string
	switch tgt.Platform {
	case target.PlatformWeb:
		if len(s.Flows) > 0 {
			needed = append(needed, "client-routing")
		}
		if len(s.Entities) > 0 {
			needed = append(needed, "form-validation")
		}
		if len(s.Architecture.Components) > 0 {
			needed = append(needed, "rest-client")
		}
	case target.PlatformMobile:
		if len(s.Flows) > 0 {
			needed = append(needed, "native-navigation")
		}
		if len(s.Entities) > 0 {
			needed = append(needed, "offline-storage")
		}
		for _, f := range s.Flows {
			if hasNotifyStep(f) {
				needed = append(needed, "push-notifications")
				break
			}
		}
	case target.PlatformBackend:
		if len(s.Flows) > 0 || len(s.Entities) > 0 {
			needed = append(needed, "rest-api")
		}
		if len(s.Entities) > 0 {
			needed = append(needed, "data-access")
		}
		for _, f := range s.Flows {
			if f.AuthRequired {
				needed = append(needed, "auth-middleware")
				break
			}
		}
	}

	features := make([]PlatformFeature, len(needed))
	for i, name := range needed {
		features[i] = PlatformFeature{
			Name:      name,
			Mapping:   string(tgt.Framework) + ":" + name,
			Supported: tgt.HasCapability(name),
		}
	}
	return features
}

func hasNotifyStep(f spec.Flow) bool {
	for _, s := range f.Steps {
		if s.Action == "notify" {
			return true
		}
	}
	return false
}

// preservationScore is computed from the generated output, never declared.
func preservationScore(s *spec.Specification, r *Result) PreservationScore {
	score := PreservationScore{}

	// Completeness: fraction of spec elements that produced artifacts.
	elements := 2*len(s.Entities) + len(s.Flows) + len(s.Architecture.Components)
	if elements > 0 {
		emitted := 0
		for _, a := range r.Bundle.Files {
			switch a.Kind {
			case KindComponent, KindModel, KindPage:
				emitted++
			case KindService:
				if len(a.Source) > len("component:") && a.Source[:len("component:")] == "component:" {
					emitted++
				}
			}
		}
		score.Completeness = capUnit(float64(emitted) / float64(elements))
	}

	// Accuracy: fraction of spec fields preserved in the emitted models.
	totalFields, preserved := 0, 0
	for _, e := range s.Entities {
		totalFields += len(e.Fields)
		emitted := r.Contract.Models[e.Name]
		for _, f := range e.Fields {
			for _, mf := range emitted {
				if mf.Name == f.Name && mf.Required == f.Required {
					preserved++
					break
				}
			}
		}
	}
	if totalFields > 0 {
		score.Accuracy = capUnit(float64(preserved) / float64(totalFields))
	} else {
		score.Accuracy = 1.0
	}

	// Traceability: fraction of artifacts that carry a source reference.
	all := r.Bundle.AllArtifacts()
	if len(all) > 0 {
		traced := 0
		for _, a := range all {
			if a.Source != "" {
				traced++
			}
		}
		score.Traceability = capUnit(float64(traced) / float64(len(all)))
	}

	// Consistency: perfect unless the target degraded to the default
	// template or needs a capability the target does not declare.
	score.Consistency = 1.0
	if r.DefaultTemplate {
		score.Consistency -= 0.15
		score.Notes = append(score.Notes, "generic template substituted for unmapped framework")
	}
	for _, f := range r.Features {
		if !f.Supported {
			score.Consistency -= 0.05
			score.Notes = append(score.Notes, "capability not declared by target: "+f.Name)
		}
	}
	score.Consistency = capUnit(score.Consistency)

	return score
}

// estimateMetrics derives the optimized performance estimate from the
// target's declared baseline and its optimization set. A category with no
// declared optimization keeps its baseline value exactly, so an
// unoptimized metric yields an improvement of exactly zero downstream.
func estimateMetrics(tgt target.Target, elapsed time.Duration) PerformanceMetrics {
	m := PerformanceMetrics{
		GenerationMS:  float64(elapsed.Microseconds()) / 1000.0,
		CompileTimeMS: tgt.Baseline.CompileTimeMS,
		BundleSizeKB:  tgt.Baseline.BundleSizeKB,
		ExecMSPerKOps: tgt.Baseline.CostFor(target.OptimizePerformance),
		MemoryMB:      tgt.Baseline.MemoryMB,
		StartupMS:     tgt.Baseline.StartupMS,
	}

	for _, opt := range tgt.Optimizations {
		factor := 1.0 - impactFactor(opt.Impact)
		switch opt.Category {
		case target.OptimizePerformance:
			m.ExecMSPerKOps *= factor
		case target.OptimizeMemory:
			m.MemoryMB *= factor
		case target.OptimizeSize:
			m.BundleSizeKB *= factor
		case target.OptimizeBattery:
			m.StartupMS *= factor
		}
	}

	return m
}

// CostFor returns the metric value for an optimization category as a
// cost (lower is better), mirroring target.Baseline.CostFor.
func (m PerformanceMetrics) CostFor(c target.OptimizationCategory) float64 {
	switch c {
	case target.OptimizePerformance:
		return m.ExecMSPerKOps
	case target.OptimizeMemory:
		return m.MemoryMB
	case target.OptimizeSize:
		return m.BundleSizeKB
	case target.OptimizeBattery:
		return m.StartupMS
	default:
		return 0
	}
}

func impactFactor(impact target.ImpactLevel) float64 {
	switch impact {
	case target.ImpactHigh:
		return 0.30
	case target.ImpactMedium:
		return 0.18
	case target.ImpactLow:
		return 0.08
	default:
		return 0
	}
}

func capUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
