package target

// Platform identifies the broad deployment platform of a target.
type Platform string

const (
	PlatformWeb     Platform = "web"
	PlatformMobile  Platform = "mobile"
	PlatformBackend Platform = "backend"
)

// Framework identifies the concrete framework a target compiles to.
// The set is closed: template dispatch switches over it with an explicit
// default arm, so an unmapped future framework degrades to the generic
// web template instead of failing generation.
type Framework string

const (
	FrameworkReact       Framework = "react"
	FrameworkVue         Framework = "vue"
	FrameworkAngular     Framework = "angular"
	FrameworkSvelte      Framework = "svelte"
	FrameworkSwiftUI     Framework = "swiftui"
	FrameworkJetpack     Framework = "jetpack-compose"
	FrameworkFlutter     Framework = "flutter"
	FrameworkReactNative Framework = "react-native"
	FrameworkExpress     Framework = "express"
	FrameworkGin         Framework = "gin"
	FrameworkFastAPI     Framework = "fastapi"
	FrameworkSpring      Framework = "spring-boot"
)

// Maturity describes how battle-tested a target's templates are.
type Maturity string

const (
	MaturityExperimental Maturity = "experimental"
	MaturityBeta         Maturity = "beta"
	MaturityStable       Maturity = "stable"
)

// OptimizationCategory groups optimizations by the resource they improve.
type OptimizationCategory string

const (
	OptimizePerformance OptimizationCategory = "performance"
	OptimizeMemory      OptimizationCategory = "memory"
	OptimizeSize        OptimizationCategory = "size"
	OptimizeBattery     OptimizationCategory = "battery"
)

// ImpactLevel grades the expected effect of an optimization.
type ImpactLevel string

const (
	ImpactLow    ImpactLevel = "low"
	ImpactMedium ImpactLevel = "medium"
	ImpactHigh   ImpactLevel = "high"
)

// Baseline is the performance a target declares for unoptimized output.
// All values are estimates published with the catalog, not measurements.
type Baseline struct {
	CompileTimeMS float64 `json:"compile_time_ms" yaml:"compile_time_ms"`
	BundleSizeKB  float64 `json:"bundle_size_kb" yaml:"bundle_size_kb"`
	ExecOpsPerMS  float64 `json:"exec_ops_per_ms" yaml:"exec_ops_per_ms"`
	MemoryMB      float64 `json:"memory_mb" yaml:"memory_mb"`
	StartupMS     float64 `json:"startup_ms" yaml:"startup_ms"`
}

// CostFor returns the baseline value for an optimization category as a
// cost metric (lower is better). Execution speed is inverted into
// milliseconds per thousand operations; battery has no declared baseline
// of its own, so startup time stands in for it.
func (b Baseline) CostFor(c OptimizationCategory) float64 {
	switch c {
	case OptimizePerformance:
		if b.ExecOpsPerMS <= 0 {
			return 0
		}
		return 1000.0 / b.ExecOpsPerMS
	case OptimizeMemory:
		return b.MemoryMB
	case OptimizeSize:
		return b.BundleSizeKB
	case OptimizeBattery:
		return b.StartupMS
	default:
		return 0
	}
}

// CapabilityProfile is the measured performance profile of one capability.
type CapabilityProfile struct {
	LatencyMS  float64 `json:"latency_ms" yaml:"latency_ms"`
	Throughput float64 `json:"throughput" yaml:"throughput"`
}

// Capability is a feature the target supports, with its profile.
type Capability struct {
	Name    string            `json:"name" yaml:"name"`
	Profile CapabilityProfile `json:"profile" yaml:"profile"`
}

// Optimization is a technique a target can apply to its output.
type Optimization struct {
	Category  OptimizationCategory `json:"category" yaml:"category"`
	Impact    ImpactLevel          `json:"impact" yaml:"impact"`
	Technique string               `json:"technique" yaml:"technique"`
}

// Target is one (platform, framework, language) compilation destination.
// Targets are registered once at catalog construction and never mutated;
// concurrent reads during a run are safe by construction.
type Target struct {
	ID            string         `json:"id" yaml:"id"`
	Platform      Platform       `json:"platform" yaml:"platform"`
	Framework     Framework      `json:"framework" yaml:"framework"`
	Language      string         `json:"language" yaml:"language"`
	Maturity      Maturity       `json:"maturity" yaml:"maturity"`
	Baseline      Baseline       `json:"baseline" yaml:"baseline"`
	Capabilities  []Capability   `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Optimizations []Optimization `json:"optimizations,omitempty" yaml:"optimizations,omitempty"`
}

// HasCapability reports whether the target declares the named capability.
func (t Target) HasCapability(name string) bool {
	for _, c := range t.Capabilities {
		if c.Name == name {
			return true
		}
	}
	return false
}
