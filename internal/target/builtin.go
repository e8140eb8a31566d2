package target

// Builtin returns the compiled-in target catalog. The catalog is
// constructed fresh on every call so callers can never share mutable
// state through it.
func Builtin() *Catalog {
	c, err := NewCatalog(builtinTargets()...)
	if err != nil {
		// The compiled-in catalog is validated by tests; a construction
		// failure here is a build defect, not a runtime condition.
		panic(err)
	}
	return c
}

func builtinTargets() []Target {
	return []Target{
		{
			ID:        "web-react",
			Platform:  PlatformWeb,
			Framework: FrameworkReact,
			Language:  "typescript",
			Maturity:  MaturityStable,
			Baseline:  Baseline{CompileTimeMS: 8200, BundleSizeKB: 420, ExecOpsPerMS: 95, MemoryMB: 68, StartupMS: 1200},
			Capabilities: []Capability{
				{Name: "client-routing", Profile: CapabilityProfile{LatencyMS: 4, Throughput: 240}},
				{Name: "form-validation", Profile: CapabilityProfile{LatencyMS: 2, Throughput: 500}},
				{Name: "rest-client", Profile: CapabilityProfile{LatencyMS: 35, Throughput: 120}},
			},
			Optimizations: []Optimization{
				{Category: OptimizePerformance, Impact: ImpactHigh, Technique: "code-splitting"},
				{Category: OptimizeSize, Impact: ImpactHigh, Technique: "tree-shaking"},
				{Category: OptimizeMemory, Impact: ImpactMedium, Technique: "memoized-selectors"},
			},
		},
		{
			ID:        "web-vue",
			Platform:  PlatformWeb,
			Framework: FrameworkVue,
			Language:  "typescript",
			Maturity:  MaturityStable,
			Baseline:  Baseline{CompileTimeMS: 6800, BundleSizeKB: 360, ExecOpsPerMS: 102, MemoryMB: 61, StartupMS: 1050},
			Capabilities: []Capability{
				{Name: "client-routing", Profile: CapabilityProfile{LatencyMS: 4, Throughput: 250}},
				{Name: "form-validation", Profile: CapabilityProfile{LatencyMS: 2, Throughput: 520}},
				{Name: "rest-client", Profile: CapabilityProfile{LatencyMS: 35, Throughput: 125}},
			},
			Optimizations: []Optimization{
				{Category: OptimizePerformance, Impact: ImpactHigh, Technique: "compiler-optimized-rendering"},
				{Category: OptimizeSize, Impact: ImpactHigh, Technique: "tree-shaking"},
			},
		},
		{
			ID:        "web-angular",
			Platform:  PlatformWeb,
			Framework: FrameworkAngular,
			Language:  "typescript",
			Maturity:  MaturityStable,
			Baseline:  Baseline{CompileTimeMS: 14500, BundleSizeKB: 540, ExecOpsPerMS: 88, MemoryMB: 82, StartupMS: 1500},
			Capabilities: []Capability{
				{Name: "client-routing", Profile: CapabilityProfile{LatencyMS: 5, Throughput: 220}},
				{Name: "form-validation", Profile: CapabilityProfile{LatencyMS: 2, Throughput: 480}},
				{Name: "rest-client", Profile: CapabilityProfile{LatencyMS: 36, Throughput: 115}},
			},
			Optimizations: []Optimization{
				{Category: OptimizePerformance, Impact: ImpactMedium, Technique: "aot-compilation"},
				{Category: OptimizeSize, Impact: ImpactMedium, Technique: "ivy-tree-shaking"},
			},
		},
		{
			ID:        "web-svelte",
			Platform:  PlatformWeb,
			Framework: FrameworkSvelte,
			Language:  "typescript",
			Maturity:  MaturityBeta,
			Baseline:  Baseline{CompileTimeMS: 5200, BundleSizeKB: 180, ExecOpsPerMS: 118, MemoryMB: 42, StartupMS: 700},
			Capabilities: []Capability{
				{Name: "client-routing", Profile: CapabilityProfile{LatencyMS: 3, Throughput: 280}},
				{Name: "form-validation", Profile: CapabilityProfile{LatencyMS: 1, Throughput: 600}},
				{Name: "rest-client", Profile: CapabilityProfile{LatencyMS: 34, Throughput: 130}},
			},
			Optimizations: []Optimization{
				{Category: OptimizeSize, Impact: ImpactHigh, Technique: "no-runtime-compilation"},
				{Category: OptimizePerformance, Impact: ImpactHigh, Technique: "compiled-reactivity"},
			},
		},
		{
			ID:        "mobile-ios",
			Platform:  PlatformMobile,
			Framework: FrameworkSwiftUI,
			Language:  "swift",
			Maturity:  MaturityStable,
			Baseline:  Baseline{CompileTimeMS: 22000, BundleSizeKB: 9800, ExecOpsPerMS: 210, MemoryMB: 95, StartupMS: 450},
			Capabilities: []Capability{
				{Name: "native-navigation", Profile: CapabilityProfile{LatencyMS: 2, Throughput: 300}},
				{Name: "offline-storage", Profile: CapabilityProfile{LatencyMS: 8, Throughput: 180}},
				{Name: "push-notifications", Profile: CapabilityProfile{LatencyMS: 120, Throughput: 40}},
			},
			Optimizations: []Optimization{
				{Category: OptimizePerformance, Impact: ImpactHigh, Technique: "whole-module-optimization"},
				{Category: OptimizeBattery, Impact: ImpactHigh, Technique: "background-task-coalescing"},
				{Category: OptimizeSize, Impact: ImpactMedium, Technique: "app-thinning"},
			},
		},
		{
			ID:        "mobile-android",
			Platform:  PlatformMobile,
			Framework: FrameworkJetpack,
			Language:  "kotlin",
			Maturity:  MaturityStable,
			Baseline:  Baseline{CompileTimeMS: 26000, BundleSizeKB: 12200, ExecOpsPerMS: 185, MemoryMB: 112, StartupMS: 600},
			Capabilities: []Capability{
				{Name: "native-navigation", Profile: CapabilityProfile{LatencyMS: 3, Throughput: 280}},
				{Name: "offline-storage", Profile: CapabilityProfile{LatencyMS: 9, Throughput: 170}},
				{Name: "push-notifications", Profile: CapabilityProfile{LatencyMS: 130, Throughput: 38}},
			},
			Optimizations: []Optimization{
				{Category: OptimizePerformance, Impact: ImpactHigh, Technique: "r8-full-mode"},
				{Category: OptimizeBattery, Impact: ImpactHigh, Technique: "workmanager-batching"},
				{Category: OptimizeSize, Impact: ImpactHigh, Technique: "resource-shrinking"},
			},
		},
		{
			ID:        "mobile-flutter",
			Platform:  PlatformMobile,
			Framework: FrameworkFlutter,
			Language:  "dart",
			Maturity:  MaturityStable,
			Baseline:  Baseline{CompileTimeMS: 18000, BundleSizeKB: 15600, ExecOpsPerMS: 160, MemoryMB: 128, StartupMS: 800},
			Capabilities: []Capability{
				{Name: "native-navigation", Profile: CapabilityProfile{LatencyMS: 3, Throughput: 260}},
				{Name: "offline-storage", Profile: CapabilityProfile{LatencyMS: 10, Throughput: 160}},
				{Name: "push-notifications", Profile: CapabilityProfile{LatencyMS: 135, Throughput: 36}},
			},
			Optimizations: []Optimization{
				{Category: OptimizePerformance, Impact: ImpactMedium, Technique: "ahead-of-time-compilation"},
				{Category: OptimizeSize, Impact: ImpactMedium, Technique: "deferred-components"},
				{Category: OptimizeBattery, Impact: ImpactMedium, Technique: "frame-pacing"},
			},
		},
		{
			ID:        "mobile-react-native",
			Platform:  PlatformMobile,
			Framework: FrameworkReactNative,
			Language:  "typescript",
			Maturity:  MaturityBeta,
			Baseline:  Baseline{CompileTimeMS: 16500, BundleSizeKB: 14100, ExecOpsPerMS: 140, MemoryMB: 142, StartupMS: 950},
			Capabilities: []Capability{
				{Name: "native-navigation", Profile: CapabilityProfile{LatencyMS: 5, Throughput: 220}},
				{Name: "offline-storage", Profile: CapabilityProfile{LatencyMS: 12, Throughput: 140}},
				{Name: "push-notifications", Profile: CapabilityProfile{LatencyMS: 140, Throughput: 34}},
			},
			Optimizations: []Optimization{
				{Category: OptimizePerformance, Impact: ImpactHigh, Technique: "hermes-engine"},
				{Category: OptimizeMemory, Impact: ImpactMedium, Technique: "inline-requires"},
			},
		},
		{
			ID:        "backend-nodejs",
			Platform:  PlatformBackend,
			Framework: FrameworkExpress,
			Language:  "typescript",
			Maturity:  MaturityStable,
			Baseline:  Baseline{CompileTimeMS: 4200, BundleSizeKB: 2800, ExecOpsPerMS: 130, MemoryMB: 145, StartupMS: 380},
			Capabilities: []Capability{
				{Name: "rest-api", Profile: CapabilityProfile{LatencyMS: 12, Throughput: 850}},
				{Name: "data-access", Profile: CapabilityProfile{LatencyMS: 18, Throughput: 620}},
				{Name: "auth-middleware", Profile: CapabilityProfile{LatencyMS: 3, Throughput: 1400}},
			},
			Optimizations: []Optimization{
				{Category: OptimizePerformance, Impact: ImpactMedium, Technique: "response-caching"},
				{Category: OptimizeMemory, Impact: ImpactMedium, Technique: "stream-processing"},
			},
		},
		{
			ID:        "backend-go",
			Platform:  PlatformBackend,
			Framework: FrameworkGin,
			Language:  "go",
			Maturity:  MaturityStable,
			Baseline:  Baseline{CompileTimeMS: 2600, BundleSizeKB: 11800, ExecOpsPerMS: 480, MemoryMB: 28, StartupMS: 45},
			Capabilities: []Capability{
				{Name: "rest-api", Profile: CapabilityProfile{LatencyMS: 3, Throughput: 4200}},
				{Name: "data-access", Profile: CapabilityProfile{LatencyMS: 6, Throughput: 2100}},
				{Name: "auth-middleware", Profile: CapabilityProfile{LatencyMS: 1, Throughput: 6800}},
			},
			Optimizations: []Optimization{
				{Category: OptimizePerformance, Impact: ImpactHigh, Technique: "connection-pooling"},
				{Category: OptimizeMemory, Impact: ImpactHigh, Technique: "zero-allocation-routing"},
				{Category: OptimizeSize, Impact: ImpactMedium, Technique: "symbol-stripping"},
			},
		},
		{
			ID:        "backend-python",
			Platform:  PlatformBackend,
			Framework: FrameworkFastAPI,
			Language:  "python",
			Maturity:  MaturityStable,
			Baseline:  Baseline{CompileTimeMS: 1200, BundleSizeKB: 1600, ExecOpsPerMS: 75, MemoryMB: 185, StartupMS: 900},
			Capabilities: []Capability{
				{Name: "rest-api", Profile: CapabilityProfile{LatencyMS: 16, Throughput: 650}},
				{Name: "data-access", Profile: CapabilityProfile{LatencyMS: 22, Throughput: 480}},
				{Name: "auth-middleware", Profile: CapabilityProfile{LatencyMS: 4, Throughput: 1100}},
			},
			Optimizations: []Optimization{
				{Category: OptimizePerformance, Impact: ImpactMedium, Technique: "async-io"},
				{Category: OptimizeMemory, Impact: ImpactLow, Technique: "lazy-model-loading"},
			},
		},
		{
			ID:        "backend-java",
			Platform:  PlatformBackend,
			Framework: FrameworkSpring,
			Language:  "java",
			Maturity:  MaturityBeta,
			Baseline:  Baseline{CompileTimeMS: 31000, BundleSizeKB: 48000, ExecOpsPerMS: 320, MemoryMB: 420, StartupMS: 4200},
			Capabilities: []Capability{
				{Name: "rest-api", Profile: CapabilityProfile{LatencyMS: 6, Throughput: 2800}},
				{Name: "data-access", Profile: CapabilityProfile{LatencyMS: 9, Throughput: 1600}},
				{Name: "auth-middleware", Profile: CapabilityProfile{LatencyMS: 2, Throughput: 4500}},
			},
			Optimizations: []Optimization{
				{Category: OptimizePerformance, Impact: ImpactHigh, Technique: "jit-warmup"},
				{Category: OptimizeMemory, Impact: ImpactMedium, Technique: "heap-tuning"},
				{Category: OptimizeSize, Impact: ImpactLow, Technique: "dependency-pruning"},
			},
		},
	}
}
