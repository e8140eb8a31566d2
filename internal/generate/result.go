package generate

// ErrorKind classifies why a generation result is marked unsuccessful.
// Per-target failures are data on the result, never errors thrown past
// the orchestrator boundary.
type ErrorKind string

const (
	ErrKindNone          ErrorKind = ""
	ErrKindSpecInvalid   ErrorKind = "SpecInvalid"
	ErrKindTargetTimeout ErrorKind = "TargetTimeout"
	ErrKindInternal      ErrorKind = "Internal"
)

// ArtifactKind identifies what role a generated artifact plays.
type ArtifactKind string

const (
	KindComponent   ArtifactKind = "component"
	KindModel       ArtifactKind = "model"
	KindPage        ArtifactKind = "page"
	KindService     ArtifactKind = "service"
	KindConfig      ArtifactKind = "config"
	KindContract    ArtifactKind = "contract"
	KindDocs        ArtifactKind = "docs"
	KindBuildScript ArtifactKind = "build-script"
)

// Artifact is one generated file, addressable by its logical path.
type Artifact struct {
	Path     string       `json:"path" yaml:"path"`
	Kind     ArtifactKind `json:"kind" yaml:"kind"`
	Language string       `json:"language" yaml:"language"`
	Size     int          `json:"size" yaml:"size"`
	Hash     string       `json:"hash" yaml:"hash"`
	Content  string       `json:"content" yaml:"content"`
	Source   string       `json:"source,omitempty" yaml:"source,omitempty"` // spec element the artifact traces back to
}

// Dependency is one package the generated project depends on.
type Dependency struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Dev     bool   `json:"dev,omitempty" yaml:"dev,omitempty"`
}

// Commands is the canonical install/dev/build command triple.
type Commands struct {
	Install string `json:"install" yaml:"install"`
	Dev     string `json:"dev" yaml:"dev"`
	Build   string `json:"build" yaml:"build"`
}

// Bundle is the complete output of one generation: source files,
// configuration, dependencies, build commands, docs.
type Bundle struct {
	Files        []Artifact   `json:"files" yaml:"files"`
	Config       []Artifact   `json:"config" yaml:"config"`
	Docs         []Artifact   `json:"docs" yaml:"docs"`
	Dependencies []Dependency `json:"dependencies" yaml:"dependencies"`
	Commands     Commands     `json:"commands" yaml:"commands"`
}

// AllArtifacts returns every artifact in the bundle, files first.
func (b Bundle) AllArtifacts() []Artifact {
	out := make([]Artifact, 0, len(b.Files)+len(b.Config)+len(b.Docs))
	out = append(out, b.Files...)
	out = append(out, b.Config...)
	out = append(out, b.Docs...)
	return out
}

// TotalSizeBytes sums the byte size of every artifact in the bundle.
func (b Bundle) TotalSizeBytes() int {
	total := 0
	for _, a := range b.AllArtifacts() {
		total += a.Size
	}
	return total
}

// FindByPath returns the artifact with the given logical path.
func (b Bundle) FindByPath(path string) (Artifact, bool) {
	for _, a := range b.AllArtifacts() {
		if a.Path == path {
			return a, true
		}
	}
	return Artifact{}, false
}

// PreservationScore grades how faithfully the generated output preserves
// the specification's business logic. Every component is computed from
// the generated output, not declared.
type PreservationScore struct {
	Consistency  float64  `json:"consistency" yaml:"consistency"`
	Completeness float64  `json:"completeness" yaml:"completeness"`
	Accuracy     float64  `json:"accuracy" yaml:"accuracy"`
	Traceability float64  `json:"traceability" yaml:"traceability"`
	Notes        []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// PerformanceMetrics holds the estimated runtime characteristics of the
// generated bundle after the target's declared optimizations are applied.
// Estimates start from the target's declared baseline; a category with no
// declared optimization keeps its baseline value exactly.
type PerformanceMetrics struct {
	GenerationMS  float64 `json:"generation_ms" yaml:"generation_ms"`
	CompileTimeMS float64 `json:"compile_time_ms" yaml:"compile_time_ms"`
	BundleSizeKB  float64 `json:"bundle_size_kb" yaml:"bundle_size_kb"`
	ExecMSPerKOps float64 `json:"exec_ms_per_kops" yaml:"exec_ms_per_kops"`
	MemoryMB      float64 `json:"memory_mb" yaml:"memory_mb"`
	StartupMS     float64 `json:"startup_ms" yaml:"startup_ms"`
}

// PlatformFeature maps one capability the specification needs onto the
// target's declared feature set.
type PlatformFeature struct {
	Name      string `json:"name" yaml:"name"`
	Mapping   string `json:"mapping" yaml:"mapping"`
	Supported bool   `json:"supported" yaml:"supported"`
}

// ModelField is one field of an emitted data model, in target terms.
type ModelField struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Required bool   `json:"required" yaml:"required"`
}

// Endpoint is one emitted API endpoint.
type Endpoint struct {
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`
	Flow   string `json:"flow" yaml:"flow"`
}

// Contract is the structured summary of what the target emitted per
// tracked dimension. The consistency analyzer compares it against the
// specification's declared shape; it never re-parses artifact text.
type Contract struct {
	Models           map[string][]ModelField `json:"models" yaml:"models"`
	Endpoints        []Endpoint              `json:"endpoints" yaml:"endpoints"`
	Screens          []string                `json:"screens" yaml:"screens"`
	ErrorHandling    string                  `json:"error_handling" yaml:"error_handling"`
	SecurityControls []string                `json:"security_controls" yaml:"security_controls"`
}

// Result is the complete output of compiling one specification snapshot
// against one target. It is created once and never mutated; later stages
// only read it. A failed generation still yields a well-formed Result so
// downstream stages always receive a uniform shape.
type Result struct {
	TargetID        string             `json:"target_id" yaml:"target_id"`
	SpecID          string             `json:"spec_id" yaml:"spec_id"`
	SpecHash        string             `json:"spec_hash" yaml:"spec_hash"`
	Success         bool               `json:"success" yaml:"success"`
	ErrorKind       ErrorKind          `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	ErrorDetail     string             `json:"error_detail,omitempty" yaml:"error_detail,omitempty"`
	DefaultTemplate bool               `json:"default_template,omitempty" yaml:"default_template,omitempty"`
	Notes           []string           `json:"notes,omitempty" yaml:"notes,omitempty"`
	Bundle          Bundle             `json:"bundle" yaml:"bundle"`
	Contract        Contract           `json:"contract" yaml:"contract"`
	Score           PreservationScore  `json:"score" yaml:"score"`
	Features        []PlatformFeature  `json:"features,omitempty" yaml:"features,omitempty"`
	Metrics         PerformanceMetrics `json:"metrics" yaml:"metrics"`
}

// FailedResult builds the empty-but-well-formed result recorded for a
// target whose generation could not complete.
func FailedResult(targetID, specID, specHash string, kind ErrorKind, detail string) *Result {
	return &Result{
		TargetID:    targetID,
		SpecID:      specID,
		SpecHash:    specHash,
		Success:     false,
		ErrorKind:   kind,
		ErrorDetail: detail,
		Contract:    Contract{Models: map[string][]ModelField{}},
	}
}
