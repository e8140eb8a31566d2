package run

// State is the lifecycle position of one compilation run. A run moves
// Pending -> Generating -> Validating -> Analyzing -> Done; Failed is
// terminal and reachable only from a specification-level or
// schema-level error, never from a single target's failure.
type State string

const (
	StatePending    State = "pending"
	StateGenerating State = "generating"
	StateValidating State = "validating"
	StateAnalyzing  State = "analyzing"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Terminal reports whether the state admits no further transitions.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
