package trace

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures every team step of every run.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects event records across all runs of a scenario execution.
type SimulationTrace struct {
	Config  TraceConfig
	Records []EventRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:  config,
		Records: make([]EventRecord, 0),
	}
}

// Record appends an event record.
func (st *SimulationTrace) Record(record EventRecord) {
	st.Records = append(st.Records, record)
}

// ForRun returns the records of one run in execution order.
func (st *SimulationTrace) ForRun(run int) []EventRecord {
	out := make([]EventRecord, 0)
	for _, r := range st.Records {
		if r.Run == run {
			out = append(out, r)
		}
	}
	return out
}

// ForActivity returns the records of one run at one activity in execution order.
func (st *SimulationTrace) ForActivity(run int, activity string) []EventRecord {
	out := make([]EventRecord, 0)
	for _, r := range st.Records {
		if r.Run == run && r.Activity == activity {
			out = append(out, r)
		}
	}
	return out
}
