package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures dispatch, preemption, aging and quantum decisions.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level  TraceLevel
	Policy string
}

// SimulationTrace collects decision records during one policy run.
// A trace belongs to exactly one run and is not safe for concurrent use.
type SimulationTrace struct {
	Config      TraceConfig        `json:"-"`
	Dispatches  []DispatchRecord   `json:"dispatches"`
	Preemptions []PreemptionRecord `json:"preemptions"`
	Agings      []AgingRecord      `json:"agings"`
	Quanta      []QuantumRecord    `json:"quanta"`
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:      config,
		Dispatches:  make([]DispatchRecord, 0),
		Preemptions: make([]PreemptionRecord, 0),
		Agings:      make([]AgingRecord, 0),
		Quanta:      make([]QuantumRecord, 0),
	}
}

// RecordDispatch appends a dispatch record.
func (st *SimulationTrace) RecordDispatch(record DispatchRecord) {
	st.Dispatches = append(st.Dispatches, record)
}

// RecordPreemption appends a preemption record.
func (st *SimulationTrace) RecordPreemption(record PreemptionRecord) {
	st.Preemptions = append(st.Preemptions, record)
}

// RecordAging appends an aging record.
func (st *SimulationTrace) RecordAging(record AgingRecord) {
	st.Agings = append(st.Agings, record)
}

// RecordQuantum appends a quantum change record.
func (st *SimulationTrace) RecordQuantum(record QuantumRecord) {
	st.Quanta = append(st.Quanta, record)
}
