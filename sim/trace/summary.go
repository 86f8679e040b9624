package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDispatches      int            `json:"total_dispatches"`
	TotalPreemptions     int            `json:"total_preemptions"`
	TotalAgings          int            `json:"total_agings"`
	TotalQuantumChanges  int            `json:"total_quantum_changes"`
	MaxQuantum           int            `json:"max_quantum"`
	PreemptionsByProcess map[string]int `json:"preemptions_by_process"` // process name → times preempted
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		PreemptionsByProcess: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDispatches = len(st.Dispatches)
	summary.TotalAgings = len(st.Agings)
	summary.TotalPreemptions = len(st.Preemptions)
	for _, p := range st.Preemptions {
		summary.PreemptionsByProcess[p.Preempted]++
	}

	summary.TotalQuantumChanges = len(st.Quanta)
	for _, q := range st.Quanta {
		if q.From > summary.MaxQuantum {
			summary.MaxQuantum = q.From
		}
		if q.To > summary.MaxQuantum {
			summary.MaxQuantum = q.To
		}
	}

	return summary
}
