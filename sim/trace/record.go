// Package trace provides decision-trace recording for scheduling policy analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// DispatchRecord captures a process being given the processor.
type DispatchRecord struct {
	Process string `json:"process"`
	Clock   int    `json:"clock"`
	Reason  string `json:"reason"` // "idle", "finished", "preempt", "quantum"
}

// PreemptionRecord captures a running process being displaced before finishing.
type PreemptionRecord struct {
	Preempted string `json:"preempted"`
	By        string `json:"by"`
	Clock     int    `json:"clock"`
	Remaining int    `json:"remaining"` // burst left on the preempted process
}

// AgingRecord captures a waiting process's priority being promoted.
type AgingRecord struct {
	Process string `json:"process"`
	Clock   int    `json:"clock"`
	From    int    `json:"from"`
	To      int    `json:"to"`
}

// QuantumRecord captures a Round Robin quantum change at the end of a turn.
type QuantumRecord struct {
	Process string `json:"process"`
	Clock   int    `json:"clock"`
	From    int    `json:"from"`
	To      int    `json:"to"`
	Reason  string `json:"reason"` // "preempted", "exhausted", "finished"
}
