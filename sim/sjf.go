package sim

import "github.com/inference-sim/cpusim/sim/trace"

// SJFScheduler is non-preemptive shortest-job-first with a fixed context-switch cost.
// Ready order: remaining burst ascending, then arrival time ascending.
// Warning: SJF can starve long processes under a sustained stream of short ones.
type SJFScheduler struct {
	ContextSwitch int
	Trace         *trace.SimulationTrace
}

func (s *SJFScheduler) Name() string { return PolicySJF }

func sjfLess(a, b *runtimeProcess) bool {
	if a.Remaining != b.Remaining {
		return a.Remaining < b.Remaining
	}
	return a.ArrivalTime < b.ArrivalTime
}

// Schedule runs each tick as: advance the running process, admit arrivals,
// then dispatch if the processor is free. A dispatch first spends
// ContextSwitch ticks switching in, still admitting arrivals, and the
// cluster opens once the switch completes. Dispatched processes run to completion.
func (s *SJFScheduler) Schedule(idx *ArrivalIndex) Schedule {
	rs := newRunState(s.Name(), idx, sjfLess, s.Trace)
	if idx.Empty() {
		return rs.out
	}
	for !rs.done() {
		rs.clock++
		freed := rs.advance()
		rs.admit()
		if rs.running != noProcess || rs.ready.Len() == 0 {
			continue
		}
		h, _ := rs.ready.Pop()
		for i := 0; i < s.ContextSwitch; i++ {
			rs.clock++
			rs.admit()
		}
		rs.dispatch(h, dispatchReason(freed))
	}
	return rs.out
}
