package sim

import "github.com/inference-sim/cpusim/sim/trace"

// priorityAgingInterval is the wait, in ticks since arrival, between promotions.
const priorityAgingInterval = 30

// PriorityScheduler dispatches by current priority with aging.
//
// Ready order: current priority ascending (1 = most urgent), then arrival time.
// Processes start at their original priority and are promoted by one level each
// time their age (tick - arrival) reaches a positive multiple of 30 while waiting.
//
// The choice of who runs is only re-evaluated when the processor becomes free:
// a running process is never interrupted by a more urgent arrival or by aging
// of the processes behind it. This is the policy's defined behavior, not a
// partial preemptive priority scheduler.
type PriorityScheduler struct {
	Trace *trace.SimulationTrace
}

func (s *PriorityScheduler) Name() string { return PolicyPriority }

func priorityLess(a, b *runtimeProcess) bool {
	if a.CurPriority != b.CurPriority {
		return a.CurPriority < b.CurPriority
	}
	return a.ArrivalTime < b.ArrivalTime
}

// Schedule runs each tick as: advance the running process, age waiting
// processes, admit arrivals, then dispatch if the processor is free.
func (s *PriorityScheduler) Schedule(idx *ArrivalIndex) Schedule {
	rs := newRunState(s.Name(), idx, priorityLess, s.Trace)
	if idx.Empty() {
		return rs.out
	}
	for !rs.done() {
		rs.clock++
		freed := rs.advance()
		rs.ageReady(priorityAgingInterval)
		rs.admit()
		if rs.running == noProcess {
			if h, ok := rs.ready.Pop(); ok {
				rs.dispatch(h, dispatchReason(freed))
			}
		}
	}
	return rs.out
}
