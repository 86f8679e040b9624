package sim

import "github.com/inference-sim/cpusim/sim/trace"

const (
	// srtfInitialPriority is assigned to every process admitted by SRTF.
	srtfInitialPriority = 10
	// srtfAgingInterval is the wait, in ticks since arrival, between promotions.
	srtfAgingInterval = 20
)

// SRTFScheduler is preemptive shortest-remaining-time-first with priority aging.
//
// Every admitted process starts at priority 10 and is promoted by one level each
// time its age (tick - arrival) reaches a positive multiple of 20 while it waits.
// Priority-1 processes sort ahead of everything else, so any process that waits
// long enough eventually runs regardless of its remaining burst.
type SRTFScheduler struct {
	Trace *trace.SimulationTrace
}

func (s *SRTFScheduler) Name() string { return PolicySRTF }

func srtfLess(a, b *runtimeProcess) bool {
	aTop, bTop := a.CurPriority == 1, b.CurPriority == 1
	if aTop != bTop {
		return aTop
	}
	if a.Remaining != b.Remaining {
		return a.Remaining < b.Remaining
	}
	return a.ArrivalTime < b.ArrivalTime
}

// Schedule runs each tick as: age waiting processes, advance the running
// process, admit arrivals, then dispatch onto a free processor or preempt the
// running process if the best ready process compares strictly ahead of it.
func (s *SRTFScheduler) Schedule(idx *ArrivalIndex) Schedule {
	rs := newRunState(s.Name(), idx, srtfLess, s.Trace)
	rs.onAdmit = func(p *runtimeProcess) { p.CurPriority = srtfInitialPriority }
	if idx.Empty() {
		return rs.out
	}
	for !rs.done() {
		rs.clock++
		rs.ageReady(srtfAgingInterval)
		freed := rs.advance()
		rs.admit()
		if rs.ready.Len() == 0 {
			continue
		}
		if rs.running == noProcess {
			h, _ := rs.ready.Pop()
			rs.dispatch(h, dispatchReason(freed))
			continue
		}
		best, _ := rs.ready.Peek()
		if srtfLess(rs.arena.get(best), rs.arena.get(rs.running)) {
			rs.preempt(best)
		}
	}
	return rs.out
}
