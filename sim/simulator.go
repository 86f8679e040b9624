// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusim/sim/trace"
)

// runState is the private state of one policy run: the simulated clock, the
// process arena, the ready queue, the running slot and the finished set.
// Every policy owns a fresh runState, so no mutable state is shared between runs.
type runState struct {
	policy   string
	idx      *ArrivalIndex
	arena    *processArena
	ready    *ReadyQueue
	running  handle
	finished []handle
	clock    int
	current  Cluster // open cluster of the running process
	out      Schedule
	trace    *trace.SimulationTrace // nil when tracing is disabled
	// onAdmit initialises policy-specific fields of a newly admitted process.
	onAdmit func(p *runtimeProcess)
}

func newRunState(policy string, idx *ArrivalIndex, less lessFunc, tr *trace.SimulationTrace) *runState {
	arena := newProcessArena(idx.Len())
	return &runState{
		policy:  policy,
		idx:     idx,
		arena:   arena,
		ready:   newReadyQueue(arena, less),
		running: noProcess,
		clock:   -1,
		out:     Schedule{Policy: policy, Clusters: make([]Cluster, 0, idx.Len())},
		trace:   tr,
	}
}

// done reports whether the simulation has passed the last arrival and
// has nothing ready or running.
func (rs *runState) done() bool {
	return rs.clock > rs.idx.LastArrival() && rs.ready.Len() == 0 && rs.running == noProcess
}

// admit copies the processes arriving at the current tick into the ready queue.
func (rs *runState) admit() {
	for _, rec := range rs.idx.At(rs.clock) {
		h := rs.arena.add(rec)
		if rs.onAdmit != nil {
			rs.onAdmit(rs.arena.get(h))
		}
		rs.ready.Push(h)
		logrus.Debugf("[tick %05d] %s: admitted %s", rs.clock, rs.policy, rec.Name)
	}
}

// dispatch gives the processor to h and opens its cluster at the current tick.
func (rs *runState) dispatch(h handle, reason string) {
	p := rs.arena.get(h)
	rs.running = h
	rs.current = Cluster{Process: p.Name, Start: rs.clock}
	logrus.Debugf("[tick %05d] %s: dispatch %s (remaining=%d, reason=%s)", rs.clock, rs.policy, p.Name, p.Remaining, reason)
	if rs.trace != nil {
		rs.trace.RecordDispatch(trace.DispatchRecord{Process: p.Name, Clock: rs.clock, Reason: reason})
	}
}

// closeCluster ends the open cluster at the current tick and appends it to the schedule.
func (rs *runState) closeCluster() {
	rs.current.End = rs.clock
	rs.out.Clusters = append(rs.out.Clusters, rs.current)
	rs.current = Cluster{}
}

// advance runs the running process for the tick ending at the current clock.
// A process that reaches zero remaining burst closes its cluster and moves
// to the finished set. Returns true if it finished.
func (rs *runState) advance() bool {
	if rs.running == noProcess {
		return false
	}
	p := rs.arena.get(rs.running)
	p.tick()
	if !p.finished() {
		return false
	}
	logrus.Debugf("[tick %05d] %s: %s finished", rs.clock, rs.policy, p.Name)
	rs.closeCluster()
	rs.finished = append(rs.finished, rs.running)
	rs.running = noProcess
	return true
}

// dispatchReason labels a dispatch onto a free processor for the trace.
func dispatchReason(freed bool) string {
	if freed {
		return "finished"
	}
	return "idle"
}

// preempt closes the running process's cluster, returns it to the ready queue
// and dispatches by, which must currently be queued.
func (rs *runState) preempt(by handle) {
	prev := rs.arena.get(rs.running)
	next := rs.arena.get(by)
	logrus.Debugf("[tick %05d] %s: %s preempts %s", rs.clock, rs.policy, next.Name, prev.Name)
	if rs.trace != nil {
		rs.trace.RecordPreemption(trace.PreemptionRecord{
			Preempted: prev.Name, By: next.Name, Clock: rs.clock, Remaining: prev.Remaining,
		})
	}
	rs.closeCluster()
	rs.ready.Remove(by)
	rs.ready.Push(rs.running)
	rs.dispatch(by, "preempt")
}

// ageReady promotes every ready process whose time since arrival is a
// positive multiple of interval. The running process never ages.
func (rs *runState) ageReady(interval int) {
	for _, h := range rs.ready.Items() {
		p := rs.arena.get(h)
		waited := rs.clock - p.ArrivalTime
		if waited <= 0 || waited%interval != 0 {
			continue
		}
		from := p.CurPriority
		if !p.promote() {
			continue
		}
		rs.ready.Invalidate()
		if rs.trace != nil {
			rs.trace.RecordAging(trace.AgingRecord{Process: p.Name, Clock: rs.clock, From: from, To: p.CurPriority})
		}
	}
}
