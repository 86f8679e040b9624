package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusim/sim/trace"
)

// agingKeyRange is the exclusive upper bound of the aging-key draw.
const agingKeyRange = 20

// RoundRobinScheduler is round robin with an adaptive per-process quantum and a
// randomized aging key.
//
// Each admitted process draws r from [0,20) and gets a static aging key:
// r+arrival+burst when r<10, 10+arrival+burst when r>10, and
// priority+arrival+burst when r==10. The ready queue is ordered by aging key,
// then arrival time, then turn order.
//
// A turn with quantum q first runs ceil(q/2) ticks unconditionally. For the
// remaining ticks up to q, the best ready process is checked before every tick;
// if it compares strictly ahead of the running process, the running process is
// given the residual quantum 2q-elapsed, re-queued, and the better process
// runs instead. A turn that uses its whole quantum re-queues the process at the
// back of the turn order and grows its quantum by ceil(0.1 * mean quantum of
// the ready processes). Every turn is recorded as one cluster.
type RoundRobinScheduler struct {
	Quantum int
	Keys    AgingKeySource
	Trace   *trace.SimulationTrace
}

func (s *RoundRobinScheduler) Name() string { return PolicyRoundRobin }

func roundRobinLess(a, b *runtimeProcess) bool {
	if a.AgingKey != b.AgingKey {
		return a.AgingKey < b.AgingKey
	}
	return a.ArrivalTime < b.ArrivalTime
}

// agingKey derives the aging key of rec from a draw r in [0,20).
func agingKey(rec ProcessRecord, r int) int {
	switch {
	case r < 10:
		return r + rec.ArrivalTime + rec.BurstTime
	case r > 10:
		return 10 + rec.ArrivalTime + rec.BurstTime
	default:
		return rec.Priority + rec.ArrivalTime + rec.BurstTime
	}
}

// ceilDiv returns ceil(a/b) for non-negative a and positive b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// turnOutcome says how a Round Robin turn ended.
type turnOutcome int

const (
	turnFinished turnOutcome = iota
	turnPreempted
	turnExhausted
)

func (o turnOutcome) String() string {
	switch o {
	case turnFinished:
		return "finished"
	case turnPreempted:
		return "preempted"
	default:
		return "exhausted"
	}
}

// Schedule simulates Round Robin over idx. Idle ticks, when nothing is ready
// but arrivals are still pending, produce no cluster.
func (s *RoundRobinScheduler) Schedule(idx *ArrivalIndex) Schedule {
	if s.Quantum < 1 {
		panic("RoundRobinScheduler: quantum must be >= 1")
	}
	if s.Keys == nil {
		panic("RoundRobinScheduler: Keys must not be nil; use NewScheduler for a default source")
	}
	rs := newRunState(s.Name(), idx, roundRobinLess, s.Trace)
	rs.onAdmit = func(p *runtimeProcess) {
		p.Quantum = s.Quantum
		p.AgingKey = agingKey(p.ProcessRecord, s.Keys.Intn(agingKeyRange))
		logrus.Debugf("%s: %s aging key %d", rs.policy, p.Name, p.AgingKey)
	}
	if idx.Empty() {
		return rs.out
	}
	reason := "idle"
	for !rs.done() {
		if rs.running == noProcess {
			h, ok := rs.ready.Pop()
			if !ok {
				rs.clock++
				rs.admit()
				reason = "idle"
				continue
			}
			rs.dispatch(h, reason)
		}
		switch s.turn(rs) {
		case turnFinished:
			reason = "finished"
		case turnPreempted:
			// turn already dispatched the preempting process
		case turnExhausted:
			h, _ := rs.ready.Pop()
			rs.dispatch(h, "quantum")
		}
	}
	return rs.out
}

// turn runs the dispatched process for at most its quantum and closes the cluster.
func (s *RoundRobinScheduler) turn(rs *runState) turnOutcome {
	h := rs.running
	q := rs.arena.get(h).Quantum
	rs.current.Quantum = &QuantumSpan{Start: q}

	elapsed := 0
	half := ceilDiv(q, 2)
	for elapsed < q {
		if elapsed >= half {
			if best, ok := rs.ready.Peek(); ok && roundRobinLess(rs.arena.get(best), rs.arena.get(h)) {
				residual := 2*q - elapsed
				s.endTurn(rs, h, q, residual, turnPreempted)
				rs.preempt(best)
				return turnPreempted
			}
		}
		rs.clock++
		rs.admit()
		elapsed++
		if rs.arena.get(h).Remaining == 1 {
			// last tick: the cluster closes inside advance
			s.endTurn(rs, h, q, 0, turnFinished)
		}
		if rs.advance() {
			return turnFinished
		}
	}

	rs.ready.Push(h)
	grown := q + s.growth(rs)
	s.endTurn(rs, h, q, grown, turnExhausted)
	rs.closeCluster()
	rs.running = noProcess
	return turnExhausted
}

// growth is ceil(0.1 * mean quantum of the ready processes), computed exactly
// in integers as ceil(sum / (10 * n)).
func (s *RoundRobinScheduler) growth(rs *runState) int {
	items := rs.ready.Items()
	if len(items) == 0 {
		return 0
	}
	sum := 0
	for _, h := range items {
		sum += rs.arena.get(h).Quantum
	}
	return ceilDiv(sum, 10*len(items))
}

// endTurn assigns the process's next quantum and stamps it on the open cluster.
func (s *RoundRobinScheduler) endTurn(rs *runState, h handle, from, to int, outcome turnOutcome) {
	p := rs.arena.get(h)
	p.Quantum = to
	rs.current.Quantum.End = to
	logrus.Debugf("[tick %05d] %s: %s turn %s, quantum %d -> %d", rs.clock, rs.policy, p.Name, outcome, from, to)
	if s.Trace != nil {
		s.Trace.RecordQuantum(trace.QuantumRecord{Process: p.Name, Clock: rs.clock, From: from, To: to, Reason: outcome.String()})
	}
}
