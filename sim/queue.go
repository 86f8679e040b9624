// Implements the ReadyQueue, which holds the processes of one run that are
// admitted and waiting for the processor.

package sim

import (
	"fmt"
	"sort"
	"strings"
)

// lessFunc orders two runtime processes; true means a is dispatched before b.
type lessFunc func(a, b *runtimeProcess) bool

type readyEntry struct {
	h   handle
	seq int // insertion order; back of the turn order has the largest seq
}

// ReadyQueue is an ordered set of admitted, not-running processes.
// Entries that compare equal under less fall back to insertion order.
//
// The queue sorts lazily: Push and Invalidate mark it unsorted and the next
// Peek or Pop sorts once, O(n log n). Callers that mutate an ordering key of a
// queued process in place (aging) must call Invalidate.
type ReadyQueue struct {
	arena   *processArena
	less    lessFunc
	entries []readyEntry
	nextSeq int
	sorted  bool
}

func newReadyQueue(arena *processArena, less lessFunc) *ReadyQueue {
	if less == nil {
		panic("newReadyQueue: less must not be nil")
	}
	return &ReadyQueue{arena: arena, less: less}
}

// Push adds h at the back of the turn order.
func (q *ReadyQueue) Push(h handle) {
	q.entries = append(q.entries, readyEntry{h: h, seq: q.nextSeq})
	q.nextSeq++
	q.sorted = false
}

// Invalidate marks the ordering stale after a queued process's key changed.
func (q *ReadyQueue) Invalidate() {
	q.sorted = false
}

// Len returns the number of ready processes.
func (q *ReadyQueue) Len() int {
	return len(q.entries)
}

func (q *ReadyQueue) order() {
	if q.sorted {
		return
	}
	q.sorted = true
	sort.SliceStable(q.entries, func(i, j int) bool {
		a, b := q.arena.get(q.entries[i].h), q.arena.get(q.entries[j].h)
		if q.less(a, b) {
			return true
		}
		if q.less(b, a) {
			return false
		}
		return q.entries[i].seq < q.entries[j].seq
	})
}

// Peek returns the best ready process without removing it.
func (q *ReadyQueue) Peek() (handle, bool) {
	if len(q.entries) == 0 {
		return noProcess, false
	}
	q.order()
	return q.entries[0].h, true
}

// Pop removes and returns the best ready process.
func (q *ReadyQueue) Pop() (handle, bool) {
	h, ok := q.Peek()
	if !ok {
		return noProcess, false
	}
	q.entries = q.entries[1:]
	return h, true
}

// Remove deletes h from the queue. Returns false if h was not queued.
func (q *ReadyQueue) Remove(h handle) bool {
	for i, e := range q.entries {
		if e.h == h {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns the queued handles in their current order.
// The slice is a copy; callers may mutate the processes it refers to
// (aging) but must call Invalidate before the next Peek.
func (q *ReadyQueue) Items() []handle {
	items := make([]handle, len(q.entries))
	for i, e := range q.entries {
		items[i] = e.h
	}
	return items
}

func (q *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, e := range q.entries {
		sb.WriteString(fmt.Sprint(q.arena.get(e.h).Name))
		if i < len(q.entries)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
