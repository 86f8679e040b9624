// Package sim is a tick-based discrete-event simulator for single-processor
// CPU scheduling policies.
//
// # Reading Guide
//
// Start with these files to understand one policy run:
//
//   - process.go: ProcessRecord (immutable input) and the per-run process arena
//   - arrival.go: ArrivalIndex, shared read-only by every run
//   - simulator.go: runState, the clock/admit/dispatch/advance loop primitives
//   - queue.go: ReadyQueue ordered by a policy's less function, ties by turn order
//   - scheduler.go: Scheduler interface and the NewScheduler factory
//
// # Policies
//
//   - sjf.go: non-preemptive shortest job first with a context-switch cost
//   - srtf.go: preemptive shortest remaining time first with aging to priority 1
//   - priority.go: non-preemptive priority with aging every 30 ticks
//   - round_robin.go: adaptive-quantum round robin with randomized aging keys
//
// # Results
//
//   - cluster.go: Cluster and Schedule, plus CheckSchedule
//   - metrics.go: turnaround, waiting and response times per process
//   - runner.go: RunAll, which runs several policies concurrently
//   - bundle.go: YAML workload files
//
// Decision tracing lives in sim/trace and has no dependency on this package.
package sim
