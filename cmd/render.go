package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	sim "github.com/inference-sim/cpusim/sim"
)

// FormatGantt renders a schedule as a one-line chart. Each cluster prints as
// |start  name  end| padded by half its length on both sides; Round Robin
// clusters label the process with its quantum at turn start and end.
func FormatGantt(s sim.Schedule) string {
	var sb strings.Builder
	for _, c := range s.Clusters {
		pad := strings.Repeat(" ", (c.Duration()+1)/2)
		label := c.Process
		if c.Quantum != nil {
			label = fmt.Sprintf("%d->%s->%d", c.Quantum.Start, c.Process, c.Quantum.End)
		}
		sb.WriteString("|")
		sb.WriteString(strconv.Itoa(c.Start))
		sb.WriteString(pad)
		sb.WriteString(label)
		sb.WriteString(pad)
		sb.WriteString(strconv.Itoa(c.End))
		sb.WriteString("|")
	}
	return sb.String()
}

// RenderText writes, per policy, the Gantt chart, a per-process table with
// averages in the footer and, when tracing was enabled, a decision summary.
func RenderText(w io.Writer, results []sim.Result) {
	for _, res := range results {
		_, _ = fmt.Fprintf(w, "%s (run %s)\n", res.Policy, res.RunID)
		_, _ = fmt.Fprintln(w, FormatGantt(res.Schedule))
		renderMetricsTable(w, res.Metrics)
		if res.TraceSummary != nil {
			renderTraceSummary(w, res)
		}
		_, _ = fmt.Fprintln(w, "====================================")
	}
}

func renderMetricsTable(w io.Writer, m *sim.Metrics) {
	rows := make([][]string, 0, len(m.Processes))
	for _, pm := range m.Processes {
		rows = append(rows, []string{
			pm.Name,
			strconv.Itoa(pm.Arrival),
			strconv.Itoa(pm.Burst),
			strconv.Itoa(pm.Completion),
			strconv.Itoa(pm.Turnaround),
			strconv.Itoa(pm.Waiting),
			strconv.Itoa(pm.Response),
		})
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Process", "Arrival", "Burst", "Completion", "Turnaround", "Waiting", "Response"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "",
		fmt.Sprintf("Makespan\n%d", m.Makespan),
		fmt.Sprintf("Average\n%.2f", m.AvgTurnaround),
		fmt.Sprintf("Average\n%.2f", m.AvgWaiting),
		fmt.Sprintf("Average\n%.2f", m.AvgResponse)})
	table.Render()
	_, _ = fmt.Fprintf(w, "Utilization: %.2f%%  Throughput: %.3f/tick  P95 waiting: %.2f\n",
		m.Utilization*100, m.Throughput, m.P95Waiting)
}

func renderTraceSummary(w io.Writer, res sim.Result) {
	ts := res.TraceSummary
	_, _ = fmt.Fprintf(w, "Decisions: %d dispatches, %d preemptions, %d agings, %d quantum changes",
		ts.TotalDispatches, ts.TotalPreemptions, ts.TotalAgings, ts.TotalQuantumChanges)
	if ts.MaxQuantum > 0 {
		_, _ = fmt.Fprintf(w, ", max quantum %d", ts.MaxQuantum)
	}
	_, _ = fmt.Fprintln(w)
	if len(ts.PreemptionsByProcess) == 0 {
		return
	}
	names := make([]string, 0, len(ts.PreemptionsByProcess))
	for name := range ts.PreemptionsByProcess {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, ts.PreemptionsByProcess[name])
	}
	_, _ = fmt.Fprintf(w, "Preempted: %s\n", strings.Join(parts, " "))
}

// RenderJSON writes results as indented JSON.
func RenderJSON(w io.Writer, results []sim.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}
