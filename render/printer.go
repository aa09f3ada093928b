// Package render prints routing tables as a simulation progresses.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/encodeous/dvsim/core"
	"github.com/encodeous/dvsim/state"
)

const banner = "###################"

// Printer writes every router's table after each round.
// With Quiet set, only the final tables are written.
type Printer struct {
	Out   io.Writer
	Quiet bool
}

func FormatTable(id state.NodeId, routes state.Table) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Routing table of %s:\n", id))
	sb.WriteString(fmt.Sprintf("%-15s %-10s %s\n", "Destination", "Cost", "Next Hop"))
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	for dest, e := range routes.All() {
		sb.WriteString(fmt.Sprintf("%-15s %-10d %s\n", dest, e.Cost, e.NextHop))
	}
	return sb.String()
}

func (p *Printer) writeTables(tables []state.NodeTable) {
	for _, t := range tables {
		fmt.Fprintln(p.Out, FormatTable(t.Id, t.Routes))
	}
}

func (p *Printer) Start(t *core.Topology) {
	if p.Quiet {
		return
	}
	fmt.Fprintf(p.Out, "%s START %s\n", banner, banner)
	p.writeTables(t.Tables())
}

func (p *Printer) RoundComplete(round int, changed bool, t *core.Topology) {
	if p.Quiet {
		return
	}
	fmt.Fprintf(p.Out, "%s Round: %d %s\n", banner, round, banner)
	p.writeTables(t.Tables())
	if changed {
		fmt.Fprintln(p.Out, "Convergence not yet reached!")
	}
}

func (p *Printer) Finish(res *core.Result) {
	if p.Quiet {
		fmt.Fprintf(p.Out, "%s FINAL %s\n", banner, banner)
		p.writeTables(res.Tables)
	}
	switch res.Outcome {
	case core.Converged:
		fmt.Fprintf(p.Out, "Convergence reached in %d rounds!\n", res.Rounds)
	case core.Exhausted:
		fmt.Fprintf(p.Out, "Iteration cap reached after %d rounds, tables did not converge!\n", res.Rounds)
	}
	fmt.Fprintln(p.Out, "-- End of simulation")
}
