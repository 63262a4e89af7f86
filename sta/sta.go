package sta

import (
	"github.com/pkg/errors"

	"github.com/zzhou612/dals/netlist"
)

// NodeTiming holds the unit-delay arrival/required/slack triple for one
// node. Slack is non-negative for every node with a path to a primary
// output; a node with no such path (dangling logic left by a mutation)
// has Required equal to the worst-case arrival, so its slack can be
// negative. A node is critical iff Slack == 0.
type NodeTiming struct {
	Arrival  int
	Required int
	Slack    int
}

// Timing is the per-node STA result for a whole netlist.
type Timing struct {
	byNode    map[netlist.ID]NodeTiming
	worstCase int
}

// Arrival returns id's arrival time, the length of id's longest path from
// any primary input.
func (t Timing) Arrival(id netlist.ID) int { return t.byNode[id].Arrival }

// Required returns id's required time: the latest id may produce its value
// without pushing any primary output past the circuit's worst-case arrival.
func (t Timing) Required(id netlist.ID) int { return t.byNode[id].Required }

// Slack returns id's slack, Required(id) - Arrival(id).
func (t Timing) Slack(id netlist.ID) int { return t.byNode[id].Slack }

// Critical reports whether id lies on a longest PI-to-PO path (slack zero).
func (t Timing) Critical(id netlist.ID) bool { return t.byNode[id].Slack == 0 }

// WorstCaseArrival returns the maximum arrival time over every primary
// output: the circuit's critical-path delay.
func (t Timing) WorstCaseArrival() int { return t.worstCase }

// delay returns the unit contribution of id's own evaluation: 1 for a
// logic node (including a BLIF Cover node), 0 for everything else (a
// primary input has no fanins to delay; a primary output and a constant
// are pass-through/terminal and contribute nothing of their own).
func delay(n *netlist.Netlist, id netlist.ID) int {
	if n.IsLogic(id) {
		return 1
	}
	return 0
}

// ComputeSlack runs unit-delay static timing analysis over n: a forward
// pass computes arrival times in topological order, then a backward pass
// computes required times from the worst-case primary-output arrival.
func ComputeSlack(n *netlist.Netlist) (Timing, error) {
	order, err := n.TopoSort()
	if err != nil {
		return Timing{}, errors.Wrap(err, "compute slack")
	}

	arrival := make(map[netlist.ID]int, len(order))
	for _, id := range order {
		fanins := n.Fanins(id)
		best := 0
		for _, f := range fanins {
			if a := arrival[f.Node]; a > best {
				best = a
			}
		}
		arrival[id] = best + delay(n, id)
	}

	worst := 0
	for _, po := range n.PrimaryOutputs() {
		if a := arrival[po]; a > worst {
			worst = a
		}
	}

	required := make(map[netlist.ID]int, len(order))
	for _, id := range n.PrimaryOutputs() {
		required[id] = worst
	}
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		req, has := required[id]
		if !has {
			// Not on any path to a primary output (dangling logic left
			// over from a mutation); unconstrained, so it gets the
			// worst-case arrival as its required time and is not
			// propagated to its fanins, so it never limits the critical
			// path.
			required[id] = worst
			continue
		}
		for _, f := range n.Fanins(id) {
			v := req - delay(n, id)
			if cur, ok := required[f.Node]; !ok || v < cur {
				required[f.Node] = v
			}
		}
		required[id] = req
	}

	byNode := make(map[netlist.ID]NodeTiming, len(order))
	for _, id := range order {
		a := arrival[id]
		r, ok := required[id]
		if !ok {
			r = worst
		}
		byNode[id] = NodeTiming{Arrival: a, Required: r, Slack: r - a}
	}

	return Timing{byNode: byNode, worstCase: worst}, nil
}

// CriticalPaths returns up to k PI-to-PO paths that lie entirely on the
// zero-slack (critical) subgraph, for reporting only — the DALS loop
// itself only consults Timing.Critical.
func CriticalPaths(n *netlist.Netlist, k int) [][]netlist.ID {
	if k <= 0 {
		return nil
	}
	t, err := ComputeSlack(n)
	if err != nil {
		return nil
	}

	var paths [][]netlist.ID
	for _, po := range n.PrimaryOutputs() {
		if len(paths) >= k {
			break
		}
		if !t.Critical(po) {
			continue
		}
		path := []netlist.ID{po}
		cur := po
		for !n.IsPI(cur) {
			fanins := n.Fanins(cur)
			if len(fanins) == 0 {
				break
			}
			next := fanins[0].Node
			for _, f := range fanins {
				if t.Critical(f.Node) && t.Arrival(f.Node) > t.Arrival(next) {
					next = f.Node
				}
			}
			path = append(path, next)
			cur = next
		}
		// reverse into PI -> PO order
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		paths = append(paths, path)
	}
	return paths
}
