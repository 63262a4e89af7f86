package mincut

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/zzhou612/dals/alc"
	"github.com/zzhou612/dals/critgraph"
	"github.com/zzhou612/dals/netlist"
)

// Cut is the result of a min-cut selection: the set of critical nodes to
// substitute this round.
type Cut struct {
	Nodes []netlist.ID
}

// Select builds the split-node flow network over g (see package doc) and
// returns the node set whose substitution disconnects every critical
// source-to-sink path at minimum total error. opt supplies, for each
// critical logic node under consideration this round, the cheapest
// rescored ALC available; a critical node absent from opt is treated as
// uncuttable (capacity +Inf), per spec.md §4.F.
func Select(g *critgraph.Graph, n *netlist.Netlist, opt alc.OptimalMap) (*Cut, error) {
	if g == nil || n == nil {
		return nil, errors.New("mincut: nil graph or netlist")
	}

	critical := make([]netlist.ID, 0)
	for _, id := range n.Nodes() {
		if g.Critical(id) {
			critical = append(critical, id)
		}
	}

	// N = max_node_id + 1 (netlist.MaxID already reports the +1 form).
	N := int(n.MaxID())
	source := 2 * N
	sink := 2*N + 1
	d := newDinic(2*N + 2)

	// bigM bounds every nominally-infinite edge: large enough that no
	// finite combination of real (<=1) or epsilon split-edge capacities
	// can ever saturate it, so it is provably never chosen as part of the
	// min-cut, without the NaN/non-termination hazards of mixing true
	// +Inf capacities into the arithmetic.
	bigM := float64(len(critical)) + 1000

	capOf := func(c float64) float64 {
		if math.IsInf(c, 1) {
			return bigM
		}
		return c
	}

	uIn := func(id netlist.ID) int { return int(id) }
	uOut := func(id netlist.ID) int { return int(id) + N }

	// hasCuttable tracks whether any split edge received a genuine (non-
	// Inf) capacity. If none did, every node in the critical graph is
	// uncuttable and the network's true max-flow is unbounded: no finite
	// min-cut exists, so nothing is selected. Running Dinic anyway would
	// substitute bigM for every edge uniformly and report a spurious
	// finite cut at bigM, which is exactly the "must not select +Inf in
	// any cut" failure spec.md §9 warns against.
	hasCuttable := false

	for _, u := range critical {
		switch {
		case n.IsPI(u):
			d.addEdge(source, uIn(u), bigM)
		default:
			errCap := Inf
			if a, ok := opt[u]; ok {
				e := a.ErrorEstimate()
				if e <= 0 {
					errCap = Epsilon
				} else {
					errCap = e
				}
				hasCuttable = true
			}
			d.addEdge(uIn(u), uOut(u), capOf(errCap))
			if n.IsPO(u) {
				d.addEdge(uOut(u), sink, bigM)
			}
		}
	}
	// g.Adjacency is a map; range over it directly would make edge
	// insertion order (and hence Dinic's neighbor-visit order) depend on
	// Go's randomized map iteration. Sorting by tail node ID keeps the
	// flow network's construction, and therefore any tie-broken min-cut,
	// deterministic across runs (spec.md §5).
	adjKeys := make([]netlist.ID, 0, len(g.Adjacency))
	for u := range g.Adjacency {
		adjKeys = append(adjKeys, u)
	}
	sort.Slice(adjKeys, func(i, j int) bool { return adjKeys[i] < adjKeys[j] })
	for _, u := range adjKeys {
		from := uIn(u)
		if !n.IsPI(u) {
			from = uOut(u)
		}
		for _, v := range g.Adjacency[u] {
			d.addEdge(from, uIn(v), bigM)
		}
	}

	if !hasCuttable {
		return &Cut{}, nil
	}

	d.maxFlow(source, sink)
	reachable := d.reachableFromSource(source)

	cut := &Cut{}
	for _, u := range critical {
		if n.IsPI(u) {
			continue
		}
		if reachable[uIn(u)] && !reachable[uOut(u)] {
			cut.Nodes = append(cut.Nodes, u)
		}
	}
	return cut, nil
}
