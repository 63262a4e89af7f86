package critgraph

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/zzhou612/dals/netlist"
	"github.com/zzhou612/dals/sta"
)

// Graph is the critical subgraph of a netlist: the node set {n :
// slack(n) = 0} and the edge set {(u,v) : slack(u)=slack(v)=0, v ∈
// fanout(u)}, reported as an adjacency mapping.
type Graph struct {
	Nodes     *bitset.BitSet
	Adjacency map[netlist.ID][]netlist.ID
}

// Critical reports whether id is a member of the critical node set.
func (g *Graph) Critical(id netlist.ID) bool {
	return g.Nodes.Test(uint(id))
}

// Extract builds the critical subgraph of n given its timing t.
func Extract(n *netlist.Netlist, t sta.Timing) *Graph {
	g := &Graph{
		Nodes:     bitset.New(uint(n.MaxID()) + 1),
		Adjacency: make(map[netlist.ID][]netlist.ID),
	}
	for _, id := range n.Nodes() {
		if t.Critical(id) {
			g.Nodes.Set(uint(id))
		}
	}
	for _, id := range n.Nodes() {
		if !g.Critical(id) {
			continue
		}
		for _, fo := range n.Fanouts(id) {
			if g.Critical(fo) {
				g.Adjacency[id] = append(g.Adjacency[id], fo)
			}
		}
	}
	return g
}
