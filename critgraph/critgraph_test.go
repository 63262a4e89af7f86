package critgraph

import (
	"testing"

	"github.com/zzhou612/dals/netlist"
	"github.com/zzhou612/dals/sta"
)

func TestExtractSingleCriticalPath(t *testing.T) {
	n, err := netlist.ReadBenchString("t", `
INPUT(a)
INPUT(b)
INPUT(c)
OUTPUT(out)
g1 = AND(a, b)
out = AND(g1, c)
`)
	if err != nil {
		t.Fatalf("ReadBenchString: %v", err)
	}
	timing, err := sta.ComputeSlack(n)
	if err != nil {
		t.Fatalf("ComputeSlack: %v", err)
	}
	g := Extract(n, timing)

	a, _ := n.LookupByName("a")
	b, _ := n.LookupByName("b")
	c, _ := n.LookupByName("c")
	g1, _ := n.LookupByName("g1")

	if !g.Critical(a) || !g.Critical(b) || !g.Critical(g1) {
		t.Error("a, b, g1 should all be on the single critical path")
	}
	if g.Critical(c) {
		t.Error("c has positive slack and should not be critical")
	}
	foundEdge := false
	for _, v := range g.Adjacency[a] {
		if v == g1 {
			foundEdge = true
		}
	}
	if !foundEdge {
		t.Error("expected critical edge a -> g1")
	}
	if _, ok := g.Adjacency[c]; ok {
		t.Error("non-critical node c should have no adjacency entry")
	}
}
