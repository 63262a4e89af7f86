package mincut

import (
	"testing"

	"github.com/zzhou612/dals/alc"
	"github.com/zzhou612/dals/critgraph"
	"github.com/zzhou612/dals/netlist"
	"github.com/zzhou612/dals/sta"
)

func TestSelectSingleCriticalPath(t *testing.T) {
	n, err := netlist.ReadBenchString("t", `
INPUT(a)
INPUT(b)
OUTPUT(out)
g1 = AND(a, b)
out = BUF(g1)
`)
	if err != nil {
		t.Fatalf("ReadBenchString: %v", err)
	}
	timing, err := sta.ComputeSlack(n)
	if err != nil {
		t.Fatalf("ComputeSlack: %v", err)
	}
	g := critgraph.Extract(n, timing)

	g1, _ := n.LookupByName("g1")
	a, _ := n.LookupByName("a")

	change := alc.New(n, g1, a, false, 0.2)
	opt := alc.OptimalMap{g1: change}

	cut, err := Select(g, n, opt)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(cut.Nodes) != 1 || cut.Nodes[0] != g1 {
		t.Fatalf("cut.Nodes = %v, want exactly [%d]", cut.Nodes, g1)
	}
}

func TestSelectNoCandidateIsUncuttable(t *testing.T) {
	n, err := netlist.ReadBenchString("t", `
INPUT(a)
INPUT(b)
OUTPUT(out)
g1 = AND(a, b)
out = BUF(g1)
`)
	if err != nil {
		t.Fatalf("ReadBenchString: %v", err)
	}
	timing, err := sta.ComputeSlack(n)
	if err != nil {
		t.Fatalf("ComputeSlack: %v", err)
	}
	g := critgraph.Extract(n, timing)

	cut, err := Select(g, n, alc.OptimalMap{})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(cut.Nodes) != 0 {
		t.Fatalf("cut.Nodes = %v, want none (no candidate ALCs available)", cut.Nodes)
	}
}
