package candidate

import (
	"testing"

	"github.com/zzhou612/dals/netlist"
	"github.com/zzhou612/dals/sta"
	"github.com/zzhou612/dals/truthsim"
)

func TestGenerateComplementationRule(t *testing.T) {
	// t = AND(a,b) at arrival 1; s1 is a PI at arrival 0 (gap 1: must be
	// non-complemented); s2 = NOT(s1) sits one extra level down so its
	// arrival is 1 too and is NOT a legal substitute for t (not strictly
	// earlier) -- use a deeper target instead so a gap-2 substitute exists.
	n, err := netlist.ReadBenchString("t", `
INPUT(a)
INPUT(b)
OUTPUT(out)
g1 = AND(a, b)
g2 = BUF(g1)
out = BUF(g2)
`)
	if err != nil {
		t.Fatalf("ReadBenchString: %v", err)
	}
	timing, err := sta.ComputeSlack(n)
	if err != nil {
		t.Fatalf("ComputeSlack: %v", err)
	}
	sig, err := truthsim.Simulate(n, 4, 1)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	arr := make(map[netlist.ID]int)
	for _, id := range n.Nodes() {
		arr[id] = timing.Arrival(id)
	}

	g2, _ := n.LookupByName("g2")
	a, _ := n.LookupByName("a")

	// arrival(g2) = 2, arrival(a) = 0: gap is 2, so a is eligible for
	// complementation against g2.
	table := Generate(n, sig, arr, []netlist.ID{g2}, 5)
	found := false
	for _, c := range table[g2] {
		if c.Substitute == a {
			found = true
			if c.Error < 0 || c.Error > 0.5 {
				t.Errorf("complemented candidate error out of range: %v", c.Error)
			}
		}
	}
	if !found {
		t.Fatalf("expected %d (a) as a candidate for %d (g2)", a, g2)
	}
}

func TestGenerateTopKTruncates(t *testing.T) {
	n, err := netlist.ReadBenchString("t", `
INPUT(a)
INPUT(b)
INPUT(c)
INPUT(d)
OUTPUT(out)
g1 = AND(a, b)
g2 = AND(c, d)
out = AND(g1, g2)
`)
	if err != nil {
		t.Fatalf("ReadBenchString: %v", err)
	}
	timing, err := sta.ComputeSlack(n)
	if err != nil {
		t.Fatalf("ComputeSlack: %v", err)
	}
	sig, err := truthsim.Simulate(n, 2, 5)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	arr := make(map[netlist.ID]int)
	for _, id := range n.Nodes() {
		arr[id] = timing.Arrival(id)
	}

	out, _ := n.LookupByName("out")
	table := Generate(n, sig, arr, []netlist.ID{out}, 2)
	if len(table[out]) > 2 {
		t.Errorf("len(table[out]) = %d, want <= 2", len(table[out]))
	}
	for i := 1; i < len(table[out]); i++ {
		if table[out][i].Error < table[out][i-1].Error {
			t.Errorf("candidates not sorted ascending by error")
		}
	}
}

func TestGenerateExcludesSelfAndLaterArrival(t *testing.T) {
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
	sig, err := truthsim.Simulate(n, 2, 5)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	arr := make(map[netlist.ID]int)
	for _, id := range n.Nodes() {
		arr[id] = timing.Arrival(id)
	}

	a, _ := n.LookupByName("a")
	table := Generate(n, sig, arr, []netlist.ID{a}, 5)
	if len(table[a]) != 0 {
		t.Errorf("expected no candidates for a PI target (nothing arrives earlier than arrival 0), got %d", len(table[a]))
	}
}
