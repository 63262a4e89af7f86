package dalstest

import (
	"testing"

	"github.com/zzhou612/dals/errrate"
	"github.com/zzhou612/dals/netlist"
)

// Snapshot is a point-in-time capture of every node's ordered, polarity-
// tagged fanin list, keyed by ID. It is cheap on purpose: it does not
// copy node kind, name, or fanout lists, since those never change under
// Do/Undo -- only fanin lists do (see netlist.Replace/SetFanins).
type Snapshot map[netlist.ID][]netlist.Fanin

// Snap captures n's current fanin lists.
func Snap(n *netlist.Netlist) Snapshot {
	snap := make(Snapshot, len(n.Nodes()))
	for _, id := range n.Nodes() {
		snap[id] = append([]netlist.Fanin(nil), n.Fanins(id)...)
	}
	return snap
}

// AssertUnchanged fails t if n's current fanin lists differ from snap in
// node set, fanin count, fanin order, or fanin polarity -- the structural
// equality spec.md §8 invariant 2 requires of Do(a);Undo(a).
func AssertUnchanged(t *testing.T, n *netlist.Netlist, snap Snapshot) {
	t.Helper()
	now := Snap(n)
	if len(now) != len(snap) {
		t.Fatalf("node count changed: before=%d after=%d", len(snap), len(now))
	}
	for id, want := range snap {
		got, ok := now[id]
		if !ok {
			t.Fatalf("node %d (%s) missing after round trip", id, n.NodeName(id))
		}
		if len(got) != len(want) {
			t.Fatalf("node %d (%s) fanin count changed: before=%v after=%v", id, n.NodeName(id), want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("node %d (%s) fanin[%d] changed: before=%+v after=%+v", id, n.NodeName(id), i, want[i], got[i])
			}
		}
	}
}

// AssertEquivalent fails t if ref and approx disagree on any simulated
// primary output pattern under w words of seed-deterministic stimuli,
// mirroring the teacher's hwtest.ComparePart but bit-parallel via
// errrate.Rate instead of cycle-by-cycle boolean comparison.
func AssertEquivalent(t *testing.T, ref, approx *netlist.Netlist, w int, seed uint64) {
	t.Helper()
	rate, err := errrate.Rate(ref, approx, w, seed)
	if err != nil {
		t.Fatalf("errrate.Rate: %v", err)
	}
	if rate != 0 {
		t.Fatalf("netlists %q and %q disagree on %.4f%% of simulated patterns, want equivalent", ref.Name(), approx.Name(), rate*100)
	}
}
