package dals

import (
	"github.com/pkg/errors"

	"github.com/zzhou612/dals/netlist"
)

// Sentinel error kinds, per spec.md §7. EmptyCandidateSet is not one of
// these: it is a per-target condition handled inline during a round (the
// target simply contributes no entry to that round's opt map) rather than
// a failure of Run itself.
var (
	// ErrInvalidNetlist reports a reference/approximation pair that cannot
	// be synthesized at all: no reference set, mismatched primary input
	// counts, or a non-combinational (cyclic) netlist. It is the same
	// sentinel netlist.TopoSort returns for a cyclic graph, so a cycle
	// surfaced through sta.ComputeSlack satisfies errors.Is(err,
	// ErrInvalidNetlist) without Run needing to translate it.
	ErrInvalidNetlist = netlist.ErrInvalidNetlist

	// ErrUndoAssertion reports that alc.ALC.Undo returned an error while
	// Run was reverting a rescored candidate. Run does not itself compare
	// the netlist against a pre-Do snapshot; an Undo that succeeds is
	// taken as exact. This indicates an engine bug, not a data problem;
	// Run treats it as fatal.
	ErrUndoAssertion = errors.New("dals: undo assertion failed")
)
