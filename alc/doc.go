// Package alc implements the Approximate Local Change: one substitution
// of a target node by an earlier-arriving substitute (optionally through a
// fresh inverter), with snapshot-based Do/Undo so that repeated rescoring
// of a candidate during a DALS round never leaves the netlist in a
// partially-mutated state.
package alc
