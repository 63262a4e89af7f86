// Package errrate compares a reference netlist against an approximation
// over the same bit-parallel stimuli and reports the fraction of patterns
// for which any primary output differs.
package errrate
