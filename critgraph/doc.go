// Package critgraph extracts the zero-slack (critical) subgraph of a
// timed netlist: the nodes and edges that lie on at least one longest
// path from a primary input to a primary output.
package critgraph
