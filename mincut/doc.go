// Package mincut builds the split-node flow network over a critical
// graph and selects a minimum-capacity, mutually non-conflicting set of
// node substitutions via Dinic's max-flow algorithm.
//
// The network follows spec.md §4.F: every primary-input critical node is
// a single vertex fed by an infinite-capacity edge from source; every
// other critical node is split into an "in" and "out" half joined by an
// edge whose capacity is that node's cheapest available substitution
// error (or +Inf if none exists); every critical edge between critical
// nodes is infinite capacity. The source material's literal vertex
// numbering (source = 0, sink = max_node_id) aliases node 0 itself
// whenever the netlist's first allocated node happens to be a primary
// input — effectively wiring a self-loop at the source. This
// implementation keeps the split-node topology exactly but numbers
// source and sink outside the node-ID range instead, avoiding that
// collision; see DESIGN.md.
package mincut
