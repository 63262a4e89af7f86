// Package candidate enumerates, for a set of timing-critical target
// nodes, the legal substitute nodes that arrive strictly earlier and
// scores each by Hamming distance between bit-parallel truth-vector
// signatures, retaining the top_k lowest-error candidates per target.
package candidate
