// Package dals implements the Approximate Logic Synthesis outer loop:
// round after round it asks sta for the critical graph, candidate for
// scored substitution opportunities, alc to exactly rescore and commit
// them, and mincut to pick a mutually non-conflicting subset, until the
// measured error rate breaches the caller's constraint or the loop stops
// making progress on worst-case delay.
package dals
