// Package dalstest provides test-only helpers shared across this
// repository's package-level test suites: a structural-equality
// assertion for the ALC Do/Undo round-trip invariant, and a black-box
// functional-equivalence comparator for two netlists.
package dalstest
