package candidate

import (
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/zzhou612/dals/netlist"
	"github.com/zzhou612/dals/truthsim"
)

// Candidate is one scored substitution opportunity: replace Target with
// Substitute (optionally complemented) at an estimated functional error of
// Error. It carries no fanout snapshot — that is captured only once a
// candidate is promoted to an alc.ALC for actual commit, since scoring
// routinely considers many candidates that are never applied.
type Candidate struct {
	Target       netlist.ID
	Substitute   netlist.ID
	Complemented bool
	Error        float64
}

// Table maps each target to its retained candidates, sorted ascending by
// Error with ties broken by insertion (enumeration) order.
type Table map[netlist.ID][]Candidate

// Generate enumerates legal substitutes for every node in targets and
// retains the topK lowest-error candidates each, following spec.md §4.C
// steps 1-4:
//
//  1. every PI or logic node s with arr[s] < arr[t], s != t, is a legal
//     substitute;
//  2. its raw error is the Hamming distance between sig[t] and sig[s],
//     normalized by the signature width;
//  3. if arr[s] < arr[t]-1 the candidate may be complemented, taking
//     whichever of raw_err/1-raw_err is smaller; otherwise it is
//     non-complemented at raw_err (inserting an inverter would reintroduce
//     the one unit of delay the substitution was meant to remove);
//  4. the topK lowest-error candidates are kept, ties broken by
//     enumeration order.
func Generate(n *netlist.Netlist, sig map[netlist.ID]*bitset.BitSet, arr map[netlist.ID]int, targets []netlist.ID, topK int) Table {
	table := make(Table, len(targets))
	width := signatureBits(sig)

	for _, t := range targets {
		var cands []Candidate
		for _, s := range enumerationOrder(n) {
			if s == t {
				continue
			}
			if arr[s] >= arr[t] {
				continue
			}
			h := truthsim.HammingDistance(sig[t], sig[s])
			raw := float64(h) / float64(width)

			var c Candidate
			if arr[s] < arr[t]-1 {
				complemented := raw > 0.5
				errEst := raw
				if complemented {
					errEst = 1 - raw
				}
				c = Candidate{Target: t, Substitute: s, Complemented: complemented, Error: errEst}
			} else {
				c = Candidate{Target: t, Substitute: s, Complemented: false, Error: raw}
			}
			cands = append(cands, c)
		}
		table[t] = topKLowestError(cands, topK)
	}
	return table
}

// enumerationOrder returns every PI and logic node in a stable order (the
// netlist's topological order), so Generate's ties-broken-by-insertion-
// order rule is deterministic across runs.
func enumerationOrder(n *netlist.Netlist) []netlist.ID {
	order, err := n.TopoSort()
	if err != nil {
		return nil
	}
	out := make([]netlist.ID, 0, len(order))
	for _, id := range order {
		if n.IsPI(id) || n.IsLogic(id) {
			out = append(out, id)
		}
	}
	return out
}

func signatureBits(sig map[netlist.ID]*bitset.BitSet) uint {
	for _, b := range sig {
		return b.Len()
	}
	return 1
}

// topKLowestError sorts cands ascending by Error, ties broken by original
// (enumeration) order, and truncates to topK.
func topKLowestError(cands []Candidate, topK int) []Candidate {
	out := make([]Candidate, len(cands))
	copy(out, cands)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Error < out[j].Error })
	if topK >= 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}
