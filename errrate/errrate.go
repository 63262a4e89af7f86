package errrate

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	"github.com/zzhou612/dals/netlist"
	"github.com/zzhou612/dals/truthsim"
)

// ErrMismatchedOutputs is returned when ref and approx have different
// primary output counts: caller misuse, not a property of the circuits
// being compared.
var ErrMismatchedOutputs = errors.New("errrate: mismatched primary output counts")

// Rate simulates ref and approx over identical stimuli (same w, same
// seed) and returns the fraction, in [0, 1], of the 64·w patterns for
// which at least one primary output differs. ref and approx must have the
// same number of primary outputs, in the same order.
func Rate(ref, approx *netlist.Netlist, w int, seed uint64) (float64, error) {
	refPOs := ref.PrimaryOutputs()
	approxPOs := approx.PrimaryOutputs()
	if len(refPOs) != len(approxPOs) {
		return 0, errors.Wrapf(ErrMismatchedOutputs, "reference has %d, approximation has %d", len(refPOs), len(approxPOs))
	}

	refSigs, err := truthsim.Simulate(ref, w, seed)
	if err != nil {
		return 0, errors.Wrap(err, "errrate")
	}
	approxSigs, err := truthsim.Simulate(approx, w, seed)
	if err != nil {
		return 0, errors.Wrap(err, "errrate")
	}

	// truthsim already folds each PO's own fanin polarity into its
	// signature (PO nodes go through the same complement-aware fanin
	// evaluation as any other node), so the two signatures are compared
	// directly.
	mismatch := bitset.New(uint(w) * 64)
	for i := range refPOs {
		a := refSigs[refPOs[i]]
		b := approxSigs[approxPOs[i]]
		diff := a.Clone()
		diff.InPlaceSymmetricDifference(b)
		mismatch.InPlaceUnion(diff)
	}

	total := float64(w) * 64
	return float64(mismatch.Count()) / total, nil
}
