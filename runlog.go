package dals

import (
	"fmt"
	"io"

	"github.com/zzhou612/dals/alc"
	"github.com/zzhou612/dals/netlist"
)

// commit pairs a cut target with the ALC committed for it, in commit
// order, for use by writeRoundLog.
type commit struct {
	target netlist.ID
	change *alc.ALC
}

// writeRoundLog emits one run-log block, byte-for-byte per spec.md §6:
// round header, one line per committed substitution in commit order, then
// the round's error rate and delay. It never goes through logrus, so its
// output stays identical across runs regardless of logging configuration.
func writeRoundLog(w io.Writer, n *netlist.Netlist, round int, commits []commit, errRate float64, refDelay, approxDelay int) error {
	if _, err := fmt.Fprintf(w, "Round %d:\n", round); err != nil {
		return err
	}
	for _, c := range commits {
		target := n.NodeName(c.target)
		substitute := n.NodeName(c.change.Substitute())
		if _, err := fmt.Fprintf(w, "%s ---> %s : %t : %g\n", target, substitute, c.change.Complemented(), c.change.ErrorEstimate()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Error Rate: %g\n", errRate); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Delay: %d--->;%d\n", refDelay, approxDelay); err != nil {
		return err
	}
	return nil
}
