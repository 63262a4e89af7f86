package alc

import (
	"github.com/pkg/errors"

	"github.com/zzhou612/dals/netlist"
)

// State is one of the three states an ALC can be in; see ALC's doc comment
// for the allowed transitions.
type State uint8

const (
	Fresh State = iota
	Applied
	Reverted
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Applied:
		return "applied"
	case Reverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition is returned by Do or Undo when called from a state
// that forbids it (Do from Applied; Undo from Fresh or Reverted).
var ErrInvalidTransition = errors.New("alc: invalid state transition")

// ALC is one Approximate Local Change: substituting target with substitute
// (optionally through a freshly materialized inverter), with the fanin
// snapshot needed to undo it exactly. The snapshot is taken at
// construction time, not at Do time, since target's fanout set must be
// read while target itself is still the live driver.
type ALC struct {
	target       netlist.ID
	substitute   netlist.ID
	complemented bool
	errEstimate  float64

	snapshot map[netlist.ID][]netlist.Fanin
	invID    netlist.ID
	hasInv   bool
	state    State
}

// New constructs an ALC for substituting target with substitute, reading
// target's current fanout set from n and snapshotting each fanout's
// ordered fanin list. The ALC is constructed in the Fresh state; calling
// New does not mutate n.
func New(n *netlist.Netlist, target, substitute netlist.ID, complemented bool, errEstimate float64) *ALC {
	fanouts := n.Fanouts(target)
	snapshot := make(map[netlist.ID][]netlist.Fanin, len(fanouts))
	for _, f := range fanouts {
		snapshot[f] = append([]netlist.Fanin(nil), n.Fanins(f)...)
	}
	return &ALC{
		target:       target,
		substitute:   substitute,
		complemented: complemented,
		errEstimate:  errEstimate,
		snapshot:     snapshot,
		state:        Fresh,
	}
}

// Target returns the node being replaced.
func (a *ALC) Target() netlist.ID { return a.target }

// Substitute returns the node taking target's place.
func (a *ALC) Substitute() netlist.ID { return a.substitute }

// Complemented reports whether Do materializes an inverter between
// substitute and target's former fanouts.
func (a *ALC) Complemented() bool { return a.complemented }

// ErrorEstimate returns the error estimate this ALC was constructed with,
// or the value last passed to SetErrorEstimate. The DALS loop constructs
// the ALC it keeps for a target with the exact Do→SimER→Undo rescore
// result (see dals.Engine).
func (a *ALC) ErrorEstimate() float64 { return a.errEstimate }

// SetErrorEstimate overwrites the error estimate.
func (a *ALC) SetErrorEstimate(e float64) { a.errEstimate = e }

// State returns the ALC's current lifecycle state.
func (a *ALC) State() State { return a.state }

// Do applies the substitution: every fanout of target is redirected to
// substitute (or to a freshly materialized inverter of substitute, if
// Complemented). target itself is left in place and may become dangling.
// Do is legal from Fresh or Reverted; it is an error from Applied.
func (a *ALC) Do(n *netlist.Netlist) error {
	if a.state == Applied {
		return errors.Wrapf(ErrInvalidTransition, "Do: ALC for target %d is already applied", a.target)
	}
	newNode := a.substitute
	if a.complemented {
		invID, err := n.CreateInverter(a.substitute)
		if err != nil {
			return errors.Wrap(err, "alc: Do")
		}
		a.invID = invID
		a.hasInv = true
		newNode = invID
	}
	if err := n.Replace(a.target, newNode); err != nil {
		return errors.Wrap(err, "alc: Do")
	}
	a.state = Applied
	return nil
}

// Undo reverts a prior Do: every snapshotted fanout has its exact
// pre-Do fanin list reinstalled, and any inverter materialized by Do is
// deleted. Undo is legal only from Applied.
func (a *ALC) Undo(n *netlist.Netlist) error {
	if a.state != Applied {
		return errors.Wrapf(ErrInvalidTransition, "Undo: ALC for target %d is %s, want applied", a.target, a.state)
	}
	for fanout, fanins := range a.snapshot {
		if err := n.SetFanins(fanout, fanins); err != nil {
			return errors.Wrap(err, "alc: Undo")
		}
	}
	if a.hasInv {
		if err := n.Delete(a.invID); err != nil {
			return errors.Wrap(err, "alc: Undo")
		}
		a.hasInv = false
	}
	a.state = Reverted
	return nil
}

// OptimalMap is the per-round "opt" map of spec.md §4.G.c: for each
// target node, the ALC chosen after exact rescoring of its top-k
// candidates.
type OptimalMap map[netlist.ID]*ALC
