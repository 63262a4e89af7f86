package netlist

import "github.com/pkg/errors"

// AddFanin appends f to id's ordered fanin list and records id as a fanout
// of f.Node. It is the caller's responsibility to keep the netlist acyclic;
// TopoSort reports ErrInvalidNetlist if it is not.
func (n *Netlist) AddFanin(id ID, f Fanin) error {
	nd, ok := n.nodes[id]
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "id %d", id)
	}
	src, ok := n.nodes[f.Node]
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "fanin id %d", f.Node)
	}
	nd.fanins = append(nd.fanins, f)
	src.addFanout(id)
	return nil
}

// RemoveAllFanins clears id's fanin list and removes id from the fanout
// list of every node it used to take input from. The node itself is not
// deleted; it becomes dangling until new fanins are added (see spec.md
// §4.D: "target itself is not deleted; it may become dangling").
func (n *Netlist) RemoveAllFanins(id ID) error {
	nd, ok := n.nodes[id]
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "id %d", id)
	}
	for _, f := range nd.fanins {
		if src, ok := n.nodes[f.Node]; ok {
			src.removeFanout(id)
		}
	}
	nd.fanins = nil
	return nil
}

// SetFanins replaces id's entire ordered fanin list: it clears the list
// with RemoveAllFanins and then appends each entry of fanins in order. It
// is used by alc.Undo to restore a fanout's exact pre-Do fanin list
// (spec.md §4.D's "saved_fanout_snapshot"). If an entry names an unknown
// node, SetFanins returns the error with only the entries before it
// installed.
func (n *Netlist) SetFanins(id ID, fanins []Fanin) error {
	if err := n.RemoveAllFanins(id); err != nil {
		return err
	}
	for _, f := range fanins {
		if err := n.AddFanin(id, f); err != nil {
			return err
		}
	}
	return nil
}

// CreateInverter creates a fresh LogicNode of function Not whose single
// fanin is of. It does not wire the inverter to anything else; the caller
// (alc.Do) is responsible for redirecting fanouts to it.
func (n *Netlist) CreateInverter(of ID) (ID, error) {
	if _, ok := n.nodes[of]; !ok {
		return 0, errors.Wrapf(ErrUnknownNode, "id %d", of)
	}
	return n.AddLogic("", Not, Fanin{Node: of})
}

// Replace redirects every fanout of old to take newNode as a fanin instead,
// preserving each fanout's fanin order and polarity on the replaced edge.
// old itself is left in place (possibly dangling, see spec.md §4.D); it is
// the caller's job to Delete it if it is no longer needed (e.g. an
// inverter materialized by a reverted ALC).
//
// Replace does NOT snapshot anything: it is the low-level primitive. The
// alc package is responsible for snapshotting each fanout's fanin list
// before calling Replace, because a naive "patch the one matching fanin
// entry" approach breaks when a fanout already independently lists newNode
// as another one of its fanins — merging or duplicating edges incorrectly.
// See spec.md §4.D/§9 and alc.ALC for the snapshot-based fix.
func (n *Netlist) Replace(old, newNode ID) error {
	oldNd, ok := n.nodes[old]
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "id %d", old)
	}
	if _, ok := n.nodes[newNode]; !ok {
		return errors.Wrapf(ErrUnknownNode, "id %d", newNode)
	}
	fanouts := append([]ID(nil), oldNd.fanouts...)
	for _, fo := range fanouts {
		foNd, ok := n.nodes[fo]
		if !ok {
			continue
		}
		for i, f := range foNd.fanins {
			if f.Node == old {
				foNd.fanins[i].Node = newNode
			}
		}
	}
	if newSrc, ok := n.nodes[newNode]; ok {
		for _, fo := range fanouts {
			newSrc.addFanout(fo)
		}
	}
	oldNd.fanouts = nil
	return nil
}

// Delete removes id from the netlist entirely: it is severed from its own
// fanins' fanout lists and dropped from the node/name indices. Delete
// returns an error and leaves the netlist unchanged if id still has live
// fanouts, since deleting a node that other nodes still read from would
// silently create a dangling reference.
func (n *Netlist) Delete(id ID) error {
	nd, ok := n.nodes[id]
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "id %d", id)
	}
	if len(nd.fanouts) > 0 {
		return errors.Errorf("cannot delete node %d (%s): still has %d fanout(s)", id, nd.name, len(nd.fanouts))
	}
	for _, f := range nd.fanins {
		if src, ok := n.nodes[f.Node]; ok {
			src.removeFanout(id)
		}
	}
	delete(n.nodes, id)
	delete(n.byName, nd.name)
	return nil
}
