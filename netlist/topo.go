package netlist

import "sort"

// TopoSort returns every node in the netlist (PI, logic, PO and Constant)
// in topological order: for any edge u -> v (v has u as a fanin), u appears
// before v. It returns ErrInvalidNetlist if the netlist contains a cycle,
// i.e. is not actually combinational.
//
// Spec.md §6 describes "Topological sort over {PI ∪ logic}"; Constant and
// PrimaryOutput nodes are included here too since truthsim and sta both
// need a single total evaluation order that also covers them, and
// including them is a strict superset that changes nothing about the
// ordering among PI/logic nodes.
func (n *Netlist) TopoSort() ([]ID, error) {
	const (
		white = iota
		gray
		black
	)
	color := make(map[ID]uint8, len(n.nodes))
	order := make([]ID, 0, len(n.nodes))

	var visit func(id ID) error
	visit = func(id ID) error {
		switch color[id] {
		case black:
			return nil
		case gray:
			return ErrInvalidNetlist
		}
		color[id] = gray
		nd := n.nodes[id]
		for _, f := range nd.fanins {
			if err := visit(f.Node); err != nil {
				return err
			}
		}
		color[id] = black
		order = append(order, id)
		return nil
	}

	// Visit in a deterministic order (ascending ID) so that repeated runs
	// over the same netlist produce byte-identical orderings (spec.md §5
	// determinism requirement).
	ids := n.Nodes()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return order, nil
}
