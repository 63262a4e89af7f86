package netlist

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// Netlist is a directed acyclic graph of typed nodes. The zero value is not
// usable; construct one with New.
type Netlist struct {
	name   string
	nodes  map[ID]*Node
	byName map[string]ID
	pis    []ID // ordered, as encountered in the source
	pos    []ID // ordered
	nextID ID

	// pendingOutputs is parse-scratch state used while reading a BLIF
	// ".outputs" directive, whose signals are named before the ".names"
	// block that drives them has necessarily been seen. Empty outside of
	// parseBLIF.
	pendingOutputs []string
}

// New creates an empty Netlist.
func New(name string) *Netlist {
	return &Netlist{
		name:   name,
		nodes:  make(map[ID]*Node),
		byName: make(map[string]ID),
	}
}

// Name returns the netlist's name (e.g. the BENCH/BLIF module name).
func (n *Netlist) Name() string { return n.name }

// MaxID returns the highest ID allocated so far plus one: an upper bound
// useful for sizing dense arrays indexed by ID (the mincut package uses
// this directly as its split-node network's N).
func (n *Netlist) MaxID() ID { return n.nextID }

// PrimaryInputs returns the ordered list of primary input IDs.
func (n *Netlist) PrimaryInputs() []ID {
	out := make([]ID, len(n.pis))
	copy(out, n.pis)
	return out
}

// PrimaryOutputs returns the ordered list of primary output IDs.
func (n *Netlist) PrimaryOutputs() []ID {
	out := make([]ID, len(n.pos))
	copy(out, n.pos)
	return out
}

// LookupByID returns the node with the given ID, or (nil, false) if it does
// not exist (e.g. it was deleted).
func (n *Netlist) LookupByID(id ID) (*Node, bool) {
	nd, ok := n.nodes[id]
	return nd, ok
}

// LookupByName returns the ID of the node with the given name.
func (n *Netlist) LookupByName(name string) (ID, bool) {
	id, ok := n.byName[name]
	return id, ok
}

// Nodes returns every live node ID in ascending order. Ascending-by-ID is
// ascending-by-creation-order, which keeps every caller that ranges over
// it (STA's arrival pass aside, which uses TopoSort) deterministic across
// runs instead of at the mercy of Go's randomized map iteration --
// required for the byte-identical run-logs spec.md §8 demands.
func (n *Netlist) Nodes() []ID {
	out := make([]ID, 0, len(n.nodes))
	for id := range n.nodes {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsPI reports whether id names a primary input.
func (n *Netlist) IsPI(id ID) bool { return n.kindOf(id) == PrimaryInput }

// IsPO reports whether id names a primary output.
func (n *Netlist) IsPO(id ID) bool { return n.kindOf(id) == PrimaryOutput }

// IsLogic reports whether id names a logic node.
func (n *Netlist) IsLogic(id ID) bool { return n.kindOf(id) == LogicNode }

// IsConst reports whether id names a constant.
func (n *Netlist) IsConst(id ID) bool { return n.kindOf(id) == Constant }

func (n *Netlist) kindOf(id ID) Kind {
	if nd, ok := n.nodes[id]; ok {
		return nd.kind
	}
	return Kind(255)
}

// NodeName returns the name of the node with the given ID, or "" if unknown.
func (n *Netlist) NodeName(id ID) string {
	if nd, ok := n.nodes[id]; ok {
		return nd.name
	}
	return ""
}

// EvalWord evaluates id's logic function word-wise given the
// polarity-corrected words of its fanins, in fanin order. Used by
// truthsim; exported so alternative simulators can reuse the same
// function semantics without duplicating the gate-level switch.
func (n *Netlist) EvalWord(id ID, faninWords []uint64) uint64 {
	nd := n.nodes[id]
	return nd.fn.eval(faninWords, nd.cubes)
}

// Fanins returns the ordered fanin list of id. The returned slice must not
// be mutated by the caller; use AddFanin/RemoveAllFanins to change it.
func (n *Netlist) Fanins(id ID) []Fanin {
	if nd, ok := n.nodes[id]; ok {
		return nd.fanins
	}
	return nil
}

// Fanouts returns the (derived, incrementally maintained) fanout set of id.
func (n *Netlist) Fanouts(id ID) []ID {
	if nd, ok := n.nodes[id]; ok {
		return nd.fanouts
	}
	return nil
}

// addNode allocates a fresh node with the given kind/name/function and
// registers it in the index. name == "" auto-generates an internal name.
func (n *Netlist) addNode(kind Kind, name string, fn Func) (*Node, error) {
	if name != "" {
		if _, ok := n.byName[name]; ok {
			return nil, errors.Wrapf(ErrDuplicateName, "%q", name)
		}
	}
	id := n.nextID
	n.nextID++
	if name == "" {
		name = internalName(id)
	}
	nd := &Node{id: id, kind: kind, name: name, fn: fn}
	n.nodes[id] = nd
	n.byName[name] = id
	return nd, nil
}

func internalName(id ID) string {
	return "__n" + strconv.Itoa(int(id))
}

// AddPrimaryInput creates and registers a new primary input.
func (n *Netlist) AddPrimaryInput(name string) (ID, error) {
	nd, err := n.addNode(PrimaryInput, name, Buf)
	if err != nil {
		return 0, err
	}
	n.pis = append(n.pis, nd.id)
	return nd.id, nil
}

// AddPrimaryOutput creates and registers a new primary output driven by
// fanin (an already-existing node, with an optional complement).
func (n *Netlist) AddPrimaryOutput(name string, fanin Fanin) (ID, error) {
	nd, err := n.addNode(PrimaryOutput, name, Buf)
	if err != nil {
		return 0, err
	}
	if err := n.AddFanin(nd.id, fanin); err != nil {
		return 0, err
	}
	n.pos = append(n.pos, nd.id)
	return nd.id, nil
}

// AddLogic creates and registers a new logic node of function fn driven by
// the given (ordered) fanins.
func (n *Netlist) AddLogic(name string, fn Func, fanins ...Fanin) (ID, error) {
	nd, err := n.addNode(LogicNode, name, fn)
	if err != nil {
		return 0, err
	}
	for _, f := range fanins {
		if err := n.AddFanin(nd.id, f); err != nil {
			return 0, err
		}
	}
	return nd.id, nil
}

// AddCover creates and registers a new LogicNode whose function is a BLIF
// .names-style on-set cover over the given (ordered) fanins.
func (n *Netlist) AddCover(name string, fanins []Fanin, cubes [][]int8) (ID, error) {
	nd, err := n.addNode(LogicNode, name, Cover)
	if err != nil {
		return 0, err
	}
	for _, f := range fanins {
		if err := n.AddFanin(nd.id, f); err != nil {
			return 0, err
		}
	}
	for _, lits := range cubes {
		nd.cubes = append(nd.cubes, cube{lits: append([]int8(nil), lits...)})
	}
	return nd.id, nil
}

// AddConstant creates and registers a new constant node with value v.
func (n *Netlist) AddConstant(name string, v bool) (ID, error) {
	nd, err := n.addNode(Constant, name, Buf)
	if err != nil {
		return 0, err
	}
	nd.cval = v
	return nd.id, nil
}

// ConstValue returns the value of a Constant node.
func (n *Netlist) ConstValue(id ID) bool {
	if nd, ok := n.nodes[id]; ok {
		return nd.cval
	}
	return false
}

// Duplicate returns a deep, independent copy of the netlist: same node
// identities, names, kinds, functions and fanin lists, with its own
// storage so that mutating the copy never touches the original (the
// engine keeps the original as the immutable *reference* and mutates the
// copy as the *approximation*).
func (n *Netlist) Duplicate() *Netlist {
	d := &Netlist{
		name:   n.name,
		nodes:  make(map[ID]*Node, len(n.nodes)),
		byName: make(map[string]ID, len(n.byName)),
		pis:    append([]ID(nil), n.pis...),
		pos:    append([]ID(nil), n.pos...),
		nextID: n.nextID,
	}
	for id, nd := range n.nodes {
		cp := &Node{
			id:      nd.id,
			kind:    nd.kind,
			name:    nd.name,
			fn:      nd.fn,
			cval:    nd.cval,
			fanins:  append([]Fanin(nil), nd.fanins...),
			fanouts: append([]ID(nil), nd.fanouts...),
			cubes:   append([]cube(nil), nd.cubes...),
		}
		d.nodes[id] = cp
	}
	for name, id := range n.byName {
		d.byName[name] = id
	}
	return d
}
