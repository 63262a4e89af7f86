package netlist

import "github.com/pkg/errors"

// Sentinel errors for the netlist framework. Callers should use
// errors.Is/errors.Cause (github.com/pkg/errors) to test against these,
// since the engine wraps them with call-site context as they propagate.
var (
	// ErrInvalidNetlist covers non-combinational (cyclic) netlists and
	// mismatched primary-input sets between a reference and an
	// approximation. It is fatal: abort before any mutation.
	ErrInvalidNetlist = errors.New("invalid netlist")
	// ErrUnknownNode is returned by any query/mutation given an ID that
	// does not exist in the netlist.
	ErrUnknownNode = errors.New("unknown node")
	// ErrDanglingFanin names the condition of a non-output node left with
	// no driver. None of this package's mutation primitives returns it:
	// RemoveAllFanins and SetFanins leave such a node in place without
	// error.
	ErrDanglingFanin = errors.New("pin not connected to any output")
	// ErrDuplicateName is returned by the Add* node constructors when name
	// is already used.
	ErrDuplicateName = errors.New("duplicate node name")
)
