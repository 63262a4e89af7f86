package netlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// BENCH is the ISCAS-benchmark netlist format: one INPUT(name) or
// OUTPUT(name) declaration per primary pin, and one "out = GATE(in, ...)"
// assignment per logic gate. Grounded on
// bcspragu-ReachabilityAnalyzer/bench/bench.go's regexp-driven line parser,
// generalized here from 1/2-input gates to N-input gates and from AND/NOT/
// DFF to the full Func set (minus DFF, which is sequential and out of
// scope per spec.md §1 Non-goals).
var (
	reIO   = regexp.MustCompile(`^(INPUT|OUTPUT)\(\s*([A-Za-z0-9_.\[\]]+)\s*\)$`)
	reGate = regexp.MustCompile(`^([A-Za-z0-9_.\[\]]+)\s*=\s*([A-Za-z]+)\(\s*(.+?)\s*\)$`)
)

var benchFuncs = map[string]Func{
	"BUF":  Buf,
	"BUFF": Buf,
	"AND":  And,
	"OR":   Or,
	"XOR":  Xor,
	"NAND": Nand,
	"NOR":  Nor,
	"XNOR": Xnor,
	"NOT":  Not,
	"INV":  Not,
}

// ReadBench reads a .bench netlist from path.
func ReadBench(path string) (*Netlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "read bench")
	}
	defer f.Close()
	return parseBench(f, baseName(path))
}

// ReadBenchString parses a .bench netlist already held in memory (used
// extensively by the test suite to build small fixture circuits inline).
func ReadBenchString(name, src string) (*Netlist, error) {
	return parseBench(strings.NewReader(src), name)
}

func baseName(path string) string {
	i := strings.LastIndexAny(path, "/\\")
	name := path[i+1:]
	if j := strings.LastIndexByte(name, '.'); j >= 0 {
		name = name[:j]
	}
	return name
}

func parseBench(r io.Reader, name string) (*Netlist, error) {
	n := New(name)
	// Gate lines may reference a signal before its driving gate line has
	// been parsed (BENCH files are not required to be topologically
	// sorted textually), so pending fanins are resolved by name in a
	// second pass.
	type pendingGate struct {
		out  string
		fn   Func
		ins  []string
	}
	var pending []pendingGate
	declared := make(map[string]bool)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if m := reIO.FindStringSubmatch(line); m != nil {
			switch m[1] {
			case "INPUT":
				if _, err := n.AddPrimaryInput(m[2]); err != nil {
					return nil, errors.Wrapf(err, "line %d", lineNo)
				}
				declared[m[2]] = true
			case "OUTPUT":
				// Deferred: the driving signal may not exist yet. Record
				// the name and wire it up once every gate has been seen.
				pending = append(pending, pendingGate{out: "#OUTPUT#" + m[2], fn: Buf, ins: []string{m[2]}})
			}
			continue
		}
		if m := reGate.FindStringSubmatch(line); m != nil {
			fn, ok := benchFuncs[strings.ToUpper(m[2])]
			if !ok {
				return nil, errors.Errorf("line %d: unsupported gate type %q", lineNo, m[2])
			}
			ins := splitArgs(m[3])
			pending = append(pending, pendingGate{out: m[1], fn: fn, ins: ins})
			declared[m[1]] = true
			continue
		}
		return nil, errors.Errorf("line %d: unrecognized bench statement %q", lineNo, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read bench")
	}

	// First pass: create every non-output gate node (so forward references
	// resolve), in the order encountered.
	for _, g := range pending {
		if strings.HasPrefix(g.out, "#OUTPUT#") {
			continue
		}
		if _, err := n.AddLogic(g.out, g.fn); err != nil {
			return nil, errors.Wrapf(err, "gate %q", g.out)
		}
	}
	// Second pass: wire fanins now that every gate name resolves.
	for _, g := range pending {
		if strings.HasPrefix(g.out, "#OUTPUT#") {
			continue
		}
		id, _ := n.LookupByName(g.out)
		for _, in := range g.ins {
			fanin, inv := parsePolarity(in)
			finID, ok := n.LookupByName(fanin)
			if !ok {
				return nil, errors.Errorf("gate %q: unknown fanin %q", g.out, fanin)
			}
			if err := n.AddFanin(id, Fanin{Node: finID, Inverted: inv}); err != nil {
				return nil, err
			}
		}
	}
	// Third pass: primary outputs, in declaration order.
	for _, g := range pending {
		if !strings.HasPrefix(g.out, "#OUTPUT#") {
			continue
		}
		poName := strings.TrimPrefix(g.out, "#OUTPUT#")
		fanin, inv := parsePolarity(g.ins[0])
		finID, ok := n.LookupByName(fanin)
		if !ok {
			return nil, errors.Errorf("OUTPUT(%s): unknown signal %q", poName, fanin)
		}
		if _, err := n.AddPrimaryOutput(poOutputName(n, poName), Fanin{Node: finID, Inverted: inv}); err != nil {
			return nil, err
		}
	}

	if _, err := n.TopoSort(); err != nil {
		return nil, errors.Wrap(err, "parse bench")
	}
	return n, nil
}

// poOutputName picks the name of the primary output node for the signal
// poName. A BENCH "OUTPUT(out)" line (or a BLIF .outputs entry) names the
// signal that drives the output, and that signal already exists as a node
// by the time outputs are wired, so the PO node is named poName + ".po"
// and that is what NodeName reports for it. poName is returned unchanged
// only when no node of that name exists.
func poOutputName(n *Netlist, poName string) string {
	if _, exists := n.LookupByName(poName); !exists {
		return poName
	}
	return poName + ".po"
}

func splitArgs(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parsePolarity recognizes a leading '!' or a trailing "'" as a
// complemented reference to a signal, matching common BENCH-file
// conventions for inline inversions on a fanin.
func parsePolarity(s string) (name string, inverted bool) {
	if strings.HasPrefix(s, "!") {
		return s[1:], true
	}
	if strings.HasSuffix(s, "'") {
		return s[:len(s)-1], true
	}
	return s, false
}

// WriteBench writes n to w in .bench format.
func (n *Netlist) WriteBench(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, id := range n.pis {
		fmt.Fprintf(bw, "INPUT(%s)\n", n.NodeName(id))
	}
	for _, id := range n.pos {
		fmt.Fprintf(bw, "OUTPUT(%s)\n", n.NodeName(id))
	}
	order, err := n.TopoSort()
	if err != nil {
		return err
	}
	for _, id := range order {
		nd := n.nodes[id]
		if nd.kind != LogicNode {
			continue
		}
		fmt.Fprintf(bw, "%s = %s(%s)\n", nd.name, nd.fn, finList(n, nd.fanins))
	}
	for _, id := range n.pos {
		nd := n.nodes[id]
		fmt.Fprintf(bw, "%s = %s(%s)\n", nd.name, nd.fn, finList(n, nd.fanins))
	}
	return bw.Flush()
}

func finList(n *Netlist, fanins []Fanin) string {
	names := make([]string, len(fanins))
	for i, f := range fanins {
		name := n.NodeName(f.Node)
		if f.Inverted {
			name = "!" + name
		}
		names[i] = name
	}
	return strings.Join(names, ", ")
}
