package netlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// BLIF (Berkeley Logic Interchange Format) ingest/egress, covering the
// single-output-cover ".names" subset emitted by technology-independent
// synthesis flows (".model"/".inputs"/".outputs"/".names"/".end"). Latches
// (".latch") are sequential and out of scope (spec.md §1 Non-goals); a
// ".latch" line is a hard parse error rather than silently dropped, so a
// sequential design fails loudly instead of simulating as if it were
// combinational.
//
// Each ".names" block's cube lines are read as an on-set cover and stored
// verbatim on a Cover-function LogicNode (see node.go); this is a strict
// generalization of BENCH's fixed gate vocabulary and is also how
// `netlist.EvalWord` evaluates it, via bit-parallel per-cube AND/OR.

// ReadBLIF reads a BLIF netlist from path.
func ReadBLIF(path string) (*Netlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "read blif")
	}
	defer f.Close()
	return parseBLIF(f)
}

func parseBLIF(r io.Reader) (*Netlist, error) {
	sc := bufio.NewScanner(r)
	var lines []string
	var cur strings.Builder
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimRight(line, " \t")
		if strings.HasSuffix(trimmed, "\\") {
			cur.WriteString(strings.TrimSuffix(trimmed, "\\"))
			cur.WriteByte(' ')
			continue
		}
		cur.WriteString(trimmed)
		lines = append(lines, cur.String())
		cur.Reset()
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read blif")
	}

	var n *Netlist
	var names []string // current .names signal list: ins..., out
	var cubes [][]int8

	flushNames := func() error {
		if n == nil || names == nil {
			return nil
		}
		out := names[len(names)-1]
		ins := names[:len(names)-1]
		fanins := make([]Fanin, len(ins))
		for i, s := range ins {
			id, ok := n.LookupByName(s)
			if !ok {
				return errors.Errorf(".names %s: unknown input %q", out, s)
			}
			fanins[i] = Fanin{Node: id}
		}
		if _, err := n.AddCover(out, fanins, cubes); err != nil {
			return errors.Wrapf(err, ".names %s", out)
		}
		names, cubes = nil, nil
		return nil
	}

	for lineNo, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, ".model"):
			fields := strings.Fields(line)
			nm := "blif"
			if len(fields) > 1 {
				nm = fields[1]
			}
			n = New(nm)
		case strings.HasPrefix(line, ".inputs"):
			if n == nil {
				return nil, errors.Errorf("line %d: .inputs before .model", lineNo+1)
			}
			for _, s := range strings.Fields(line)[1:] {
				if _, err := n.AddPrimaryInput(s); err != nil {
					return nil, err
				}
			}
		case strings.HasPrefix(line, ".outputs"):
			// POs are wired once their driving .names block is seen; record
			// the names now and resolve at .end.
			if n == nil {
				return nil, errors.Errorf("line %d: .outputs before .model", lineNo+1)
			}
			n.pendingOutputs = append(n.pendingOutputs, strings.Fields(line)[1:]...)
		case strings.HasPrefix(line, ".latch"):
			return nil, errors.Wrapf(ErrInvalidNetlist, "line %d: sequential element (.latch) not supported", lineNo+1)
		case strings.HasPrefix(line, ".names"):
			if err := flushNames(); err != nil {
				return nil, err
			}
			names = strings.Fields(line)[1:]
		case strings.HasPrefix(line, ".end"):
			if err := flushNames(); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, "."):
			// Unrecognized directive (.exdc, .subckt, ...): ignored, as
			// these don't appear in single-module technology-independent
			// BLIF produced by the synthesis flows this engine targets.
		default:
			// cube row: "<literals> <output bit>"
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			lits := make([]int8, len(names)-1)
			if len(fields) == 1 {
				// constant-output .names with no inputs: "1" or "0".
				if fields[0] != "1" {
					continue
				}
			} else {
				pat := fields[0]
				if len(pat) != len(lits) {
					return nil, errors.Errorf("line %d: cube width mismatch", lineNo+1)
				}
				for i, c := range pat {
					switch c {
					case '1':
						lits[i] = 1
					case '0':
						lits[i] = 0
					default:
						lits[i] = -1
					}
				}
				if fields[1] != "1" {
					// off-set row; this reduced reader only supports
					// on-set covers (see package doc).
					continue
				}
			}
			cubes = append(cubes, lits)
		}
	}
	if n == nil {
		return nil, errors.Wrap(ErrInvalidNetlist, "no .model found")
	}
	for _, name := range n.pendingOutputs {
		id, ok := n.LookupByName(name)
		if !ok {
			return nil, errors.Errorf(".outputs: unknown signal %q", name)
		}
		if _, err := n.AddPrimaryOutput(poOutputName(n, name), Fanin{Node: id}); err != nil {
			return nil, err
		}
	}
	n.pendingOutputs = nil
	if _, err := n.TopoSort(); err != nil {
		return nil, errors.Wrap(err, "parse blif")
	}
	return n, nil
}

// WriteBLIF writes n to w in BLIF format, one ".names" block per logic
// node (non-Cover gates are expanded to their equivalent on-set cover).
func (n *Netlist) WriteBLIF(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, ".model %s\n", n.name)
	fmt.Fprint(bw, ".inputs")
	for _, id := range n.pis {
		fmt.Fprintf(bw, " %s", n.NodeName(id))
	}
	fmt.Fprintln(bw)
	fmt.Fprint(bw, ".outputs")
	for _, id := range n.pos {
		fmt.Fprintf(bw, " %s", n.NodeName(id))
	}
	fmt.Fprintln(bw)

	order, err := n.TopoSort()
	if err != nil {
		return err
	}
	for _, id := range order {
		nd := n.nodes[id]
		if nd.kind != LogicNode && nd.kind != PrimaryOutput {
			continue
		}
		fmt.Fprint(bw, ".names")
		for _, f := range nd.fanins {
			fmt.Fprintf(bw, " %s", n.NodeName(f.Node))
		}
		fmt.Fprintf(bw, " %s\n", nd.name)
		for _, row := range cubesOf(nd) {
			fmt.Fprintln(bw, row)
		}
	}
	fmt.Fprintln(bw, ".end")
	return bw.Flush()
}

// cubesOf returns the on-set cover of nd as printable BLIF cube lines,
// translating the named-gate Funcs to their equivalent cover and passing
// Cover nodes (and each fanin's complement) straight through.
func cubesOf(nd *Node) []string {
	k := len(nd.fanins)
	pol := make([]bool, k)
	for i, f := range nd.fanins {
		pol[i] = f.Inverted
	}
	lit := func(inv bool) byte {
		if inv {
			return '0'
		}
		return '1'
	}
	switch nd.fn {
	case Buf:
		return []string{string(lit(pol[0])) + " 1"}
	case Not:
		return []string{string(oppositeLit(pol[0])) + " 1"}
	case And:
		row := make([]byte, k)
		for i := range row {
			row[i] = lit(pol[i])
		}
		return []string{string(row) + " 1"}
	case Nand:
		// De Morgan: represent as k on-set rows, one per input held at 0.
		var rows []string
		for i := 0; i < k; i++ {
			row := make([]byte, k)
			for j := range row {
				row[j] = '-'
			}
			row[i] = oppositeLit(pol[i])
			rows = append(rows, string(row)+" 1")
		}
		return rows
	case Or:
		var rows []string
		for i := 0; i < k; i++ {
			row := make([]byte, k)
			for j := range row {
				row[j] = '-'
			}
			row[i] = lit(pol[i])
			rows = append(rows, string(row)+" 1")
		}
		return rows
	case Cover:
		rows := make([]string, len(nd.cubes))
		for i, c := range nd.cubes {
			b := make([]byte, len(c.lits))
			for j, l := range c.lits {
				switch l {
				case 1:
					b[j] = '1'
				case 0:
					b[j] = '0'
				default:
					b[j] = '-'
				}
			}
			rows[i] = string(b) + " 1"
		}
		return rows
	case Xor, Xnor, Nor:
		// No don't-care shortcut exists for these (every input bit flips
		// the output), so enumerate the 2^k raw input patterns and keep
		// the ones that land in the on-set. k is a gate fanin count, never
		// large enough for this to matter.
		var rows []string
		for mask := 0; mask < (1 << uint(k)); mask++ {
			raw := make([]bool, k)
			in := make([]bool, k)
			for i := 0; i < k; i++ {
				raw[i] = mask&(1<<uint(i)) != 0
				v := raw[i]
				if pol[i] {
					v = !v
				}
				in[i] = v
			}
			var out bool
			switch nd.fn {
			case Nor:
				out = false
				for _, v := range in {
					out = out || v
				}
				out = !out
			default: // Xor, Xnor
				out = in[0]
				for _, v := range in[1:] {
					out = out != v
				}
				if nd.fn == Xnor {
					out = !out
				}
			}
			if !out {
				continue
			}
			row := make([]byte, k)
			for i, b := range raw {
				if b {
					row[i] = '1'
				} else {
					row[i] = '0'
				}
			}
			rows = append(rows, string(row)+" 1")
		}
		return rows
	default:
		return nil
	}
}

func oppositeLit(inv bool) byte {
	if inv {
		return '1'
	}
	return '0'
}
