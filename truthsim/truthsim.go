package truthsim

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	"github.com/zzhou612/dals/netlist"
)

// Option configures a Simulate call. Functional options, matching the
// teacher's PartSpec/Mount configuration style rather than a growing
// positional-parameter list.
type Option func(*config)

type config struct {
	progress chan<- int
}

// WithProgress reports the running count of nodes evaluated so far on ch.
// ch is a pure observer: nothing about the simulation result depends on
// whether, or how fast, a reader drains it. Simulate does not close ch.
func WithProgress(ch chan<- int) Option {
	return func(c *config) { c.progress = ch }
}

// Simulate runs bit-parallel Boolean simulation over n: every node gets a
// signature of w 64-bit words (64·w simulated patterns), with primary
// input words generated deterministically from (node identity, seed) and
// every other node evaluated word-wise in topological order. Simulate only
// reads n; it is safe to call repeatedly, including between an ALC's Do
// and Undo.
func Simulate(n *netlist.Netlist, w int, seed uint64, opts ...Option) (map[netlist.ID]*bitset.BitSet, error) {
	if w <= 0 {
		return nil, errors.Errorf("truthsim: word count must be positive, got %d", w)
	}
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}

	order, err := n.TopoSort()
	if err != nil {
		return nil, errors.Wrap(err, "truthsim")
	}

	words := make(map[netlist.ID][]uint64, len(order))
	sigs := make(map[netlist.ID]*bitset.BitSet, len(order))
	done := 0

	for _, id := range order {
		var out []uint64
		switch {
		case n.IsPI(id):
			out = piStimulus(id, seed, w)
		case n.IsConst(id):
			out = make([]uint64, w)
			if n.ConstValue(id) {
				for i := range out {
					out[i] = ^uint64(0)
				}
			}
		default:
			fanins := n.Fanins(id)
			faninWords := make([]uint64, len(fanins))
			out = make([]uint64, w)
			for word := 0; word < w; word++ {
				for i, f := range fanins {
					fw := words[f.Node][word]
					if f.Inverted {
						fw = ^fw
					}
					faninWords[i] = fw
				}
				out[word] = n.EvalWord(id, faninWords)
			}
		}
		words[id] = out
		sigs[id] = wordsToBitset(out, w)
		done++
		if cfg.progress != nil {
			cfg.progress <- done
		}
	}
	return sigs, nil
}

// piStimulus derives w deterministic words for primary input id from seed,
// using splitmix64 rather than math/rand: no shared package-global state,
// so two goroutines (or two sequential runs) simulating the same (id,
// seed) always see the same stimulus, with no seeding step to forget.
func piStimulus(id netlist.ID, seed uint64, w int) []uint64 {
	state := seed ^ (uint64(id)*0x9E3779B97F4A7C15 + 0xD1B54A32D192ED03)
	out := make([]uint64, w)
	for i := range out {
		out[i] = splitmix64(&state)
	}
	return out
}

func splitmix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func wordsToBitset(words []uint64, w int) *bitset.BitSet {
	b := bitset.New(uint(w) * 64)
	for i, word := range words {
		for bit := 0; bit < 64; bit++ {
			if word&(1<<uint(bit)) != 0 {
				b.Set(uint(i)*64 + uint(bit))
			}
		}
	}
	return b
}

// HammingDistance returns the number of differing bits between two
// signatures produced by Simulate (or two slices of the same length of
// any other bit-parallel source).
func HammingDistance(a, b *bitset.BitSet) uint {
	c := a.Clone()
	c.InPlaceSymmetricDifference(b)
	return c.Count()
}
