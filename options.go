package dals

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithSimWords sets the truth-vector simulation width (in 64-bit words)
// used for every candidate rescore and error-rate measurement. Default 16
// (1024 simulated patterns).
func WithSimWords(w int) Option {
	return func(e *Engine) { e.words = w }
}

// WithSeed sets the deterministic stimulus seed passed to truthsim.
// Default 1.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithTopK overrides the top-k candidate retention count used by
// candidate.Generate. spec.md §4.G.b fixes this at 3; the option exists so
// callers can explore the design space, but Run's documented contract
// assumes the default.
func WithTopK(k int) Option {
	return func(e *Engine) { e.topK = k }
}

// WithLogWriter sets the destination of the canonical, format-frozen
// run-log block (spec.md §6). Default os.Stdout.
func WithLogWriter(w io.Writer) Option {
	return func(e *Engine) { e.LogWriter = w }
}

// WithLogger installs a caller-supplied logrus logger for leveled
// diagnostic output (round starts, empty candidate sets, no-progress
// detection). Default a package-private logger at Info level.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) { e.logger = l }
}
