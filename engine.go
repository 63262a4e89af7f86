package dals

import (
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zzhou612/dals/alc"
	"github.com/zzhou612/dals/candidate"
	"github.com/zzhou612/dals/critgraph"
	"github.com/zzhou612/dals/errrate"
	"github.com/zzhou612/dals/mincut"
	"github.com/zzhou612/dals/netlist"
	"github.com/zzhou612/dals/sta"
	"github.com/zzhou612/dals/truthsim"
)

// Engine owns a reference netlist and the approximation being built from
// it. It is not safe for concurrent use: spec.md §5 scopes the round loop
// to single-threaded, synchronous execution.
type Engine struct {
	// LogWriter receives the canonical, format-frozen run-log block
	// (spec.md §6) written once per committed round. Defaults to
	// os.Stdout; set via WithLogWriter or directly.
	LogWriter io.Writer

	reference *netlist.Netlist
	approx    *netlist.Netlist

	words  int
	seed   uint64
	topK   int
	logger *logrus.Logger
}

// New constructs an Engine with the given options applied over defaults:
// 16 simulation words, seed 1, top-k 3, and a log writer of os.Stdout.
func New(opts ...Option) *Engine {
	e := &Engine{
		LogWriter: os.Stdout,
		words:     16,
		seed:      1,
		topK:      3,
		logger:    logrus.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetReference installs n as the reference netlist, duplicating it to
// seed the approximation that Run mutates. Must be called before Run.
func (e *Engine) SetReference(n *netlist.Netlist) {
	e.reference = n
	e.approx = n.Duplicate()
}

// SetSimWords overrides the truth-vector simulation width.
func (e *Engine) SetSimWords(w int) {
	e.words = w
}

// Approximation returns the netlist Run has been building. Safe to call
// at any point, including mid-run state if invoked from a logging hook;
// Run itself never calls it.
func (e *Engine) Approximation() *netlist.Netlist {
	return e.approx
}

// Run executes the fixed-point loop of spec.md §4.G against errConstraint
// until the measured error rate reaches it or the loop detects it is no
// longer making progress.
func (e *Engine) Run(errConstraint float64) (*Result, error) {
	if e.reference == nil || e.approx == nil {
		return nil, errors.Wrap(ErrInvalidNetlist, "Run: SetReference was never called")
	}
	if len(e.reference.PrimaryInputs()) != len(e.approx.PrimaryInputs()) {
		return nil, errors.Wrap(ErrInvalidNetlist, "Run: reference/approximation primary input count mismatch")
	}

	logWriter := e.LogWriter
	if logWriter == nil {
		logWriter = os.Stdout
	}

	refTiming, err := sta.ComputeSlack(e.reference)
	if err != nil {
		return nil, errors.Wrap(err, "Run: reference STA")
	}
	refDelay := refTiming.WorstCaseArrival()

	var (
		errRate     float64
		approxDelay = refDelay
		round       int
		prevDelay   = -1
		terminated  = ConstraintBreach
	)

roundLoop:
	for errRate < errConstraint {
		round++
		e.logger.WithField("round", round).Info("starting round")

		timing, err := sta.ComputeSlack(e.approx)
		if err != nil {
			return nil, errors.Wrapf(err, "Run: round %d STA", round)
		}

		var criticalLogic []netlist.ID
		for _, id := range e.approx.Nodes() {
			if e.approx.IsLogic(id) && timing.Critical(id) {
				criticalLogic = append(criticalLogic, id)
			}
		}
		if len(criticalLogic) == 0 {
			e.logger.WithField("round", round).Info("no critical logic nodes; stopping")
			terminated = NoProgress
			round--
			break
		}

		sig, err := truthsim.Simulate(e.approx, e.words, e.seed)
		if err != nil {
			return nil, errors.Wrapf(err, "Run: round %d simulate", round)
		}
		arr := make(map[netlist.ID]int, len(e.approx.Nodes()))
		for _, id := range e.approx.Nodes() {
			arr[id] = timing.Arrival(id)
		}

		table := candidate.Generate(e.approx, sig, arr, criticalLogic, e.topK)

		// Exact rescore: per spec.md §4.G.c, every top-k candidate is
		// committed and measured via the real error evaluator, not the
		// Hamming-distance estimate candidate.Generate used to shortlist
		// it, then reverted before the next candidate is tried.
		opt := make(alc.OptimalMap)
		for _, t := range criticalLogic {
			cands := table[t]
			if len(cands) == 0 {
				e.logger.WithFields(logrus.Fields{"round": round, "target": e.approx.NodeName(t)}).Debug("empty candidate set")
				continue
			}
			var best *alc.ALC
			bestErr := math.Inf(1)
			for _, c := range cands {
				change := alc.New(e.approx, t, c.Substitute, c.Complemented, c.Error)
				if doErr := change.Do(e.approx); doErr != nil {
					return nil, errors.Wrapf(doErr, "Run: round %d rescore Do target %d", round, t)
				}
				exact, rateErr := errrate.Rate(e.reference, e.approx, e.words, e.seed)
				if rateErr != nil {
					return nil, errors.Wrapf(rateErr, "Run: round %d rescore SimER target %d", round, t)
				}
				if undoErr := change.Undo(e.approx); undoErr != nil {
					return nil, errors.Wrapf(ErrUndoAssertion, "round %d target %d: %v", round, t, undoErr)
				}
				if exact < bestErr {
					bestErr = exact
					best = alc.New(e.approx, t, c.Substitute, c.Complemented, exact)
				}
			}
			if best != nil {
				opt[t] = best
			}
		}

		if len(opt) == 0 {
			e.logger.WithField("round", round).Info("no cuttable candidates; stopping")
			terminated = NoProgress
			round--
			break
		}

		g := critgraph.Extract(e.approx, timing)
		cut, err := mincut.Select(g, e.approx, opt)
		if err != nil {
			return nil, errors.Wrapf(err, "Run: round %d min-cut", round)
		}
		if len(cut.Nodes) == 0 {
			e.logger.WithField("round", round).Info("min-cut selected nothing; stopping")
			terminated = NoProgress
			round--
			break
		}

		commits := make([]commit, 0, len(cut.Nodes))
		for _, u := range cut.Nodes {
			change := opt[u]
			if doErr := change.Do(e.approx); doErr != nil {
				return nil, errors.Wrapf(doErr, "Run: round %d commit target %d", round, u)
			}
			commits = append(commits, commit{target: u, change: change})
		}

		rate, err := errrate.Rate(e.reference, e.approx, e.words, e.seed)
		if err != nil {
			return nil, errors.Wrapf(err, "Run: round %d measure", round)
		}
		errRate = rate

		postTiming, err := sta.ComputeSlack(e.approx)
		if err != nil {
			return nil, errors.Wrapf(err, "Run: round %d post-commit STA", round)
		}
		approxDelay = postTiming.WorstCaseArrival()

		if err := writeRoundLog(logWriter, e.approx, round, commits, errRate, refDelay, approxDelay); err != nil {
			return nil, errors.Wrap(err, "Run: writing round log")
		}
		e.logger.WithFields(logrus.Fields{
			"round":        round,
			"committed":    len(commits),
			"error_rate":   errRate,
			"approx_delay": approxDelay,
		}).Info("round complete")

		if errRate >= errConstraint {
			terminated = ConstraintBreach
			break roundLoop
		}
		if approxDelay == prevDelay {
			e.logger.WithField("round", round).Info("worst-case delay unchanged from previous round; stopping")
			terminated = NoProgress
			break roundLoop
		}
		prevDelay = approxDelay
	}

	return &Result{
		Rounds:      round,
		ErrorRate:   errRate,
		RefDelay:    refDelay,
		ApproxDelay: approxDelay,
		Terminated:  terminated,
	}, nil
}
