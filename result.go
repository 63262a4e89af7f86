package dals

// Termination reports why Run stopped.
type Termination string

const (
	// ConstraintBreach means the loop ran until the measured error rate
	// reached the caller's constraint (normal termination).
	ConstraintBreach Termination = "constraint_breach"

	// NoProgress means the loop stopped itself: either a round found no
	// cuttable critical node at all, or worst-case delay held still for
	// two consecutive committed rounds (spec.md §7).
	NoProgress Termination = "no_progress"
)

// Result summarizes a completed Run.
type Result struct {
	Rounds      int
	ErrorRate   float64
	RefDelay    int
	ApproxDelay int
	Terminated  Termination
}
