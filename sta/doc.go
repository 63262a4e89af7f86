// Package sta implements the static timing analysis primitive the DALS
// engine relies on: unit-delay arrival/required/slack computation over a
// combinational netlist, plus a critical-paths report used only for
// diagnostics. Every logic node contributes exactly one unit of delay;
// primary inputs have arrival time zero and primary outputs pass their
// fanin's arrival/required time through unchanged.
package sta
