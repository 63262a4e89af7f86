// Command dals runs the Approximate Logic Synthesis engine over a BENCH
// or BLIF netlist and reports the committed substitutions, measured error
// rate, and delay improvement.
package main

func main() {
	Execute()
}
