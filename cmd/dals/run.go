package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zzhou612/dals"
	"github.com/zzhou612/dals/netlist"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] --bench FILE",
	Short: "run the DALS loop over a netlist until the error constraint is reached",
	Run: func(cmd *cobra.Command, args []string) {
		applyVerbosity(cmd)

		benchPath := getString(cmd, "bench")
		if benchPath == "" {
			fmt.Fprintln(os.Stderr, "run: --bench is required")
			os.Exit(2)
		}
		errConstraint := getFloat(cmd, "err")
		words := getInt(cmd, "words")
		seed := getUint(cmd, "seed")
		topK := getInt(cmd, "top-k")
		outPath := getString(cmd, "out")

		ref, err := readNetlist(benchPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "run:", err)
			os.Exit(1)
		}

		engine := dals.New(
			dals.WithSimWords(words),
			dals.WithSeed(seed),
			dals.WithTopK(topK),
			dals.WithLogWriter(os.Stdout),
			dals.WithLogger(log.StandardLogger()),
		)
		engine.SetReference(ref)

		result, err := engine.Run(errConstraint)
		if err != nil {
			fmt.Fprintln(os.Stderr, "run:", err)
			os.Exit(1)
		}

		printReport(result)

		if outPath != "" {
			if err := writeApproximation(engine.Approximation(), outPath); err != nil {
				fmt.Fprintln(os.Stderr, "run:", err)
				os.Exit(1)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Float64("err", 0.05, "error rate constraint (0,1]")
	runCmd.Flags().Int("words", 16, "simulation width in 64-bit words")
	runCmd.Flags().Uint64("seed", 1, "deterministic stimulus seed")
	runCmd.Flags().Int("top-k", 3, "candidates retained per critical target")
	runCmd.Flags().String("bench", "", "input netlist (.bench or .blif)")
	runCmd.Flags().String("out", "", "write the resulting approximation here (.bench or .blif)")
}

func readNetlist(path string) (*netlist.Netlist, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".blif":
		return netlist.ReadBLIF(path)
	default:
		return netlist.ReadBench(path)
	}
}

func writeApproximation(n *netlist.Netlist, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.ToLower(filepath.Ext(path)) == ".blif" {
		return n.WriteBLIF(f)
	}
	return n.WriteBench(f)
}

// printReport renders a short summary between two rules of dashes. The
// rule is as wide as the terminal, capped at 72 columns, when stdout is a
// tty, and 72 columns otherwise -- golang.org/x/term.IsTerminal is the
// same check go-corset's termio package uses to decide whether to do
// width-aware rendering at all.
func printReport(r *dals.Result) {
	width := 72
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	rule := strings.Repeat("-", min(width, 72))

	fmt.Println(rule)
	fmt.Printf("rounds:        %d\n", r.Rounds)
	fmt.Printf("terminated:    %s\n", r.Terminated)
	fmt.Printf("error rate:    %g\n", r.ErrorRate)
	fmt.Printf("delay:         %d ---> %d\n", r.RefDelay, r.ApproxDelay)
	fmt.Println(rule)
}

func getString(cmd *cobra.Command, flag string) string {
	v, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return v
}

func getFloat(cmd *cobra.Command, flag string) float64 {
	v, err := cmd.Flags().GetFloat64(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return v
}

func getInt(cmd *cobra.Command, flag string) int {
	v, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return v
}

func getUint(cmd *cobra.Command, flag string) uint64 {
	v, err := cmd.Flags().GetUint64(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return v
}
