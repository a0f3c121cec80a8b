// Command atpg is a thin CLI wrapping the ATPG engine: fault-free
// simulation, deductive fault simulation, PODEM test generation, and
// LCG-ordered random-pattern emission.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jack-mil/atpg-toolkit/pkg/circuit"
	"github.com/jack-mil/atpg-toolkit/pkg/faultsim"
	"github.com/jack-mil/atpg-toolkit/pkg/podem"
	"github.com/jack-mil/atpg-toolkit/pkg/sim"
	"github.com/jack-mil/atpg-toolkit/pkg/utils"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:           "atpg",
		Short:         "Combinational-circuit simulation and automatic test pattern generation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newSimulateCmd(),
		newFaultsimCmd(),
		newPodemCmd(),
		newRandomCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return utils.NewLogger(level)
}

func loadCircuit(path string) (*circuit.Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening circuit file")
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading circuit file")
	}
	c, err := circuit.Load(lines)
	return c, errors.WithMessage(err, "loading netlist")
}

func newSimulateCmd() *cobra.Command {
	var circuitFile, vector string
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Fault-free simulation of an input vector",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCircuit(circuitFile)
			if err != nil {
				return err
			}
			s := sim.NewSimulation(c).WithLogger(newLogger())
			out, err := s.SimulateInput(vector)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&circuitFile, "circuit", "", "netlist file (required)")
	cmd.Flags().StringVar(&vector, "vector", "", "input vector over {0,1} (required)")
	cmd.MarkFlagRequired("circuit")
	cmd.MarkFlagRequired("vector")
	return cmd
}

func newFaultsimCmd() *cobra.Command {
	var circuitFile, vector string
	cmd := &cobra.Command{
		Use:   "faultsim",
		Short: "Deductive fault simulation of an input vector",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCircuit(circuitFile)
			if err != nil {
				return err
			}
			fs := faultsim.NewFaultSimulation(c).WithLogger(newLogger())
			detected, err := fs.DetectFaults(vector)
			if err != nil {
				return err
			}
			for _, f := range detected.Sorted() {
				fmt.Println(f)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&circuitFile, "circuit", "", "netlist file (required)")
	cmd.Flags().StringVar(&vector, "vector", "", "input vector over {0,1,X} (required)")
	cmd.MarkFlagRequired("circuit")
	cmd.MarkFlagRequired("vector")
	return cmd
}

func newPodemCmd() *cobra.Command {
	var circuitFile, faultStr string
	cmd := &cobra.Command{
		Use:   "podem",
		Short: "Generate a test vector for a single stuck-at fault",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCircuit(circuitFile)
			if err != nil {
				return err
			}
			fault, err := utils.StrToFault(faultStr)
			if err != nil {
				return err
			}
			tg := podem.NewTestGenerator(c).WithLogger(newLogger())
			vector, ok, err := tg.GenerateTest(fault)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("undetectable")
				return nil
			}
			fmt.Println(vector)
			return nil
		},
	}
	cmd.Flags().StringVar(&circuitFile, "circuit", "", "netlist file (required)")
	cmd.Flags().StringVar(&faultStr, "fault", "", "fault spec, e.g. 7-sa-0 (required)")
	cmd.MarkFlagRequired("circuit")
	cmd.MarkFlagRequired("fault")
	return cmd
}

func newRandomCmd() *cobra.Command {
	var width, count int
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Emit LCG-ordered random patterns of a given width",
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 {
				return fmt.Errorf("--width must be positive")
			}
			n := count
			if n <= 0 {
				n = 1 << uint(width)
			}
			var sb strings.Builder
			emitted := 0
			for pattern := range utils.RandomPatterns(width) {
				if emitted >= n {
					break
				}
				sb.WriteString(pattern)
				sb.WriteByte('\n')
				emitted++
			}
			fmt.Print(sb.String())
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "pattern width in bits (required)")
	cmd.Flags().IntVar(&count, "count", 0, "number of patterns to emit (default: all 2^width)")
	cmd.MarkFlagRequired("width")
	return cmd
}
