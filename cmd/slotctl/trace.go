package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/slotkit/internal/logger"
	"github.com/joshuapare/slotkit/internal/trace"
)

func init() {
	rootCmd.AddCommand(newTraceCmd())
}

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <script|->",
		Short: "Replay a trace script and check its expectations",
		Long: `The trace command runs a line-oriented script against a fresh allocator
of strings and prints the outcome of every step. It exits non-zero when any
expectation fails.

Script lines:
  new [max]            reset the allocator (omitted = unbounded, 0 = reject all)
  create <label>       create an object and bind its handle to label
  remove <label>       remove the object behind label
  get <label>          read the object behind label
  contains <label>     probe label without failing
  len                  count live objects
  clear                remove every object
Append "=> <expectation>" to check ok, stale, double-free, capacity,
true/false, a count, a handle such as h(1:1), or a stored value. A get
expecting stale, double-free or capacity never matches a stored value.

Example:
  slotctl trace testdata/capacity.trace
  cat script.trace | slotctl trace - --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(args)
		},
	}
	return cmd
}

func runTrace(args []string) error {
	var src io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		src = f
	}

	prog, err := trace.Parse(src)
	if err != nil {
		return err
	}
	printVerbose("Parsed %d instructions\n", len(prog))

	rep := trace.NewRunner(logger.L).Run(prog)
	failures := rep.Failures()

	if jsonOut {
		if err := printJSON(rep); err != nil {
			return err
		}
	} else {
		for _, s := range rep.Steps {
			printInfo("%s\n", formatStep(s))
		}
		printInfo("\n%d steps, %d failed, %d live\n", len(rep.Steps), len(failures), rep.Stats.Live)
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d expectation(s) failed", len(failures))
	}
	return nil
}

func formatStep(s trace.Step) string {
	op := string(s.Instr.Op)
	if s.Instr.Op == trace.OpNew && s.Instr.Max >= 0 {
		op = fmt.Sprintf("new %d", s.Instr.Max)
	} else if s.Instr.Label != "" {
		op += " " + s.Instr.Label
	}

	line := fmt.Sprintf("%4d  %-14s -> %s", s.Instr.Line, op, s.Outcome)
	if s.Detail != "" {
		line += " " + s.Detail
	}
	if !s.Pass {
		want := s.Instr.Expect
		if want == "" {
			want = trace.OutcomeOK
		}
		line += fmt.Sprintf("  FAIL (want %s)", want)
	}
	return line
}
