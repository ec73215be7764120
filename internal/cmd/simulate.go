package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/Iron-Ham/loadcoord/internal/simulate"
	"github.com/Iron-Ham/loadcoord/internal/tui/styles"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [scenario...]",
	Short: "Replay the built-in timing scenarios",
	Long: `Run scripted sets of operations against a fresh coordinator and print
the show/hide timeline each one produces, compared with the expected one.

Without arguments every scenario runs. Scenarios run in real time; use
--scale to shrink them, e.g. --scale 0.1 runs a 1s operation in 100ms.

Examples:
  # Run everything
  loadcoord simulate

  # Only the slow and overlapping cases, ten times faster
  loadcoord simulate slow overlap --scale 0.1

  # List the scenarios
  loadcoord simulate --list`,
	RunE: runSimulate,
}

var (
	simulateScale     float64
	simulateTolerance time.Duration
	simulateList      bool
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Float64Var(&simulateScale, "scale", 1, "multiply every scenario duration by this factor")
	simulateCmd.Flags().DurationVar(&simulateTolerance, "tolerance", 50*time.Millisecond, "allowed drift per transition (scaled with --scale)")
	simulateCmd.Flags().BoolVarP(&simulateList, "list", "l", false, "list scenarios and exit")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if simulateList {
		for _, s := range simulate.Scenarios() {
			fmt.Fprintf(out, "%-10s %s\n", s.Name, s.Description)
		}
		return nil
	}

	if simulateScale <= 0 {
		return fmt.Errorf("--scale must be positive, got %v", simulateScale)
	}

	scenarios, err := selectScenarios(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := createLogger(cfg)
	defer func() { _ = logger.Close() }()

	tolerance := time.Duration(float64(simulateTolerance) * simulateScale)
	var mismatched []string
	for _, s := range scenarios {
		s = s.Scale(simulateScale)
		res, err := simulate.Run(cmd.Context(), s, logger)
		if err != nil {
			return fmt.Errorf("scenario %s: %w", s.Name, err)
		}

		checkErr := res.Check(tolerance)
		fmt.Fprintln(out, formatResult(res, checkErr))
		if checkErr != nil {
			mismatched = append(mismatched, s.Name)
		}
	}

	if len(mismatched) > 0 {
		return fmt.Errorf("%d scenario(s) did not match the expected timeline: %s",
			len(mismatched), strings.Join(mismatched, ", "))
	}
	return nil
}

// selectScenarios resolves scenario names; no names selects all of them.
func selectScenarios(names []string) ([]simulate.Scenario, error) {
	if len(names) == 0 {
		return simulate.Scenarios(), nil
	}

	selected := make([]simulate.Scenario, 0, len(names))
	for _, name := range names {
		s, ok := simulate.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q (valid: %s)", name, strings.Join(simulate.Names(), ", "))
		}
		selected = append(selected, s)
	}
	return selected, nil
}

// formatResult renders one scenario outcome for the terminal.
func formatResult(res simulate.Result, checkErr error) string {
	var sb strings.Builder

	status := styles.SuccessMsg.Render("ok")
	if checkErr != nil {
		status = styles.ErrorMsg.Render("mismatch")
	}
	sb.WriteString(fmt.Sprintf("%s %s %s\n", styles.Title.UnsetMarginBottom().Render(res.Scenario.Name), status,
		styles.Muted.Render(res.Elapsed.Round(time.Millisecond).String())))
	sb.WriteString(fmt.Sprintf("  timeline: %s\n", res.Timeline()))

	for _, op := range res.Ops {
		icon := styles.StatusIcon("ok")
		if op.Err != nil {
			icon = styles.StatusIcon("failed")
		}
		line := fmt.Sprintf("  %s %-10s %v -> %v", icon, op.Label,
			op.Started.Round(time.Millisecond), op.Ended.Round(time.Millisecond))
		if op.Err != nil {
			line += " " + styles.Error.Render(op.Err.Error())
		}
		sb.WriteString(line + "\n")
	}

	if checkErr != nil {
		sb.WriteString("  " + styles.ErrorMsg.Render(checkErr.Error()) + "\n")
	}
	return sb.String()
}
