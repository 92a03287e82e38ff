package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JulietaG13/tp-agente/internal/llm"
	"github.com/JulietaG13/tp-agente/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List archived benchmark runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		runs, err := st.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-36s  %-8s  %-11s  %-7s  %-19s  %s\n",
			"ID", "Persona", "Turns", "Score", "Started", "Report")
		fmt.Fprintln(w, strings.Repeat("-", 110))
		for _, r := range runs {
			score := "-"
			if r.FinalScore != nil {
				score = fmt.Sprintf("%.2f", *r.FinalScore)
			}
			fmt.Fprintf(w, "%-36s  %-8s  %3d/%-7d  %-7s  %-19s  %s\n",
				r.ID, r.Persona, r.CompletedTurns, r.RequestedTurns, score,
				r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.ReportPath)
		}
		return nil
	},
}

// runsCostCmd estimates API spend for a run (or all runs) from the logged
// token counts and the static pricing table.
var runsCostCmd = &cobra.Command{
	Use:   "cost [run-id]",
	Short: "Estimate LLM API cost per model",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runID := ""
		if len(args) == 1 {
			runID = args[0]
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		usage, err := st.UsageByModel(cmd.Context(), runID)
		if err != nil {
			return err
		}
		if len(usage) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No LLM requests recorded.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-34s  %-7s  %-10s  %-10s  %s\n", "Model", "Calls", "In", "Out", "Est. Cost")
		fmt.Fprintln(w, strings.Repeat("-", 80))
		var total float64
		for _, u := range usage {
			cost := "n/a"
			if c := llm.LookupCost(u.Model); c != nil {
				v := c.Cost(u.InputTokens, u.OutputTokens)
				total += v
				cost = fmt.Sprintf("$%.4f", v)
			}
			fmt.Fprintf(w, "%-34s  %-7d  %-10d  %-10d  %s\n", u.Model, u.Calls, u.InputTokens, u.OutputTokens, cost)
		}
		fmt.Fprintf(w, "\nTotal estimated cost: $%.4f\n", total)
		return nil
	},
}

func init() {
	runsCmd.Flags().Int("limit", 20, "Maximum number of runs to list")
	runsCmd.AddCommand(runsCostCmd)
}
