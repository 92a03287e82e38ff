package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/JulietaG13/tp-agente/internal/benchmark"
	"github.com/JulietaG13/tp-agente/internal/console"
	"github.com/JulietaG13/tp-agente/internal/llm"
	"github.com/JulietaG13/tp-agente/internal/perf"
	"github.com/JulietaG13/tp-agente/internal/persona"
	"github.com/JulietaG13/tp-agente/internal/report"
	"github.com/JulietaG13/tp-agente/internal/scoring"
	"github.com/JulietaG13/tp-agente/internal/store"
	"github.com/JulietaG13/tp-agente/internal/student"
	"github.com/JulietaG13/tp-agente/internal/topics"
	"github.com/JulietaG13/tp-agente/internal/workflow"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a benchmark against a simulated student persona",
	RunE:  runBenchmark,
}

func init() {
	runCmd.Flags().String("persona", "", fmt.Sprintf("Simulated student persona (%v)", persona.All()))
	runCmd.Flags().Int("turns", 10, "Number of turns to simulate")
	runCmd.Flags().String("output", "", "Report file path (default: reports/benchmark_report_<timestamp>.md)")
	runCmd.Flags().String("trace", "", "Trace file path (default: alongside the report, .json)")
	runCmd.Flags().Duration("sleep", 0, "Delay between turns, to respect provider rate limits")
	runCmd.Flags().String("topics", "", "Subtopic catalog JSON file (default: built-in catalog)")
	runCmd.Flags().String("subject", "distributed systems", "Subject the question author writes about")
	runCmd.MarkFlagRequired("persona")
}

func runBenchmark(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	personaName, _ := cmd.Flags().GetString("persona")
	turns, _ := cmd.Flags().GetInt("turns")
	output, _ := cmd.Flags().GetString("output")
	tracePath, _ := cmd.Flags().GetString("trace")
	sleep, _ := cmd.Flags().GetDuration("sleep")
	topicsPath, _ := cmd.Flags().GetString("topics")
	subject, _ := cmd.Flags().GetString("subject")

	profile, err := persona.FromName(personaName)
	if err != nil {
		return err
	}
	if turns < 1 {
		return fmt.Errorf("turns must be at least 1, got %d", turns)
	}

	catalog := topics.Default()
	if topicsPath != "" {
		if catalog, err = topics.Load(topicsPath); err != nil {
			return err
		}
	}

	reportPath, err := resolveReportPath(output)
	if err != nil {
		return err
	}
	if tracePath == "" {
		tracePath = trimExt(reportPath) + ".json"
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

	provider, err := llm.NewProviderFromEnv(ctx, st)
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}

	runID := uuid.NewString()
	ctx = llm.WithRunID(ctx, runID)
	if err := st.CreateRun(ctx, &store.Run{
		ID:             runID,
		Persona:        personaName,
		RequestedTurns: turns,
		StartedAt:      time.Now(),
		TracePath:      tracePath,
		ReportPath:     reportPath,
	}); err != nil {
		return err
	}

	cons := console.New(cmd.OutOrStdout())
	cons.Event("orchestrator", fmt.Sprintf("starting %s benchmark, %d turns, model %s", personaName, turns, provider.ModelID()))

	wcfg := workflow.DefaultConfig()
	wcfg.Subject = subject
	perfStore := perf.NewStore()

	runner := &benchmark.Runner{
		Orchestrator: workflow.New(
			workflow.NewAuthor(provider, wcfg),
			workflow.NewReviewer(provider, wcfg),
			workflow.NewAnalyst(provider, wcfg),
			perfStore, wcfg, cons.Event),
		Store:   perfStore,
		Student: student.New(provider, profile),
		Scorer:  scoring.NewScorer(provider),
		Labeler: topics.NewLabeler(provider, catalog),
		Profile: profile,
		Turns:   turns,
		Sleep:   sleep,
		Console: cons,
	}

	tr, runErr := runner.Run(ctx)
	if runErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "run ended early: %v\n", runErr)
	}

	if err := tr.Save(tracePath); err != nil {
		return err
	}
	in, err := report.Build(tr, catalog)
	if err != nil {
		return err
	}
	if err := report.Save(in, reportPath); err != nil {
		return err
	}
	if err := st.FinishRun(ctx, runID, len(tr.Results), in.Final, tracePath, reportPath); err != nil {
		return err
	}

	cons.Summary(len(tr.Results), turns, in.Final)
	fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\nTrace saved to %s\n", reportPath, tracePath)
	return nil
}

// resolveReportPath places unqualified outputs in a reports directory with
// a timestamped default name.
func resolveReportPath(output string) (string, error) {
	if filepath.IsAbs(output) {
		return output, nil
	}
	if err := os.MkdirAll("reports", 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}
	if output == "" {
		output = fmt.Sprintf("benchmark_report_%s.md", time.Now().Format("20060102_150405"))
	}
	return filepath.Join("reports", output), nil
}

func trimExt(path string) string {
	return path[:len(path)-len(filepath.Ext(path))]
}
