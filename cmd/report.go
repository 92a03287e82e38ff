package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JulietaG13/tp-agente/internal/report"
	"github.com/JulietaG13/tp-agente/internal/topics"
	"github.com/JulietaG13/tp-agente/internal/trace"
)

// reportCmd regenerates a report from a saved trace, so formatting changes
// or a different catalog don't require re-running the benchmark.
var reportCmd = &cobra.Command{
	Use:   "report <trace.json>",
	Short: "Regenerate a markdown report from a saved trace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		topicsPath, _ := cmd.Flags().GetString("topics")

		tr, err := trace.Load(args[0])
		if err != nil {
			return err
		}

		catalog := topics.Default()
		if topicsPath != "" {
			if catalog, err = topics.Load(topicsPath); err != nil {
				return err
			}
		}

		in, err := report.Build(tr, catalog)
		if err != nil {
			return err
		}
		if output == "" {
			fmt.Fprint(cmd.OutOrStdout(), report.Generate(in))
			return nil
		}
		if err := report.Save(in, output); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", output)
		return nil
	},
}

func init() {
	reportCmd.Flags().String("output", "", "Report file path (default: stdout)")
	reportCmd.Flags().String("topics", "", "Subtopic catalog JSON file (default: built-in catalog)")
}
