package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JulietaG13/tp-agente/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the configured LLM provider",
}

// llmCheckCmd sends one tiny request so misconfigured keys fail here
// instead of ten turns into a benchmark.
var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the provider configuration with a single request",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := llm.WithPurpose(cmd.Context(), "smoke-check")

		provider, err := llm.NewProviderFromEnv(ctx, nil)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		resp, err := provider.Generate(ctx, llm.Request{
			Messages: []llm.Message{
				{Role: llm.RoleUser, Content: "Reply with the single word: ok"},
			},
			MaxTokens: 8,
		})
		if err != nil {
			return fmt.Errorf("provider check failed: %w", err)
		}

		var reply string
		if err := json.Unmarshal(resp.Content, &reply); err != nil {
			reply = string(resp.Content)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Provider OK: model %s replied %q (%d in / %d out tokens)\n",
			resp.Model, reply, resp.Usage.InputTokens, resp.Usage.OutputTokens)
		return nil
	},
}

var llmConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved provider configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ok := llm.DiscoverConfig()
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "No provider configured. Set AGENTE_LLM_PROVIDER or an API key env var.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Provider: %s\n", cfg.Provider)
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmCheckCmd)
	llmCmd.AddCommand(llmConfigCmd)
}
