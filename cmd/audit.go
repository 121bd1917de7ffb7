package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/dappaudit/pkg/ai"
	"github.com/user/dappaudit/pkg/audit"
	"github.com/user/dappaudit/pkg/config"
	"github.com/user/dappaudit/pkg/questionnaire"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run the full AI-assisted audit pipeline",
	Run: func(cmd *cobra.Command, args []string) {
		ai.DebugEnabled = DebugMode

		answersPath, _ := cmd.Flags().GetString("answers")
		outPath, _ := cmd.Flags().GetString("out")
		deterministic, _ := cmd.Flags().GetBool("deterministic")

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}
		if !cmd.Flags().Changed("deterministic") {
			deterministic = cfg.Deterministic
		}

		q, err := questionnaire.Load(cfg.ResolveAnswersPath(answersPath))
		if err != nil {
			fmt.Printf("Error loading answers: %v\n", err)
			return
		}

		providerName := cfg.SelectedProvider
		if providerName == "" {
			providerName = "gemini" // Default
		}

		apiKey := cfg.GetAPIKey(providerName)
		if apiKey == "" {
			// Fallback to env var for Gemini if not in config
			if providerName == "gemini" {
				apiKey = os.Getenv("GOOGLE_API_KEY")
			}
		}

		if apiKey == "" {
			fmt.Println("Error: API Key not found.")
			fmt.Println("Please run 'dappaudit config setup' to configure your keys.")
			return
		}

		ctx := context.Background()
		fmt.Printf("Connecting to %s (Model: %s)...\n", providerName, cfg.SelectedModel)

		provider, err := ai.NewProvider(ctx, providerName, apiKey, cfg.SelectedModel)
		if err != nil {
			fmt.Printf("Error creating AI provider: %v\n", err)
			return
		}
		if closer, ok := provider.(interface{ Close() }); ok {
			defer closer.Close()
		}

		runner := audit.NewRunner(provider, ai.GetSystemPrompt())
		runner.Deterministic = deterministic

		fmt.Println("Generating audit report...")
		result, err := runner.Run(ctx, q.Order(), q.Responses(), q.Others(), q.UserType)
		if err != nil {
			fmt.Printf("Error running audit: %v\n", err)
			return
		}

		for _, w := range result.Warnings {
			ai.Debugf("report repair: %s", w)
		}

		fmt.Println()
		fmt.Print(result.Markdown)
		fmt.Println()
		fmt.Print(result.Analytics.Report())

		if outPath != "" {
			if err := audit.SaveSnapshot(outPath, result.Analytics); err != nil {
				fmt.Printf("Error saving report: %v\n", err)
				return
			}
			fmt.Printf("\nReport saved to %s\n", outPath)
		}
	},
}

func init() {
	auditCmd.Flags().StringP("answers", "a", "", "Answers file (defaults to the configured answers_path)")
	auditCmd.Flags().StringP("out", "o", "", "Save the analytics report as JSON")
	auditCmd.Flags().BoolP("deterministic", "d", false, "Score from baseline findings; keep the AI text as narrative only")
	rootCmd.AddCommand(auditCmd)
}
