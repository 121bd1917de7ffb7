package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/dappaudit/pkg/audit"
	"github.com/user/dappaudit/pkg/config"
	"github.com/user/dappaudit/pkg/questionnaire"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an answers file deterministically (no AI call)",
	Run: func(cmd *cobra.Command, args []string) {
		answersPath, _ := cmd.Flags().GetString("answers")
		outPath, _ := cmd.Flags().GetString("out")
		showMarkdown, _ := cmd.Flags().GetBool("markdown")

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		q, err := questionnaire.Load(cfg.ResolveAnswersPath(answersPath))
		if err != nil {
			fmt.Printf("Error loading answers: %v\n", err)
			return
		}

		findings := audit.BuildBaselineFindings(q.Responses(), q.UserType)
		markdown := audit.RenderFindings("Baseline assessment derived from questionnaire answers.", findings)
		analytics := audit.BuildDeterministicAnalytics(findings, markdown)

		fmt.Print(analytics.Report())
		if showMarkdown {
			fmt.Println()
			fmt.Print(markdown)
		}

		if outPath != "" {
			if err := audit.SaveSnapshot(outPath, analytics); err != nil {
				fmt.Printf("Error saving report: %v\n", err)
				return
			}
			fmt.Printf("\nReport saved to %s\n", outPath)
		}
	},
}

func init() {
	scoreCmd.Flags().StringP("answers", "a", "", "Answers file (defaults to the configured answers_path)")
	scoreCmd.Flags().StringP("out", "o", "", "Save the analytics report as JSON")
	scoreCmd.Flags().BoolP("markdown", "m", false, "Also print the canonical markdown report")
	rootCmd.AddCommand(scoreCmd)
}
