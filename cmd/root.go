package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dappaudit",
	Short: "DApp security self-audit scoring tool",
	Long: `dappaudit turns a DApp security self-audit questionnaire into a
scored report: a deterministic baseline score derived straight from the
answers, plus an optional AI-written markdown report that is repaired,
parsed, and scored by the same risk engine.`,
}

var DebugMode bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
}
