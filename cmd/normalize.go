package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/dappaudit/pkg/audit"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Repair a markdown report into the canonical structure",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", args[0], err)
			return
		}

		normalized, warnings := audit.Normalize(string(data))
		fmt.Print(normalized)
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}
