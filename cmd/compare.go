package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/dappaudit/pkg/audit"
)

var compareCmd = &cobra.Command{
	Use:   "compare [current] [baseline]",
	Short: "Compare two saved reports to see new, resolved, and unchanged risks",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		current, err := audit.LoadSnapshot(args[0])
		if err != nil {
			fmt.Printf("Error loading current report '%s': %v\n", args[0], err)
			return
		}
		baseline, err := audit.LoadSnapshot(args[1])
		if err != nil {
			fmt.Printf("Error loading baseline report '%s': %v\n", args[1], err)
			return
		}

		diff := audit.CompareSnapshots(current, baseline)

		fmt.Printf("Report Comparison (vs %s):\n", args[1])
		fmt.Println("--------------------------------------------------")
		fmt.Printf("Posture score: %d -> %d (%+d)\n\n", baseline.Score, current.Score, diff.ScoreDelta)

		fmt.Printf("NEW RISKS: %d\n", len(diff.New))
		for _, t := range diff.New {
			fmt.Printf("  [+] %s\n", t)
		}
		fmt.Printf("\nRESOLVED RISKS: %d\n", len(diff.Resolved))
		for _, t := range diff.Resolved {
			fmt.Printf("  [-] %s\n", t)
		}
		fmt.Printf("\nUNCHANGED RISKS: %d\n", len(diff.Unchanged))
		for _, t := range diff.Unchanged {
			fmt.Printf("  [=] %s\n", t)
		}
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
