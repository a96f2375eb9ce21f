// Command roundctl is the operator CLI for the 2v2 bot tournament round
// pipeline: run a round end to end, preview which teams currently qualify,
// or sweep leaked evaluator processes between rounds.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "roundctl",
	Short: "Operator CLI for the 2v2 bot tournament round pipeline",
}

func main() {
	rootCmd.AddCommand(runRoundCmd)
	rootCmd.AddCommand(qualifyCmd)
	rootCmd.AddCommand(reapCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
