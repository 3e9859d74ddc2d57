package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitFindings     = 1
	ExitUsageError   = 2
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "facet",
	Short: "Render code review findings into multiple output formats",
	Long:  "Facet renders code review findings into terminal, Markdown, JSON, and HTML artifacts and dispatches policy-driven webhook notifications.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print facet version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "facet version %s\n", version)
	},
}
