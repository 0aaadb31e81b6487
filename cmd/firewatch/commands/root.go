package commands

import (
	"io"
	"os"

	"github.com/mdobak/go-xerrors"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "firewatch",
	Short: "firewatch - fire detection on a live video stream",
	Long: `firewatch watches a camera or video stream for fire-colored regions,
records an annotated video of the run and writes every detection to a
spreadsheet report.

Configuration is read from the environment (and a .env file); flags on
the run command override it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err with the stack trace recorded where it was raised, if any.
func printError(w io.Writer, err error) {
	xerrors.Fprint(w, err)
}
