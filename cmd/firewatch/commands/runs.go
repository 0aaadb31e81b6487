package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"firewatch/internal/repository/sqlite"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List archived runs",
	RunE:  runRuns,
}

var runsDB string

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().StringVar(&runsDB, "db", "fire_events.db", "SQLite archive")
}

func runRuns(cmd *cobra.Command, args []string) error {
	db, err := sqlite.New(runsDB)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := sqlite.NewEventRepository(db)
	runs, err := repo.GetRuns()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "RUN\tSTARTED\tLOCATION\tEVENTS\tVIDEO")
	for _, run := range runs {
		count, err := repo.Count(run.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", run.ID, run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.Location, count, run.VideoPath)
	}

	return nil
}
