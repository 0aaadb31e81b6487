package commands

import (
	"fmt"

	"firewatch/internal/logger"
	"firewatch/internal/repository/sqlite"
	"firewatch/internal/service/report"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the spreadsheet report of an archived run",
	Example: `  firewatch export --run 6f1c... --out site_a_monday.xlsx`,
	RunE: runExport,
}

var (
	exportDB  string
	exportRun string
	exportOut string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportDB, "db", "fire_events.db", "SQLite archive")
	exportCmd.Flags().StringVar(&exportRun, "run", "", "run ID (see 'firewatch runs')")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "fire_report.xlsx", "output spreadsheet")
	exportCmd.MarkFlagRequired("run")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := sqlite.New(exportDB)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := sqlite.NewEventRepository(db)
	run, err := repo.GetRun(exportRun)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found in %s", exportRun, exportDB)
	}

	events, err := repo.GetByRunID(run.ID)
	if err != nil {
		return err
	}

	if err := report.NewXLSXSink(exportOut, logger.Nop()).Flush(events); err != nil {
		return err
	}

	fmt.Printf("Exported %d events of run %s to %s\n", len(events), run.ID, exportOut)
	return nil
}
