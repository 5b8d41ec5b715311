package commands

import (
	"elca2dgnb/lib/util/serviceutil"
	"elca2dgnb/services/export/db"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Prints past export runs, newest first.",
	Run: func(cmd *cobra.Command, args []string) {
		config := loadConfig()
		database := openDatabase(config)
		defer database.Close()

		runs, err := db.New(database).ListExportRuns(cmd.Context())
		if err != nil {
			serviceutil.Fatal("list export runs", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"When", "Project", "Version", "Template", "Cells", "Output"})
		for _, run := range runs {
			t.AppendRow(table.Row{
				run.CreatedAt.Format(time.DateTime),
				run.ProjectID,
				run.ReportVersion,
				run.TemplateID,
				run.CellsBound,
				run.OutputPath,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
