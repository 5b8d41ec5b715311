package commands

import (
	"elca2dgnb/lib/dgnbtemplate"
	"elca2dgnb/lib/lcareport"
	"elca2dgnb/lib/util/serviceutil"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
)

var inspectReportProject *string
var inspectTemplateFile *string

func init() {
	inspectReportProject = inspectReportCmd.Flags().String("project", "", "The eLCA project id to inspect.")
	inspectReportCmd.MarkFlagRequired("project")
	inspectTemplateFile = inspectTemplateCmd.Flags().String("file", "", "Path to the template workbook.")
	inspectTemplateCmd.MarkFlagRequired("file")

	inspectCmd.AddCommand(inspectReportCmd)
	inspectCmd.AddCommand(inspectTemplateCmd)
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspects reports and templates without writing anything.",
}

var inspectReportCmd = &cobra.Command{
	Use:   "report --project <id>",
	Short: "Prints the flattened placeholder values of a project's summary report.",
	Run: func(cmd *cobra.Command, args []string) {
		config := loadConfig()
		client := newLoggedInClient(cmd.Context(), config)

		fragment, err := client.FetchProjectReport(cmd.Context(), *inspectReportProject)
		if err != nil {
			serviceutil.Fatal("fetch report", err)
		}
		report, err := lcareport.Parse(cmd.Context(), fragment)
		if err != nil {
			serviceutil.Fatal("parse report", err)
		}
		placeholders, err := lcareport.Flatten(report)
		if err != nil {
			serviceutil.Fatal("flatten report", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Placeholder", "Value"})
		for _, key := range placeholders.SortedKeys() {
			t.AppendRow(table.Row{key, placeholders[key]})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var inspectTemplateCmd = &cobra.Command{
	Use:   "template --file <path/to/template.xlsx>",
	Short: "Prints the version marker and placeholder sites of a template workbook.",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := excelize.OpenFile(*inspectTemplateFile)
		if err != nil {
			serviceutil.Fatal("open template", err)
		}
		defer f.Close()

		sheet := f.GetSheetName(0)
		version, err := dgnbtemplate.MarkerVersioner{}.Version(f)
		if err != nil {
			serviceutil.Fatal("extract version marker", err)
		}
		placements, err := dgnbtemplate.ScanPlacements(f, sheet)
		if err != nil {
			serviceutil.Fatal("scan placements", err)
		}

		fmt.Printf("sheet: %s\nversion: %s\n", sheet, version)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Row", "Column", "Placeholder"})
		for _, p := range placements {
			t.AppendRow(table.Row{p.Row, p.Col, p.Name})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
