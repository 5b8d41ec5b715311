package commands

import (
	"elca2dgnb/lib/util/serviceutil"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(projectsCmd)
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Prints the eLCA projects visible to the configured account.",
	Run: func(cmd *cobra.Command, args []string) {
		config := loadConfig()
		client := newLoggedInClient(cmd.Context(), config)

		projects, err := client.Projects(cmd.Context())
		if err != nil {
			serviceutil.Fatal("list projects", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Id", "Name"})
		for _, p := range projects {
			t.AppendRow(table.Row{p.Id, p.Name})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
