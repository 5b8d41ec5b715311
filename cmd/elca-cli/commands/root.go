package commands

import (
	"context"
	"elca2dgnb/lib/restyutil"
	"elca2dgnb/lib/scrapers/elca"
	"elca2dgnb/lib/telemetry"
	"elca2dgnb/lib/util/serviceutil"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose *bool

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging and http traffic dumps.")
}

var rootCmd = &cobra.Command{
	Use:   "elca-cli",
	Short: "elca-cli exports eLCA summary reports into versioned DGNB spreadsheet templates.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)

		tel, err := telemetry.SetupFromEnv(cmd.Context(), "elca-cli")
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("setup telemetry", err)
		}
		if err == nil {
			telemetry.InstrumentPerfStats(cmd.Context())
			cobra.OnFinalize(func() {
				tel.Shutdown(context.Background())
			})
		}

		if *verbose {
			elca.SetRestyInstrumentOutput(
				restyutil.NewFilesystemOutput(".dev/resty/elca"),
			)
		}
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
