package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the plugin directories for broken manifests",
	Long: `Scans the plugin directories and reports every unit that failed to
load, with the reason. Exits non-zero when any unit is broken.`,
	Run: func(cmd *cobra.Command, args []string) {
		app, report := newApp(cmd)

		fmt.Printf("Scanned %d units: %d loaded, %d failed (%d nodes registered)\n",
			report.Scanned, report.Loaded, report.Failed, app.Registry().Len())

		if report.Failed == 0 {
			fmt.Println("All plugin units are valid! ✅")
			return
		}

		for _, failure := range report.Failures {
			fmt.Printf("  %s: %v\n", failure.Path, failure.Err)
		}
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
