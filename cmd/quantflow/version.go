package main

import (
	"fmt"

	"github.com/spf13/cobra"

	quantflow "github.com/meaigood001/panda-quantflow"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of quantflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quantflow version %s\n", quantflow.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
