package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	quantflow "github.com/meaigood001/panda-quantflow"
	"github.com/meaigood001/panda-quantflow/internal/presentation/tui"
	"github.com/meaigood001/panda-quantflow/pkg/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the node catalog tree",
	Long: `Loads the builtins and plugin manifests and prints the resulting
group tree. Renders styled markdown on a terminal, raw JSON otherwise
or when --json is set.`,
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")

		app, _ := newApp(cmd)
		nodes := app.Catalog()

		if asJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
			printJSON(nodes)
			return
		}

		fmt.Println(tui.Banner(quantflow.Version))

		render := tui.NewRenderer()
		out, err := render(tui.TreeMarkdown(nodes))
		if err != nil {
			printJSON(nodes)
			return
		}
		fmt.Print(out)
	},
}

func printJSON(nodes []catalog.Node) {
	if nodes == nil {
		nodes = []catalog.Node{}
	}
	payload, err := json.MarshalIndent(map[string]any{"catalog": nodes}, "", "  ")
	if err != nil {
		fmt.Printf("Error encoding catalog: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(payload))
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().Bool("json", false, "Print the catalog as JSON")
}
