package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loom-arch/loom/internal/graph"
)

var searchCmd = &cobra.Command{
	Use:                   "search QUERY",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Search components by name, description or capability",
	Args:                  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := graph.New(AppConfig, logger)
		g.Load()

		results := g.Search(args[0])
		if len(results) == 0 {
			fmt.Printf("No components matching %q.\n", args[0])
			return nil
		}

		for _, result := range results {
			fmt.Printf("%.2f  %-20s %s\n", result.Score, result.Component.Name, result.Component.Description)
		}
		return nil
	},
}
