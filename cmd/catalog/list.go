package catalog

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loom-arch/loom/internal/graph"
)

var listCmd = &cobra.Command{
	Use:                   "list",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "List all components in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		g := graph.New(AppConfig, logger)
		g.Load()

		components := g.Components()
		if len(components) == 0 {
			fmt.Println("The catalog is empty.")
			return nil
		}

		for _, c := range components {
			caps := make([]string, 0, len(c.Capabilities))
			for _, cap := range c.Capabilities {
				caps = append(caps, string(cap))
			}
			fmt.Printf("%-20s %-14s [%s]\n", c.Name, c.License, strings.Join(caps, ", "))
		}
		fmt.Printf("\n%d component(s) total.\n", len(components))
		return nil
	},
}
