package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loom-arch/loom/internal/graph"
)

var statsCmd = &cobra.Command{
	Use:                   "stats",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Show catalog and knowledge graph statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		g := graph.New(AppConfig, logger)
		g.Load()

		stats := g.Stats()
		fmt.Printf("Components:          %d\n", stats.Components)
		fmt.Printf("Relationships:       %d\n", stats.Relationships)
		fmt.Printf("Capability coverage: %d\n", stats.CapabilityCoverage)
		return nil
	},
}
