package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loom-arch/loom/internal/graph"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:                   "clear --yes",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Remove every component and relationship from the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return fmt.Errorf("refusing to clear the catalog without the 'yes' flag")
		}

		g := graph.New(AppConfig, logger)
		g.Load()

		if err := g.Clear(); err != nil {
			logger.Error("failed to clear the catalog", "error", err)
			return err
		}
		fmt.Println("Catalog cleared.")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Confirm that the catalog should be emptied.")
}
