package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loom-arch/loom/internal/enrich"
	"github.com/loom-arch/loom/internal/graph"
)

var refreshCmd = &cobra.Command{
	Use:                   "refresh",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Refresh popularity scores from live GitHub star counts",
	Long: `Refresh popularity scores from live GitHub star counts.

Components without a GitHub URL are skipped. Setting http_client.github_token
in the config raises the GitHub API rate limit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := graph.New(AppConfig, logger)
		g.Load()

		refresher := enrich.NewScoreRefresher(AppConfig, g, logger)
		stats, err := refresher.Refresh(cmd.Context())
		if err != nil {
			logger.Error("refresh command failed", "error", err)
			return err
		}

		fmt.Printf("Refreshed %d component(s), skipped %d, failed %d.\n",
			stats.Updated, stats.Skipped, stats.Failed)
		return nil
	},
}
