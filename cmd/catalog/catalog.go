package catalog

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/loom-arch/loom/pkg/shared/config"
)

// Global variables for configuration shared across the catalog subcommands.
var (
	AppConfig *config.Config
	logger    hclog.Logger
)

// CatalogCmd groups the catalog maintenance subcommands.
var CatalogCmd = &cobra.Command{
	Use:                   "catalog [command]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Maintain the component catalog and knowledge graph",
}

// Init initializes the global configuration variables for the catalog commands.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func init() {
	CatalogCmd.AddCommand(
		addCmd,
		listCmd,
		searchCmd,
		statsCmd,
		clearCmd,
		importCmd,
		refreshCmd,
	)
}
