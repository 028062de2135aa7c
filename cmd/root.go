package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loom-arch/loom/cmd/audit"
	"github.com/loom-arch/loom/cmd/catalog"
	"github.com/loom-arch/loom/cmd/evolve"
	"github.com/loom-arch/loom/cmd/version"
	"github.com/loom-arch/loom/cmd/weave"
	"github.com/loom-arch/loom/pkg/shared/config"
	"github.com/loom-arch/loom/pkg/shared/logger"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "loom [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Loom weaves, evolves and audits architecture patterns.",
		Long: `Loom recommends architecture patterns from a component catalog,
evolves them along transformation goals, and audits them for compatibility,
license, security and redundancy problems.
`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(
		weave.WeaveCmd,
		evolve.EvolveCmd,
		audit.AuditCmd,
		catalog.CatalogCmd,
		version.NewVersionCmd(),
	)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(1)
	}

	l := logger.NewLogger(AppConfig, "loom")
	weave.Init(AppConfig, l)
	evolve.Init(AppConfig, l)
	audit.Init(AppConfig, l)
	catalog.Init(AppConfig, l)
}
