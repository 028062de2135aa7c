package weave

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/loom-arch/loom/internal/catalog"
	"github.com/loom-arch/loom/internal/evolver"
	"github.com/loom-arch/loom/internal/graph"
	"github.com/loom-arch/loom/internal/weaver"
	"github.com/loom-arch/loom/pkg/shared/config"
)

// Global variables for configuration and command arguments
var (
	AppConfig    *config.Config
	logger       hclog.Logger
	weaveOptions RunOptionsWeave

	exampleWeaveUsage = `  # Weave patterns for a web application with a database
  loom weave -d "content platform for a small newsroom" -c web_framework -c database

  # Weave high-security patterns and save the best one
  loom weave -d "payment backend" -c web_framework -c database -c high_security -o pattern.json

  # Limit the number of printed candidates
  loom weave -d "analytics pipeline" -c analytics -c message_queue --top 2`
)

// RunOptionsWeave holds the arguments of the weave command.
type RunOptionsWeave struct {
	Description  string
	Capabilities []string
	Priority     string
	OutputPath   string
	Top          int
}

// WeaveCmd represents the command for weaving architecture patterns.
var WeaveCmd = &cobra.Command{
	Use:                   "weave --description/-d TEXT --capability/-c CAPABILITY [--priority PRIORITY] [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleWeaveUsage,
	Short:                 "Weave candidate architecture patterns from an intent",
	Long: fmt.Sprintf(`Weave candidate architecture patterns from a capability-based intent.

Known capabilities:
  %s`, capabilityList()),
	RunE: runWeaveCommand,
}

// Init initializes the global configuration variables for the weave command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runWeaveCommand(cmd *cobra.Command, args []string) error {
	if cmd.Flags().NFlag() == 0 {
		return cmd.Help()
	}

	if err := validateWeaveArgs(&weaveOptions, args); err != nil {
		logger.Error("invalid weave arguments", "error", err)
		return fmt.Errorf("invalid weave arguments: %w", err)
	}

	intent, err := catalog.NewIntent(weaveOptions.Description, weaveOptions.Capabilities, nil, weaveOptions.Priority)
	if err != nil {
		logger.Error("failed to build intent", "error", err)
		return fmt.Errorf("failed to build intent: %w", err)
	}

	g := graph.New(AppConfig, logger)
	g.Load()

	patterns := weaver.New(g, logger).Weave(intent)
	if len(patterns) == 0 {
		fmt.Println("No patterns could be woven: no catalog components match the requested capabilities.")
		return nil
	}

	top := weaveOptions.Top
	if top <= 0 || top > len(patterns) {
		top = len(patterns)
	}
	for i, p := range patterns[:top] {
		fmt.Printf("\n[%d] ", i+1)
		printPattern(p, g)
	}

	if weaveOptions.OutputPath != "" {
		if err := evolver.SavePattern(patterns[0], g, weaveOptions.OutputPath); err != nil {
			logger.Error("failed to save pattern", "error", err)
			return err
		}
		logger.Info("best pattern saved", "path", weaveOptions.OutputPath, "pattern", patterns[0].Name)
	}

	logger.Info("weave command completed successfully", "patterns", len(patterns))
	return nil
}

func init() {
	WeaveCmd.Flags().StringVarP(&weaveOptions.Description, "description", "d", "", "Natural-language description of the system to build.")
	WeaveCmd.Flags().StringSliceVarP(&weaveOptions.Capabilities, "capability", "c", nil, "Required capability (repeatable, e.g. web_framework).")
	WeaveCmd.Flags().StringVar(&weaveOptions.Priority, "priority", "", "Intent priority: low, medium or high (default medium).")
	WeaveCmd.Flags().StringVarP(&weaveOptions.OutputPath, "output", "o", "", "Path where the best pattern will be saved as JSON.")
	WeaveCmd.Flags().IntVar(&weaveOptions.Top, "top", 0, "Print at most this many candidate patterns (0 means all).")
	WeaveCmd.Flags().BoolP("help", "h", false, "Show help for the weave command.")
}
