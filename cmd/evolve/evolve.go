package evolve

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/loom-arch/loom/internal/evolver"
	"github.com/loom-arch/loom/internal/graph"
	"github.com/loom-arch/loom/pkg/shared/config"
)

// Global variables for configuration and command arguments
var (
	AppConfig     *config.Config
	logger        hclog.Logger
	evolveOptions RunOptionsEvolve

	exampleEvolveUsage = `  # Make a saved pattern scalable
  loom evolve -f pattern.json -t make-scalable -o evolved.json

  # Harden a pattern's security posture
  loom evolve -f pattern.json -t add-security -o secure.json

  # Optimize for cost, overwriting the input file
  loom evolve -f pattern.json -t optimize-cost -o pattern.json`
)

// RunOptionsEvolve holds the arguments of the evolve command.
type RunOptionsEvolve struct {
	PatternPath    string
	Transformation string
	OutputPath     string
}

// EvolveCmd represents the command for evolving a saved pattern.
var EvolveCmd = &cobra.Command{
	Use:                   "evolve --file/-f PATH --transformation/-t NAME [--output/-o PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleEvolveUsage,
	Short:                 "Evolve a saved pattern along a transformation goal",
	Long: fmt.Sprintf(`Evolve a saved pattern along a transformation goal.

Supported transformations:
  %s`, strings.Join(evolver.SupportedTransformations(), "\n  ")),
	RunE: runEvolveCommand,
}

// Init initializes the global configuration variables for the evolve command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runEvolveCommand(cmd *cobra.Command, args []string) error {
	if cmd.Flags().NFlag() == 0 {
		return cmd.Help()
	}

	if err := validateEvolveArgs(&evolveOptions, args); err != nil {
		logger.Error("invalid evolve arguments", "error", err)
		return fmt.Errorf("invalid evolve arguments: %w", err)
	}

	g := graph.New(AppConfig, logger)
	g.Load()

	p, err := evolver.LoadPattern(evolveOptions.PatternPath, g, logger)
	if err != nil {
		logger.Error("failed to load pattern", "error", err)
		return err
	}

	evolved, err := evolver.New(g, logger).Evolve(p, evolveOptions.Transformation)
	if err != nil {
		logger.Error("evolve command failed", "error", err)
		return err
	}

	fmt.Printf("%s\n", evolved.Name)
	if len(evolved.EvolutionNotes) == 0 {
		fmt.Println("  No applicable transformation rules; the pattern is unchanged.")
	}
	for _, note := range evolved.EvolutionNotes {
		fmt.Printf("  - %s\n", note)
	}

	if evolveOptions.OutputPath != "" {
		if err := evolver.SavePattern(evolved, g, evolveOptions.OutputPath); err != nil {
			logger.Error("failed to save evolved pattern", "error", err)
			return err
		}
		logger.Info("evolved pattern saved", "path", evolveOptions.OutputPath)
	}

	logger.Info("evolve command completed successfully", "transformation", evolveOptions.Transformation)
	return nil
}

func init() {
	EvolveCmd.Flags().StringVarP(&evolveOptions.PatternPath, "file", "f", "", "Path to the saved pattern JSON file.")
	EvolveCmd.Flags().StringVarP(&evolveOptions.Transformation, "transformation", "t", "", "Transformation to apply (e.g. make-scalable).")
	EvolveCmd.Flags().StringVarP(&evolveOptions.OutputPath, "output", "o", "", "Path where the evolved pattern will be saved as JSON.")
	EvolveCmd.Flags().BoolP("help", "h", false, "Show help for the evolve command.")
}
