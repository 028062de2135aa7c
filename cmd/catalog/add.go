package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	model "github.com/loom-arch/loom/internal/catalog"
	"github.com/loom-arch/loom/internal/graph"
)

// RunOptionsAdd holds the arguments of the catalog add command.
type RunOptionsAdd struct {
	Name             string
	Description      string
	GithubURL        string
	License          string
	Capabilities     []string
	Tags             []string
	PopularityScore  float64
	SecurityScore    float64
	CostScore        float64
	ComplexityScore  float64
	MaturityScore    float64
	LicenseRiskScore float64
}

var (
	addOptions RunOptionsAdd

	exampleAddUsage = `  # Register a component with its capabilities
  loom catalog add --name Redis --capability cache --license BSD --github-url https://github.com/redis/redis

  # Register a component with explicit scores
  loom catalog add --name Keycloak --capability authentication --security 0.9 --popularity 0.75`
)

var addCmd = &cobra.Command{
	Use:                   "add --name NAME --capability CAPABILITY [flags]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAddUsage,
	Short:                 "Add or update a component in the catalog",
	RunE:                  runAddCommand,
}

func runAddCommand(cmd *cobra.Command, args []string) error {
	if cmd.Flags().NFlag() == 0 {
		return cmd.Help()
	}

	if err := validateAddArgs(&addOptions, args); err != nil {
		logger.Error("invalid catalog add arguments", "error", err)
		return fmt.Errorf("invalid catalog add arguments: %w", err)
	}

	caps := make([]model.Capability, 0, len(addOptions.Capabilities))
	for _, raw := range addOptions.Capabilities {
		cap, err := model.ParseCapability(raw)
		if err != nil {
			logger.Error("unknown capability", "error", err)
			return err
		}
		caps = append(caps, cap)
	}

	g := graph.New(AppConfig, logger)
	g.Load()

	component := &model.Component{
		Name:              addOptions.Name,
		Description:       addOptions.Description,
		GithubURL:         addOptions.GithubURL,
		License:           addOptions.License,
		Capabilities:      caps,
		CompatibilityTags: addOptions.Tags,
		PopularityScore:   addOptions.PopularityScore,
		SecurityScore:     addOptions.SecurityScore,
		CostScore:         addOptions.CostScore,
		ComplexityScore:   addOptions.ComplexityScore,
		MaturityScore:     addOptions.MaturityScore,
		LicenseRiskScore:  addOptions.LicenseRiskScore,
	}
	if err := g.AddComponent(component); err != nil {
		logger.Error("failed to add component", "error", err)
		return err
	}

	fmt.Printf("Component %q added to the catalog.\n", component.Name)
	return nil
}

func init() {
	addCmd.Flags().StringVar(&addOptions.Name, "name", "", "Component name (unique catalog key).")
	addCmd.Flags().StringVar(&addOptions.Description, "description", "", "Short component description.")
	addCmd.Flags().StringVar(&addOptions.GithubURL, "github-url", "", "GitHub repository URL used by score refresh.")
	addCmd.Flags().StringVar(&addOptions.License, "license", "", "Component license (e.g. MIT, Apache 2.0).")
	addCmd.Flags().StringSliceVar(&addOptions.Capabilities, "capability", nil, "Capability the component provides (repeatable).")
	addCmd.Flags().StringSliceVar(&addOptions.Tags, "tag", nil, "Compatibility tag (repeatable).")
	addCmd.Flags().Float64Var(&addOptions.PopularityScore, "popularity", model.DefaultScore, "Popularity score in [0, 1].")
	addCmd.Flags().Float64Var(&addOptions.SecurityScore, "security", model.DefaultScore, "Security score in [0, 1].")
	addCmd.Flags().Float64Var(&addOptions.CostScore, "cost", model.DefaultScore, "Cost score in [0, 1].")
	addCmd.Flags().Float64Var(&addOptions.ComplexityScore, "complexity", model.DefaultScore, "Complexity score in [0, 1].")
	addCmd.Flags().Float64Var(&addOptions.MaturityScore, "maturity", model.DefaultScore, "Maturity score in [0, 1].")
	addCmd.Flags().Float64Var(&addOptions.LicenseRiskScore, "license-risk", model.DefaultScore, "License risk score in [0, 1].")
	addCmd.Flags().BoolP("help", "h", false, "Show help for the catalog add command.")
}
