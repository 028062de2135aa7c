package catalog

import (
	"fmt"
	"net/url"
)

// validateAddArgs validates the arguments provided to the catalog add command.
func validateAddArgs(options *RunOptionsAdd, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("invalid argument(s) received, the add command takes flags only")
	}

	if options.Name == "" {
		return fmt.Errorf("the 'name' flag must be specified")
	}

	if len(options.Capabilities) == 0 {
		return fmt.Errorf("at least one 'capability' flag must be specified")
	}

	scores := map[string]float64{
		"popularity":   options.PopularityScore,
		"security":     options.SecurityScore,
		"cost":         options.CostScore,
		"complexity":   options.ComplexityScore,
		"maturity":     options.MaturityScore,
		"license-risk": options.LicenseRiskScore,
	}
	for name, score := range scores {
		if score < 0 || score > 1 {
			return fmt.Errorf("the '%s' score must be within [0, 1]", name)
		}
	}

	return nil
}

// validateImportArgs validates the arguments provided to the catalog import
// command.
func validateImportArgs(options *RunOptionsImport, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("invalid argument(s) received, the import command takes flags only")
	}

	if options.URL == "" && options.File == "" {
		return fmt.Errorf("either the 'url' or the 'file' flag must be specified")
	}
	if options.URL != "" && options.File != "" {
		return fmt.Errorf("the 'url' and 'file' flags are mutually exclusive")
	}

	if options.URL != "" {
		if _, err := url.ParseRequestURI(options.URL); err != nil {
			return fmt.Errorf("provided URL is not valid: %w", err)
		}
	}

	return nil
}
