package evolve

import (
	"fmt"
)

// validateEvolveArgs validates the arguments provided to the evolve command.
func validateEvolveArgs(options *RunOptionsEvolve, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("invalid argument(s) received, the evolve command takes flags only")
	}

	if options.PatternPath == "" {
		return fmt.Errorf("the 'file' flag must be specified")
	}

	if options.Transformation == "" {
		return fmt.Errorf("the 'transformation' flag must be specified")
	}

	return nil
}
