package weave

import (
	"fmt"
)

// validateWeaveArgs validates the arguments provided to the weave command.
func validateWeaveArgs(options *RunOptionsWeave, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("invalid argument(s) received, the weave command takes flags only")
	}

	if options.Description == "" {
		return fmt.Errorf("the 'description' flag must be specified")
	}

	if len(options.Capabilities) == 0 {
		return fmt.Errorf("at least one 'capability' flag must be specified")
	}

	switch options.Priority {
	case "", "low", "medium", "high":
	default:
		return fmt.Errorf("unknown priority %q, expected low, medium or high", options.Priority)
	}

	if options.Top < 0 {
		return fmt.Errorf("the 'top' flag must not be negative")
	}

	return nil
}
