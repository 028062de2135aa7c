package audit

import (
	"fmt"
)

// validateAuditArgs validates the arguments provided to the audit command.
func validateAuditArgs(options *RunOptionsAudit, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("invalid argument(s) received, the audit command takes flags only")
	}

	if options.PatternPath == "" {
		return fmt.Errorf("the 'file' flag must be specified")
	}

	switch options.Format {
	case "text", "json", "sarif":
	default:
		return fmt.Errorf("unknown format %q, expected text, json or sarif", options.Format)
	}

	if options.Format == "sarif" && options.OutputPath == "" {
		return fmt.Errorf("the 'output' flag must be specified for the sarif format")
	}

	return nil
}
