package audit

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/loom-arch/loom/internal/auditor"
	"github.com/loom-arch/loom/internal/evolver"
	"github.com/loom-arch/loom/internal/graph"
	"github.com/loom-arch/loom/pkg/shared/config"
	"github.com/loom-arch/loom/pkg/shared/files"
)

// Global variables for configuration and command arguments
var (
	AppConfig    *config.Config
	logger       hclog.Logger
	auditOptions RunOptionsAudit

	exampleAuditUsage = `  # Audit a saved pattern and print a text report
  loom audit -f pattern.json

  # Audit and write a SARIF report
  loom audit -f pattern.json --format sarif -o audit.sarif

  # Fail the process when the pattern has error findings (for CI gates)
  loom audit -f pattern.json --strict`
)

// RunOptionsAudit holds the arguments of the audit command.
type RunOptionsAudit struct {
	PatternPath string
	Format      string
	OutputPath  string
	Strict      bool
}

// AuditCmd represents the command for auditing a saved pattern.
var AuditCmd = &cobra.Command{
	Use:                   "audit --file/-f PATH [--format text|json|sarif] [--output/-o PATH] [--strict]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAuditUsage,
	Short:                 "Audit a pattern for compatibility, license, security and redundancy problems",
	RunE:                  runAuditCommand,
}

// Init initializes the global configuration variables for the audit command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runAuditCommand(cmd *cobra.Command, args []string) error {
	if cmd.Flags().NFlag() == 0 {
		return cmd.Help()
	}

	if err := validateAuditArgs(&auditOptions, args); err != nil {
		logger.Error("invalid audit arguments", "error", err)
		return fmt.Errorf("invalid audit arguments: %w", err)
	}

	g := graph.New(AppConfig, logger)
	g.Load()

	p, err := evolver.LoadPattern(auditOptions.PatternPath, g, logger)
	if err != nil {
		logger.Error("failed to load pattern", "error", err)
		return err
	}

	findings := auditor.New(g, logger).Audit(p)

	switch auditOptions.Format {
	case "sarif":
		if err := auditor.WriteSARIF(p, findings, auditOptions.OutputPath); err != nil {
			logger.Error("failed to write SARIF report", "error", err)
			return err
		}
		logger.Info("SARIF report saved", "path", auditOptions.OutputPath)
	case "json":
		data, err := json.MarshalIndent(auditor.BuildReport(findings), "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling the audit report: %w", err)
		}
		if auditOptions.OutputPath != "" {
			if err := files.WriteJsonFile(auditOptions.OutputPath, data); err != nil {
				logger.Error("failed to write report", "error", err)
				return err
			}
			logger.Info("JSON report saved", "path", auditOptions.OutputPath)
		} else {
			fmt.Println(string(data))
		}
	default:
		fmt.Println(auditor.RenderText(findings))
	}

	if auditOptions.Strict && !auditor.Passes(findings) {
		return fmt.Errorf("audit failed: pattern %q has error findings", p.Name)
	}

	logger.Info("audit command completed successfully", "findings", len(findings))
	return nil
}

func init() {
	AuditCmd.Flags().StringVarP(&auditOptions.PatternPath, "file", "f", "", "Path to the saved pattern JSON file.")
	AuditCmd.Flags().StringVar(&auditOptions.Format, "format", "text", "Report format: text, json or sarif.")
	AuditCmd.Flags().StringVarP(&auditOptions.OutputPath, "output", "o", "", "Path where the report will be saved (required for sarif).")
	AuditCmd.Flags().BoolVar(&auditOptions.Strict, "strict", false, "Exit with an error when the pattern has error or critical findings.")
	AuditCmd.Flags().BoolP("help", "h", false, "Show help for the audit command.")
}
