package auditor

import (
	"fmt"
	"os"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/loom-arch/loom/internal/weaver"
)

// RenderSARIF converts audit findings into a SARIF report. Each category
// becomes a rule and each finding a result attributed to the pattern.
func RenderSARIF(p *weaver.Pattern, findings []Finding) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("loom-audit", "https://github.com/loom-arch/loom")
	for _, finding := range findings {
		ruleID := string(finding.Category)
		rule := run.AddRule(ruleID).
			WithDescription(fmt.Sprintf("Architecture audit check: %s", finding.Category)).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: toSarifLevel(finding.Severity),
			})

		message := finding.Message
		if finding.Recommendation != "" {
			message = fmt.Sprintf("%s. Recommendation: %s", finding.Message, finding.Recommendation)
		}
		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(p.Name)),
		)

		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(message)).
			WithLevel(toSarifLevel(finding.Severity)).
			WithLocations([]*sarif.Location{location})
		if finding.Evidence != "" {
			result.Properties = map[string]interface{}{"evidence": finding.Evidence}
		}
		run.AddResult(result)
	}
	report.AddRun(run)
	return report, nil
}

// WriteSARIF writes the findings as a SARIF file at path.
func WriteSARIF(p *weaver.Pattern, findings []Finding, path string) error {
	report, err := RenderSARIF(p, findings)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	defer func() { _ = file.Close() }()
	return report.PrettyWrite(file)
}

func toSarifLevel(severity Severity) string {
	switch severity {
	case SeverityCritical, SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "note"
	default:
		return "none"
	}
}
