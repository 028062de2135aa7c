package auditor

import (
	"fmt"
	"sort"
	"strings"
)

// Report is the structured, machine-readable audit report: findings grouped
// by severity then category, with per-severity counts. It is a pure function
// of the finding list.
type Report struct {
	Summary  Summary                `json:"summary"`
	Findings map[Severity][]Finding `json:"findings"`
	Passed   bool                   `json:"passed"`
}

// Summary counts findings per severity and category.
type Summary struct {
	Total      int              `json:"total_findings"`
	BySeverity map[Severity]int `json:"by_severity"`
	ByCategory map[Category]int `json:"by_category"`
}

// BuildReport groups the findings by severity (most severe first) then by
// category within each severity.
func BuildReport(findings []Finding) Report {
	report := Report{
		Summary: Summary{
			Total:      len(findings),
			BySeverity: make(map[Severity]int),
			ByCategory: make(map[Category]int),
		},
		Findings: make(map[Severity][]Finding),
		Passed:   Passes(findings),
	}

	for _, f := range findings {
		report.Summary.BySeverity[f.Severity]++
		report.Summary.ByCategory[f.Category]++
		report.Findings[f.Severity] = append(report.Findings[f.Severity], f)
	}

	for severity := range report.Findings {
		group := report.Findings[severity]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Category < group[j].Category
		})
		report.Findings[severity] = group
	}
	return report
}

var severityOrder = []Severity{SeverityCritical, SeverityError, SeverityWarning, SeverityInfo}

// RenderText renders a human-readable report.
func RenderText(findings []Finding) string {
	if len(findings) == 0 {
		return "No issues found. Pattern looks good!"
	}

	report := BuildReport(findings)
	var b strings.Builder
	b.WriteString("ARCHITECTURE AUDIT REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")

	for _, severity := range severityOrder {
		group, ok := report.Findings[severity]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%s (%d)\n", strings.ToUpper(string(severity)), len(group))
		b.WriteString(strings.Repeat("-", 30) + "\n")
		for _, f := range group {
			fmt.Fprintf(&b, "* [%s] %s\n", f.Category, f.Message)
			if f.Component != "" {
				fmt.Fprintf(&b, "  Component: %s\n", f.Component)
			}
			if f.Recommendation != "" {
				fmt.Fprintf(&b, "  Recommendation: %s\n", f.Recommendation)
			}
			if f.Evidence != "" {
				fmt.Fprintf(&b, "  Evidence: %s\n", f.Evidence)
			}
		}
	}

	b.WriteString("\n" + strings.Repeat("=", 50) + "\n")
	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "Total findings: %d\n", report.Summary.Total)
	for _, severity := range severityOrder {
		if count := report.Summary.BySeverity[severity]; count > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", severity, count)
		}
	}
	if report.Passed {
		b.WriteString("Result: PASSED\n")
	} else {
		b.WriteString("Result: FAILED\n")
	}
	return b.String()
}
