package auditor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/loom-arch/loom/internal/catalog"
	"github.com/loom-arch/loom/internal/graph"
	"github.com/loom-arch/loom/internal/weaver"
)

// Auditor runs independent structural and policy checks over a pattern. It
// reads the graph and the pattern and mutates neither; auditing the same
// unmodified pattern twice yields identical finding lists.
type Auditor struct {
	graph  *graph.Graph
	logger hclog.Logger
}

// New creates an auditor over the given graph.
func New(g *graph.Graph, logger hclog.Logger) *Auditor {
	return &Auditor{graph: g, logger: logger}
}

// Audit runs every check and returns the combined findings.
func (a *Auditor) Audit(p *weaver.Pattern) []Finding {
	var findings []Finding
	findings = append(findings, a.checkCompatibility(p)...)
	findings = append(findings, a.checkLicenses(p)...)
	findings = append(findings, a.checkSecurity(p)...)
	findings = append(findings, a.checkRedundancy(p)...)
	findings = append(findings, a.checkBestPractices(p)...)

	a.logger.Info("audit complete", "pattern", p.Name, "findings", len(findings), "passed", Passes(findings))
	return findings
}

// checkCompatibility inspects graph edges between every ordered pair of
// distinct pattern components. Weak compatible_with edges warn; an
// incompatible_with edge is an error.
func (a *Auditor) checkCompatibility(p *weaver.Pattern) []Finding {
	var findings []Finding
	for _, source := range p.Components {
		for _, target := range p.Components {
			if source.Component.Name == target.Component.Name {
				continue
			}
			edge, ok := a.graph.Edge(source.Component.Name, target.Component.Name)
			if !ok {
				continue
			}
			switch edge.Type {
			case catalog.RelCompatibleWith:
				if edge.Strength < 0.7 {
					findings = append(findings, Finding{
						Category:       CategoryCompatibility,
						Severity:       SeverityWarning,
						Component:      fmt.Sprintf("%s <-> %s", source.Component.Name, target.Component.Name),
						Message:        fmt.Sprintf("Low compatibility confidence (%.2f) between %s and %s", edge.Strength, source.Component.Name, target.Component.Name),
						Recommendation: "Consider alternative pairings or verify integration",
						Evidence:       edge.Evidence,
					})
				}
			case catalog.RelIncompatibleWith:
				findings = append(findings, Finding{
					Category:       CategoryCompatibility,
					Severity:       SeverityError,
					Component:      fmt.Sprintf("%s <-> %s", source.Component.Name, target.Component.Name),
					Message:        fmt.Sprintf("Incompatible components: %s and %s", source.Component.Name, target.Component.Name),
					Recommendation: "Replace one of the components",
					Evidence:       edge.Evidence,
				})
			}
		}
	}
	return findings
}

var restrictiveLicenses = map[string]bool{
	"SSPL":            true,
	"Elastic License": true,
	"Commons Clause":  true,
	"AGPL":            true,
}

var permissiveCategory = map[string]bool{
	"MIT":        true,
	"BSD":        true,
	"Apache 2.0": true,
}

// checkLicenses flags restrictive licenses and contamination risk from mixing
// copyleft with proprietary-compatible licenses.
func (a *Auditor) checkLicenses(p *weaver.Pattern) []Finding {
	licenses := make(map[string][]string)
	for _, ref := range p.Components {
		if ref.Component.License != "" {
			licenses[ref.Component.License] = append(licenses[ref.Component.License], ref.Component.Name)
		}
	}

	var findings []Finding
	for _, license := range sortedKeys(licenses) {
		if restrictiveLicenses[license] {
			components := licenses[license]
			findings = append(findings, Finding{
				Category:       CategoryLicense,
				Severity:       SeverityWarning,
				Component:      strings.Join(components, ", "),
				Message:        fmt.Sprintf("Restrictive license detected: %s", license),
				Recommendation: "Consider open source alternatives with permissive licenses",
				Evidence:       fmt.Sprintf("Affects: %s", strings.Join(components, ", ")),
			})
		}
	}

	hasCopyleft := false
	hasPermissive := false
	for license := range licenses {
		if strings.Contains(license, "GPL") {
			hasCopyleft = true
		}
		if permissiveCategory[license] {
			hasPermissive = true
		}
	}
	if hasCopyleft && hasPermissive && len(licenses) > 1 {
		findings = append(findings, Finding{
			Category:       CategoryLicense,
			Severity:       SeverityWarning,
			Component:      "Multiple components",
			Message:        "Potential GPL license contamination risk",
			Recommendation: "Review license compatibility or isolate GPL components",
			Evidence:       fmt.Sprintf("Mixed licenses: %s", strings.Join(sortedKeys(licenses), ", ")),
		})
	}
	return findings
}

// checkSecurity warns on a low mean security score and errors on a web
// framework without any authentication component.
func (a *Auditor) checkSecurity(p *weaver.Pattern) []Finding {
	var findings []Finding

	if len(p.Components) > 0 {
		var low []string
		sum := 0.0
		for _, ref := range p.Components {
			sum += ref.Component.SecurityScore
			if ref.Component.SecurityScore < 0.7 {
				low = append(low, fmt.Sprintf("%s (%.2f)", ref.Component.Name, ref.Component.SecurityScore))
			}
		}
		mean := sum / float64(len(p.Components))
		if mean < 0.75 {
			evidence := "All components"
			if len(low) > 0 {
				evidence = fmt.Sprintf("Components: %s", strings.Join(low, ", "))
			}
			findings = append(findings, Finding{
				Category:       CategorySecurity,
				Severity:       SeverityWarning,
				Component:      "Pattern average",
				Message:        fmt.Sprintf("Low average security score: %.2f", mean),
				Recommendation: "Consider higher-security alternatives or add security components",
				Evidence:       evidence,
			})
		}
	}

	if p.HasCapability(catalog.CapWebFramework) && !p.HasCapability(catalog.CapAuthentication) {
		findings = append(findings, Finding{
			Category:       CategorySecurity,
			Severity:       SeverityError,
			Component:      "Authentication",
			Message:        "Missing authentication component in web application",
			Recommendation: "Add an authentication service (Keycloak, Ory Kratos, ...)",
			Evidence:       "Web framework present without authentication",
		})
	}
	return findings
}

// checkRedundancy flags capabilities provided by more than one component.
// Databases and caches may be intentionally plural: extra databases produce
// an informational note, not a warning.
func (a *Auditor) checkRedundancy(p *weaver.Pattern) []Finding {
	providers := make(map[catalog.Capability][]string)
	for _, ref := range p.Components {
		seen := make(map[catalog.Capability]bool)
		for _, cap := range ref.Component.Capabilities {
			if !seen[cap] {
				seen[cap] = true
				providers[cap] = append(providers[cap], ref.Component.Name)
			}
		}
	}

	caps := make([]catalog.Capability, 0, len(providers))
	for cap := range providers {
		caps = append(caps, cap)
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i] < caps[j] })

	var findings []Finding
	for _, cap := range caps {
		components := providers[cap]
		if len(components) > 1 && cap != catalog.CapDatabase && cap != catalog.CapCache {
			findings = append(findings, Finding{
				Category:       CategoryRedundancy,
				Severity:       SeverityWarning,
				Component:      strings.Join(components, ", "),
				Message:        fmt.Sprintf("Multiple components providing same capability: %s", cap),
				Recommendation: fmt.Sprintf("Consider consolidating %s functionality", cap),
				Evidence:       fmt.Sprintf("Provided by: %s", strings.Join(components, ", ")),
			})
		}
	}

	if databases := providers[catalog.CapDatabase]; len(databases) > 1 {
		findings = append(findings, Finding{
			Category:       CategoryRedundancy,
			Severity:       SeverityInfo,
			Component:      strings.Join(databases, ", "),
			Message:        fmt.Sprintf("Multiple databases detected: %d", len(databases)),
			Recommendation: "Ensure multiple databases are intentional (e.g. polyglot persistence)",
			Evidence:       fmt.Sprintf("Databases: %s", strings.Join(databases, ", ")),
		})
	}
	return findings
}

// checkBestPractices makes informational suggestions for patterns of three or
// more components: caching next to a database, and monitoring.
func (a *Auditor) checkBestPractices(p *weaver.Pattern) []Finding {
	var findings []Finding
	if len(p.Components) < 3 {
		return findings
	}

	if p.HasCapability(catalog.CapDatabase) && !p.HasCapability(catalog.CapCache) {
		var databases []string
		for _, ref := range p.Components {
			if ref.Component.HasCapability(catalog.CapDatabase) {
				databases = append(databases, ref.Component.Name)
			}
		}
		findings = append(findings, Finding{
			Category:       CategoryBestPractice,
			Severity:       SeverityInfo,
			Component:      "Database layer",
			Message:        "Database present without caching layer",
			Recommendation: "Consider adding a cache to improve performance",
			Evidence:       fmt.Sprintf("Database components: %s", strings.Join(databases, ", ")),
		})
	}

	if !p.HasCapability(catalog.CapMonitoring) {
		var names []string
		for _, ref := range p.Components {
			names = append(names, ref.Component.Name)
		}
		findings = append(findings, Finding{
			Category:       CategoryBestPractice,
			Severity:       SeverityInfo,
			Component:      "Operations",
			Message:        "No monitoring/observability components",
			Recommendation: "Add monitoring (Prometheus) and visualization (Grafana)",
			Evidence:       fmt.Sprintf("Current components: %s", strings.Join(names, ", ")),
		})
	}
	return findings
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
