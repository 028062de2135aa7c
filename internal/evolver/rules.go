package evolver

import (
	"github.com/loom-arch/loom/internal/catalog"
	"github.com/loom-arch/loom/internal/weaver"
)

// securityUpgrades maps a component to a known higher-security alternative.
// The substitution only applies when the target's security score is strictly
// greater than the current component's.
var securityUpgrades = map[string]string{
	"FastAPI":  "Django",
	"MySQL":    "PostgreSQL",
	"RabbitMQ": "Apache_Kafka",
}

// costDowngrades maps a heavy or costly component to a lighter alternative.
var costDowngrades = map[string]string{
	"Apache_Kafka":  "RabbitMQ",
	"Elasticsearch": "PostgreSQL",
	"Keycloak":      "Ory_Kratos",
	"Grafana":       "Prometheus",
}

// osiAlternatives maps restrictively licensed components to permissive-license
// substitutes.
var osiAlternatives = map[string]string{
	"MongoDB":       "PostgreSQL",
	"Elasticsearch": "Apache_Solr",
	"MySQL":         "PostgreSQL",
}

var restrictiveLicenses = map[string]bool{
	"SSPL":            true,
	"Elastic License": true,
	"Commons Clause":  true,
}

// Cost-heuristic sets. AGPL counts as restrictive for the cost score even
// though the substitution table above does not trigger on it.
var costRestrictiveLicenses = map[string]bool{
	"SSPL":            true,
	"Elastic License": true,
	"Commons Clause":  true,
	"AGPL":            true,
}

var resourceIntensive = map[string]bool{
	"Apache_Kafka":  true,
	"Elasticsearch": true,
	"Keycloak":      true,
	"Apache_Spark":  true,
}

var permissiveLicenses = map[string]bool{
	"MIT":        true,
	"BSD":        true,
	"Apache 2.0": true,
	"PostgreSQL": true,
}

// securityUpgrade returns the mapped higher-security alternative when it
// exists in the catalog and actually scores higher, else nil.
func (e *Evolver) securityUpgrade(c *catalog.Component) *catalog.Component {
	upgradeName, ok := securityUpgrades[c.Name]
	if !ok {
		return nil
	}
	upgraded, ok := e.graph.Get(upgradeName)
	if !ok {
		return nil
	}
	if upgraded.SecurityScore > c.SecurityScore {
		return upgraded
	}
	return nil
}

// costEffectiveAlternative returns a lighter or more permissively licensed
// substitute for the component, else nil.
func (e *Evolver) costEffectiveAlternative(c *catalog.Component) *catalog.Component {
	if alternativeName, ok := costDowngrades[c.Name]; ok {
		if alternative, found := e.graph.Get(alternativeName); found {
			return alternative
		}
	}

	if restrictiveLicenses[c.License] {
		if alternativeName, ok := osiAlternatives[c.Name]; ok {
			if alternative, found := e.graph.Get(alternativeName); found {
				return alternative
			}
		}
	}

	return nil
}

// ComponentCostScore computes the cost heuristic for one component: base 1.0,
// x1.5 for a restrictive license, x1.3 for resource-intensive components,
// x0.9 for a permissive license.
func ComponentCostScore(c *catalog.Component) float64 {
	cost := 1.0
	if costRestrictiveLicenses[c.License] {
		cost *= 1.5
	}
	if resourceIntensive[c.Name] {
		cost *= 1.3
	}
	if permissiveLicenses[c.License] {
		cost *= 0.9
	}
	return cost
}

// PatternCostScore is the mean component cost plus 0.05 per component, an
// operational-cost penalty for larger patterns. Lower is better.
func PatternCostScore(p *weaver.Pattern) float64 {
	if len(p.Components) == 0 {
		return 0
	}
	sum := 0.0
	for _, ref := range p.Components {
		sum += ComponentCostScore(ref.Component)
	}
	return sum/float64(len(p.Components)) + 0.05*float64(len(p.Components))
}
