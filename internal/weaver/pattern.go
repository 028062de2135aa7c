package weaver

import (
	"github.com/google/uuid"

	"github.com/loom-arch/loom/internal/catalog"
	"github.com/loom-arch/loom/internal/graph"
)

// ComponentRef is one (component, role) pair of a pattern. The pattern
// references catalog components without copying or mutating them.
type ComponentRef struct {
	Component *catalog.Component
	Role      string
}

// Pattern is a candidate or evolved architecture: an ordered list of
// (component, role) pairs plus tags and transformation notes. Order reflects
// addition order and matters for display, not correctness. Complexity and
// confidence are derived on demand through Metrics, never cached.
type Pattern struct {
	ID          string
	Name        string
	Description string
	Intent      *catalog.Intent
	Components  []ComponentRef
	Tags        []string
	// EvolutionNotes records human-readable transformation notes appended by
	// the evolver.
	EvolutionNotes []string
}

// NewPattern creates an empty pattern with a fresh ID.
func NewPattern(name, description string, intent *catalog.Intent) *Pattern {
	return &Pattern{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Intent:      intent,
	}
}

// Add appends a component under the given role label.
func (p *Pattern) Add(c *catalog.Component, role string) {
	p.Components = append(p.Components, ComponentRef{Component: c, Role: role})
}

// Remove drops the first component with the given name. It reports whether a
// component was removed.
func (p *Pattern) Remove(name string) bool {
	for i, ref := range p.Components {
		if ref.Component.Name == name {
			p.Components = append(p.Components[:i], p.Components[i+1:]...)
			return true
		}
	}
	return false
}

// HasComponent reports whether the pattern contains a component by name.
func (p *Pattern) HasComponent(name string) bool {
	for _, ref := range p.Components {
		if ref.Component.Name == name {
			return true
		}
	}
	return false
}

// HasCapability reports whether any component advertises the capability.
func (p *Pattern) HasCapability(cap catalog.Capability) bool {
	for _, ref := range p.Components {
		if ref.Component.HasCapability(cap) {
			return true
		}
	}
	return false
}

// MeanSecurityScore returns the average security score across components,
// or 0 for an empty pattern.
func (p *Pattern) MeanSecurityScore() float64 {
	if len(p.Components) == 0 {
		return 0
	}
	sum := 0.0
	for _, ref := range p.Components {
		sum += ref.Component.SecurityScore
	}
	return sum / float64(len(p.Components))
}

// Metrics holds the derived pattern scores, both in [0, 1].
type Metrics struct {
	Complexity float64 `json:"complexity"`
	Confidence float64 `json:"confidence"`
}

// Metrics computes the pattern scores against the graph.
//
// Complexity is min(1, 0.1*components + 0.05*internalEdges), where internal
// edges count every ordered pair of distinct pattern components connected by
// any relationship edge.
//
// Confidence is 0.7*avgPopularity + 0.3*avgCompatibleEdgeStrength over the
// compatible_with edges between pattern components; with no such edges the
// compatibility term contributes 0. When the intent requires high_security
// the confidence is boosted by avgSecurity*0.2, capped at 1.
func (p *Pattern) Metrics(g *graph.Graph) Metrics {
	if len(p.Components) == 0 {
		return Metrics{}
	}

	internalEdges := 0
	for _, source := range p.Components {
		for _, target := range p.Components {
			if source.Component.Name == target.Component.Name {
				continue
			}
			if _, ok := g.Edge(source.Component.Name, target.Component.Name); ok {
				internalEdges++
			}
		}
	}

	complexity := 0.1*float64(len(p.Components)) + 0.05*float64(internalEdges)
	if complexity > 1.0 {
		complexity = 1.0
	}

	popSum := 0.0
	for _, ref := range p.Components {
		popSum += ref.Component.PopularityScore
	}
	popAvg := popSum / float64(len(p.Components))

	compatSum := 0.0
	compatPairs := 0
	for _, source := range p.Components {
		for _, target := range p.Components {
			if source.Component.Name == target.Component.Name {
				continue
			}
			edge, ok := g.Edge(source.Component.Name, target.Component.Name)
			if ok && edge.Type == catalog.RelCompatibleWith {
				compatSum += edge.Strength
				compatPairs++
			}
		}
	}
	denom := compatPairs
	if denom == 0 {
		denom = 1
	}
	avgCompat := compatSum / float64(denom)

	confidence := popAvg*0.7 + avgCompat*0.3
	if p.Intent != nil && p.Intent.Requires(catalog.CapHighSecurity) {
		confidence += p.MeanSecurityScore() * 0.2
	}
	if confidence > 1.0 {
		confidence = 1.0
	}

	return Metrics{Complexity: complexity, Confidence: confidence}
}

// Connection is a relationship edge between two pattern components, exposed
// for display.
type Connection struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Type     string  `json:"type"`
	Strength float64 `json:"strength"`
	Evidence string  `json:"evidence,omitempty"`
}

// Connections lists the graph edges among this pattern's components, in
// component order.
func (p *Pattern) Connections(g *graph.Graph) []Connection {
	var connections []Connection
	for _, source := range p.Components {
		for _, target := range p.Components {
			if source.Component.Name == target.Component.Name {
				continue
			}
			edge, ok := g.Edge(source.Component.Name, target.Component.Name)
			if !ok {
				continue
			}
			connections = append(connections, Connection{
				From:     edge.Source,
				To:       edge.Target,
				Type:     string(edge.Type),
				Strength: edge.Strength,
				Evidence: edge.Evidence,
			})
		}
	}
	return connections
}
