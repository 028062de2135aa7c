package evolver

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/loom-arch/loom/internal/catalog"
	"github.com/loom-arch/loom/internal/graph"
	"github.com/loom-arch/loom/internal/weaver"
	sharederrors "github.com/loom-arch/loom/pkg/shared/errors"
)

// Transformation names accepted by Evolve.
const (
	MakeScalable = "make-scalable"
	AddSecurity  = "add-security"
	OptimizeCost = "optimize-cost"
)

var supportedTransformations = []string{MakeScalable, AddSecurity, OptimizeCost}

// SupportedTransformations lists the known transformation names.
func SupportedTransformations() []string {
	out := make([]string, len(supportedTransformations))
	copy(out, supportedTransformations)
	return out
}

// Evolver applies named transformations to patterns. It reads from the graph
// but never mutates it, and never mutates the input pattern; every
// transformation produces a new pattern.
type Evolver struct {
	graph  *graph.Graph
	logger hclog.Logger
}

// New creates an evolver over the given graph.
func New(g *graph.Graph, logger hclog.Logger) *Evolver {
	return &Evolver{graph: g, logger: logger}
}

// Evolve applies one named transformation. An unrecognized name is a caller
// error, rejected before any transformation is attempted; a recognized
// transformation with no applicable rule produces a pattern with zero notes,
// which is not a failure.
func (e *Evolver) Evolve(p *weaver.Pattern, transformation string) (*weaver.Pattern, error) {
	switch transformation {
	case MakeScalable:
		return e.makeScalable(p), nil
	case AddSecurity:
		return e.addSecurity(p), nil
	case OptimizeCost:
		return e.optimizeCost(p), nil
	default:
		return nil, sharederrors.NewInvalidTransformationError(transformation, supportedTransformations)
	}
}

// copyPattern clones the component list into a fresh pattern carrying the
// derived name and description.
func copyPattern(p *weaver.Pattern, nameSuffix, descriptionSuffix string) *weaver.Pattern {
	evolved := weaver.NewPattern(p.Name+nameSuffix, p.Description+descriptionSuffix, p.Intent)
	for _, ref := range p.Components {
		evolved.Add(ref.Component, ref.Role)
	}
	evolved.Tags = append(evolved.Tags, p.Tags...)
	return evolved
}

func (e *Evolver) makeScalable(p *weaver.Pattern) *weaver.Pattern {
	evolved := copyPattern(p, " (Scalable)", " - Enhanced for scalability")

	var applied []string

	if p.HasCapability(catalog.CapDatabase) {
		applied = append(applied, "Enhance database for better scalability")
	}

	// data-intensive patterns get a caching layer
	if p.HasCapability(catalog.CapDatabase) && p.HasCapability(catalog.CapWebFramework) && !p.HasCapability(catalog.CapCache) {
		if cache := e.bestByCapability(catalog.CapCache); cache != nil && !evolved.HasComponent(cache.Name) {
			evolved.Add(cache, "Cache & Session Storage")
			applied = append(applied, "Add caching layer for performance")
		}
	}

	// synchronous bottleneck: web framework without async messaging
	if p.HasCapability(catalog.CapWebFramework) && !p.HasCapability(catalog.CapMessageQueue) {
		if note := e.addMessageQueue(evolved); note != "" {
			applied = append(applied, note)
		}
	}

	if len(applied) > 0 {
		evolved.Tags = append(evolved.Tags, "scalable", "evolved")
		evolved.EvolutionNotes = append(evolved.EvolutionNotes, applied...)
		evolved.Description += fmt.Sprintf(". Applied: %s", joinNotes(applied))
	}

	e.logger.Info("make-scalable applied", "rules", len(applied))
	return evolved
}

func (e *Evolver) addMessageQueue(evolved *weaver.Pattern) string {
	if rabbitmq, ok := e.graph.Get("RabbitMQ"); ok && !evolved.HasComponent("RabbitMQ") {
		evolved.Add(rabbitmq, "Message Queue for Async Processing")
		return "Add message queue for async processing"
	}
	if kafka, ok := e.graph.Get("Apache_Kafka"); ok && !evolved.HasComponent("Apache_Kafka") {
		evolved.Add(kafka, "Event Streaming Platform")
		return "Add message queue for async processing"
	}
	if mq := e.bestByCapability(catalog.CapMessageQueue); mq != nil && !evolved.HasComponent(mq.Name) {
		evolved.Add(mq, "Message Queue for Async Processing")
		return "Add message queue for async processing"
	}
	return ""
}

func (e *Evolver) addSecurity(p *weaver.Pattern) *weaver.Pattern {
	evolved := weaver.NewPattern(p.Name+" (Secure)", p.Description+" - Enhanced for security", p.Intent)
	evolved.Tags = append(evolved.Tags, p.Tags...)

	var improvements []string

	// substitute components with higher-security upgrades
	for _, ref := range p.Components {
		upgraded := e.securityUpgrade(ref.Component)
		if upgraded != nil {
			evolved.Add(upgraded, ref.Role+" (Security Enhanced)")
			improvements = append(improvements, fmt.Sprintf("Upgraded %s to %s for security", ref.Component.Name, upgraded.Name))
		} else {
			evolved.Add(ref.Component, ref.Role)
		}
	}

	// add missing authentication
	if !p.HasCapability(catalog.CapAuthentication) {
		if auth := e.mostSecureByCapability(catalog.CapAuthentication); auth != nil {
			evolved.Add(auth, "Authentication & Identity Management")
			improvements = append(improvements, fmt.Sprintf("Added %s for authentication (security: %.2f)", auth.Name, auth.SecurityScore))
		}
	}

	// web applications get security monitoring and visualization
	if p.HasCapability(catalog.CapWebFramework) && !p.HasCapability(catalog.CapMonitoring) {
		if prometheus, ok := e.graph.Get("Prometheus"); ok {
			evolved.Add(prometheus, "Security Monitoring & Metrics")
			improvements = append(improvements, fmt.Sprintf("Added %s for security monitoring", prometheus.Name))
		}
		if grafana, ok := e.graph.Get("Grafana"); ok {
			evolved.Add(grafana, "Security Dashboard & Visualization")
			improvements = append(improvements, fmt.Sprintf("Added %s for security visualization", grafana.Name))
		}
	}

	originalScore := p.MeanSecurityScore()
	newScore := evolved.MeanSecurityScore()
	if newScore > originalScore {
		improvements = append(improvements, fmt.Sprintf("Security score: %.2f to %.2f (+%.2f)", originalScore, newScore, newScore-originalScore))
	}

	if len(improvements) > 0 {
		evolved.EvolutionNotes = append(evolved.EvolutionNotes, improvements...)
		evolved.Description += fmt.Sprintf(". Security enhancements: %s", joinNotes(improvements[:min(3, len(improvements))]))
	}
	evolved.Tags = append(evolved.Tags, "secure", "evolved", "high_security")

	e.logger.Info("add-security applied", "improvements", len(improvements))
	return evolved
}

func (e *Evolver) optimizeCost(p *weaver.Pattern) *weaver.Pattern {
	evolved := weaver.NewPattern(p.Name+" (Cost-Optimized)", p.Description+" - Optimized for cost efficiency", p.Intent)
	evolved.Tags = append(evolved.Tags, p.Tags...)

	var optimizations []string

	for _, ref := range p.Components {
		alternative := e.costEffectiveAlternative(ref.Component)
		if alternative != nil {
			evolved.Add(alternative, ref.Role+" (Cost-Optimized)")
			optimizations = append(optimizations, fmt.Sprintf("Replaced %s with %s for cost savings", ref.Component.Name, alternative.Name))
		} else {
			evolved.Add(ref.Component, ref.Role)
		}
	}

	optimizations = append(optimizations, e.consolidate(evolved)...)

	originalCost := PatternCostScore(p)
	newCost := PatternCostScore(evolved)
	if originalCost > newCost {
		optimizations = append(optimizations, fmt.Sprintf("Cost efficiency: %.2f to %.2f (%.2f savings)", originalCost, newCost, originalCost-newCost))
	}

	if len(optimizations) > 0 {
		evolved.EvolutionNotes = append(evolved.EvolutionNotes, optimizations...)
		evolved.Description += fmt.Sprintf(". Cost optimizations: %s", joinNotes(optimizations[:min(3, len(optimizations))]))
	}
	evolved.Tags = append(evolved.Tags, "cost-optimized", "evolved", "budget_friendly")

	e.logger.Info("optimize-cost applied", "optimizations", len(optimizations))
	return evolved
}

// consolidate drops the visualization component when a metrics component
// already covers a small pattern.
func (e *Evolver) consolidate(evolved *weaver.Pattern) []string {
	var notes []string

	if evolved.HasComponent("Prometheus") && evolved.HasComponent("Grafana") && len(evolved.Components) <= 4 {
		if evolved.Remove("Grafana") {
			notes = append(notes, "Consolidated: removed Grafana, using Prometheus only for simplicity")
		}
	}

	databases := 0
	for _, ref := range evolved.Components {
		if ref.Component.HasCapability(catalog.CapDatabase) {
			databases++
		}
	}
	if databases > 1 {
		notes = append(notes, "Multiple databases detected - consider consolidation")
	}

	return notes
}

func (e *Evolver) bestByCapability(cap catalog.Capability) *catalog.Component {
	var best *catalog.Component
	for _, c := range e.graph.FindByCapability(cap) {
		if best == nil || c.PopularityScore > best.PopularityScore {
			best = c
		}
	}
	return best
}

func (e *Evolver) mostSecureByCapability(cap catalog.Capability) *catalog.Component {
	var best *catalog.Component
	for _, c := range e.graph.FindByCapability(cap) {
		if best == nil || c.SecurityScore > best.SecurityScore {
			best = c
		}
	}
	return best
}

func joinNotes(notes []string) string {
	out := ""
	for i, note := range notes {
		if i > 0 {
			out += ", "
		}
		out += note
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
