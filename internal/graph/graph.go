package graph

import (
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/loom-arch/loom/internal/catalog"
	"github.com/loom-arch/loom/pkg/shared/config"
	sharederrors "github.com/loom-arch/loom/pkg/shared/errors"
)

// Graph is the knowledge graph of cataloged components and their typed
// relationships. It is the single source of truth for the catalog; the
// weaver, evolver and auditor query it but never own its storage.
//
// Mutations (AddComponent, AddRelationship, Clear) take a mutex around
// "mutate in-memory state, then persist". Read paths are lock-free and safe
// as long as no mutation is interleaved; callers needing concurrent reads and
// writes must serialize externally.
type Graph struct {
	mu     sync.Mutex
	logger hclog.Logger

	catalogPath       string
	relationshipsPath string

	components map[string]*catalog.Component
	// edges holds at most one directed edge per ordered (source, target)
	// pair; re-adding overwrites the edge attributes.
	edges map[string]map[string]catalog.Relationship
}

// New creates an empty graph backed by the configured data files. Call Load
// to populate it from a persisted snapshot.
func New(cfg *config.Config, logger hclog.Logger) *Graph {
	return &Graph{
		logger:            logger,
		catalogPath:       config.CatalogPath(cfg),
		relationshipsPath: config.RelationshipsPath(cfg),
		components:        make(map[string]*catalog.Component),
		edges:             make(map[string]map[string]catalog.Relationship),
	}
}

// AddComponent inserts or overwrites the catalog entry keyed by the component
// name and persists the full catalog. Write-through is acceptable here: the
// catalog holds tens to low hundreds of entries and additions are rare.
func (g *Graph) AddComponent(c *catalog.Component) error {
	if err := c.Validate(); err != nil {
		return sharederrors.NewValidationError("component", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.components[c.Name] = c
	if err := g.save(); err != nil {
		return err
	}
	g.logger.Info("added component", "name", c.Name)
	return nil
}

// AddRelationship validates both endpoints exist, then inserts or overwrites
// the directed edge and persists. An unknown endpoint is reported as a
// NotFoundError and performs no mutation.
func (g *Graph) AddRelationship(r catalog.Relationship) error {
	if _, err := catalog.ParseRelationshipType(string(r.Type)); err != nil {
		return sharederrors.NewValidationError("relationship", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.components[r.Source]; !ok {
		g.logger.Warn("relationship source not found, skipping", "source", r.Source)
		return sharederrors.NewNotFoundError("component", r.Source)
	}
	if _, ok := g.components[r.Target]; !ok {
		g.logger.Warn("relationship target not found, skipping", "target", r.Target)
		return sharederrors.NewNotFoundError("component", r.Target)
	}

	if g.edges[r.Source] == nil {
		g.edges[r.Source] = make(map[string]catalog.Relationship)
	}
	g.edges[r.Source][r.Target] = r
	if err := g.save(); err != nil {
		return err
	}
	g.logger.Info("added relationship", "source", r.Source, "target", r.Target, "type", r.Type)
	return nil
}

// Get returns a component by name. An exact match wins; otherwise the lookup
// falls back to a case-insensitive scan.
func (g *Graph) Get(name string) (*catalog.Component, bool) {
	if c, ok := g.components[name]; ok {
		return c, true
	}

	lower := strings.ToLower(name)
	for key, c := range g.components {
		if strings.ToLower(key) == lower {
			return c, true
		}
	}
	return nil, false
}

// Resolve looks a component up tolerating space/underscore and case variants
// of the name, as pattern files written by other tools use both conventions.
func (g *Graph) Resolve(name string) (*catalog.Component, bool) {
	variations := []string{
		name,
		strings.ReplaceAll(name, " ", "_"),
		strings.ReplaceAll(name, "_", " "),
	}
	for _, variation := range variations {
		if c, ok := g.components[variation]; ok {
			return c, true
		}
	}
	for _, variation := range variations {
		if c, ok := g.Get(variation); ok {
			return c, true
		}
	}
	return nil, false
}

// FindByCapability returns every component whose capability set contains cap.
// No ranking is applied; callers that need an order must sort explicitly.
func (g *Graph) FindByCapability(cap catalog.Capability) []*catalog.Component {
	var matches []*catalog.Component
	for _, name := range g.sortedNames() {
		c := g.components[name]
		if c.HasCapability(cap) {
			matches = append(matches, c)
		}
	}
	return matches
}

// CompatibleComponents returns the targets of outgoing compatible_with edges.
func (g *Graph) CompatibleComponents(name string) []string {
	return g.targetsByType(name, catalog.RelCompatibleWith)
}

// Alternatives returns the targets of outgoing alternative_to edges.
func (g *Graph) Alternatives(name string) []string {
	return g.targetsByType(name, catalog.RelAlternativeTo)
}

func (g *Graph) targetsByType(name string, rt catalog.RelationshipType) []string {
	var targets []string
	for target, edge := range g.edges[name] {
		if edge.Type == rt {
			targets = append(targets, target)
		}
	}
	sort.Strings(targets)
	return targets
}

// Edge returns the directed edge between two component names, if present.
func (g *Graph) Edge(source, target string) (catalog.Relationship, bool) {
	edge, ok := g.edges[source][target]
	return edge, ok
}

// Components returns all components sorted by name.
func (g *Graph) Components() []*catalog.Component {
	out := make([]*catalog.Component, 0, len(g.components))
	for _, name := range g.sortedNames() {
		out = append(out, g.components[name])
	}
	return out
}

// Relationships returns all edges sorted by source then target.
func (g *Graph) Relationships() []catalog.Relationship {
	var out []catalog.Relationship
	for _, byTarget := range g.edges {
		for _, edge := range byTarget {
			out = append(out, edge)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out
}

// Len returns the number of cataloged components.
func (g *Graph) Len() int {
	return len(g.components)
}

func (g *Graph) sortedNames() []string {
	names := make([]string, 0, len(g.components))
	for name := range g.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
