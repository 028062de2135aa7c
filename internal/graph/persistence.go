package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/loom-arch/loom/internal/catalog"
	sharederrors "github.com/loom-arch/loom/pkg/shared/errors"
	"github.com/loom-arch/loom/pkg/shared/files"
)

// LoadStats reports how a snapshot load went. Partial successes are visible
// through the counts rather than hidden.
type LoadStats struct {
	ComponentsLoaded     int
	ComponentsSkipped    int
	RelationshipsLoaded  int
	RelationshipsSkipped int
}

// rawComponent mirrors the catalog exchange format. Score fields are pointers
// so absent values can be defaulted to 0.5 instead of zero.
type rawComponent struct {
	Name              string                 `json:"name"`
	Description       string                 `json:"description"`
	GithubURL         string                 `json:"github_url"`
	License           string                 `json:"license"`
	Capabilities      []string               `json:"capabilities"`
	CompatibilityTags []string               `json:"compatibility_tags"`
	Metadata          map[string]interface{} `json:"metadata"`
	PopularityScore   *float64               `json:"popularity_score"`
	SecurityScore     *float64               `json:"security_score"`
	CostScore         *float64               `json:"cost_score"`
	ComplexityScore   *float64               `json:"complexity_score"`
	MaturityScore     *float64               `json:"maturity_score"`
	LicenseRiskScore  *float64               `json:"license_risk_score"`
}

func scoreOrDefault(v *float64) float64 {
	if v == nil {
		return catalog.DefaultScore
	}
	return *v
}

func (raw *rawComponent) toComponent() (*catalog.Component, error) {
	caps := make([]catalog.Capability, 0, len(raw.Capabilities))
	seen := make(map[catalog.Capability]bool, len(raw.Capabilities))
	for _, value := range raw.Capabilities {
		cap, err := catalog.ParseCapability(value)
		if err != nil {
			return nil, err
		}
		// deduplicated for querying, per the catalog invariant
		if !seen[cap] {
			seen[cap] = true
			caps = append(caps, cap)
		}
	}

	c := &catalog.Component{
		Name:              raw.Name,
		Description:       raw.Description,
		GithubURL:         raw.GithubURL,
		License:           raw.License,
		Capabilities:      caps,
		CompatibilityTags: raw.CompatibilityTags,
		Metadata:          raw.Metadata,
		PopularityScore:   scoreOrDefault(raw.PopularityScore),
		SecurityScore:     scoreOrDefault(raw.SecurityScore),
		CostScore:         scoreOrDefault(raw.CostScore),
		ComplexityScore:   scoreOrDefault(raw.ComplexityScore),
		MaturityScore:     scoreOrDefault(raw.MaturityScore),
		LicenseRiskScore:  scoreOrDefault(raw.LicenseRiskScore),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the persisted catalog snapshot and relationship edges into
// memory, replacing the current in-memory state. Missing files produce an
// empty graph, not an error. Malformed entries are skipped with a warning and
// counted; the rest of the load continues.
func (g *Graph) Load() LoadStats {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.components = make(map[string]*catalog.Component)
	g.edges = make(map[string]map[string]catalog.Relationship)

	stats := LoadStats{}
	g.loadComponents(&stats)
	g.loadRelationships(&stats)

	g.logger.Info("catalog loaded",
		"components", stats.ComponentsLoaded,
		"components_skipped", stats.ComponentsSkipped,
		"relationships", stats.RelationshipsLoaded,
		"relationships_skipped", stats.RelationshipsSkipped,
	)
	return stats
}

func (g *Graph) loadComponents(stats *LoadStats) {
	data, err := os.ReadFile(g.catalogPath)
	if err != nil {
		if os.IsNotExist(err) {
			g.logger.Warn("catalog file not found, starting empty", "path", g.catalogPath)
		} else {
			g.logger.Error("failed to read catalog file", "path", g.catalogPath, "error", err)
		}
		return
	}

	// The exchange format is either a name-keyed mapping or a flat list of
	// objects carrying their own name field.
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(data, &keyed); err == nil {
		for name, entry := range keyed {
			g.loadComponentEntry(name, entry, stats)
		}
		return
	}

	var listed []json.RawMessage
	if err := json.Unmarshal(data, &listed); err != nil {
		g.logger.Error("catalog file is neither a mapping nor a list", "path", g.catalogPath, "error", err)
		return
	}
	for _, entry := range listed {
		g.loadComponentEntry("", entry, stats)
	}
}

func (g *Graph) loadComponentEntry(name string, entry json.RawMessage, stats *LoadStats) {
	c, ok := g.parseComponentEntry(name, entry, g.catalogPath, stats)
	if !ok {
		return
	}
	g.components[c.Name] = c
	stats.ComponentsLoaded++
}

func (g *Graph) parseComponentEntry(name string, entry json.RawMessage, source string, stats *LoadStats) (*catalog.Component, bool) {
	var raw rawComponent
	if err := json.Unmarshal(entry, &raw); err != nil {
		g.logger.Warn("skipping catalog entry", "error", sharederrors.NewMalformedEntryError(source, name, err))
		stats.ComponentsSkipped++
		return nil, false
	}
	if raw.Name == "" {
		raw.Name = name
	}

	c, err := raw.toComponent()
	if err != nil {
		g.logger.Warn("skipping catalog entry", "error", sharederrors.NewMalformedEntryError(source, raw.Name, err))
		stats.ComponentsSkipped++
		return nil, false
	}
	return c, true
}

// ImportComponents merges catalog entries in the exchange format into the
// graph and persists the result. Both the name-keyed mapping form and the
// flat list form are accepted; malformed entries are skipped and counted.
func (g *Graph) ImportComponents(data []byte) (LoadStats, error) {
	stats := LoadStats{}
	var incoming []*catalog.Component

	collect := func(name string, entry json.RawMessage) {
		if c, ok := g.parseComponentEntry(name, entry, "import", &stats); ok {
			incoming = append(incoming, c)
			stats.ComponentsLoaded++
		}
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(data, &keyed); err == nil {
		for name, entry := range keyed {
			collect(name, entry)
		}
	} else {
		var listed []json.RawMessage
		if err := json.Unmarshal(data, &listed); err != nil {
			return stats, fmt.Errorf("catalog payload is neither a mapping nor a list: %w", err)
		}
		for _, entry := range listed {
			collect("", entry)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range incoming {
		g.components[c.Name] = c
	}
	if err := g.save(); err != nil {
		return stats, err
	}
	g.logger.Info("catalog imported",
		"components", stats.ComponentsLoaded,
		"components_skipped", stats.ComponentsSkipped,
	)
	return stats, nil
}

func (g *Graph) loadRelationships(stats *LoadStats) {
	data, err := os.ReadFile(g.relationshipsPath)
	if err != nil {
		if !os.IsNotExist(err) {
			g.logger.Error("failed to read relationships file", "path", g.relationshipsPath, "error", err)
		}
		return
	}

	var edges []catalog.Relationship
	if err := json.Unmarshal(data, &edges); err != nil {
		g.logger.Error("failed to parse relationships file", "path", g.relationshipsPath, "error", err)
		return
	}

	for _, edge := range edges {
		if _, err := catalog.ParseRelationshipType(string(edge.Type)); err != nil {
			g.logger.Warn("skipping relationship with unknown type", "source", edge.Source, "target", edge.Target, "type", edge.Type)
			stats.RelationshipsSkipped++
			continue
		}
		if _, ok := g.components[edge.Source]; !ok {
			g.logger.Warn("skipping relationship with unknown source", "source", edge.Source)
			stats.RelationshipsSkipped++
			continue
		}
		if _, ok := g.components[edge.Target]; !ok {
			g.logger.Warn("skipping relationship with unknown target", "target", edge.Target)
			stats.RelationshipsSkipped++
			continue
		}
		if g.edges[edge.Source] == nil {
			g.edges[edge.Source] = make(map[string]catalog.Relationship)
		}
		g.edges[edge.Source][edge.Target] = edge
		stats.RelationshipsLoaded++
	}
}

// Save persists the full in-memory state. The catalog is written as the
// name-keyed mapping form.
func (g *Graph) Save() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.save()
}

// save persists without locking; callers must hold g.mu.
func (g *Graph) save() error {
	snapshot := make(map[string]*catalog.Component, len(g.components))
	for name, c := range g.components {
		snapshot[name] = c
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := files.WriteJsonFile(g.catalogPath, data); err != nil {
		return fmt.Errorf("failed to persist catalog to %q: %w", g.catalogPath, err)
	}

	edgeData, err := json.MarshalIndent(g.Relationships(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal relationships: %w", err)
	}
	if err := files.WriteJsonFile(g.relationshipsPath, edgeData); err != nil {
		return fmt.Errorf("failed to persist relationships to %q: %w", g.relationshipsPath, err)
	}
	return nil
}

// Clear empties the in-memory state and removes the persisted artifacts.
func (g *Graph) Clear() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.components = make(map[string]*catalog.Component)
	g.edges = make(map[string]map[string]catalog.Relationship)

	for _, path := range []string{g.catalogPath, g.relationshipsPath} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %q: %w", path, err)
		}
	}
	g.logger.Info("graph cleared")
	return nil
}
