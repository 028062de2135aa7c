package graph

import (
	"sort"
	"strings"

	"github.com/loom-arch/loom/internal/catalog"
)

// SearchResult pairs a matching component with its relevance score.
type SearchResult struct {
	Component *catalog.Component
	Score     float64
}

// Search performs a case-insensitive substring match against component name
// (weight 0.5), description (0.3) and capability values (0.2, counted once
// even when several capabilities match). Zero-score entries are excluded and
// results are sorted by descending score.
func (g *Graph) Search(query string) []SearchResult {
	query = strings.ToLower(query)

	var results []SearchResult
	for _, c := range g.Components() {
		score := 0.0

		if strings.Contains(strings.ToLower(c.Name), query) {
			score += 0.5
		}
		if c.Description != "" && strings.Contains(strings.ToLower(c.Description), query) {
			score += 0.3
		}
		for _, cap := range c.Capabilities {
			if strings.Contains(string(cap), query) {
				score += 0.2
				break
			}
		}

		if score > 0 {
			results = append(results, SearchResult{Component: c, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Stats summarizes the graph contents.
type Stats struct {
	Components         int `json:"components"`
	Relationships      int `json:"relationships"`
	CapabilityCoverage int `json:"capability_coverage"`
}

// Stats returns component and edge counts plus the number of distinct
// capabilities covered by the catalog.
func (g *Graph) Stats() Stats {
	caps := make(map[catalog.Capability]bool)
	for _, c := range g.components {
		for _, cap := range c.Capabilities {
			caps[cap] = true
		}
	}

	edgeCount := 0
	for _, byTarget := range g.edges {
		edgeCount += len(byTarget)
	}

	return Stats{
		Components:         len(g.components),
		Relationships:      edgeCount,
		CapabilityCoverage: len(caps),
	}
}
