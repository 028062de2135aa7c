package graph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-arch/loom/internal/catalog"
	"github.com/loom-arch/loom/pkg/shared/config"
	sharederrors "github.com/loom-arch/loom/pkg/shared/errors"
)

func newTestGraph(t *testing.T) *Graph {
	t.Helper()
	cfg := &config.Config{
		Data: config.Data{
			Dir:               t.TempDir(),
			CatalogFile:       "catalog.json",
			RelationshipsFile: "relationships.json",
		},
	}
	return New(cfg, hclog.NewNullLogger())
}

func addComponent(t *testing.T, g *Graph, name string, caps ...catalog.Capability) *catalog.Component {
	t.Helper()
	c := &catalog.Component{
		Name:            name,
		Capabilities:    caps,
		PopularityScore: catalog.DefaultScore,
		SecurityScore:   catalog.DefaultScore,
	}
	require.NoError(t, g.AddComponent(c))
	return c
}

func TestAddComponentAndGet(t *testing.T) {
	g := newTestGraph(t)
	addComponent(t, g, "Redis", catalog.CapCache)

	c, ok := g.Get("Redis")
	require.True(t, ok)
	assert.Equal(t, "Redis", c.Name)

	c, ok = g.Get("redis")
	require.True(t, ok)
	assert.Equal(t, "Redis", c.Name)

	_, ok = g.Get("Memcached")
	assert.False(t, ok)
}

func TestResolveNameVariants(t *testing.T) {
	g := newTestGraph(t)
	addComponent(t, g, "Apache_Kafka", catalog.CapMessageQueue)

	for _, name := range []string{"Apache_Kafka", "Apache Kafka", "apache_kafka"} {
		c, ok := g.Resolve(name)
		require.True(t, ok, "variant %q", name)
		assert.Equal(t, "Apache_Kafka", c.Name)
	}
}

func TestFindByCapability(t *testing.T) {
	g := newTestGraph(t)
	addComponent(t, g, "Redis", catalog.CapCache)
	addComponent(t, g, "PostgreSQL", catalog.CapDatabase)

	matches := g.FindByCapability(catalog.CapCache)
	require.Len(t, matches, 1)
	assert.Equal(t, "Redis", matches[0].Name)

	assert.Empty(t, g.FindByCapability(catalog.CapMonitoring))
}

func TestAddRelationshipUnknownEndpoint(t *testing.T) {
	g := newTestGraph(t)
	addComponent(t, g, "Redis", catalog.CapCache)

	err := g.AddRelationship(catalog.Relationship{
		Source: "Redis", Target: "Nope", Type: catalog.RelCompatibleWith, Strength: 0.9,
	})
	require.Error(t, err)

	var nfe *sharederrors.NotFoundError
	assert.True(t, errors.As(err, &nfe))

	// no edge was added
	_, ok := g.Edge("Redis", "Nope")
	assert.False(t, ok)
}

func TestRelationshipQueries(t *testing.T) {
	g := newTestGraph(t)
	addComponent(t, g, "FastAPI", catalog.CapWebFramework)
	addComponent(t, g, "PostgreSQL", catalog.CapDatabase)
	addComponent(t, g, "MySQL", catalog.CapDatabase)

	require.NoError(t, g.AddRelationship(catalog.Relationship{
		Source: "FastAPI", Target: "PostgreSQL", Type: catalog.RelCompatibleWith, Strength: 0.9,
	}))
	require.NoError(t, g.AddRelationship(catalog.Relationship{
		Source: "PostgreSQL", Target: "MySQL", Type: catalog.RelAlternativeTo, Strength: 0.8,
	}))

	assert.Equal(t, []string{"PostgreSQL"}, g.CompatibleComponents("FastAPI"))
	assert.Equal(t, []string{"MySQL"}, g.Alternatives("PostgreSQL"))
	assert.Empty(t, g.CompatibleComponents("PostgreSQL"))

	edge, ok := g.Edge("FastAPI", "PostgreSQL")
	require.True(t, ok)
	assert.InDelta(t, 0.9, edge.Strength, 1e-9)
}

func TestPersistenceRoundTrip(t *testing.T) {
	cfg := &config.Config{
		Data: config.Data{
			Dir:               t.TempDir(),
			CatalogFile:       "catalog.json",
			RelationshipsFile: "relationships.json",
		},
	}
	g := New(cfg, hclog.NewNullLogger())
	addComponent(t, g, "Redis", catalog.CapCache)
	addComponent(t, g, "FastAPI", catalog.CapWebFramework)
	require.NoError(t, g.AddRelationship(catalog.Relationship{
		Source: "FastAPI", Target: "Redis", Type: catalog.RelCompatibleWith, Strength: 0.85,
	}))

	reloaded := New(cfg, hclog.NewNullLogger())
	stats := reloaded.Load()
	assert.Equal(t, 2, stats.ComponentsLoaded)
	assert.Equal(t, 1, stats.RelationshipsLoaded)

	c, ok := reloaded.Get("Redis")
	require.True(t, ok)
	assert.True(t, c.HasCapability(catalog.CapCache))

	edge, ok := reloaded.Edge("FastAPI", "Redis")
	require.True(t, ok)
	assert.Equal(t, catalog.RelCompatibleWith, edge.Type)
}

func TestLoadMissingFileYieldsEmptyGraph(t *testing.T) {
	g := newTestGraph(t)
	stats := g.Load()
	assert.Equal(t, LoadStats{}, stats)
	assert.Equal(t, 0, g.Len())
}

func TestLoadSkipsMalformedEntries(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Data: config.Data{Dir: dir, CatalogFile: "catalog.json", RelationshipsFile: "relationships.json"},
	}

	// one good entry, one with an unknown capability, one structurally broken
	raw := `{
		"Redis": {"description": "cache", "capabilities": ["cache"], "popularity_score": 0.9},
		"Broken": {"capabilities": ["made_up_capability"]},
		"Worse": ["not", "an", "object"]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.json"), []byte(raw), 0644))

	g := New(cfg, hclog.NewNullLogger())
	stats := g.Load()
	assert.Equal(t, 1, stats.ComponentsLoaded)
	assert.Equal(t, 2, stats.ComponentsSkipped)

	c, ok := g.Get("Redis")
	require.True(t, ok)
	assert.InDelta(t, 0.9, c.PopularityScore, 1e-9)
	// absent scores default to 0.5
	assert.InDelta(t, catalog.DefaultScore, c.SecurityScore, 1e-9)
}

func TestLoadListForm(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Data: config.Data{Dir: dir, CatalogFile: "catalog.json", RelationshipsFile: "relationships.json"},
	}

	raw := `[{"name": "Redis", "capabilities": ["cache"]}, {"name": "PostgreSQL", "capabilities": ["database"]}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.json"), []byte(raw), 0644))

	g := New(cfg, hclog.NewNullLogger())
	stats := g.Load()
	assert.Equal(t, 2, stats.ComponentsLoaded)
}

func TestSearch(t *testing.T) {
	g := newTestGraph(t)
	require.NoError(t, g.AddComponent(&catalog.Component{
		Name:         "Redis",
		Description:  "In-memory data store used as cache",
		Capabilities: []catalog.Capability{catalog.CapCache},
	}))
	require.NoError(t, g.AddComponent(&catalog.Component{
		Name:         "PostgreSQL",
		Description:  "Relational database",
		Capabilities: []catalog.Capability{catalog.CapDatabase},
	}))

	results := g.Search("redis")
	require.Len(t, results, 1)
	assert.Equal(t, "Redis", results[0].Component.Name)
	// name match + capability miss + description miss
	assert.InDelta(t, 0.5, results[0].Score, 1e-9)

	// "cache" hits Redis description and capability
	results = g.Search("cache")
	require.Len(t, results, 1)
	assert.InDelta(t, 0.5, results[0].Score, 1e-9)

	assert.Empty(t, g.Search("zzz-nonexistent"))
}

func TestClear(t *testing.T) {
	g := newTestGraph(t)
	addComponent(t, g, "Redis", catalog.CapCache)

	require.NoError(t, g.Clear())
	assert.Equal(t, 0, g.Len())

	_, err := os.Stat(g.catalogPath)
	assert.True(t, os.IsNotExist(err))
}

func TestStats(t *testing.T) {
	g := newTestGraph(t)
	addComponent(t, g, "Redis", catalog.CapCache)
	addComponent(t, g, "PostgreSQL", catalog.CapDatabase)
	require.NoError(t, g.AddRelationship(catalog.Relationship{
		Source: "Redis", Target: "PostgreSQL", Type: catalog.RelCompatibleWith, Strength: 0.8,
	}))

	stats := g.Stats()
	assert.Equal(t, 2, stats.Components)
	assert.Equal(t, 1, stats.Relationships)
	assert.Equal(t, 2, stats.CapabilityCoverage)
}
