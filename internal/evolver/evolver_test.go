package evolver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-arch/loom/internal/catalog"
	"github.com/loom-arch/loom/internal/graph"
	"github.com/loom-arch/loom/internal/weaver"
	"github.com/loom-arch/loom/pkg/shared/config"
	sharederrors "github.com/loom-arch/loom/pkg/shared/errors"
)

func newTestGraph(t *testing.T) *graph.Graph {
	t.Helper()
	cfg := &config.Config{
		Data: config.Data{
			Dir:               t.TempDir(),
			CatalogFile:       "catalog.json",
			RelationshipsFile: "relationships.json",
		},
	}
	return graph.New(cfg, hclog.NewNullLogger())
}

func add(t *testing.T, g *graph.Graph, c *catalog.Component) *catalog.Component {
	t.Helper()
	require.NoError(t, g.AddComponent(c))
	return c
}

func seedCatalog(t *testing.T, g *graph.Graph) {
	t.Helper()
	add(t, g, &catalog.Component{Name: "FastAPI", Capabilities: []catalog.Capability{catalog.CapWebFramework},
		PopularityScore: 0.9, SecurityScore: 0.75, License: "MIT"})
	add(t, g, &catalog.Component{Name: "Django", Capabilities: []catalog.Capability{catalog.CapWebFramework},
		PopularityScore: 0.85, SecurityScore: 0.85, License: "BSD"})
	add(t, g, &catalog.Component{Name: "PostgreSQL", Capabilities: []catalog.Capability{catalog.CapDatabase},
		PopularityScore: 0.9, SecurityScore: 0.8, License: "PostgreSQL"})
	add(t, g, &catalog.Component{Name: "MySQL", Capabilities: []catalog.Capability{catalog.CapDatabase},
		PopularityScore: 0.85, SecurityScore: 0.78, License: "GPL"})
	add(t, g, &catalog.Component{Name: "Redis", Capabilities: []catalog.Capability{catalog.CapCache},
		PopularityScore: 0.9, SecurityScore: 0.8, License: "BSD"})
	add(t, g, &catalog.Component{Name: "RabbitMQ", Capabilities: []catalog.Capability{catalog.CapMessageQueue},
		PopularityScore: 0.8, SecurityScore: 0.77, License: "MPL"})
	add(t, g, &catalog.Component{Name: "Apache_Kafka", Capabilities: []catalog.Capability{catalog.CapMessageQueue},
		PopularityScore: 0.85, SecurityScore: 0.84, License: "Apache 2.0"})
	add(t, g, &catalog.Component{Name: "Keycloak", Capabilities: []catalog.Capability{catalog.CapAuthentication},
		PopularityScore: 0.8, SecurityScore: 0.9, License: "Apache 2.0"})
	add(t, g, &catalog.Component{Name: "Ory_Kratos", Capabilities: []catalog.Capability{catalog.CapAuthentication},
		PopularityScore: 0.7, SecurityScore: 0.85, License: "Apache 2.0"})
	add(t, g, &catalog.Component{Name: "Prometheus", Capabilities: []catalog.Capability{catalog.CapMonitoring},
		PopularityScore: 0.85, SecurityScore: 0.85, License: "Apache 2.0"})
	add(t, g, &catalog.Component{Name: "Grafana", Capabilities: []catalog.Capability{catalog.CapMonitoring},
		PopularityScore: 0.85, SecurityScore: 0.8, License: "AGPL"})
}

func pattern(g *graph.Graph, refs ...[2]string) *weaver.Pattern {
	p := weaver.NewPattern("Test Pattern", "a pattern under test", nil)
	for _, ref := range refs {
		c, ok := g.Get(ref[0])
		if !ok {
			panic("unknown test component " + ref[0])
		}
		p.Add(c, ref[1])
	}
	return p
}

func TestEvolveUnknownTransformation(t *testing.T) {
	g := newTestGraph(t)
	e := New(g, hclog.NewNullLogger())

	_, err := e.Evolve(weaver.NewPattern("p", "", nil), "make-faster")
	require.Error(t, err)

	var ite *sharederrors.InvalidTransformationError
	assert.True(t, errors.As(err, &ite))
}

func TestMakeScalableAddsCacheAndQueue(t *testing.T) {
	g := newTestGraph(t)
	seedCatalog(t, g)
	e := New(g, hclog.NewNullLogger())

	p := pattern(g, [2]string{"FastAPI", "API Framework"}, [2]string{"PostgreSQL", "Primary Database"})
	evolved, err := e.Evolve(p, MakeScalable)
	require.NoError(t, err)

	// input pattern untouched
	assert.Len(t, p.Components, 2)

	assert.True(t, evolved.HasComponent("Redis"), "data-intensive pattern gains a cache")
	assert.True(t, evolved.HasComponent("RabbitMQ"), "web pattern without messaging gains a queue")
	assert.NotEmpty(t, evolved.EvolutionNotes)
	assert.Contains(t, evolved.Tags, "scalable")
}

func TestMakeScalableNoApplicableRules(t *testing.T) {
	g := newTestGraph(t)
	seedCatalog(t, g)
	e := New(g, hclog.NewNullLogger())

	// cache-only pattern: no database, no web framework
	p := pattern(g, [2]string{"Redis", "Cache Layer"})
	evolved, err := e.Evolve(p, MakeScalable)
	require.NoError(t, err)

	assert.Empty(t, evolved.EvolutionNotes)
	assert.Len(t, evolved.Components, 1)
	assert.NotContains(t, evolved.Tags, "scalable")
}

func TestAddSecurityUpgradesAndAdditions(t *testing.T) {
	g := newTestGraph(t)
	seedCatalog(t, g)
	e := New(g, hclog.NewNullLogger())

	p := pattern(g, [2]string{"FastAPI", "API Framework"}, [2]string{"MySQL", "Primary Database"})
	evolved, err := e.Evolve(p, AddSecurity)
	require.NoError(t, err)

	assert.True(t, evolved.HasComponent("Django"), "FastAPI upgraded to Django")
	assert.False(t, evolved.HasComponent("FastAPI"))
	assert.True(t, evolved.HasComponent("PostgreSQL"), "MySQL upgraded to PostgreSQL")
	assert.True(t, evolved.HasComponent("Keycloak"), "highest-security authentication added")
	assert.True(t, evolved.HasComponent("Prometheus"))
	assert.True(t, evolved.HasComponent("Grafana"))

	assert.GreaterOrEqual(t, evolved.MeanSecurityScore(), p.MeanSecurityScore())
	assert.Contains(t, evolved.Tags, "high_security")
}

func TestAddSecurityAlreadyUpgraded(t *testing.T) {
	g := newTestGraph(t)
	seedCatalog(t, g)
	e := New(g, hclog.NewNullLogger())

	// already contains the target of every upgrade rule plus auth/monitoring
	p := pattern(g,
		[2]string{"Django", "CMS Framework"},
		[2]string{"PostgreSQL", "Primary Database"},
		[2]string{"Keycloak", "Authentication"},
		[2]string{"Prometheus", "Monitoring"},
	)
	evolved, err := e.Evolve(p, AddSecurity)
	require.NoError(t, err)

	for _, note := range evolved.EvolutionNotes {
		assert.NotContains(t, note, "Upgraded", "no substitution notes expected")
	}
	assert.Len(t, evolved.Components, 4)
	assert.InDelta(t, p.MeanSecurityScore(), evolved.MeanSecurityScore(), 1e-9)
}

func TestAddSecurityUpgradeRequiresStrictlyHigherScore(t *testing.T) {
	g := newTestGraph(t)
	// Django present but with a security score no better than FastAPI's
	add(t, g, &catalog.Component{Name: "FastAPI", Capabilities: []catalog.Capability{catalog.CapWebFramework},
		PopularityScore: 0.9, SecurityScore: 0.9})
	add(t, g, &catalog.Component{Name: "Django", Capabilities: []catalog.Capability{catalog.CapWebFramework},
		PopularityScore: 0.85, SecurityScore: 0.9})
	e := New(g, hclog.NewNullLogger())

	p := pattern(g, [2]string{"FastAPI", "API Framework"})
	evolved, err := e.Evolve(p, AddSecurity)
	require.NoError(t, err)

	assert.True(t, evolved.HasComponent("FastAPI"), "substitution must not apply on equal scores")
}

func TestOptimizeCostDowngradesAndConsolidates(t *testing.T) {
	g := newTestGraph(t)
	seedCatalog(t, g)
	e := New(g, hclog.NewNullLogger())

	p := pattern(g,
		[2]string{"Apache_Kafka", "Event Streaming"},
		[2]string{"Prometheus", "Monitoring"},
		[2]string{"Grafana", "Visualization"},
	)
	evolved, err := e.Evolve(p, OptimizeCost)
	require.NoError(t, err)

	assert.True(t, evolved.HasComponent("RabbitMQ"), "Kafka downgraded to RabbitMQ")
	assert.False(t, evolved.HasComponent("Apache_Kafka"))
	assert.False(t, evolved.HasComponent("Grafana"), "visualization consolidated away")
	assert.True(t, evolved.HasComponent("Prometheus"))
	assert.LessOrEqual(t, PatternCostScore(evolved), PatternCostScore(p))
}

func TestOptimizeCostRestrictiveLicenseSubstitution(t *testing.T) {
	g := newTestGraph(t)
	seedCatalog(t, g)
	add(t, g, &catalog.Component{Name: "MongoDB", Capabilities: []catalog.Capability{catalog.CapDatabase},
		PopularityScore: 0.85, SecurityScore: 0.75, License: "SSPL"})
	e := New(g, hclog.NewNullLogger())

	p := pattern(g, [2]string{"MongoDB", "Document Store"})
	evolved, err := e.Evolve(p, OptimizeCost)
	require.NoError(t, err)

	assert.True(t, evolved.HasComponent("PostgreSQL"))
	assert.False(t, evolved.HasComponent("MongoDB"))
}

func TestComponentCostScore(t *testing.T) {
	testCases := []struct {
		name     string
		c        catalog.Component
		expected float64
	}{
		{name: "base", c: catalog.Component{Name: "Plain"}, expected: 1.0},
		{name: "restrictive license", c: catalog.Component{Name: "MongoDB", License: "SSPL"}, expected: 1.5},
		{name: "resource intensive", c: catalog.Component{Name: "Apache_Kafka"}, expected: 1.3},
		{name: "permissive discount", c: catalog.Component{Name: "Redis", License: "BSD"}, expected: 0.9},
		{name: "agpl restrictive and intensive", c: catalog.Component{Name: "Elasticsearch", License: "AGPL"}, expected: 1.95},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, ComponentCostScore(&tc.c), 1e-9)
		})
	}
}

func TestPatternFileRoundTrip(t *testing.T) {
	g := newTestGraph(t)
	seedCatalog(t, g)

	p := pattern(g, [2]string{"FastAPI", "API Framework"}, [2]string{"PostgreSQL", "Primary Database"})
	p.Tags = []string{"production"}
	p.EvolutionNotes = []string{"initial weave"}

	path := filepath.Join(t.TempDir(), "pattern.json")
	require.NoError(t, SavePattern(p, g, path))

	loaded, err := LoadPattern(path, g, hclog.NewNullLogger())
	require.NoError(t, err)

	require.Len(t, loaded.Components, 2)
	assert.Equal(t, "FastAPI", loaded.Components[0].Component.Name)
	assert.Equal(t, "API Framework", loaded.Components[0].Role)
	assert.Equal(t, "PostgreSQL", loaded.Components[1].Component.Name)
	assert.Equal(t, "Primary Database", loaded.Components[1].Role)
	assert.Equal(t, p.Tags, loaded.Tags)
	assert.Equal(t, p.EvolutionNotes, loaded.EvolutionNotes)
}

func TestLoadPatternSkipsUnresolvableComponents(t *testing.T) {
	g := newTestGraph(t)
	seedCatalog(t, g)

	p := pattern(g, [2]string{"FastAPI", "API Framework"})
	path := filepath.Join(t.TempDir(), "pattern.json")
	require.NoError(t, SavePattern(p, g, path))

	// the catalog changed underneath the pattern file
	require.NoError(t, g.Clear())
	loaded, err := LoadPattern(path, g, hclog.NewNullLogger())
	require.NoError(t, err)
	assert.Empty(t, loaded.Components)
}

func TestLoadPatternNameVariants(t *testing.T) {
	g := newTestGraph(t)
	seedCatalog(t, g)

	raw := `{"name": "p", "components": [{"name": "apache kafka", "role": "Queue"}]}`
	path := filepath.Join(t.TempDir(), "pattern.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	loaded, err := LoadPattern(path, g, hclog.NewNullLogger())
	require.NoError(t, err)
	require.Len(t, loaded.Components, 1)
	assert.Equal(t, "Apache_Kafka", loaded.Components[0].Component.Name)
}
