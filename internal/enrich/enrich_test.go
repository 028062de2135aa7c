package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-github/v47/github"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loom-arch/loom/internal/catalog"
	"github.com/loom-arch/loom/internal/graph"
	"github.com/loom-arch/loom/pkg/shared/config"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Data: config.Data{
			Dir:               t.TempDir(),
			CatalogFile:       "catalog.json",
			RelationshipsFile: "relationships.json",
		},
	}
}

func newTestGraph(t *testing.T, cfg *config.Config) *graph.Graph {
	t.Helper()
	return graph.New(cfg, hclog.NewNullLogger())
}

func TestPopularityFromStars(t *testing.T) {
	tests := []struct {
		stars int
		want  float64
	}{
		{150000, 1.0},
		{100000, 1.0},
		{60000, 0.95},
		{25000, 0.9},
		{12000, 0.85},
		{7000, 0.8},
		{2000, 0.7},
		{600, 0.6},
		{150, 0.5},
		{50, 0.1},
		{0, 0.1},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d stars", tc.stars), func(t *testing.T) {
			assert.InDelta(t, tc.want, PopularityFromStars(tc.stars), 1e-9)
		})
	}
}

func TestSplitGithubURL(t *testing.T) {
	tests := []struct {
		url       string
		wantOwner string
		wantRepo  string
		wantOK    bool
	}{
		{"https://github.com/redis/redis", "redis", "redis", true},
		{"https://github.com/apache/kafka", "apache", "kafka", true},
		{"https://gitlab.com/group/project", "", "", false},
		{"", "", "", false},
		{"not a url at all", "", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			owner, repo, ok := splitGithubURL(tc.url)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantOwner, owner)
				assert.Equal(t, tc.wantRepo, repo)
			}
		})
	}
}

type fakeRepos struct {
	stars map[string]int
}

func (f *fakeRepos) Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error) {
	key := owner + "/" + repo
	stars, ok := f.stars[key]
	if !ok {
		return nil, nil, fmt.Errorf("repository %q not found", key)
	}
	return &github.Repository{
		StargazersCount: github.Int(stars),
		License:         &github.License{Name: github.String("MIT")},
	}, nil, nil
}

func TestRefreshScores(t *testing.T) {
	cfg := newTestConfig(t)
	g := newTestGraph(t, cfg)
	require.NoError(t, g.AddComponent(&catalog.Component{
		Name:            "Redis",
		GithubURL:       "https://github.com/redis/redis",
		License:         "BSD",
		Capabilities:    []catalog.Capability{catalog.CapCache},
		PopularityScore: 0.5,
	}))
	require.NoError(t, g.AddComponent(&catalog.Component{
		Name:            "Ghostware",
		GithubURL:       "https://github.com/nobody/ghostware",
		Capabilities:    []catalog.Capability{catalog.CapSearch},
		PopularityScore: 0.5,
	}))
	require.NoError(t, g.AddComponent(&catalog.Component{
		Name:         "InHouseTool",
		Capabilities: []catalog.Capability{catalog.CapMonitoring},
	}))

	r := &ScoreRefresher{
		graph:  g,
		repos:  &fakeRepos{stars: map[string]int{"redis/redis": 60000}},
		logger: hclog.NewNullLogger(),
	}

	stats, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RefreshStats{Updated: 1, Skipped: 1, Failed: 1}, stats)

	redis, ok := g.Get("Redis")
	require.True(t, ok)
	assert.InDelta(t, 0.95, redis.PopularityScore, 1e-9)
	assert.Equal(t, "BSD", redis.License, "existing license must not be overwritten")
	assert.Equal(t, 60000, redis.Metadata["github_stars"])

	ghost, ok := g.Get("Ghostware")
	require.True(t, ok)
	assert.InDelta(t, unreachableScore, ghost.PopularityScore, 1e-9)
}

func TestRefreshFillsMissingLicense(t *testing.T) {
	cfg := newTestConfig(t)
	g := newTestGraph(t, cfg)
	require.NoError(t, g.AddComponent(&catalog.Component{
		Name:         "FastAPI",
		GithubURL:    "https://github.com/tiangolo/fastapi",
		Capabilities: []catalog.Capability{catalog.CapWebFramework},
	}))

	r := &ScoreRefresher{
		graph:  g,
		repos:  &fakeRepos{stars: map[string]int{"tiangolo/fastapi": 70000}},
		logger: hclog.NewNullLogger(),
	}
	_, err := r.Refresh(context.Background())
	require.NoError(t, err)

	fastapi, ok := g.Get("FastAPI")
	require.True(t, ok)
	assert.Equal(t, "MIT", fastapi.License)
}

const catalogDocument = `{
  "Redis": {
    "description": "In-memory data store",
    "license": "BSD",
    "capabilities": ["cache"],
    "popularity_score": 0.9
  },
  "Broken": {
    "capabilities": ["does_not_exist"]
  }
}`

func TestImportFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, catalogDocument)
	}))
	defer server.Close()

	cfg := newTestConfig(t)
	g := newTestGraph(t, cfg)
	importer := NewImporter(cfg, g, hclog.NewNullLogger())

	stats, err := importer.ImportFromURL(server.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ComponentsLoaded)
	assert.Equal(t, 1, stats.ComponentsSkipped)

	redis, ok := g.Get("Redis")
	require.True(t, ok)
	assert.InDelta(t, 0.9, redis.PopularityScore, 1e-9)
	assert.InDelta(t, catalog.DefaultScore, redis.SecurityScore, 1e-9)
}

func TestImportFromURLServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := newTestConfig(t)
	cfg.HttpClient.RetryCount = 0
	g := newTestGraph(t, cfg)
	importer := NewImporter(cfg, g, hclog.NewNullLogger())

	_, err := importer.ImportFromURL(server.URL)
	require.Error(t, err)
	assert.Equal(t, 0, g.Len())
}

func TestImportFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogDocument), 0644))

	cfg := newTestConfig(t)
	g := newTestGraph(t, cfg)
	importer := NewImporter(cfg, g, hclog.NewNullLogger())

	stats, err := importer.ImportFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ComponentsLoaded)

	_, err = importer.ImportFromFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
