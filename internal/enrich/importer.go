package enrich

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/loom-arch/loom/internal/graph"
	"github.com/loom-arch/loom/pkg/shared/config"
	"github.com/loom-arch/loom/pkg/shared/files"
	"github.com/loom-arch/loom/pkg/shared/httpclient"
)

// Importer pulls external catalog documents into the graph.
type Importer struct {
	graph  *graph.Graph
	client *resty.Client
	logger hclog.Logger
}

// NewImporter creates an importer with an HTTP client configured from cfg.
func NewImporter(cfg *config.Config, g *graph.Graph, logger hclog.Logger) *Importer {
	return &Importer{
		graph:  g,
		client: httpclient.InitializeRestyClient(logger, cfg),
		logger: logger,
	}
}

// ImportFromURL fetches a catalog document over HTTP and merges it into the
// graph. The document uses the same exchange format as the persisted catalog.
func (i *Importer) ImportFromURL(url string) (graph.LoadStats, error) {
	resp, err := i.client.R().Get(url)
	if err != nil {
		return graph.LoadStats{}, fmt.Errorf("failed to fetch catalog from %q: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return graph.LoadStats{}, fmt.Errorf("%d on fetching catalog from %q", resp.StatusCode(), url)
	}

	stats, err := i.graph.ImportComponents(resp.Body())
	if err != nil {
		return stats, fmt.Errorf("failed to import catalog from %q: %w", url, err)
	}
	i.logger.Info("catalog fetched", "url", url, "imported", stats.ComponentsLoaded, "skipped", stats.ComponentsSkipped)
	return stats, nil
}

// ImportFromFile merges a local catalog document into the graph.
func (i *Importer) ImportFromFile(path string) (graph.LoadStats, error) {
	expanded, err := files.ExpandPath(path)
	if err != nil {
		return graph.LoadStats{}, fmt.Errorf("failed to expand catalog path %q: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return graph.LoadStats{}, fmt.Errorf("failed to read catalog file %q: %w", path, err)
	}

	stats, err := i.graph.ImportComponents(data)
	if err != nil {
		return stats, fmt.Errorf("failed to import catalog from %q: %w", path, err)
	}
	return stats, nil
}
