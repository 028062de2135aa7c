package enrich

import (
	"context"
	"net/http"

	"github.com/gitsight/go-vcsurl"
	"github.com/google/go-github/v47/github"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/loom-arch/loom/internal/graph"
	"github.com/loom-arch/loom/pkg/shared/config"
)

// unreachableScore is assigned when a repository exists in the catalog but
// cannot be fetched from GitHub.
const unreachableScore = 0.3

// repositoryGetter is the slice of the GitHub API the refresher needs.
type repositoryGetter interface {
	Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
}

// ScoreRefresher recomputes popularity scores from live GitHub star counts
// and fills in missing license fields.
type ScoreRefresher struct {
	graph  *graph.Graph
	repos  repositoryGetter
	logger hclog.Logger
}

// NewScoreRefresher builds a refresher backed by the GitHub API. An API token
// from the config raises the rate limit; without one the client works
// anonymously.
func NewScoreRefresher(cfg *config.Config, g *graph.Graph, logger hclog.Logger) *ScoreRefresher {
	var httpClient *http.Client
	if token := cfg.HttpClient.GithubToken; token != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		))
	}
	client := github.NewClient(httpClient)
	return &ScoreRefresher{graph: g, repos: client.Repositories, logger: logger}
}

// RefreshStats reports the outcome of a score refresh pass.
type RefreshStats struct {
	Updated int
	Skipped int
	Failed  int
}

// Refresh walks every catalog component with a GitHub URL, fetches its star
// count and updates the popularity score. Components without a parseable
// GitHub URL are skipped; unfetchable repositories get a conservative
// fallback score instead of keeping a stale value.
func (r *ScoreRefresher) Refresh(ctx context.Context) (RefreshStats, error) {
	stats := RefreshStats{}
	for _, c := range r.graph.Components() {
		owner, repo, ok := splitGithubURL(c.GithubURL)
		if !ok {
			r.logger.Debug("no usable github url, skipping", "component", c.Name, "url", c.GithubURL)
			stats.Skipped++
			continue
		}

		repository, _, err := r.repos.Get(ctx, owner, repo)
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			r.logger.Warn("failed to fetch repository", "component", c.Name, "repo", owner+"/"+repo, "error", err)
			c.PopularityScore = unreachableScore
			if updateErr := r.graph.AddComponent(c); updateErr != nil {
				return stats, updateErr
			}
			stats.Failed++
			continue
		}

		stars := repository.GetStargazersCount()
		c.PopularityScore = PopularityFromStars(stars)
		if c.License == "" && repository.GetLicense() != nil {
			c.License = repository.GetLicense().GetName()
		}
		if c.Metadata == nil {
			c.Metadata = make(map[string]interface{})
		}
		c.Metadata["github_stars"] = stars

		if err := r.graph.AddComponent(c); err != nil {
			return stats, err
		}
		r.logger.Debug("score refreshed", "component", c.Name, "stars", stars, "popularity", c.PopularityScore)
		stats.Updated++
	}

	r.logger.Info("score refresh complete",
		"updated", stats.Updated,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	return stats, nil
}

// PopularityFromStars maps a raw star count onto the 0..1 popularity scale.
func PopularityFromStars(stars int) float64 {
	switch {
	case stars >= 100000:
		return 1.0
	case stars >= 50000:
		return 0.95
	case stars >= 20000:
		return 0.9
	case stars >= 10000:
		return 0.85
	case stars >= 5000:
		return 0.8
	case stars >= 1000:
		return 0.7
	case stars >= 500:
		return 0.6
	case stars >= 100:
		return 0.5
	default:
		score := float64(stars) / 1000
		if score < 0.1 {
			score = 0.1
		}
		return score
	}
}

// splitGithubURL extracts the owner and repository from a component's GitHub
// URL. Non-GitHub hosts and malformed URLs are rejected.
func splitGithubURL(rawURL string) (owner, repo string, ok bool) {
	if rawURL == "" {
		return "", "", false
	}
	info, err := vcsurl.Parse(rawURL)
	if err != nil || info.Host != "github.com" || info.Username == "" || info.Name == "" {
		return "", "", false
	}
	return info.Username, info.Name, true
}
