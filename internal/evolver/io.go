package evolver

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/loom-arch/loom/internal/graph"
	"github.com/loom-arch/loom/internal/weaver"
	"github.com/loom-arch/loom/pkg/shared/files"
)

// PatternFile is the pattern exchange format shared with the auditor file
// operations. Capability lists are informational on reload: the loader
// re-resolves every component against the live catalog by name.
type PatternFile struct {
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Components     []PatternFileComponent `json:"components"`
	Connections    []weaver.Connection    `json:"connections"`
	Tags           []string               `json:"tags"`
	EvolutionNotes []string               `json:"evolution_notes"`
}

type PatternFileComponent struct {
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities"`
}

// SavePattern writes the pattern to path in the exchange format. The
// relationship edges among the pattern's components are dumped alongside for
// consumers of the file; the loader recomputes them from the live catalog.
func SavePattern(p *weaver.Pattern, g *graph.Graph, path string) error {
	out := PatternFile{
		Name:           p.Name,
		Description:    p.Description,
		Components:     make([]PatternFileComponent, 0, len(p.Components)),
		Connections:    p.Connections(g),
		Tags:           p.Tags,
		EvolutionNotes: p.EvolutionNotes,
	}
	for _, ref := range p.Components {
		caps := make([]string, 0, len(ref.Component.Capabilities))
		for _, cap := range ref.Component.Capabilities {
			caps = append(caps, string(cap))
		}
		out.Components = append(out.Components, PatternFileComponent{
			Name:         ref.Component.Name,
			Role:         ref.Role,
			Capabilities: caps,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pattern %q: %w", p.Name, err)
	}
	if err := files.WriteJsonFile(path, data); err != nil {
		return fmt.Errorf("failed to save pattern to %q: %w", path, err)
	}
	return nil
}

// LoadPattern reads a pattern file and resolves its components against the
// live catalog, tolerating space/underscore and case variants of the names.
// Unresolvable components are skipped with a warning rather than aborting the
// load.
func LoadPattern(path string, g *graph.Graph, logger hclog.Logger) (*weaver.Pattern, error) {
	expanded, err := files.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand pattern path %q: %w", path, err)
	}
	if err := files.ValidatePath(expanded); err != nil {
		return nil, fmt.Errorf("invalid pattern file %q: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file %q: %w", path, err)
	}

	var in PatternFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse pattern file %q: %w", path, err)
	}

	name := in.Name
	if name == "" {
		name = "Unnamed Pattern"
	}
	p := weaver.NewPattern(name, in.Description, nil)
	p.Tags = in.Tags
	p.EvolutionNotes = in.EvolutionNotes

	for _, entry := range in.Components {
		component, ok := g.Resolve(entry.Name)
		if !ok {
			logger.Warn("skipping unresolvable pattern component", "component", entry.Name, "path", path)
			continue
		}
		role := entry.Role
		if role == "" {
			role = "Unknown"
		}
		p.Add(component, role)
	}

	return p, nil
}
