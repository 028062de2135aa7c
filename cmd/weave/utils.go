package weave

import (
	"fmt"
	"strings"

	"github.com/loom-arch/loom/internal/catalog"
	"github.com/loom-arch/loom/internal/graph"
	"github.com/loom-arch/loom/internal/weaver"
)

// printPattern renders one candidate pattern with its metrics and the
// relationship edges among its components.
func printPattern(p *weaver.Pattern, g *graph.Graph) {
	metrics := p.Metrics(g)
	fmt.Printf("%s\n", p.Name)
	if p.Description != "" {
		fmt.Printf("    %s\n", p.Description)
	}
	fmt.Printf("    confidence: %.2f  complexity: %.2f\n", metrics.Confidence, metrics.Complexity)

	fmt.Println("    Components:")
	for _, ref := range p.Components {
		fmt.Printf("      - %s (%s)\n", ref.Component.Name, ref.Role)
	}

	if connections := p.Connections(g); len(connections) > 0 {
		fmt.Println("    Connections:")
		for _, conn := range connections {
			fmt.Printf("      - %s -> %s [%s %.2f]\n", conn.From, conn.To, conn.Type, conn.Strength)
		}
	}

	if len(p.Tags) > 0 {
		fmt.Printf("    Tags: %s\n", strings.Join(p.Tags, ", "))
	}
}

// capabilityList renders the closed capability set for the long help text.
func capabilityList() string {
	values := make([]string, 0, len(catalog.Capabilities()))
	for _, cap := range catalog.Capabilities() {
		values = append(values, string(cap))
	}
	return strings.Join(values, "\n  ")
}
