package catalog

import "fmt"

// DefaultScore is assumed for any scalar score absent from a catalog entry.
const DefaultScore = 0.5

// Component is one cataloged OSS building block. The name is the graph node
// key and must be unique within a catalog snapshot. Components are shared,
// read-only values once loaded; patterns reference them without copying.
type Component struct {
	Name              string                 `json:"name"`
	Description       string                 `json:"description"`
	GithubURL         string                 `json:"github_url,omitempty"`
	License           string                 `json:"license,omitempty"`
	Capabilities      []Capability           `json:"capabilities"`
	CompatibilityTags []string               `json:"compatibility_tags,omitempty"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`

	PopularityScore  float64 `json:"popularity_score"`
	SecurityScore    float64 `json:"security_score"`
	CostScore        float64 `json:"cost_score"`
	ComplexityScore  float64 `json:"complexity_score"`
	MaturityScore    float64 `json:"maturity_score"`
	LicenseRiskScore float64 `json:"license_risk_score"`
}

// Validate checks the component invariants: a non-empty name and known
// capability values.
func (c *Component) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("component name must not be empty")
	}
	for _, cap := range c.Capabilities {
		if _, err := ParseCapability(string(cap)); err != nil {
			return err
		}
	}
	return nil
}

// HasCapability reports whether the component advertises the capability.
// Duplicate entries in the capability list are tolerated; membership is what
// matters for querying.
func (c *Component) HasCapability(cap Capability) bool {
	for _, have := range c.Capabilities {
		if have == cap {
			return true
		}
	}
	return false
}
