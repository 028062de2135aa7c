package catalog

import (
	"fmt"
	"strings"
)

// RelationshipType is the closed set of directed edge types between
// components.
type RelationshipType string

const (
	RelUses             RelationshipType = "uses"
	RelCompatibleWith   RelationshipType = "compatible_with"
	RelIncompatibleWith RelationshipType = "incompatible_with"
	RelSimilarTo        RelationshipType = "similar_to"
	RelDependsOn        RelationshipType = "depends_on"
	RelAlternativeTo    RelationshipType = "alternative_to"
	RelExtends          RelationshipType = "extends"
)

var allRelationshipTypes = []RelationshipType{
	RelUses, RelCompatibleWith, RelIncompatibleWith, RelSimilarTo,
	RelDependsOn, RelAlternativeTo, RelExtends,
}

// ParseRelationshipType resolves a textual relationship type
// case-insensitively against the closed set.
func ParseRelationshipType(value string) (RelationshipType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, rt := range allRelationshipTypes {
		if string(rt) == normalized {
			return rt, nil
		}
	}
	return "", fmt.Errorf("unknown relationship type %q", value)
}

// Relationship is a directed, typed edge between two component names. Both
// endpoints must already exist as components when the edge is added.
type Relationship struct {
	Source   string           `json:"source"`
	Target   string           `json:"target"`
	Type     RelationshipType `json:"relationship_type"`
	Strength float64          `json:"strength"`
	Evidence string           `json:"evidence,omitempty"`
}
