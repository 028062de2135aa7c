package catalog

import (
	"github.com/go-playground/validator/v10"

	sharederrors "github.com/loom-arch/loom/pkg/shared/errors"
)

var validate = validator.New()

// Intent is a capability-based request describing what an architecture must
// satisfy. Immutable once constructed.
type Intent struct {
	Description          string                 `json:"description" validate:"required"`
	RequiredCapabilities []Capability           `json:"required_capabilities" validate:"required,min=1"`
	Constraints          map[string]interface{} `json:"constraints,omitempty"`
	Priority             string                 `json:"priority"`
}

// NewIntent builds a validated Intent from raw capability strings. Capability
// values resolve case-insensitively; duplicates are removed. An empty
// capability list is a constraint violation rejected at this boundary.
func NewIntent(description string, capabilities []string, constraints map[string]interface{}, priority string) (*Intent, error) {
	seen := make(map[Capability]bool, len(capabilities))
	caps := make([]Capability, 0, len(capabilities))
	for _, raw := range capabilities {
		cap, err := ParseCapability(raw)
		if err != nil {
			return nil, sharederrors.NewValidationError("intent", err)
		}
		if !seen[cap] {
			seen[cap] = true
			caps = append(caps, cap)
		}
	}

	if priority == "" {
		priority = "medium"
	}

	intent := &Intent{
		Description:          description,
		RequiredCapabilities: caps,
		Constraints:          constraints,
		Priority:             priority,
	}
	if err := validate.Struct(intent); err != nil {
		return nil, sharederrors.NewValidationError("intent", err)
	}
	return intent, nil
}

// Requires reports whether the intent explicitly asks for the capability.
func (i *Intent) Requires(cap Capability) bool {
	for _, have := range i.RequiredCapabilities {
		if have == cap {
			return true
		}
	}
	return false
}
