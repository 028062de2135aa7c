package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharederrors "github.com/loom-arch/loom/pkg/shared/errors"
)

func TestParseCapability(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Capability
		wantErr  bool
	}{
		{name: "exact value", input: "database", expected: CapDatabase},
		{name: "mixed case", input: "Web_Framework", expected: CapWebFramework},
		{name: "upper case", input: "CACHE", expected: CapCache},
		{name: "surrounding whitespace", input: "  monitoring ", expected: CapMonitoring},
		{name: "unknown value", input: "quantum_blockchain", wantErr: true},
		{name: "empty value", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCapability(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseRelationshipType(t *testing.T) {
	rt, err := ParseRelationshipType("Compatible_With")
	require.NoError(t, err)
	assert.Equal(t, RelCompatibleWith, rt)

	_, err = ParseRelationshipType("friends_with")
	assert.Error(t, err)
}

func TestCapabilityTitle(t *testing.T) {
	assert.Equal(t, "Message Queue", CapMessageQueue.Title())
	assert.Equal(t, "Database", CapDatabase.Title())
}

func TestComponentValidate(t *testing.T) {
	c := &Component{Name: "Redis", Capabilities: []Capability{CapCache}}
	assert.NoError(t, c.Validate())

	c = &Component{Capabilities: []Capability{CapCache}}
	assert.Error(t, c.Validate())

	c = &Component{Name: "X", Capabilities: []Capability{"not_a_capability"}}
	assert.Error(t, c.Validate())
}

func TestNewIntent(t *testing.T) {
	intent, err := NewIntent("a web app", []string{"Web_Framework", "database", "database"}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, []Capability{CapWebFramework, CapDatabase}, intent.RequiredCapabilities)
	assert.Equal(t, "medium", intent.Priority)
	assert.True(t, intent.Requires(CapDatabase))
	assert.False(t, intent.Requires(CapCache))
}

func TestNewIntentRejectsEmptyCapabilities(t *testing.T) {
	_, err := NewIntent("anything", nil, nil, "high")
	require.Error(t, err)

	var verr *sharederrors.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestNewIntentRejectsUnknownCapability(t *testing.T) {
	_, err := NewIntent("anything", []string{"teleportation"}, nil, "")
	assert.Error(t, err)
}
