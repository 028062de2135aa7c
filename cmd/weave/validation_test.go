package weave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateWeaveArgs(t *testing.T) {
	tests := []struct {
		name    string
		options RunOptionsWeave
		args    []string
		wantErr string
	}{
		{
			name:    "valid options",
			options: RunOptionsWeave{Description: "web shop", Capabilities: []string{"web_framework"}},
		},
		{
			name:    "positional arguments rejected",
			options: RunOptionsWeave{Description: "web shop", Capabilities: []string{"web_framework"}},
			args:    []string{"extra"},
			wantErr: "takes flags only",
		},
		{
			name:    "missing description",
			options: RunOptionsWeave{Capabilities: []string{"web_framework"}},
			wantErr: "'description' flag",
		},
		{
			name:    "missing capabilities",
			options: RunOptionsWeave{Description: "web shop"},
			wantErr: "'capability' flag",
		},
		{
			name:    "unknown priority",
			options: RunOptionsWeave{Description: "web shop", Capabilities: []string{"database"}, Priority: "urgent"},
			wantErr: "unknown priority",
		},
		{
			name:    "negative top",
			options: RunOptionsWeave{Description: "web shop", Capabilities: []string{"database"}, Top: -1},
			wantErr: "'top' flag",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateWeaveArgs(&tc.options, tc.args)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}
