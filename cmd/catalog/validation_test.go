package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAddArgs(t *testing.T) {
	tests := []struct {
		name    string
		options RunOptionsAdd
		wantErr string
	}{
		{
			name: "valid options",
			options: RunOptionsAdd{
				Name:         "Redis",
				Capabilities: []string{"cache"},
			},
		},
		{
			name:    "missing name",
			options: RunOptionsAdd{Capabilities: []string{"cache"}},
			wantErr: "'name' flag",
		},
		{
			name:    "missing capabilities",
			options: RunOptionsAdd{Name: "Redis"},
			wantErr: "'capability' flag",
		},
		{
			name: "score out of range",
			options: RunOptionsAdd{
				Name:          "Redis",
				Capabilities:  []string{"cache"},
				SecurityScore: 1.5,
			},
			wantErr: "within [0, 1]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateAddArgs(&tc.options, nil)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidateImportArgs(t *testing.T) {
	tests := []struct {
		name    string
		options RunOptionsImport
		wantErr string
	}{
		{
			name:    "url form",
			options: RunOptionsImport{URL: "https://example.com/components.json"},
		},
		{
			name:    "file form",
			options: RunOptionsImport{File: "./components.json"},
		},
		{
			name:    "neither source",
			options: RunOptionsImport{},
			wantErr: "either the 'url' or the 'file' flag",
		},
		{
			name:    "both sources",
			options: RunOptionsImport{URL: "https://example.com/a.json", File: "./b.json"},
			wantErr: "mutually exclusive",
		},
		{
			name:    "invalid url",
			options: RunOptionsImport{URL: "not-a-url"},
			wantErr: "not valid",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateImportArgs(&tc.options, nil)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}
