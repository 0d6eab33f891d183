package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:     "emphasis and line breaks",
			input:    "Printer **jammed**\nagain",
			contains: []string{"<strong>jammed</strong>", "<br"},
		},
		{
			name:        "script stripped",
			input:       "hello <script>alert(1)</script>",
			contains:    []string{"hello"},
			notContains: []string{"<script"},
		},
		{
			name:        "javascript link dropped",
			input:       "[click](javascript:alert(1))",
			notContains: []string{"javascript:"},
		},
		{
			name:     "external link gets nofollow",
			input:    "see https://example.com/manual",
			contains: []string{`href="https://example.com/manual"`, "nofollow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.input)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}
