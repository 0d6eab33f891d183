package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{" Tess@Example.COM ", "tess@example.com", false},
		{"", "", true},
		{"no-at-sign", "", true},
		{"a@b", "", true},
		{strings.Repeat("a", 250) + "@x.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			e, err := NewEmail(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.String())
		})
	}
}

func TestNormalizeName(t *testing.T) {
	n, err := NormalizeName("  Tess   Tech ")
	require.NoError(t, err)
	assert.Equal(t, "Tess Tech", n)

	_, err = NormalizeName("   ")
	assert.Error(t, err)

	_, err = NormalizeName(strings.Repeat("é", MaxNameLength+1))
	assert.Error(t, err)

	n, err = NormalizeName(strings.Repeat("é", MaxNameLength))
	require.NoError(t, err)
	assert.Equal(t, MaxNameLength, len([]rune(n)))
}
