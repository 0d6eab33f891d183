package servicetag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceTag(t *testing.T) {
	s, err := NewServiceTag("client-1", "  PR-001 ", "Front desk printer", "Printer", "Lobby")
	require.NoError(t, err)
	assert.Equal(t, "PR-001", s.Tag())
	assert.Equal(t, "client-1", s.ClientID())

	_, err = NewServiceTag("", "PR-001", "", "", "")
	assert.Error(t, err)
	_, err = NewServiceTag("client-1", " ", "", "", "")
	assert.Error(t, err)
	_, err = NewServiceTag("client-1", strings.Repeat("x", MaxTagLength+1), "", "", "")
	assert.Error(t, err)
}

func TestServiceTag_Update(t *testing.T) {
	s, err := NewServiceTag("client-1", "PR-001", "", "Unknown", "Unknown")
	require.NoError(t, err)

	blank := "  "
	assert.Error(t, s.Update(&blank, nil, nil, nil))
	assert.Equal(t, "PR-001", s.Tag())

	hw, loc := "Laser printer", "Floor 2"
	require.NoError(t, s.Update(nil, nil, &hw, &loc))
	assert.Equal(t, "Laser printer", s.HardwareType())
	assert.Equal(t, "Floor 2", s.Location())
}
