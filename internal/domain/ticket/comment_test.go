package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
)

func TestNewComment(t *testing.T) {
	author := &permission.Principal{UserID: "u-1", Name: "Tess Tech", Role: permission.RoleTechnician}

	c, err := NewComment("TK-000001", author, "Replaced fuser", nil)
	require.NoError(t, err)
	assert.Equal(t, "Tess Tech", c.AuthorName())
	assert.Equal(t, permission.RoleTechnician, c.AuthorRole())
	assert.NotNil(t, c.AttachmentURLs())
	assert.True(t, c.IsAuthoredBy("u-1"))
	assert.False(t, c.IsAuthoredBy(""))

	_, err = NewComment("TK-000001", author, "   ", nil)
	assert.Error(t, err)
	_, err = NewComment("", author, "x", nil)
	assert.Error(t, err)
	_, err = NewComment("TK-000001", nil, "x", nil)
	assert.Error(t, err)
}

func TestComment_SoftDelete(t *testing.T) {
	c, err := NewComment("TK-000001", &permission.Principal{UserID: "u-1"}, "x", []string{"https://cdn/a.png"})
	require.NoError(t, err)

	c.SoftDelete()
	require.True(t, c.IsDeleted())
	first := *c.DeletedAt()

	c.SoftDelete()
	assert.Equal(t, first, *c.DeletedAt())
}

func TestNewUpdate(t *testing.T) {
	u, err := NewUpdate("TK-000001", nil, vo.UpdateKindStatusChange, "Status changed from open to resolved")
	require.NoError(t, err)
	assert.Equal(t, vo.UpdateKindStatusChange, u.Kind())
	assert.Nil(t, u.UserID())

	_, err = NewUpdate("TK-000001", nil, vo.UpdateKind("note"), "x")
	assert.Error(t, err)
	_, err = NewUpdate("TK-000001", nil, vo.UpdateKindOther, "")
	assert.Error(t, err)

	r, err := ReconstructUpdate("id", "TK-000001", nil, vo.UpdateKind("legacy"), "m", u.CreatedAt())
	require.NoError(t, err)
	assert.Equal(t, vo.UpdateKindOther, r.Kind())
}
