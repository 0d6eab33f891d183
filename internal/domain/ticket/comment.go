package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

const MaxCommentLength = 5000

// Comment is an append-only entry on a ticket. Author name and role are
// snapshotted at write time.
type Comment struct {
	id             string
	ticketID       string
	authorID       string
	authorName     string
	authorRole     permission.Role
	content        string
	attachmentURLs []string
	createdAt      time.Time
	deletedAt      *time.Time
}

func NewComment(
	ticketID string,
	author *permission.Principal,
	content string,
	attachmentURLs []string,
) (*Comment, error) {
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if author == nil || author.UserID == "" {
		return nil, fmt.Errorf("author is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content cannot be empty")
	}
	if len(content) > MaxCommentLength {
		return nil, fmt.Errorf("content exceeds maximum length of %d characters", MaxCommentLength)
	}
	if attachmentURLs == nil {
		attachmentURLs = []string{}
	}

	return &Comment{
		ticketID:       ticketID,
		authorID:       author.UserID,
		authorName:     author.Name,
		authorRole:     author.Role,
		content:        content,
		attachmentURLs: attachmentURLs,
		createdAt:      biztime.NowUTC(),
	}, nil
}

func ReconstructComment(
	id string,
	ticketID string,
	authorID string,
	authorName string,
	authorRole permission.Role,
	content string,
	attachmentURLs []string,
	createdAt time.Time,
	deletedAt *time.Time,
) (*Comment, error) {
	if id == "" {
		return nil, fmt.Errorf("comment ID cannot be empty")
	}
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if attachmentURLs == nil {
		attachmentURLs = []string{}
	}

	return &Comment{
		id:             id,
		ticketID:       ticketID,
		authorID:       authorID,
		authorName:     authorName,
		authorRole:     authorRole,
		content:        content,
		attachmentURLs: attachmentURLs,
		createdAt:      createdAt,
		deletedAt:      deletedAt,
	}, nil
}

func (c *Comment) ID() string {
	return c.id
}

func (c *Comment) TicketID() string {
	return c.ticketID
}

func (c *Comment) AuthorID() string {
	return c.authorID
}

func (c *Comment) AuthorName() string {
	return c.authorName
}

func (c *Comment) AuthorRole() permission.Role {
	return c.authorRole
}

func (c *Comment) Content() string {
	return c.content
}

func (c *Comment) AttachmentURLs() []string {
	out := make([]string, len(c.attachmentURLs))
	copy(out, c.attachmentURLs)
	return out
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Comment) DeletedAt() *time.Time {
	return c.deletedAt
}

func (c *Comment) IsDeleted() bool {
	return c.deletedAt != nil
}

func (c *Comment) SetID(id string) error {
	if c.id != "" {
		return fmt.Errorf("comment ID is already set")
	}
	if id == "" {
		return fmt.Errorf("comment ID cannot be empty")
	}
	c.id = id
	return nil
}

// IsAuthoredBy reports whether userID wrote the comment.
func (c *Comment) IsAuthoredBy(userID string) bool {
	return userID != "" && c.authorID == userID
}

// SoftDelete marks the comment deleted; repeated calls keep the first timestamp.
func (c *Comment) SoftDelete() {
	if c.deletedAt != nil {
		return
	}
	now := biztime.NowUTC()
	c.deletedAt = &now
}
