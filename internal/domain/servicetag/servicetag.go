package servicetag

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

const MaxTagLength = 100

// ServiceTag is a serialized hardware asset owned by a client. The tag string
// is unique within its client.
type ServiceTag struct {
	id           string
	clientID     string
	tag          string
	description  string
	hardwareType string
	location     string
	createdAt    time.Time
	updatedAt    time.Time
}

// NormalizeTag trims the tag and applies Unicode NFC.
func NormalizeTag(tag string) string {
	return norm.NFC.String(strings.TrimSpace(tag))
}

func validateTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("tag is required")
	}
	if len(tag) > MaxTagLength {
		return fmt.Errorf("tag exceeds maximum length of %d characters", MaxTagLength)
	}
	return nil
}

func NewServiceTag(clientID, tag, description, hardwareType, location string) (*ServiceTag, error) {
	if clientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	tag = NormalizeTag(tag)
	if err := validateTag(tag); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &ServiceTag{
		clientID:     clientID,
		tag:          tag,
		description:  strings.TrimSpace(description),
		hardwareType: strings.TrimSpace(hardwareType),
		location:     strings.TrimSpace(location),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructServiceTag(
	id, clientID, tag, description, hardwareType, location string,
	createdAt, updatedAt time.Time,
) (*ServiceTag, error) {
	if id == "" {
		return nil, fmt.Errorf("service tag ID cannot be empty")
	}
	return &ServiceTag{
		id:           id,
		clientID:     clientID,
		tag:          tag,
		description:  description,
		hardwareType: hardwareType,
		location:     location,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (s *ServiceTag) ID() string {
	return s.id
}

func (s *ServiceTag) ClientID() string {
	return s.clientID
}

func (s *ServiceTag) Tag() string {
	return s.tag
}

func (s *ServiceTag) Description() string {
	return s.description
}

func (s *ServiceTag) HardwareType() string {
	return s.hardwareType
}

func (s *ServiceTag) Location() string {
	return s.location
}

func (s *ServiceTag) CreatedAt() time.Time {
	return s.createdAt
}

func (s *ServiceTag) UpdatedAt() time.Time {
	return s.updatedAt
}

func (s *ServiceTag) SetID(id string) error {
	if s.id != "" {
		return fmt.Errorf("service tag ID is already set")
	}
	if id == "" {
		return fmt.Errorf("service tag ID cannot be empty")
	}
	s.id = id
	return nil
}

// Update applies the non-nil fields. The owning client never changes.
func (s *ServiceTag) Update(tag, description, hardwareType, location *string) error {
	if tag != nil {
		normalized := NormalizeTag(*tag)
		if err := validateTag(normalized); err != nil {
			return err
		}
		s.tag = normalized
	}
	if description != nil {
		s.description = strings.TrimSpace(*description)
	}
	if hardwareType != nil {
		s.hardwareType = strings.TrimSpace(*hardwareType)
	}
	if location != nil {
		s.location = strings.TrimSpace(*location)
	}
	s.updatedAt = biztime.NowUTC()
	return nil
}
