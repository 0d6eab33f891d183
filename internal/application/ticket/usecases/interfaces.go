package usecases

import (
	"context"

	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
)

// AttachmentStorage stores uploaded files and returns their public URLs.
type AttachmentStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Settings carries the configurable ticket rules.
type Settings struct {
	Policy                  vo.TransitionPolicy
	DefaultPriority         vo.Priority
	PlaceholderHardwareType string
	PlaceholderLocation     string
	MaxAttachmentBytes      int64
	MaxAttachments          int
}

func DefaultSettings() Settings {
	return Settings{
		Policy:                  vo.PermissivePolicy{},
		DefaultPriority:         vo.DefaultPriority,
		PlaceholderHardwareType: "Unknown",
		PlaceholderLocation:     "Unknown",
		MaxAttachmentBytes:      10 << 20,
		MaxAttachments:          10,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Policy == nil {
		s.Policy = d.Policy
	}
	if !s.DefaultPriority.IsValid() {
		s.DefaultPriority = d.DefaultPriority
	}
	if s.PlaceholderHardwareType == "" {
		s.PlaceholderHardwareType = d.PlaceholderHardwareType
	}
	if s.PlaceholderLocation == "" {
		s.PlaceholderLocation = d.PlaceholderLocation
	}
	if s.MaxAttachmentBytes <= 0 {
		s.MaxAttachmentBytes = d.MaxAttachmentBytes
	}
	if s.MaxAttachments <= 0 {
		s.MaxAttachments = d.MaxAttachments
	}
	return s
}
