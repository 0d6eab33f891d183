package valueobjects

import "fmt"

// UpdateKind classifies a history entry when it is written.
type UpdateKind string

const (
	UpdateKindStatusChange UpdateKind = "status_change"
	UpdateKindComment      UpdateKind = "comment"
	UpdateKindAssignment   UpdateKind = "assignment"
	UpdateKindOther        UpdateKind = "other"
)

func (k UpdateKind) String() string {
	return string(k)
}

func (k UpdateKind) IsValid() bool {
	switch k {
	case UpdateKindStatusChange, UpdateKindComment, UpdateKindAssignment, UpdateKindOther:
		return true
	}
	return false
}

func NewUpdateKind(s string) (UpdateKind, error) {
	k := UpdateKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid update kind: %s", s)
	}
	return k, nil
}
