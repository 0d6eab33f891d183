package valueobjects

import "fmt"

// Source records how a ticket reached the helpdesk.
type Source string

const (
	SourceEmail    Source = "email"
	SourcePhone    Source = "phone"
	SourceWeb      Source = "web"
	SourceInPerson Source = "in_person"
)

func (s Source) String() string {
	return string(s)
}

func (s Source) IsValid() bool {
	switch s {
	case SourceEmail, SourcePhone, SourceWeb, SourceInPerson:
		return true
	}
	return false
}

func NewSource(s string) (Source, error) {
	src := Source(s)
	if !src.IsValid() {
		return "", fmt.Errorf("invalid ticket source: %s", s)
	}
	return src, nil
}
