package mappers

import "fmt"

// mapSlice converts every element, naming the offending id on failure.
func mapSlice[S any, D any](src []*S, convert func(*S) (*D, error), idOf func(*S) string) ([]*D, error) {
	out := make([]*D, 0, len(src))
	for _, item := range src {
		converted, err := convert(item)
		if err != nil {
			return nil, fmt.Errorf("failed to map %s: %w", idOf(item), err)
		}
		out = append(out, converted)
	}
	return out, nil
}
