package shape

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// PatternError reports a grep pattern that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid grep pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Grep keeps the items whose whole serialized form matches pattern,
// case-insensitively, anywhere in the document. Matching spans every field
// at every depth so one free-text query works across the differently shaped
// Sonarr and Radarr schemas. An empty pattern keeps everything. Order is
// preserved and the result is always a subset of the input.
func Grep(items []*Object, pattern string) ([]*Object, error) {
	if pattern == "" {
		return items, nil
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}

	out := make([]*Object, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(Normalize(item))
		if err != nil {
			return nil, fmt.Errorf("serialize item for grep: %w", err)
		}
		if re.Match(raw) {
			out = append(out, item)
		}
	}
	return out, nil
}
