// Package resolve converts human-friendly name or path tokens into the
// numeric IDs the Sonarr and Radarr APIs want, against small reference
// collections (quality profiles, root folders, tags). Every call is a pure,
// single-shot lookup.
package resolve

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry is one lookup candidate: a numeric ID plus its human-readable
// attribute (name, label, or path).
type Entry struct {
	ID   int
	Name string
}

// NotFoundError means no candidate matched the token. The message
// enumerates every candidate so the caller can correct itself.
type NotFoundError struct {
	Entity     string
	Token      string
	Candidates []Entry
}

func (e *NotFoundError) Error() string {
	if isDigits(e.Token) {
		return fmt.Sprintf("%s with ID %s not found", e.Entity, e.Token)
	}
	return fmt.Sprintf("no %s matching %q; available: %s",
		e.Entity, e.Token, enumerate(e.Candidates))
}

// AmbiguousError means a name token matched more than one candidate. The
// resolver never silently picks one.
type AmbiguousError struct {
	Entity  string
	Token   string
	Matches []Entry
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous %s %q matches multiple: %s; use the numeric ID instead",
		e.Entity, e.Token, enumerate(e.Matches))
}

// NameOrID resolves token to a numeric ID. An all-digit token is treated as
// an ID and checked for existence; anything else is matched case-insensitively
// against each entry's name, requiring exact equality.
func NameOrID(token string, entries []Entry, entity string) (int, error) {
	return lookup(token, entries, entity, strings.EqualFold)
}

// PathOrID is the root-folder variant of NameOrID: the name comparison is
// case-insensitive substring containment, so "/tv" matches "/mnt/media/tv".
func PathOrID(token string, entries []Entry, entity string) (int, error) {
	return lookup(token, entries, entity, func(name, tok string) bool {
		return strings.Contains(strings.ToLower(name), strings.ToLower(tok))
	})
}

func lookup(token string, entries []Entry, entity string, match func(name, token string) bool) (int, error) {
	if isDigits(token) {
		id, err := strconv.Atoi(token)
		if err != nil {
			return 0, &NotFoundError{Entity: entity, Token: token, Candidates: entries}
		}
		for _, e := range entries {
			if e.ID == id {
				return id, nil
			}
		}
		return 0, &NotFoundError{Entity: entity, Token: token, Candidates: entries}
	}

	var matches []Entry
	for _, e := range entries {
		if match(e.Name, token) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return 0, &NotFoundError{Entity: entity, Token: token, Candidates: entries}
	case 1:
		return matches[0].ID, nil
	default:
		return 0, &AmbiguousError{Entity: entity, Token: token, Matches: matches}
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func enumerate(entries []Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%d: %s", e.ID, e.Name))
	}
	return strings.Join(parts, ", ")
}
