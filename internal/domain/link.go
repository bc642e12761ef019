// Package domain contains the core entities of the start page: panels,
// themes, the countdown timer state, focus targets and catalog links.
// They are independent of any UI framework or storage engine.
package domain

import (
	"errors"
	"strings"
)

// Common domain errors.
var (
	ErrUnknownPanel   = errors.New("unknown panel")
	ErrLinkNotFound   = errors.New("link not found")
	ErrDuplicateLink  = errors.New("a link with this url already exists")
	ErrEmptyLinkName  = errors.New("link name cannot be empty")
	ErrEmptyLinkURL   = errors.New("link url cannot be empty")
	ErrInvalidCommand = errors.New("invalid command table entry")
)

// LinkKind distinguishes always-visible shortcuts from searchable links.
type LinkKind string

const (
	KindShortcut LinkKind = "shortcut"
	KindLink     LinkKind = "link"
)

// Link is a catalog entry shown on the grid.
type Link struct {
	ID          string
	Name        string
	URL         string
	Category    string
	Description string
	Kind        LinkKind
}

// NewLink creates a link with a generated ID.
func NewLink(name, url, category, description string, kind LinkKind) (*Link, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyLinkName
	}
	if strings.TrimSpace(url) == "" {
		return nil, ErrEmptyLinkURL
	}
	if kind == "" {
		kind = KindLink
	}
	return &Link{
		ID:          generateID(),
		Name:        name,
		URL:         url,
		Category:    category,
		Description: description,
		Kind:        kind,
	}, nil
}

// EnsureID assigns a generated ID when the link has none.
func (l *Link) EnsureID() {
	if l.ID == "" {
		l.ID = generateID()
	}
}

// Matches reports whether the lowercase query is a substring of the link's
// name, category or description.
func (l *Link) Matches(lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(l.Category), lowerQuery) ||
		strings.Contains(strings.ToLower(l.Description), lowerQuery)
}

// IsShortcut returns true for links always shown on the grid.
func (l *Link) IsShortcut() bool {
	return l.Kind == KindShortcut
}
