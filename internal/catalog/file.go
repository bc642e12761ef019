// Package catalog reads and writes catalog files and carries the built-in
// seed links.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/xvierd/startpage/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for files whose extension is not supported.
var ErrUnknownFormat = errors.New("unknown catalog format")

// Format is a catalog file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Entry is one link as written in a catalog file.
type Entry struct {
	ID          string `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Name        string `json:"name" toml:"name" yaml:"name"`
	URL         string `json:"url" toml:"url" yaml:"url"`
	Category    string `json:"category,omitempty" toml:"category,omitempty" yaml:"category,omitempty"`
	Description string `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	Shortcut    bool   `json:"shortcut,omitempty" toml:"shortcut,omitempty" yaml:"shortcut,omitempty"`
}

// File is the top-level document of a catalog file.
type File struct {
	Links []Entry `json:"links" toml:"links" yaml:"links"`
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) ([]domain.Link, error) {
	var f File
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &f)
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s catalog: %w", format, err)
	}

	links := make([]domain.Link, 0, len(f.Links))
	for _, e := range f.Links {
		links = append(links, e.toLink())
	}
	return links, nil
}

// Encode writes links in the given format.
func Encode(links []domain.Link, format Format) ([]byte, error) {
	f := File{Links: make([]Entry, 0, len(links))}
	for _, l := range links {
		f.Links = append(f.Links, entryFrom(l))
	}

	switch format {
	case FormatJSON:
		return json.MarshalIndent(f, "", "  ")
	case FormatTOML:
		return toml.Marshal(f)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, fmt.Errorf("failed to encode yaml catalog: %w", err)
		}
		_ = enc.Close()
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// LoadFile reads a catalog file, picking the format from its extension.
func LoadFile(path string) ([]domain.Link, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Decode(data, format)
}

// FileSource serves a catalog file as a ports.CatalogSource.
type FileSource struct {
	Path string
}

// Fetch implements ports.CatalogSource.
func (s FileSource) Fetch(ctx context.Context) ([]domain.Link, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	links, err := LoadFile(s.Path)
	if err != nil {
		return nil, err
	}
	for i := range links {
		links[i].EnsureID()
	}
	return links, nil
}

func (e Entry) toLink() domain.Link {
	kind := domain.KindLink
	if e.Shortcut {
		kind = domain.KindShortcut
	}
	return domain.Link{
		ID:          e.ID,
		Name:        e.Name,
		URL:         e.URL,
		Category:    e.Category,
		Description: e.Description,
		Kind:        kind,
	}
}

func entryFrom(l domain.Link) Entry {
	return Entry{
		ID:          l.ID,
		Name:        l.Name,
		URL:         l.URL,
		Category:    l.Category,
		Description: l.Description,
		Shortcut:    l.IsShortcut(),
	}
}
