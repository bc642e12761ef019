// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/xvierd/startpage/internal/domain"
	"github.com/xvierd/startpage/internal/ports"
)

// LinkService handles catalog maintenance use cases.
type LinkService struct {
	storage ports.Storage
}

// NewLinkService creates a new link service.
func NewLinkService(storage ports.Storage) *LinkService {
	return &LinkService{storage: storage}
}

// AddLinkRequest contains the data needed to create a new link.
type AddLinkRequest struct {
	Name        string
	URL         string
	Category    string
	Description string
	Shortcut    bool
}

// AddLink creates a new link.
func (s *LinkService) AddLink(ctx context.Context, req AddLinkRequest) (*domain.Link, error) {
	kind := domain.KindLink
	if req.Shortcut {
		kind = domain.KindShortcut
	}
	link, err := domain.NewLink(req.Name, req.URL, req.Category, req.Description, kind)
	if err != nil {
		return nil, fmt.Errorf("invalid link: %w", err)
	}

	if err := s.storage.Links().Save(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to save link: %w", err)
	}

	return link, nil
}

// ListLinksRequest contains filters for listing links.
type ListLinksRequest struct {
	Category *string
}

// ListLinks retrieves links based on filters.
func (s *LinkService) ListLinks(ctx context.Context, req ListLinksRequest) ([]*domain.Link, error) {
	return s.storage.Links().FindAll(ctx, req.Category)
}

// SearchLinks does a fuzzy search over link names.
func (s *LinkService) SearchLinks(ctx context.Context, query string) ([]*domain.Link, error) {
	return s.storage.Links().FindByName(ctx, query)
}

// GetLink retrieves a single link by ID.
func (s *LinkService) GetLink(ctx context.Context, id string) (*domain.Link, error) {
	return s.storage.Links().FindByID(ctx, id)
}

// RemoveLink deletes a link.
func (s *LinkService) RemoveLink(ctx context.Context, id string) error {
	return s.storage.Links().Delete(ctx, id)
}

// ImportLinks saves links, assigning IDs where missing. Links that fail
// validation or whose URL is already stored are skipped. It returns the
// number saved.
func (s *LinkService) ImportLinks(ctx context.Context, links []domain.Link) (int, error) {
	saved := 0
	for i := range links {
		link := links[i]
		if _, err := domain.NewLink(link.Name, link.URL, link.Category, link.Description, link.Kind); err != nil {
			continue
		}
		if link.Kind == "" {
			link.Kind = domain.KindLink
		}
		link.EnsureID()
		if err := s.storage.Links().Save(ctx, &link); err != nil {
			if errors.Is(err, domain.ErrDuplicateLink) {
				continue
			}
			return saved, fmt.Errorf("failed to save link %q: %w", link.Name, err)
		}
		saved++
	}
	return saved, nil
}

// EnsureSeeded imports seed when the store holds no links yet.
func (s *LinkService) EnsureSeeded(ctx context.Context, seed []domain.Link) (int, error) {
	n, err := s.storage.Links().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count links: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	return s.ImportLinks(ctx, seed)
}

// Fetch implements ports.CatalogSource.
func (s *LinkService) Fetch(ctx context.Context) ([]domain.Link, error) {
	links, err := s.storage.Links().FindAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	out := make([]domain.Link, 0, len(links))
	for _, l := range links {
		out = append(out, *l)
	}
	return out, nil
}

var _ ports.CatalogSource = (*LinkService)(nil)
