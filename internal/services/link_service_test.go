package services

import (
	"context"
	"errors"
	"testing"

	"github.com/xvierd/startpage/internal/domain"
)

func TestLinkService_AddLink(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewLinkService(store)
	ctx := context.Background()

	t.Run("add valid link", func(t *testing.T) {
		link, err := service.AddLink(ctx, AddLinkRequest{
			Name:     "GitHub",
			URL:      "https://github.com",
			Shortcut: true,
		})
		if err != nil {
			t.Fatalf("AddLink() error = %v", err)
		}
		if link.Kind != domain.KindShortcut {
			t.Errorf("AddLink() kind = %v, want shortcut", link.Kind)
		}
	})

	t.Run("add link with empty name", func(t *testing.T) {
		_, err := service.AddLink(ctx, AddLinkRequest{URL: "https://x.org"})
		if !errors.Is(err, domain.ErrEmptyLinkName) {
			t.Errorf("AddLink() error = %v, want ErrEmptyLinkName", err)
		}
	})

	t.Run("add duplicate url", func(t *testing.T) {
		_, err := service.AddLink(ctx, AddLinkRequest{Name: "Hub", URL: "https://github.com"})
		if !errors.Is(err, domain.ErrDuplicateLink) {
			t.Errorf("AddLink() error = %v, want ErrDuplicateLink", err)
		}
	})
}

func TestLinkService_ListSearchRemove(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewLinkService(store)
	ctx := context.Background()

	saved, err := service.ImportLinks(ctx, testLinks())
	if err != nil || saved != 4 {
		t.Fatalf("ImportLinks() = %d, %v", saved, err)
	}

	defi := "defi"
	links, err := service.ListLinks(ctx, ListLinksRequest{Category: &defi})
	if err != nil {
		t.Fatalf("ListLinks() error = %v", err)
	}
	if len(links) != 2 {
		t.Errorf("ListLinks(defi) returned %d, want 2", len(links))
	}

	found, err := service.SearchLinks(ctx, "uni")
	if err != nil || len(found) == 0 || found[0].Name != "Uniswap" {
		t.Errorf("SearchLinks(uni) = %v, %v", found, err)
	}

	if err := service.RemoveLink(ctx, "2"); err != nil {
		t.Fatalf("RemoveLink() error = %v", err)
	}
	if _, err := service.GetLink(ctx, "2"); err != domain.ErrLinkNotFound {
		t.Errorf("GetLink() after remove error = %v, want ErrLinkNotFound", err)
	}
}

func TestLinkService_ImportSkipsInvalidAndDuplicates(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewLinkService(store)
	ctx := context.Background()

	links := append(testLinks(),
		domain.Link{Name: "", URL: "https://nameless.org"},
		domain.Link{Name: "GitHub mirror", URL: "https://github.com"},
	)
	saved, err := service.ImportLinks(ctx, links)
	if err != nil {
		t.Fatalf("ImportLinks() error = %v", err)
	}
	if saved != 4 {
		t.Errorf("ImportLinks() saved %d, want 4", saved)
	}
}

func TestLinkService_EnsureSeededAndFetch(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewLinkService(store)
	ctx := context.Background()

	n, err := service.EnsureSeeded(ctx, testLinks())
	if err != nil || n != 4 {
		t.Fatalf("EnsureSeeded() = %d, %v", n, err)
	}
	n, _ = service.EnsureSeeded(ctx, testLinks())
	if n != 0 {
		t.Errorf("second EnsureSeeded() = %d, want 0", n)
	}

	links, err := service.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(links) != 4 || links[0].Name != "GitHub" {
		t.Errorf("Fetch() = %v", links)
	}

	catalog := NewCatalogService(service, 0)
	if !catalog.Load(ctx) || catalog.Len() != 4 {
		t.Errorf("catalog loaded from store has %d links", catalog.Len())
	}
}
