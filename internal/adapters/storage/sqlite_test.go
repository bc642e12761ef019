package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xvierd/startpage/internal/domain"
)

func mustLink(t *testing.T, name, url, category string, kind domain.LinkKind) *domain.Link {
	t.Helper()
	link, err := domain.NewLink(name, url, category, "", kind)
	if err != nil {
		t.Fatalf("NewLink() error = %v", err)
	}
	return link
}

func TestNewMemory(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	if storage == nil {
		t.Error("NewMemory() returned nil storage")
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "startpage.db")
	storage, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	if err := storage.Migrate(); err != nil {
		t.Errorf("Migrate() twice error = %v", err)
	}
}

func TestLinkRepository_SaveAndFind(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Links()

	t.Run("find by id", func(t *testing.T) {
		link := mustLink(t, "GitHub", "https://github.com", "dev", domain.KindShortcut)
		if err := repo.Save(ctx, link); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		found, err := repo.FindByID(ctx, link.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Name != "GitHub" || found.Kind != domain.KindShortcut {
			t.Errorf("FindByID() = %+v", found)
		}
	})

	t.Run("find non-existent", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "missing")
		if err != domain.ErrLinkNotFound {
			t.Errorf("FindByID() error = %v, want ErrLinkNotFound", err)
		}
	})

	t.Run("duplicate url", func(t *testing.T) {
		dup := mustLink(t, "GitHub again", "https://github.com", "dev", domain.KindLink)
		if err := repo.Save(ctx, dup); err != domain.ErrDuplicateLink {
			t.Errorf("Save() error = %v, want ErrDuplicateLink", err)
		}
	})
}

func TestLinkRepository_FindAllKeepsOrder(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Links()

	names := []string{"Zora", "Aave", "Mirror"}
	categories := []string{"social", "defi", "Social"}
	for i, n := range names {
		_ = repo.Save(ctx, mustLink(t, n, "https://"+n+".xyz", categories[i], domain.KindLink))
	}

	all, err := repo.FindAll(ctx, nil)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("FindAll() returned %d links, want 3", len(all))
	}
	for i, n := range names {
		if all[i].Name != n {
			t.Errorf("FindAll()[%d] = %s, want %s", i, all[i].Name, n)
		}
	}

	social := "social"
	filtered, err := repo.FindAll(ctx, &social)
	if err != nil {
		t.Fatalf("FindAll(social) error = %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("FindAll(social) returned %d links, want 2", len(filtered))
	}
}

func TestLinkRepository_FindByName(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Links()
	for _, n := range []string{"Etherscan", "Uniswap", "Snapshot"} {
		_ = repo.Save(ctx, mustLink(t, n, "https://"+n+".io", "", domain.KindLink))
	}

	found, err := repo.FindByName(ctx, "eths")
	if err != nil {
		t.Fatalf("FindByName() error = %v", err)
	}
	if len(found) == 0 || found[0].Name != "Etherscan" {
		t.Errorf("FindByName(eths) = %v, want Etherscan first", found)
	}

	none, _ := repo.FindByName(ctx, "qqq")
	if len(none) != 0 {
		t.Errorf("FindByName(qqq) = %v, want none", none)
	}
}

func TestLinkRepository_UpdateDeleteCount(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Links()

	link := mustLink(t, "Lens", "https://lens.xyz", "lens", domain.KindLink)
	_ = repo.Save(ctx, link)

	link.Description = "Social graph"
	if err := repo.Update(ctx, link); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	found, _ := repo.FindByID(ctx, link.ID)
	if found.Description != "Social graph" {
		t.Errorf("Description = %q after update", found.Description)
	}

	n, _ := repo.Count(ctx)
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}

	if err := repo.Delete(ctx, link.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, link.ID); err != domain.ErrLinkNotFound {
		t.Errorf("second Delete() error = %v, want ErrLinkNotFound", err)
	}
	if err := repo.Update(ctx, link); err != domain.ErrLinkNotFound {
		t.Errorf("Update() of deleted link error = %v, want ErrLinkNotFound", err)
	}
}
