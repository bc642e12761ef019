package services

import (
	"context"
	"testing"

	"github.com/xvierd/startpage/internal/adapters/clock"
	"github.com/xvierd/startpage/internal/adapters/storage"
	"github.com/xvierd/startpage/internal/domain"
	"github.com/xvierd/startpage/internal/ports"
	"github.com/xvierd/startpage/internal/timer"
)

func setupTestStorage(t *testing.T) (ports.Storage, func()) {
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	return store, func() { store.Close() }
}

type stubSource struct {
	links []domain.Link
	err   error
	calls int
}

func (s *stubSource) Fetch(context.Context) ([]domain.Link, error) {
	s.calls++
	return s.links, s.err
}

func testLinks() []domain.Link {
	return []domain.Link{
		{ID: "1", Name: "GitHub", URL: "https://github.com", Kind: domain.KindShortcut},
		{ID: "2", Name: "Uniswap", URL: "https://app.uniswap.org", Category: "defi", Description: "Token swaps", Kind: domain.KindLink},
		{ID: "3", Name: "Aave", URL: "https://app.aave.com", Category: "DeFi", Description: "Lending", Kind: domain.KindLink},
		{ID: "4", Name: "Snapshot", URL: "https://snapshot.box", Category: "gov", Description: "Voting", Kind: domain.KindLink},
	}
}

func newTestDesk(t *testing.T) (*DeskService, *clock.Manual) {
	t.Helper()
	sched := clock.NewManual()
	engine := timer.New(sched)
	t.Cleanup(engine.Close)

	catalog := NewCatalogService(&stubSource{links: testLinks()}, 0)
	catalog.Load(context.Background())

	return NewDeskService(nil, engine, catalog, domain.ThemePurple), sched
}
