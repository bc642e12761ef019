package integration

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/xvierd/startpage/internal/adapters/clock"
	"github.com/xvierd/startpage/internal/adapters/storage"
	"github.com/xvierd/startpage/internal/catalog"
	"github.com/xvierd/startpage/internal/domain"
	"github.com/xvierd/startpage/internal/hotkeys"
	"github.com/xvierd/startpage/internal/ports"
	"github.com/xvierd/startpage/internal/services"
	"github.com/xvierd/startpage/internal/timer"
)

// setupTestStorage creates a temporary database for integration tests
func setupTestStorage(t *testing.T) (ports.Storage, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := storage.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.Remove(dbPath)
	}

	return store, cleanup
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []domain.Notice
}

func (n *recordingNotifier) NotifyTimerDone(notice domain.Notice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}

// desk wires the same graph as the CLI, with a manual clock.
func newDesk(t *testing.T, store ports.Storage) (*services.DeskService, *clock.Manual, *recordingNotifier) {
	t.Helper()
	ctx := context.Background()

	links := services.NewLinkService(store)
	if _, err := links.EnsureSeeded(ctx, catalog.Seed()); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	cat := services.NewCatalogService(links, 16)
	if !cat.Load(ctx) {
		t.Fatal("catalog load should succeed")
	}

	sched := clock.NewManual()
	notifier := &recordingNotifier{}
	engine := timer.New(sched,
		timer.WithConfig(domain.TimerConfig{
			WorkDuration:  3 * time.Second,
			BreakDuration: 2 * time.Second,
			NoticeWindow:  time.Second,
		}),
		timer.WithNotifier(notifier),
	)
	t.Cleanup(engine.Close)

	return services.NewDeskService(nil, engine, cat, domain.ThemePurple), sched, notifier
}

// TestStartPageSession walks through a typical session against a real store.
func TestStartPageSession(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	desk, sched, notifier := newDesk(t, store)
	bus := hotkeys.NewBus()
	detach := hotkeys.NewDispatcher(hotkeys.DefaultKeymap(), desk.Execute).Attach(bus)
	defer detach()

	t.Run("grid shows seeded shortcuts", func(t *testing.T) {
		items := desk.GridItems()
		if len(items) == 0 {
			t.Fatal("expected seeded shortcuts on the grid")
		}
		for _, l := range items {
			if !l.IsShortcut() {
				t.Errorf("empty search should show shortcuts only, got %q", l.Name)
			}
		}
	})

	t.Run("search command opens a link panel", func(t *testing.T) {
		if !desk.SearchChanged("show me defi") {
			t.Fatal("'defi' should fire")
		}
		if !desk.IsOpen(domain.PanelDefi) {
			t.Error("defi panel should be open")
		}
		if len(desk.Catalog().ByCategory("defi")) == 0 {
			t.Error("defi panel should have seeded links")
		}
	})

	t.Run("focus command runs the timer to completion", func(t *testing.T) {
		desk.SearchChanged("focus")
		if !desk.State().Timer.Running {
			t.Fatal("timer should be running")
		}

		sched.Advance(3 * time.Second)
		state := desk.State()
		if state.Timer.Running || state.Timer.Mode != domain.ModeBreak {
			t.Errorf("after work: running=%v mode=%v", state.Timer.Running, state.Timer.Mode)
		}
		if state.Notice == nil || state.Notice.Message != "Work Time Over!" {
			t.Errorf("notice = %v", state.Notice)
		}
		if notifier.count() != 1 {
			t.Errorf("notifier called %d times, want 1", notifier.count())
		}

		sched.Advance(time.Second)
		if desk.State().Notice != nil {
			t.Error("notice should expire")
		}
	})

	t.Run("escape unwinds every surface", func(t *testing.T) {
		bus.Publish(hotkeys.ParseKey("ctrl+b"))
		if desk.Focus() != domain.FocusToolbar {
			t.Errorf("focus = %v, want toolbar", desk.Focus())
		}

		for i := 0; i < 10 && len(desk.State().OpenPanels) > 0; i++ {
			bus.Publish(hotkeys.ParseKey("esc"))
		}
		if open := desk.State().OpenPanels; len(open) != 0 {
			t.Errorf("still open: %v", open)
		}
		if desk.Focus() != domain.FocusSearch {
			t.Errorf("focus = %v, want search", desk.Focus())
		}
	})
}

// TestCatalogReloadPicksUpNewLinks verifies that links added to the store
// show up after a reload, and that filter results are not stale.
func TestCatalogReloadPicksUpNewLinks(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	desk, _, _ := newDesk(t, store)

	if got := desk.FilterLinks("mirror"); len(got) != 0 {
		t.Fatalf("unexpected matches before add: %v", got)
	}

	links := services.NewLinkService(store)
	if _, err := links.AddLink(ctx, services.AddLinkRequest{
		Name:     "Mirror",
		URL:      "https://mirror.xyz",
		Category: "social",
	}); err != nil {
		t.Fatalf("failed to add link: %v", err)
	}

	if !desk.Catalog().Load(ctx) {
		t.Fatal("reload should succeed")
	}
	got := desk.FilterLinks("mirror")
	if len(got) != 1 || got[0].URL != "https://mirror.xyz" {
		t.Errorf("FilterLinks(mirror) = %v", got)
	}
}
