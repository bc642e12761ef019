package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xvierd/startpage/internal/domain"
	"github.com/xvierd/startpage/internal/logging"
	"github.com/xvierd/startpage/internal/ports"
)

// DefaultFilterCacheSize bounds the number of cached filter results.
const DefaultFilterCacheSize = 128

type catalogSnapshot struct {
	gen   uint64
	links []domain.Link
}

// CatalogService holds the link catalog in memory. The catalog is swapped in
// whole, so readers never see a partial load.
type CatalogService struct {
	source  ports.CatalogSource
	current atomic.Pointer[catalogSnapshot]
	gen     atomic.Uint64
	cache   *lru.Cache[string, []domain.Link]
}

// NewCatalogService creates an empty catalog fed by source. cacheSize <= 0
// uses DefaultFilterCacheSize.
func NewCatalogService(source ports.CatalogSource, cacheSize int) *CatalogService {
	if cacheSize <= 0 {
		cacheSize = DefaultFilterCacheSize
	}
	cache, err := lru.New[string, []domain.Link](cacheSize)
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	s := &CatalogService{source: source, cache: cache}
	s.current.Store(&catalogSnapshot{})
	return s
}

// Load fetches the catalog once. On failure the previous catalog stays in
// place and the error is logged; it reports whether a new catalog was
// installed.
func (s *CatalogService) Load(ctx context.Context) bool {
	if s.source == nil {
		return false
	}
	links, err := s.source.Fetch(ctx)
	if err != nil {
		logging.L().Warn("catalog fetch failed, keeping previous catalog", "err", err)
		return false
	}
	s.Replace(links)
	logging.L().Debug("catalog loaded", "links", len(links))
	return true
}

// Replace installs links as the catalog.
func (s *CatalogService) Replace(links []domain.Link) {
	copied := make([]domain.Link, len(links))
	copy(copied, links)
	s.current.Store(&catalogSnapshot{gen: s.gen.Add(1), links: copied})
	s.cache.Purge()
}

// Len returns the number of links in the catalog.
func (s *CatalogService) Len() int {
	return len(s.current.Load().links)
}

// All returns every link.
func (s *CatalogService) All() []domain.Link {
	snap := s.current.Load()
	out := make([]domain.Link, len(snap.links))
	copy(out, snap.links)
	return out
}

// Filter returns links whose name, category or description contains query,
// ignoring case. An empty query matches everything. The returned slice is
// shared with the cache and must not be modified.
func (s *CatalogService) Filter(query string) []domain.Link {
	snap := s.current.Load()
	q := strings.ToLower(strings.TrimSpace(query))
	key := fmt.Sprintf("%d\x00%s", snap.gen, q)
	if hit, ok := s.cache.Get(key); ok {
		return hit
	}

	var out []domain.Link
	for i := range snap.links {
		if snap.links[i].Matches(q) {
			out = append(out, snap.links[i])
		}
	}
	s.cache.Add(key, out)
	return out
}

// GridItems returns what the link grid shows for query: the shortcuts when
// the query is empty, otherwise every matching link.
func (s *CatalogService) GridItems(query string) []domain.Link {
	if strings.TrimSpace(query) != "" {
		return s.Filter(query)
	}
	var out []domain.Link
	for _, l := range s.current.Load().links {
		if l.IsShortcut() {
			out = append(out, l)
		}
	}
	return out
}

// ByCategory returns links whose category equals name, ignoring case.
func (s *CatalogService) ByCategory(name string) []domain.Link {
	var out []domain.Link
	for _, l := range s.current.Load().links {
		if strings.EqualFold(l.Category, name) {
			out = append(out, l)
		}
	}
	return out
}
