package cache

import (
	"sort"
	"strings"
	"sync"

	"github.com/isdelr/newsfeed-be/internal/models"
)

// FeedCache maps a normalized preference key to the article list last
// fetched for it. Implementations decide eviction policy; the in-memory one
// has none and lives for the process lifetime.
type FeedCache interface {
	Get(key string) ([]models.Article, bool)
	Put(key string, articles []models.Article)
}

// Key builds the cache key for a preference list: sorted ascending and
// joined with a comma, so distinct orderings of the same topics collide.
// No case or whitespace normalization is applied.
func Key(preferences []string) string {
	sorted := make([]string, len(preferences))
	copy(sorted, preferences)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// Memory is a process-local FeedCache. Unlike the store it fronts, it is
// shared across all requests, so access takes a lock.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]models.Article
}

// NewMemory creates an empty in-memory feed cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]models.Article)}
}

// Get returns the cached article list for key, if any.
func (m *Memory) Get(key string) ([]models.Article, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	articles, ok := m.entries[key]
	return articles, ok
}

// Put stores the article list under key, replacing any prior value.
func (m *Memory) Put(key string, articles []models.Article) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = articles
}
