package services

import (
	"context"
	"strings"

	"github.com/isdelr/newsfeed-be/internal/cache"
	"github.com/isdelr/newsfeed-be/internal/gnews"
	"github.com/isdelr/newsfeed-be/internal/models"
	"github.com/rs/zerolog/log"
)

// FeedServiceProvider defines the interface for the personalized feed.
type FeedServiceProvider interface {
	GetFeed(ctx context.Context, userID string) ([]models.Article, error)
}

// FeedService assembles a user's feed from their stored preferences,
// fronting the external news provider with a process-local cache.
type FeedService struct {
	users    UserServiceProvider
	provider gnews.NewsProvider
	cache    cache.FeedCache
}

// NewFeedService creates a new FeedService.
func NewFeedService(users UserServiceProvider, provider gnews.NewsProvider, feedCache cache.FeedCache) *FeedService {
	return &FeedService{users: users, provider: provider, cache: feedCache}
}

// GetFeed returns the article list for the user's preference set. A user
// with no preferences gets the "general" topic. Cached lists are returned
// verbatim, with no freshness check.
func (s *FeedService) GetFeed(ctx context.Context, userID string) ([]models.Article, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	preferences := user.Preferences
	if len(preferences) == 0 {
		preferences = []string{"general"}
	}

	key := cache.Key(preferences)
	if articles, ok := s.cache.Get(key); ok {
		return articles, nil
	}

	query := strings.Join(preferences, " OR ")
	articles, err := s.provider.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	s.cache.Put(key, articles)
	log.Debug().Str("cache_key", key).Int("articles", len(articles)).Msg("feed cache populated")
	return articles, nil
}
