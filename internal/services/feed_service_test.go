package services

import (
	"context"
	"errors"
	"testing"

	"github.com/isdelr/newsfeed-be/internal/cache"
	"github.com/isdelr/newsfeed-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserService struct {
	UserServiceProvider
	users map[string]models.User
}

func (f *fakeUserService) GetUserByID(id string) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

type fakeProvider struct {
	calls    int
	queries  []string
	articles []models.Article
	err      error
}

func (f *fakeProvider) Search(_ context.Context, query string) ([]models.Article, error) {
	f.calls++
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

func TestGetFeedQueriesProviderOnMiss(t *testing.T) {
	users := &fakeUserService{users: map[string]models.User{
		"u1": {ID: "u1", Preferences: []string{"tech", "sports"}},
	}}
	provider := &fakeProvider{articles: []models.Article{{Title: "one", URL: "https://example.com/1"}}}
	feedCache := cache.NewMemory()

	s := NewFeedService(users, provider, feedCache)

	articles, err := s.GetFeed(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, provider.articles, articles)
	assert.Equal(t, []string{"tech OR sports"}, provider.queries)

	cached, ok := feedCache.Get("sports,tech")
	assert.True(t, ok)
	assert.Equal(t, provider.articles, cached)
}

func TestGetFeedServesFromCache(t *testing.T) {
	users := &fakeUserService{users: map[string]models.User{
		"u1": {ID: "u1", Preferences: []string{"b", "a"}},
		"u2": {ID: "u2", Preferences: []string{"a", "b"}},
	}}
	provider := &fakeProvider{articles: []models.Article{{Title: "one", URL: "https://example.com/1"}}}

	s := NewFeedService(users, provider, cache.NewMemory())

	// Two users whose preference lists differ only in ordering share one
	// cache entry; the provider is queried exactly once.
	first, err := s.GetFeed(context.Background(), "u1")
	require.NoError(t, err)
	second, err := s.GetFeed(context.Background(), "u2")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls)
}

func TestGetFeedDefaultsToGeneral(t *testing.T) {
	users := &fakeUserService{users: map[string]models.User{
		"u1": {ID: "u1", Preferences: []string{}},
	}}
	provider := &fakeProvider{articles: []models.Article{}}
	feedCache := cache.NewMemory()

	s := NewFeedService(users, provider, feedCache)

	_, err := s.GetFeed(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"general"}, provider.queries)

	_, ok := feedCache.Get("general")
	assert.True(t, ok)
}

func TestGetFeedProviderError(t *testing.T) {
	users := &fakeUserService{users: map[string]models.User{
		"u1": {ID: "u1", Preferences: []string{"tech"}},
	}}
	provider := &fakeProvider{err: errors.New("provider down")}
	feedCache := cache.NewMemory()

	s := NewFeedService(users, provider, feedCache)

	_, err := s.GetFeed(context.Background(), "u1")
	require.Error(t, err)

	// A failed fetch must not poison the cache.
	_, ok := feedCache.Get("tech")
	assert.False(t, ok)
}

func TestGetFeedUnknownUser(t *testing.T) {
	s := NewFeedService(&fakeUserService{users: map[string]models.User{}}, &fakeProvider{}, cache.NewMemory())

	_, err := s.GetFeed(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
