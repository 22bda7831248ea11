package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/newsfeed-be/internal/auth"
	"github.com/isdelr/newsfeed-be/internal/services"
	"github.com/rs/zerolog/log"
)

// NewsHandler handles HTTP requests for the personalized feed and for
// read/favorite article tracking.
type NewsHandler struct {
	feed  services.FeedServiceProvider
	users services.UserServiceProvider
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(feed services.FeedServiceProvider, users services.UserServiceProvider) *NewsHandler {
	return &NewsHandler{feed: feed, users: users}
}

// GetFeed serves the caller's personalized feed.
func (h *NewsHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	articles, err := h.feed.GetFeed(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch news")
		writeError(w, http.StatusInternalServerError, "Failed to fetch news", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"news": articles})
}

// MarkRead records the article in the caller's read list.
func (h *NewsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	articleID := chi.URLParam(r, "id")

	if err := h.users.MarkArticleRead(userID, articleID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("article_id", articleID).Msg("Failed to mark as read")
		writeError(w, http.StatusInternalServerError, "Failed to mark as read", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Article marked as read."})
}

// MarkFavorite records the article in the caller's favorites list.
func (h *NewsHandler) MarkFavorite(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	articleID := chi.URLParam(r, "id")

	if err := h.users.MarkArticleFavorite(userID, articleID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("article_id", articleID).Msg("Failed to mark as favorite")
		writeError(w, http.StatusInternalServerError, "Failed to mark as favorite", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Article marked as favorite."})
}

// ListRead returns the caller's read article IDs.
func (h *NewsHandler) ListRead(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	articles, err := h.users.GetReadArticles(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch read articles")
		writeError(w, http.StatusInternalServerError, "Failed to fetch read articles", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"readArticles": articles})
}

// ListFavorites returns the caller's favorite article IDs.
func (h *NewsHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	articles, err := h.users.GetFavoriteArticles(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch favorite articles")
		writeError(w, http.StatusInternalServerError, "Failed to fetch favorite articles", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"favoriteArticles": articles})
}
