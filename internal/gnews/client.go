package gnews

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/isdelr/newsfeed-be/internal/models"
)

const defaultBaseURL = "https://gnews.io/api/v4"

// NewsProvider is the external search API the feed is built from.
type NewsProvider interface {
	Search(ctx context.Context, query string) ([]models.Article, error)
}

// Client talks to the GNews search API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a GNews client with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithBaseURL is like NewClient but targets a custom endpoint.
// Used in tests.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

type searchResponse struct {
	TotalArticles int              `json:"totalArticles"`
	Articles      []models.Article `json:"articles"`
}

// Search queries the provider for English US articles matching query,
// capped at 10 results.
func (c *Client) Search(ctx context.Context, query string) ([]models.Article, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("lang", "en")
	params.Set("country", "us")
	params.Set("max", "10")
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news from external API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to fetch news from external API: status %d: %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode news response: %w", err)
	}
	return result.Articles, nil
}
