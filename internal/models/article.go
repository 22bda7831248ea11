package models

// Article is a news article as returned by the external news provider.
// Fields are transported as-is; only the ID is interpreted by this system,
// as the key for read/favorite tracking.
type Article struct {
	ID          string        `json:"id,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Content     string        `json:"content,omitempty"`
	URL         string        `json:"url"`
	Image       string        `json:"image,omitempty"`
	PublishedAt string        `json:"publishedAt,omitempty"`
	Source      ArticleSource `json:"source"`
}

// ArticleSource identifies the outlet an article came from.
type ArticleSource struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}
