// Package resources finds learning resources: a curated table per domain,
// web search hits and URL classification.
package resources

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Search result sources.
const (
	SourceGoogle = "google_api"
	SourceMock   = "mock"
)

// MaxSearchResults is the largest page the search API returns.
const MaxSearchResults = 10

// SearchResult is one web search hit.
type SearchResult struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Snippet      string `json:"snippet"`
	Source       string `json:"source"`
	ResourceType string `json:"resource_type,omitempty"`
	Topic        string `json:"topic,omitempty"`
	Level        string `json:"level,omitempty"`
}

// Searcher runs web searches.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]SearchResult, error)
}

// GoogleSearcher queries the Google Custom Search JSON API. Failed requests
// degrade to MockSearcher results.
type GoogleSearcher struct {
	svc      *customsearch.Service
	engineID string
	fallback MockSearcher
	log      *zap.Logger
}

// NewGoogleSearcher creates a searcher for the given API key and search
// engine id. Extra client options are appended, which lets tests point the
// client at a local server.
func NewGoogleSearcher(ctx context.Context, apiKey, engineID string, log *zap.Logger, opts ...option.ClientOption) (*GoogleSearcher, error) {
	if apiKey == "" || engineID == "" {
		return nil, fmt.Errorf("google search requires GOOGLE_SEARCH_API_KEY and GOOGLE_SEARCH_ENGINE_ID")
	}
	if log == nil {
		log = zap.NewNop()
	}
	svc, err := customsearch.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create custom search client: %w", err)
	}
	return &GoogleSearcher{svc: svc, engineID: engineID, log: log}, nil
}

// Search returns up to max hits for query.
func (g *GoogleSearcher) Search(ctx context.Context, query string, max int) ([]SearchResult, error) {
	num := min(max, MaxSearchResults)
	if num <= 0 {
		return []SearchResult{}, nil
	}

	res, err := g.svc.Cse.List().Q(query).Cx(g.engineID).Num(int64(num)).Context(ctx).Do()
	if err != nil {
		g.log.Warn("search request failed, using canned results",
			zap.String("kind", "search"),
			zap.String("reason", err.Error()),
		)
		return g.fallback.Search(ctx, query, max)
	}

	out := make([]SearchResult, 0, len(res.Items))
	for _, item := range res.Items {
		out = append(out, SearchResult{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
			Source:  SourceGoogle,
		})
	}
	return out, nil
}

// MockSearcher returns canned results. Queries mentioning python get a fixed
// list of real python resources; any other query gets numbered placeholders.
type MockSearcher struct{}

var pythonResults = []SearchResult{
	{Title: "Python Official Documentation", URL: "https://docs.python.org/3/tutorial/", Snippet: "The official introduction to the Python language.", ResourceType: "documentation"},
	{Title: "Python Beginner Course - YouTube", URL: "https://www.youtube.com/watch?v=example", Snippet: "A complete video series for learning Python from scratch.", ResourceType: "video"},
	{Title: "W3Schools Python Tutorial", URL: "https://www.w3schools.com/python/", Snippet: "An interactive Python learning platform.", ResourceType: "website"},
	{Title: "Real Python - Tutorials", URL: "https://realpython.com/", Snippet: "Python tutorials, guides, and resources.", ResourceType: "article"},
	{Title: "Python Exercises", URL: "https://www.hackerrank.com/domains/python", Snippet: "Python practice problems and exercises.", ResourceType: "website"},
}

// Search returns up to max canned results for query.
func (MockSearcher) Search(_ context.Context, query string, max int) ([]SearchResult, error) {
	max = min(max, MaxSearchResults)
	if max <= 0 {
		return []SearchResult{}, nil
	}

	var out []SearchResult
	if strings.Contains(strings.ToLower(query), "python") {
		out = make([]SearchResult, min(max, len(pythonResults)))
		copy(out, pythonResults)
	} else {
		out = make([]SearchResult, max)
		for i := range out {
			out[i] = SearchResult{
				Title:        fmt.Sprintf("Result %d: %s", i+1, query),
				URL:          fmt.Sprintf("https://example.org/resource/%d", i+1),
				Snippet:      fmt.Sprintf("A sample resource about %s.", query),
				ResourceType: "website",
			}
		}
	}
	for i := range out {
		out[i].Source = SourceMock
	}
	return out, nil
}
