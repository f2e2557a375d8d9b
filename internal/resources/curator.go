package resources

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/profile"
)

// MaxCurated is the number of curated entries kept per lookup.
const MaxCurated = 5

// RecommendationStore persists the resources recommended for a goal.
type RecommendationStore interface {
	SaveRecommendations(key string, recs []learning.Resource) error
}

// Curator combines the curated table with search hits.
type Curator struct {
	searcher   Searcher
	store      RecommendationStore
	maxResults int
	log        *zap.Logger
}

// NewCurator creates a Curator. A nil searcher uses MockSearcher; a nil
// store skips persisting recommendations.
func NewCurator(s Searcher, store RecommendationStore, maxResults int, log *zap.Logger) *Curator {
	if s == nil {
		s = MockSearcher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Curator{searcher: s, store: store, maxResults: maxResults, log: log}
}

// Category picks the curated list for a profile from its goal and domain.
func Category(p learning.Profile) string {
	if d := profile.DetectDomain(p.Goal); d != profile.DomainGeneral {
		return d
	}
	return profile.DetectDomain(p.Domain)
}

// Query builds the search query for a profile.
func Query(p learning.Profile) string {
	return strings.Join(strings.Fields(fmt.Sprintf("%s %s %s tutorial", p.Level, p.Domain, p.Goal)), " ")
}

// FindResources returns the first curated entries for the profile followed
// by search hits. A failed search leaves only the curated entries.
func (c *Curator) FindResources(ctx context.Context, p learning.Profile) ([]learning.Resource, error) {
	out := Curated(Category(p))
	if len(out) > MaxCurated {
		out = out[:MaxCurated]
	}

	if c.maxResults > 0 {
		hits, err := c.searcher.Search(ctx, Query(p), c.maxResults)
		if err != nil {
			c.log.Warn("resource search failed",
				zap.String("kind", "search"),
				zap.String("reason", err.Error()),
			)
		}
		for _, h := range hits {
			out = append(out, learning.Resource{
				Title:       h.Title,
				URL:         h.URL,
				Type:        Classify(h.URL),
				Description: h.Snippet,
			})
		}
	}

	if c.store != nil {
		if err := c.store.SaveRecommendations(p.Goal, out); err != nil {
			return nil, fmt.Errorf("save recommendations: %w", err)
		}
	}
	return out, nil
}
