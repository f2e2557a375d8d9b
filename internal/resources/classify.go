package resources

import (
	"context"
	"fmt"
	"strings"
)

// Resource types assigned by Classify.
const (
	TypeVideo          = "video"
	TypeCodeRepository = "code_repository"
	TypeArticle        = "article"
	TypeDocumentation  = "documentation"
	TypeCourse         = "course"
	TypeWebsite        = "website"
)

var classifyRules = []struct {
	typ     string
	markers []string
}{
	{TypeVideo, []string{"youtube.com", "youtu.be"}},
	{TypeCodeRepository, []string{"github.com"}},
	{TypeArticle, []string{"medium.com", "dev.to"}},
	{TypeDocumentation, []string{"docs.", "documentation"}},
	{TypeCourse, []string{"udemy.com", "coursera.org", "edx.org"}},
}

// Classify guesses a resource type from a URL by substring. The first
// matching rule wins.
func Classify(url string) string {
	u := strings.ToLower(url)
	for _, r := range classifyRules {
		for _, m := range r.markers {
			if strings.Contains(u, m) {
				return r.typ
			}
		}
	}
	return TypeWebsite
}

var levelQueryTerms = map[string]string{
	"beginner":     "beginner",
	"intermediate": "intermediate level",
	"advanced":     "advanced level",
}

// SearchLearningResources searches for study material on topic and tags each
// hit with the topic, level and classified resource type.
func SearchLearningResources(ctx context.Context, s Searcher, topic, level, language string, max int) ([]SearchResult, error) {
	term, ok := levelQueryTerms[strings.ToLower(level)]
	if !ok {
		term = level
	}
	query := fmt.Sprintf("%s %s tutorial learn", topic, term)
	if language != "" && language != "en" {
		query += " " + language
	}

	results, err := s.Search(ctx, query, max)
	if err != nil {
		return nil, fmt.Errorf("search learning resources: %w", err)
	}
	for i := range results {
		results[i].Topic = topic
		results[i].Level = level
		results[i].ResourceType = Classify(results[i].URL)
	}
	return results, nil
}
