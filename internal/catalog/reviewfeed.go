package catalog

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"

	"bookscout/internal/model"
)

// ReviewFeed pulls book reviews from an RSS/Atom feed, typically a literary
// review site or book blog.
type ReviewFeed struct {
	name   string
	url    string
	parser *gofeed.Parser
}

// NewReviewFeed creates a review feed source
func NewReviewFeed(name, url string) *ReviewFeed {
	return &ReviewFeed{
		name:   name,
		url:    url,
		parser: gofeed.NewParser(),
	}
}

func (f *ReviewFeed) Name() string {
	return f.name
}

// Fetch parses the feed and returns entries whose title or summary mentions
// the search term. An empty term returns everything.
func (f *ReviewFeed) Fetch(term string) ([]model.Review, error) {
	feed, err := f.parser.ParseURL(f.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", f.url, err)
	}

	t := strings.ToLower(term)
	now := time.Now()
	reviews := make([]model.Review, 0, len(feed.Items))

	for _, entry := range feed.Items {
		if t != "" && !strings.Contains(strings.ToLower(entry.Title), t) &&
			!strings.Contains(strings.ToLower(entry.Description), t) {
			continue
		}

		// Stable ID from the entry link
		id := fmt.Sprintf("%x", sha256.Sum256([]byte(entry.Link)))[:16]

		published := now
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			published = *entry.UpdatedParsed
		}

		author := ""
		if entry.Author != nil {
			author = entry.Author.Name
		}

		summary := entry.Description
		if summary == "" && entry.Content != "" {
			summary = truncate(entry.Content, 200)
		}

		r := model.NewReview(model.Mention{
			ID:         id,
			Title:      entry.Title,
			Author:     author,
			Source:     f.name,
			Date:       published.Format("2006-01-02"),
			Summary:    summary,
			URL:        entry.Link,
			MatchScore: 0.6,
		})
		reviews = append(reviews, r)
	}

	return reviews, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
