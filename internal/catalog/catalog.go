// Package catalog supplements AI-discovered books with titles from external
// book databases. The Goodreads and LibraryThing APIs are closed to new
// applications, so their datasets are simulated; Project Gutenberg acts as
// the fallback when neither is configured.
package catalog

import (
	"hash/fnv"
	"strings"

	"bookscout/internal/logging"
	"bookscout/internal/model"
)

// Service searches the simulated external databases and enriches books with
// metadata a real database lookup would provide.
type Service struct {
	goodreadsKey    string
	libraryThingKey string
	reviewFeeds     []*ReviewFeed
}

// NewService creates a catalog service. Keys may be empty; searching then
// falls back to the Project Gutenberg dataset.
func NewService(goodreadsKey, libraryThingKey string) *Service {
	s := &Service{
		goodreadsKey:    goodreadsKey,
		libraryThingKey: libraryThingKey,
	}
	if goodreadsKey == "" && libraryThingKey == "" {
		logging.Warn("no book database API keys provided, using fallback data only")
	}
	return s
}

// AddReviewFeed registers an RSS review source consulted on every search.
func (s *Service) AddReviewFeed(f *ReviewFeed) {
	s.reviewFeeds = append(s.reviewFeeds, f)
}

// Reviews collects matching entries from the configured review feeds. A
// failing feed is logged and skipped; feeds never fail a search.
func (s *Service) Reviews(term string) []model.Review {
	var reviews []model.Review
	for _, f := range s.reviewFeeds {
		found, err := f.Fetch(term)
		if err != nil {
			logging.Warn("review feed fetch failed", "feed", f.Name(), "error", err)
			continue
		}
		reviews = append(reviews, found...)
	}
	return reviews
}

// Search returns additional books matching the search term from whichever
// databases are configured.
func (s *Service) Search(term string) []model.Book {
	var books []model.Book

	if s.goodreadsKey != "" {
		found := searchGoodreads(term)
		books = append(books, found...)
		logging.Info("found additional books from Goodreads", "count", len(found))
	}
	if s.libraryThingKey != "" {
		found := searchLibraryThing(term)
		books = append(books, found...)
		logging.Info("found additional books from LibraryThing", "count", len(found))
	}
	if len(books) == 0 {
		found := searchGutenberg(term)
		books = append(books, found...)
		logging.Info("found additional books from Project Gutenberg", "count", len(found))
	}

	return books
}

// Enrich fills in rating, review count, and publication year for books that
// lack them. Values are synthetic but deterministic per title, so repeated
// searches show stable metadata.
func (s *Service) Enrich(books []model.Book) []model.Book {
	out := make([]model.Book, len(books))
	for i, b := range books {
		out[i] = enrichBook(b)
	}
	return out
}

func enrichBook(b model.Book) model.Book {
	seed := titleSeed(b.Title, b.Author)

	if b.Rating == 0 {
		// Scale around the match score the way a real aggregate rating
		// tracks popularity, with a small per-title wobble.
		base := 3.5 + (b.MatchScore-0.5)*1.5
		wobble := (float64(seed%7) - 3) / 10 // -0.3 .. +0.3
		r := base + wobble
		if r > 5.0 {
			r = 5.0
		}
		if r < 1.0 {
			r = 1.0
		}
		b.Rating = float64(int(r*10)) / 10
	}
	if b.ReviewCount == 0 {
		b.ReviewCount = 50 + int(seed%4951)
	}
	if b.Year == 0 {
		b.Year = 1975 + int(seed%51)
	}
	return b
}

func titleSeed(title, author string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(title)))
	h.Write([]byte(strings.ToLower(author)))
	return h.Sum32()
}
