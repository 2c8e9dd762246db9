// Package engine implements the hybrid recommendation pipeline: AI-driven
// discovery, catalog supplementation, scoring refinement, and insight
// generation, degrading gracefully whenever a provider is missing.
package engine

import (
	"context"
	"time"

	"bookscout/internal/assist"
	"bookscout/internal/cache"
	"bookscout/internal/catalog"
	"bookscout/internal/config"
	"bookscout/internal/logging"
	"bookscout/internal/model"
)

// Engine combines the assistant providers and the catalog into a single
// recommendation pipeline.
type Engine struct {
	discovery assist.Provider // search-grounded discovery (perplexity)
	analyst   assist.Provider // categorization, validation, insights (claude)
	scorer    assist.Provider // semantic and feedback score adjustment (openai)

	catalog *catalog.Service
	cache   *cache.Cache
	cfg     config.RecommendConfig
	now     func() time.Time
}

// New creates an engine. Any provider may be nil; the corresponding
// pipeline steps are skipped.
func New(discovery, analyst, scorer assist.Provider, cat *catalog.Service, c *cache.Cache, cfg config.RecommendConfig) *Engine {
	return &Engine{
		discovery: discovery,
		analyst:   analyst,
		scorer:    scorer,
		catalog:   cat,
		cache:     c,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Recommend runs the full pipeline for a validated request. An empty
// result set is a valid outcome, not an error.
func (e *Engine) Recommend(ctx context.Context, req *model.RecommendationRequest) (*model.RecommendationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if e.cache != nil {
		if resp, ok := e.cache.Get(cache.Key(req)); ok {
			logging.Info("returning cached recommendations", "term", req.SearchTerm)
			return resp, nil
		}
	}

	start := e.now()
	logging.Info("generating recommendations", "user", req.UserID, "term", req.SearchTerm)

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = e.cfg.MaxRecommendations
	}

	// Initial AI discovery plus catalog supplementation.
	books, reviews, social := e.discover(ctx, req.SearchTerm)
	var additional []model.Book
	if e.catalog != nil {
		additional = e.catalog.Search(req.SearchTerm)
		reviews = append(reviews, e.catalog.Reviews(req.SearchTerm)...)
	}
	books = append(books, additional...)

	// Dedupe before any scoring work.
	books, removed := Dedupe(books)
	logging.Info("deduplicated candidates", "unique", len(books), "removed", removed)

	// Best-effort refinement; each step passes candidates through on error.
	books = e.inferCategories(ctx, books)
	books = e.semanticAdjust(ctx, req.SearchTerm, books)
	books = e.applyFeedback(ctx, req.SearchTerm, books, req.Feedback)
	books = e.validateAccuracy(ctx, req.SearchTerm, books)

	if e.catalog != nil {
		books = e.catalog.Enrich(books)
	}

	books = FilterByScore(books, e.cfg.MinMatchScore)
	books = EnsureDiversity(books, e.cfg.MaxItemsPerAuthor, e.cfg.MaxItemsPerGenre, maxResults)
	sorted := SortByScore(books)

	resp := &model.RecommendationResponse{
		Recommendations:  sorted,
		Insights:         e.insights(ctx, req.SearchTerm, sorted),
		LiteraryAnalysis: e.literaryAnalysis(ctx, req.SearchTerm),
		Metadata: model.ResponseMetadata{
			SearchTerm:        req.SearchTerm,
			TotalResults:      len(sorted),
			DuplicatesRemoved: removed,
			ProcessingTimeMS:  float64(e.now().Sub(start)) / float64(time.Millisecond),
			Timestamp:         e.now(),
		},
	}

	if len(sorted) > 0 {
		top := sorted[0]
		resp.TopBook = &top
	}
	if top := topReview(reviews); top != nil {
		resp.TopReview = top
	}
	if top := topSocial(social); top != nil {
		resp.TopSocial = top
	}
	if len(additional) > 0 {
		trending := SortByScore(additional)
		if len(trending) > 5 {
			trending = trending[:5]
		}
		resp.Trending = trending
	}

	if e.cache != nil {
		e.cache.Put(cache.Key(req), resp)
	}

	logging.Info("recommendations generated",
		"term", req.SearchTerm,
		"results", len(sorted),
		"elapsed", e.now().Sub(start))
	return resp, nil
}

// topReview picks the highest-scoring review. Ties keep the first seen.
func topReview(reviews []model.Review) *model.Review {
	var best *model.Review
	for i := range reviews {
		if best == nil || reviews[i].MatchScore > best.MatchScore {
			best = &reviews[i]
		}
	}
	return best
}

func topSocial(posts []model.SocialPost) *model.SocialPost {
	var best *model.SocialPost
	for i := range posts {
		if best == nil || posts[i].MatchScore > best.MatchScore {
			best = &posts[i]
		}
	}
	return best
}
