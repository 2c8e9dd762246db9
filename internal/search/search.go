// Package search defines the data source the frontend searches against.
// The UI depends only on the Service interface, so swapping the mock for
// the engine-backed service is a wiring change, not a UI change.
package search

import (
	"context"
	"fmt"

	"bookscout/internal/logging"
	"bookscout/internal/model"
)

// Service produces book results for a search term.
type Service interface {
	Search(ctx context.Context, term string) ([]model.Book, error)
}

// FullService is implemented by services that can also return the complete
// recommendation response. Frontends type-assert for it and fall back to
// the plain book list when it is absent.
type FullService interface {
	Service
	Recommend(ctx context.Context, term string) (*model.RecommendationResponse, error)
}

// MockService returns deterministic templated results for any term,
// including the empty one. It exists so the frontend is demonstrable
// without API keys or a running backend.
type MockService struct{}

var _ Service = (*MockService)(nil)

// NewMockService creates the mock search service.
func NewMockService() *MockService {
	return &MockService{}
}

// Search returns exactly three books with descending match scores. The
// term appears verbatim in every title and summary.
func (s *MockService) Search(ctx context.Context, term string) ([]model.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logging.Debug("mock search", "term", term)

	return []model.Book{
		{
			ID:         "1",
			Title:      fmt.Sprintf("The Art of %s", term),
			Author:     "Jane Doe",
			Summary:    fmt.Sprintf("A deep exploration of %s and its impact on modern literature.", term),
			Category:   "Novel",
			MatchScore: 0.95,
		},
		{
			ID:         "2",
			Title:      fmt.Sprintf("Understanding %s", term),
			Author:     "John Smith",
			Summary:    fmt.Sprintf("A comprehensive guide to %s for curious readers.", term),
			Category:   "Non-fiction",
			MatchScore: 0.85,
		},
		{
			ID:         "3",
			Title:      fmt.Sprintf("%s: A History", term),
			Author:     "Alex Johnson",
			Summary:    fmt.Sprintf("Tracing the origins and evolution of %s through the centuries.", term),
			Category:   "History",
			MatchScore: 0.75,
		},
	}, nil
}
