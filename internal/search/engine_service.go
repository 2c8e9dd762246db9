package search

import (
	"context"

	"bookscout/internal/engine"
	"bookscout/internal/model"
)

// EngineService adapts the recommendation engine to the Service interface
// for the frontend. Unlike the mock, an empty term means "nothing to
// browse" and short-circuits to an empty result.
type EngineService struct {
	engine *engine.Engine
	userID string
}

var _ Service = (*EngineService)(nil)

// NewEngineService wraps an engine for a single frontend user.
func NewEngineService(e *engine.Engine, userID string) *EngineService {
	return &EngineService{engine: e, userID: userID}
}

var _ FullService = (*EngineService)(nil)

func (s *EngineService) Search(ctx context.Context, term string) ([]model.Book, error) {
	resp, err := s.Recommend(ctx, term)
	if err != nil || resp == nil {
		return nil, err
	}
	return resp.Recommendations, nil
}

// Recommend exposes the complete response, including top mentions and
// insights, for frontends that render more than the ranked list.
func (s *EngineService) Recommend(ctx context.Context, term string) (*model.RecommendationResponse, error) {
	if term == "" {
		return nil, nil
	}
	return s.engine.Recommend(ctx, &model.RecommendationRequest{
		UserID:     s.userID,
		SearchTerm: term,
	})
}
