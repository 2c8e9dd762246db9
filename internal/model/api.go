package model

import (
	"fmt"
	"time"
)

// MaxSearchTermLength caps query size; longer terms are rejected before
// any request is dispatched.
const MaxSearchTermLength = 256

// Rating classifies user feedback on a category.
type Rating string

const (
	RatingPositive Rating = "positive"
	RatingNegative Rating = "negative"
	RatingNeutral  Rating = "neutral"
)

// FeedbackItem is a user's rating for a category (e.g. "science fiction").
type FeedbackItem struct {
	Category string `json:"category"`
	Rating   Rating `json:"rating"`
}

// RecommendationRequest is the input to the recommendation engine.
// History is ordered chronologically; Feedback preserves submission order.
type RecommendationRequest struct {
	UserID     string         `json:"user_id"`
	SearchTerm string         `json:"search_term"`
	History    []string       `json:"history,omitempty"`
	Feedback   []FeedbackItem `json:"feedback,omitempty"`
	MaxResults int            `json:"max_results,omitempty"`
}

// Validate checks required fields and rejects oversized queries.
// A zero MaxResults means "use the configured default".
func (r *RecommendationRequest) Validate() error {
	if r.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if r.SearchTerm == "" {
		return fmt.Errorf("search_term is required")
	}
	if len(r.SearchTerm) > MaxSearchTermLength {
		return fmt.Errorf("search_term exceeds %d characters", MaxSearchTermLength)
	}
	if r.MaxResults < 0 {
		return fmt.Errorf("max_results cannot be negative")
	}
	for i, f := range r.Feedback {
		if f.Category == "" {
			return fmt.Errorf("feedback[%d]: category is required", i)
		}
		switch f.Rating {
		case RatingPositive, RatingNegative, RatingNeutral:
		default:
			return fmt.Errorf("feedback[%d]: unknown rating %q", i, f.Rating)
		}
	}
	return nil
}

// Insights holds free-form analytical annotations about a recommendation
// set. Every list preserves the order the analysis produced.
type Insights struct {
	ThematicConnections []string `json:"thematic_connections,omitempty"`
	CulturalContext     []string `json:"cultural_context,omitempty"`
	ReadingPathways     []string `json:"reading_pathways,omitempty"`
	CriticalReception   []string `json:"critical_reception,omitempty"`
	AcademicRelevance   []string `json:"academic_relevance,omitempty"`
	Analysis            string   `json:"analysis,omitempty"`
}

// LiteraryAnalysis is a thematic and stylistic breakdown of the search
// subject, independent of any particular recommended book.
type LiteraryAnalysis struct {
	Themes          []string `json:"themes,omitempty"`
	Genres          []string `json:"genres,omitempty"`
	RelatedSubjects []string `json:"related_subjects,omitempty"`
	KeyAuthors      []string `json:"key_authors,omitempty"`
	TimePeriods     []string `json:"time_periods,omitempty"`
	Analysis        string   `json:"analysis,omitempty"`
	Source          string   `json:"source,omitempty"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	SearchTerm        string    `json:"search_term"`
	TotalResults      int       `json:"total_results"`
	DuplicatesRemoved int       `json:"duplicates_removed"`
	ProcessingTimeMS  float64   `json:"processing_time_ms"`
	Timestamp         time.Time `json:"timestamp"`
}

// RecommendationResponse carries the top pick per category plus the ranked
// recommendation list, best-first. Top picks may be absent when a category
// produced no results.
type RecommendationResponse struct {
	TopBook          *Book            `json:"top_book,omitempty"`
	TopReview        *Review          `json:"top_review,omitempty"`
	TopSocial        *SocialPost      `json:"top_social,omitempty"`
	Recommendations  []Book           `json:"recommendations"`
	Trending         []Book           `json:"trending,omitempty"`
	Insights         *Insights        `json:"contextual_insights,omitempty"`
	LiteraryAnalysis *LiteraryAnalysis `json:"literary_analysis,omitempty"`
	Metadata         ResponseMetadata `json:"metadata"`
}

// StatsResponse is per-user usage statistics.
type StatsResponse struct {
	UserID          string     `json:"user_id"`
	TotalRequests   int        `json:"total_requests"`
	AvgResponseTime float64    `json:"avg_response_time"`
	LastRequest     *time.Time `json:"last_request,omitempty"`
	TopSearches     []string   `json:"top_searches"`
}

// GlobalStats is service-wide usage statistics.
type GlobalStats struct {
	TotalUsers      int     `json:"total_users"`
	TotalRequests   int     `json:"total_requests"`
	AvgResponseTime float64 `json:"avg_response_time"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status        string    `json:"status"`
	Version       string    `json:"version"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds float64   `json:"uptime_seconds"`
}

// ErrorResponse is the wire shape for API failures.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      int       `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}
