package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bookscout/internal/assist"
	"bookscout/internal/logging"
	"bookscout/internal/model"
)

// inferCategories asks the analysis provider to fill in category and genre
// for books that arrived without a useful category. Books are processed in
// small batches to keep prompt sizes manageable.
func (e *Engine) inferCategories(ctx context.Context, books []model.Book) []model.Book {
	if e.analyst == nil || !e.analyst.Available() {
		return books
	}

	var toInfer []int
	for i, b := range books {
		c := strings.ToLower(strings.TrimSpace(b.Category))
		if c == "" || c == "book" || c == "unknown" || c == "other" {
			toInfer = append(toInfer, i)
		}
	}
	if len(toInfer) == 0 {
		return books
	}

	out := make([]model.Book, len(books))
	copy(out, books)

	const batchSize = 3
	for start := 0; start < len(toInfer); start += batchSize {
		end := start + batchSize
		if end > len(toInfer) {
			end = len(toInfer)
		}
		batch := toInfer[start:end]

		var sb strings.Builder
		for j, idx := range batch {
			fmt.Fprintf(&sb, "Book %d:\nTitle: %s\nAuthor: %s\nSummary: %s\n\n",
				j+1, out[idx].Title, out[idx].Author, out[idx].Summary)
		}

		prompt := fmt.Sprintf(`For each of the following books, infer the most appropriate literary category based on the title, author, and summary.

%s
For each book, provide the category in JSON format with the following structure:

[
  {
    "book_index": 1,
    "category": "The inferred category (e.g., Novel, Short Story, Poetry, Essay, Biography, etc.)",
    "genre": "The primary genre (e.g., Science Fiction, Literary Fiction, Mystery, Romance, etc.)"
  }
]

Respond with ONLY the JSON array, no additional text.`, sb.String())

		resp, err := e.analyst.Generate(ctx, assist.Request{UserPrompt: prompt, MaxTokens: 1500})
		if err != nil {
			logging.Error("category inference failed", "error", err)
			continue
		}

		raw, err := assist.ExtractJSON(resp.Content)
		if err != nil {
			logging.Error("category inference payload unparseable", "error", err)
			continue
		}

		var results []struct {
			BookIndex int    `json:"book_index"`
			Category  string `json:"category"`
			Genre     string `json:"genre"`
		}
		if err := json.Unmarshal([]byte(raw), &results); err != nil {
			logging.Error("category inference payload unparseable", "error", err)
			continue
		}

		for _, r := range results {
			j := r.BookIndex - 1
			if j < 0 || j >= len(batch) {
				continue
			}
			idx := batch[j]
			if r.Category != "" {
				out[idx].Category = r.Category
			}
			if r.Genre != "" {
				out[idx].Genre = r.Genre
			}
		}
	}

	return out
}

// scoreAdjustment is the shape both semantic analysis and feedback
// cross-validation ask providers to return per book.
type scoreAdjustment struct {
	ScoreAdjustment float64 `json:"score_adjustment"`
	Explanation     string  `json:"explanation"`
}

// semanticAdjust refines each book's match score by asking the scoring
// provider how well it semantically matches the search term. Failures
// leave the book's score untouched.
func (e *Engine) semanticAdjust(ctx context.Context, term string, books []model.Book) []model.Book {
	if e.scorer == nil || !e.scorer.Available() {
		return books
	}

	out := make([]model.Book, len(books))
	copy(out, books)

	for i, b := range out {
		prompt := fmt.Sprintf(`You are a literary recommendation expert evaluating how well a book matches a search query.

Given a search term: "%s"

Book information:
Title: %s
Author: %s
Summary: %s
Category: %s

Current match score: %g

Analyze how well this book matches the search term semantically, considering
thematic relevance, genre and style alignment, and direct or indirect relation
to the search term.

Return a JSON object with:
1. "score_adjustment": A float between -0.3 and +0.3 to adjust the match score
2. "explanation": A brief explanation of your adjustment

Respond with the JSON object only.`, term, b.Title, b.Author, b.Summary, b.Category, b.MatchScore)

		adj, err := e.requestAdjustment(ctx, prompt)
		if err != nil {
			logging.Error("semantic analysis failed", "title", b.Title, "error", err)
			continue
		}
		out[i].MatchScore = clampScore(b.MatchScore + clampAdjustment(adj.ScoreAdjustment))
	}

	return out
}

// applyFeedback nudges match scores toward categories the user rated
// positively and away from ones rated negatively.
func (e *Engine) applyFeedback(ctx context.Context, term string, books []model.Book, feedback []model.FeedbackItem) []model.Book {
	if len(feedback) == 0 || e.scorer == nil || !e.scorer.Available() {
		return books
	}

	var fb strings.Builder
	for _, f := range feedback {
		fmt.Fprintf(&fb, "- %s: %s\n", f.Category, f.Rating)
	}

	out := make([]model.Book, len(books))
	copy(out, books)

	for i, b := range out {
		prompt := fmt.Sprintf(`You are a literary recommendation expert cross-validating book recommendations against user feedback.

User search term: "%s"

User feedback:
%s
Book information:
Title: %s
Author: %s
Summary: %s
Category: %s

Adjust the match score based on how well the book aligns with the feedback:
books matching liked categories score higher, books in disliked categories lower.

Return a JSON object with:
1. "score_adjustment": A float between -0.3 and +0.3 to adjust the match score
2. "explanation": A brief explanation of your adjustment

Respond with the JSON object only.`, term, fb.String(), b.Title, b.Author, b.Summary, b.Category)

		adj, err := e.requestAdjustment(ctx, prompt)
		if err != nil {
			logging.Error("feedback cross-validation failed", "title", b.Title, "error", err)
			continue
		}
		out[i].MatchScore = clampScore(b.MatchScore + clampAdjustment(adj.ScoreAdjustment))
	}

	return out
}

func (e *Engine) requestAdjustment(ctx context.Context, prompt string) (*scoreAdjustment, error) {
	resp, err := e.scorer.Generate(ctx, assist.Request{UserPrompt: prompt, MaxTokens: 250})
	if err != nil {
		return nil, err
	}
	raw, err := assist.ExtractJSON(resp.Content)
	if err != nil {
		return nil, err
	}
	var adj scoreAdjustment
	if err := json.Unmarshal([]byte(raw), &adj); err != nil {
		return nil, err
	}
	return &adj, nil
}

// validateAccuracy asks the analysis provider to verify each book is real
// and relevant, adopting its adjusted match scores. Books the provider does
// not mention pass through unchanged.
func (e *Engine) validateAccuracy(ctx context.Context, term string, books []model.Book) []model.Book {
	if e.analyst == nil || !e.analyst.Available() || len(books) == 0 {
		return books
	}

	booksJSON, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return books
	}

	prompt := fmt.Sprintf(`Validate the accuracy and relevance of the following book recommendations for the search term: "%s"

Book recommendations (in JSON format):
%s

For each book, verify its accuracy (is it a real book with correct author?) and its relevance to the search term.

Return a JSON array where each element has the structure:

{
  "title": "Original book title",
  "author": "Original author name",
  "is_accurate": true/false,
  "is_relevant": true/false,
  "adjusted_match_score": float between 0.0-1.0
}

Respond with ONLY the JSON array, no additional text.`, term, booksJSON)

	resp, err := e.analyst.Generate(ctx, assist.Request{UserPrompt: prompt, MaxTokens: 1500})
	if err != nil {
		logging.Error("accuracy validation failed", "error", err)
		return books
	}

	raw, err := assist.ExtractJSON(resp.Content)
	if err != nil {
		logging.Error("accuracy validation payload unparseable", "error", err)
		return books
	}

	var validations []struct {
		Title              string   `json:"title"`
		Author             string   `json:"author"`
		IsAccurate         *bool    `json:"is_accurate"`
		IsRelevant         *bool    `json:"is_relevant"`
		AdjustedMatchScore *float64 `json:"adjusted_match_score"`
	}
	if err := json.Unmarshal([]byte(raw), &validations); err != nil {
		logging.Error("accuracy validation payload unparseable", "error", err)
		return books
	}

	out := make([]model.Book, len(books))
	copy(out, books)
	for i, b := range out {
		for _, v := range validations {
			if v.Title == b.Title && v.Author == b.Author {
				if v.AdjustedMatchScore != nil {
					out[i].MatchScore = clampScore(*v.AdjustedMatchScore)
				}
				break
			}
		}
	}
	return out
}

// insights asks the analysis provider for contextual insights across the
// top recommendations, falling back to templated insights that echo the
// search term.
func (e *Engine) insights(ctx context.Context, term string, books []model.Book) *model.Insights {
	if len(books) > 5 {
		books = books[:5]
	}

	if e.analyst == nil || !e.analyst.Available() {
		return fallbackInsights(term)
	}

	var sb strings.Builder
	for _, b := range books {
		fmt.Fprintf(&sb, "Title: %s\nAuthor: %s\nCategory: %s\nSummary: %s\n\n",
			b.Title, b.Author, b.Category, b.Summary)
	}

	prompt := fmt.Sprintf(`Based on the search term "%s" and the following book recommendations:

%s
Provide contextual insights in JSON format with the following structure:

{
  "thematic_connections": [3-5 thematic connections between the recommended books],
  "cultural_context": [2-3 cultural or historical contexts relevant to these recommendations],
  "reading_pathways": [2-3 suggested reading orders or pathways through these books],
  "critical_reception": [2-3 points about how these works have been received critically],
  "academic_relevance": [1-2 points about the academic or scholarly relevance of these works],
  "analysis": "A 2-3 sentence critical analysis of these recommendations as a collection"
}

Respond with ONLY the JSON object, no additional text.`, term, sb.String())

	resp, err := e.analyst.Generate(ctx, assist.Request{UserPrompt: prompt, MaxTokens: 1500})
	if err != nil {
		logging.Error("insight generation failed", "error", err)
		return fallbackInsights(term)
	}

	raw, err := assist.ExtractJSON(resp.Content)
	if err != nil {
		logging.Error("insight payload unparseable", "error", err)
		return fallbackInsights(term)
	}

	var insights model.Insights
	if err := json.Unmarshal([]byte(raw), &insights); err != nil {
		logging.Error("insight payload unparseable", "error", err)
		return fallbackInsights(term)
	}
	return &insights
}

func fallbackInsights(term string) *model.Insights {
	return &model.Insights{
		ThematicConnections: []string{
			fmt.Sprintf("Shared explorations of %s across the set", term),
			fmt.Sprintf("Different narrative approaches to %s", term),
		},
		ReadingPathways: []string{
			"Start with the highest-rated title and branch outward",
		},
		Analysis: fmt.Sprintf("These recommendations approach %s from complementary angles, "+
			"balancing established classics with newer perspectives.", term),
	}
}
