package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"bookscout/internal/assist"
	"bookscout/internal/logging"
	"bookscout/internal/model"
)

const bookPrompt = `You are a book recommendation expert. Provide detailed book recommendations related to the user's query.
Return a JSON array of books with these fields for each book:
- title: The book title
- author: The author's name
- summary: A brief summary of the book
- category: The book's main category/genre
- match_score: A number between 0 and 1 indicating relevance
- id: A unique identifier (e.g. 'book-1')

Return 3-5 books. Format as a valid JSON array only, with no additional text.`

const reviewPrompt = `You are a literary review expert. Provide book review recommendations related to the user's query.
Return a JSON array of reviews with these fields for each review:
- title: The review title
- source: The source of the review (publication name)
- date: Publication date of the review
- summary: A brief summary of the review content
- link: A link to the review

Return 2-3 reviews. Format as a valid JSON array only, with no additional text.`

const socialPrompt = `You are a social media expert. Provide social media discussions related to the user's literary query.
Return a JSON array of social media posts with these fields for each post:
- title: The post title or main topic
- source: The platform (X, Reddit, etc.)
- date: Post date
- summary: A brief summary of the post content
- link: A link to the post

Return 2-3 posts. Format as a valid JSON array only, with no additional text.`

// mentionPayload is the wire shape discovery prompts ask for.
type mentionPayload struct {
	Title      string  `json:"title"`
	Author     string  `json:"author,omitempty"`
	Source     string  `json:"source"`
	Date       string  `json:"date"`
	Summary    string  `json:"summary"`
	Link       string  `json:"link"`
	MatchScore float64 `json:"match_score,omitempty"`
}

// discover runs the three initial discovery prompts concurrently and
// returns whatever parsed. A failed or unparseable prompt degrades to an
// empty slice rather than failing the search.
func (e *Engine) discover(ctx context.Context, term string) ([]model.Book, []model.Review, []model.SocialPost) {
	if e.discovery == nil || !e.discovery.Available() {
		logging.Warn("no discovery provider configured, skipping initial recommendations")
		return nil, nil, nil
	}

	var (
		wg      sync.WaitGroup
		books   []model.Book
		reviews []model.Review
		social  []model.SocialPost
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		books, err = e.discoverBooks(ctx, term)
		if err != nil {
			logging.Error("book discovery failed", "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		reviews, err = e.discoverReviews(ctx, term)
		if err != nil {
			logging.Error("review discovery failed", "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		social, err = e.discoverSocial(ctx, term)
		if err != nil {
			logging.Error("social discovery failed", "error", err)
		}
	}()
	wg.Wait()

	logging.Info("initial discovery complete",
		"books", len(books), "reviews", len(reviews), "social", len(social))
	return books, reviews, social
}

func (e *Engine) discoverBooks(ctx context.Context, term string) ([]model.Book, error) {
	resp, err := e.discovery.Generate(ctx, assist.Request{
		SystemPrompt: bookPrompt,
		UserPrompt:   fmt.Sprintf("Recommend books related to: %s", term),
		MaxTokens:    1500,
	})
	if err != nil {
		return nil, err
	}

	raw, err := assist.ExtractJSON(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("book payload: %w", err)
	}

	var books []model.Book
	if err := json.Unmarshal([]byte(raw), &books); err != nil {
		return nil, fmt.Errorf("book payload: %w", err)
	}
	return books, nil
}

func (e *Engine) discoverReviews(ctx context.Context, term string) ([]model.Review, error) {
	payloads, err := e.discoverMentions(ctx, reviewPrompt,
		fmt.Sprintf("Find reviews related to: %s", term))
	if err != nil {
		return nil, err
	}

	reviews := make([]model.Review, 0, len(payloads))
	for i, p := range payloads {
		reviews = append(reviews, model.NewReview(toMention("review", i, p)))
	}
	return reviews, nil
}

func (e *Engine) discoverSocial(ctx context.Context, term string) ([]model.SocialPost, error) {
	payloads, err := e.discoverMentions(ctx, socialPrompt,
		fmt.Sprintf("Find social media discussions about: %s", term))
	if err != nil {
		return nil, err
	}

	posts := make([]model.SocialPost, 0, len(payloads))
	for i, p := range payloads {
		posts = append(posts, model.NewSocialPost(toMention("social", i, p)))
	}
	return posts, nil
}

func (e *Engine) discoverMentions(ctx context.Context, system, user string) ([]mentionPayload, error) {
	resp, err := e.discovery.Generate(ctx, assist.Request{
		SystemPrompt: system,
		UserPrompt:   user,
		MaxTokens:    1000,
	})
	if err != nil {
		return nil, err
	}

	raw, err := assist.ExtractJSON(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("mention payload: %w", err)
	}

	var payloads []mentionPayload
	if err := json.Unmarshal([]byte(raw), &payloads); err != nil {
		return nil, fmt.Errorf("mention payload: %w", err)
	}
	return payloads, nil
}

func toMention(prefix string, i int, p mentionPayload) model.Mention {
	score := p.MatchScore
	if score == 0 {
		score = 0.5
	}
	return model.Mention{
		ID:         fmt.Sprintf("%s-%d", prefix, i+1),
		Title:      p.Title,
		Author:     p.Author,
		Source:     p.Source,
		Date:       p.Date,
		Summary:    p.Summary,
		URL:        p.Link,
		MatchScore: score,
	}
}

const analysisPrompt = `You are a literary analysis expert providing detailed thematic and stylistic analysis.
Analyze the literary work, theme, or subject in the query and return a JSON object with:
- themes (array of strings): 3-5 key themes
- genres (array of strings): 2-3 primary genres
- related_subjects (array of strings): 3-5 related literary subjects
- key_authors (array of strings): 3-5 key authors in this area
- time_periods (array of strings): Relevant literary time periods
- analysis (string): 3-4 sentence critical analysis

Your response should be a valid JSON object only, with no additional text.`

// literaryAnalysis asks the discovery provider for a thematic breakdown of
// the search subject, falling back to a templated analysis when the
// provider is unavailable or its reply cannot be parsed.
func (e *Engine) literaryAnalysis(ctx context.Context, term string) *model.LiteraryAnalysis {
	if e.discovery == nil || !e.discovery.Available() {
		return fallbackAnalysis(term)
	}

	resp, err := e.discovery.Generate(ctx, assist.Request{
		SystemPrompt: analysisPrompt,
		UserPrompt:   fmt.Sprintf("Provide literary analysis for: %s", term),
		MaxTokens:    1000,
	})
	if err != nil {
		logging.Error("literary analysis failed", "error", err)
		return fallbackAnalysis(term)
	}

	raw, err := assist.ExtractJSON(resp.Content)
	if err != nil {
		logging.Error("literary analysis payload unparseable", "error", err)
		return fallbackAnalysis(term)
	}

	var analysis model.LiteraryAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		logging.Error("literary analysis payload unparseable", "error", err)
		return fallbackAnalysis(term)
	}
	return &analysis
}

func fallbackAnalysis(term string) *model.LiteraryAnalysis {
	return &model.LiteraryAnalysis{
		Themes: []string{
			fmt.Sprintf("Identity in %s", term),
			fmt.Sprintf("Power dynamics in %s", term),
			fmt.Sprintf("Transformation and %s", term),
		},
		Genres: []string{"Contemporary Fiction", "Literary Fiction"},
		RelatedSubjects: []string{
			fmt.Sprintf("%s and society", term),
			fmt.Sprintf("%s in historical context", term),
			fmt.Sprintf("Modern perspectives on %s", term),
		},
		KeyAuthors:  []string{"Classic Authors", "Contemporary Voices", "Emerging Writers"},
		TimePeriods: []string{"20th Century", "Contemporary"},
		Analysis: fmt.Sprintf("%s represents a rich area of literary exploration. "+
			"The concept has evolved significantly over time, reflecting changing social "+
			"and cultural contexts while maintaining core themes of human experience and understanding.", term),
		Source: "fallback",
	}
}
