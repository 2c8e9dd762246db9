// Package model defines the data contracts shared by the search service,
// the recommendation engine, and both frontends. All types are plain DTOs:
// they are built once per request/response cycle and never mutated after
// construction.
package model

// Book is a single recommendable title. ID is the stable identity used as
// the rendering and dedup key (e.g. "goodreads:7113284"); MatchScore is a
// relevance confidence in [0,1] used only for ordering and display.
type Book struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Summary    string  `json:"summary"`
	Category   string  `json:"category,omitempty"`
	Genre      string  `json:"genre,omitempty"`
	MatchScore float64 `json:"match_score,omitempty"`
	ImageURL   string  `json:"image_url,omitempty"`
	Publisher  string  `json:"publisher,omitempty"`
	ISBN       string  `json:"isbn,omitempty"`

	PublicationDate string `json:"publication_date,omitempty"`

	// Enrichment metadata, synthesized or looked up from catalog sources.
	Rating      float64 `json:"rating,omitempty"`
	ReviewCount int     `json:"review_count,omitempty"`
	Year        int     `json:"year,omitempty"`
}
