// Package ui provides the Bubble Tea TUI for bookscout.
package ui

import "bookscout/internal/model"

// SearchDone is sent when a dispatched search resolves. Seq identifies
// which dispatch produced it so stale results can be dropped.
type SearchDone struct {
	Seq   int
	Query string
	Resp  *model.RecommendationResponse
	Err   error
}

// SaveToggled is sent when a save or unsave completes.
type SaveToggled struct {
	ID    string
	Saved bool
	Err   error
}
