package engine

import (
	"testing"

	"bookscout/internal/model"
)

func TestDedupeKeepsHigherScore(t *testing.T) {
	books := []model.Book{
		{ID: "book-1", Title: "Dune", Author: "Frank Herbert", MatchScore: 0.7},
		{ID: "goodreads:234225", Title: "Dune", Author: "Frank Herbert", MatchScore: 0.9},
		{ID: "b", Title: "Neuromancer", Author: "William Gibson", MatchScore: 0.8},
	}

	out, removed := Dedupe(books)
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if len(out) != 2 {
		t.Fatalf("got %d books, want 2", len(out))
	}
	if out[0].MatchScore != 0.9 {
		t.Errorf("duplicate with higher score should win, got %g", out[0].MatchScore)
	}
	if out[0].ID != "goodreads:234225" {
		t.Errorf("surviving book should be the higher-scored one, got %q", out[0].ID)
	}
}

func TestDedupeNormalizesTitleAuthor(t *testing.T) {
	books := []model.Book{
		{Title: "Dune", Author: "Frank Herbert", MatchScore: 0.7},
		{Title: "dune ", Author: " FRANK HERBERT", MatchScore: 0.6},
		{Title: "Dune", Author: "Someone Else", MatchScore: 0.5},
	}

	out, removed := Dedupe(books)
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if len(out) != 2 {
		t.Errorf("got %d books, want 2", len(out))
	}
}

func TestDedupeKeepsFirstSeenOrder(t *testing.T) {
	books := []model.Book{
		{ID: "a", MatchScore: 0.5},
		{ID: "b", MatchScore: 0.9},
		{ID: "a", MatchScore: 0.8},
	}

	out, _ := Dedupe(books)
	if out[0].ID != "a" || out[1].ID != "b" {
		t.Errorf("order not preserved: %v", out)
	}
	if out[0].MatchScore != 0.8 {
		t.Errorf("higher-score duplicate should replace in place, got %g", out[0].MatchScore)
	}
}

func TestDedupeEmpty(t *testing.T) {
	out, removed := Dedupe(nil)
	if out != nil || removed != 0 {
		t.Errorf("got %v, %d", out, removed)
	}
}

func TestSortByScoreDescendingStable(t *testing.T) {
	books := []model.Book{
		{ID: "low", MatchScore: 0.3},
		{ID: "tie-1", MatchScore: 0.8},
		{ID: "tie-2", MatchScore: 0.8},
		{ID: "high", MatchScore: 0.9},
	}

	out := SortByScore(books)
	wantOrder := []string{"high", "tie-1", "tie-2", "low"}
	for i, id := range wantOrder {
		if out[i].ID != id {
			t.Errorf("out[%d] = %q, want %q", i, out[i].ID, id)
		}
	}
	// Input untouched.
	if books[0].ID != "low" {
		t.Error("input slice was mutated")
	}
}

func TestEnsureDiversityCapsAuthors(t *testing.T) {
	books := []model.Book{
		{ID: "1", Author: "Liu Cixin", Genre: "sf", MatchScore: 0.97},
		{ID: "2", Author: "Liu Cixin", Genre: "sf", MatchScore: 0.92},
		{ID: "3", Author: "Liu Cixin", Genre: "sf", MatchScore: 0.90},
		{ID: "4", Author: "Liu Cixin", Genre: "sf", MatchScore: 0.88},
		{ID: "5", Author: "Ursula K. Le Guin", Genre: "fantasy", MatchScore: 0.80},
	}

	out := EnsureDiversity(books, 3, 10, 10)
	if len(out) != 4 {
		t.Fatalf("got %d books, want 4", len(out))
	}
	liu := 0
	for _, b := range out {
		if b.Author == "Liu Cixin" {
			liu++
		}
	}
	if liu != 3 {
		t.Errorf("Liu Cixin count = %d, want 3", liu)
	}
}

func TestEnsureDiversityCapsGenres(t *testing.T) {
	books := []model.Book{
		{ID: "1", Author: "a", Genre: "Mystery", MatchScore: 0.9},
		{ID: "2", Author: "b", Genre: "mystery ", MatchScore: 0.8},
		{ID: "3", Author: "c", Genre: "Mystery", MatchScore: 0.7},
		{ID: "4", Author: "d", Genre: "Romance", MatchScore: 0.6},
	}

	out := EnsureDiversity(books, 10, 2, 10)
	if len(out) != 3 {
		t.Fatalf("got %d books, want 3", len(out))
	}
	if out[2].ID != "4" {
		t.Errorf("third mystery should be skipped, got %v", out)
	}
}

func TestEnsureDiversityStopsAtMaxTotal(t *testing.T) {
	books := []model.Book{
		{ID: "1", Author: "a", MatchScore: 0.9},
		{ID: "2", Author: "b", MatchScore: 0.8},
		{ID: "3", Author: "c", MatchScore: 0.7},
	}

	out := EnsureDiversity(books, 3, 3, 2)
	if len(out) != 2 {
		t.Fatalf("got %d books, want 2", len(out))
	}
	if out[0].ID != "1" || out[1].ID != "2" {
		t.Errorf("should keep best-first order: %v", out)
	}
}

func TestClamps(t *testing.T) {
	if got := clampScore(1.4); got != 1 {
		t.Errorf("clampScore(1.4) = %g", got)
	}
	if got := clampScore(-0.2); got != 0 {
		t.Errorf("clampScore(-0.2) = %g", got)
	}
	if got := clampAdjustment(0.5); got != 0.3 {
		t.Errorf("clampAdjustment(0.5) = %g", got)
	}
	if got := clampAdjustment(-0.5); got != -0.3 {
		t.Errorf("clampAdjustment(-0.5) = %g", got)
	}
	if got := clampAdjustment(0.1); got != 0.1 {
		t.Errorf("clampAdjustment(0.1) = %g", got)
	}
}
