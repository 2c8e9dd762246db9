package store

import (
	"fmt"
	"sync"
	"testing"

	"bookscout/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func dune() model.Book {
	return model.Book{
		ID:          "goodreads:234225",
		Title:       "Dune",
		Author:      "Frank Herbert",
		Summary:     "Desert planet epic.",
		Category:    "Novel",
		Genre:       "Science Fiction",
		MatchScore:  0.89,
		Rating:      4.2,
		ReviewCount: 1118932,
		Year:        1965,
	}
}

func TestSaveAndRetrieveBook(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveBook(dune()); err != nil {
		t.Fatalf("SaveBook: %v", err)
	}

	saved, err := s.IsSaved("goodreads:234225")
	if err != nil {
		t.Fatalf("IsSaved: %v", err)
	}
	if !saved {
		t.Error("book should be saved")
	}

	books, err := s.SavedBooks()
	if err != nil {
		t.Fatalf("SavedBooks: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("got %d books, want 1", len(books))
	}
	if books[0] != dune() {
		t.Errorf("round trip mismatch: %+v", books[0])
	}
}

func TestSaveBookTwiceKeepsOneRow(t *testing.T) {
	s := newTestStore(t)

	b := dune()
	if err := s.SaveBook(b); err != nil {
		t.Fatal(err)
	}
	b.MatchScore = 0.95
	if err := s.SaveBook(b); err != nil {
		t.Fatal(err)
	}

	books, err := s.SavedBooks()
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 1 {
		t.Fatalf("got %d books, want 1", len(books))
	}
	if books[0].MatchScore != 0.95 {
		t.Errorf("MatchScore = %g, want refreshed 0.95", books[0].MatchScore)
	}
}

func TestRemoveSavedBook(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveBook(dune()); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveSavedBook("goodreads:234225"); err != nil {
		t.Fatalf("RemoveSavedBook: %v", err)
	}

	saved, err := s.IsSaved("goodreads:234225")
	if err != nil {
		t.Fatal(err)
	}
	if saved {
		t.Error("book should no longer be saved")
	}

	// Removing again is a no-op.
	if err := s.RemoveSavedBook("goodreads:234225"); err != nil {
		t.Errorf("second remove: %v", err)
	}
}

func TestIsSavedUnknownBook(t *testing.T) {
	s := newTestStore(t)

	saved, err := s.IsSaved("nope")
	if err != nil {
		t.Fatal(err)
	}
	if saved {
		t.Error("unknown book should not be saved")
	}
}

func TestSearchHistory(t *testing.T) {
	s := newTestStore(t)

	for _, term := range []string{"dune", "dragons", "dune", "neuromancer"} {
		if err := s.RecordSearch(term); err != nil {
			t.Fatalf("RecordSearch(%q): %v", term, err)
		}
	}

	terms, err := s.RecentSearches(10)
	if err != nil {
		t.Fatalf("RecentSearches: %v", err)
	}
	want := []string{"neuromancer", "dune", "dragons"}
	if len(terms) != len(want) {
		t.Fatalf("got %v, want %v", terms, want)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Errorf("terms[%d] = %q, want %q", i, terms[i], want[i])
		}
	}
}

func TestRecentSearchesLimit(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		if err := s.RecordSearch(fmt.Sprintf("term-%d", i)); err != nil {
			t.Fatal(err)
		}
	}

	terms, err := s.RecentSearches(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(terms) != 2 {
		t.Fatalf("got %d terms, want 2", len(terms))
	}
	if terms[0] != "term-4" {
		t.Errorf("terms[0] = %q, want term-4", terms[0])
	}
}

func TestRecordSearchIgnoresEmptyTerm(t *testing.T) {
	s := newTestStore(t)

	if err := s.RecordSearch(""); err != nil {
		t.Fatal(err)
	}
	terms, err := s.RecentSearches(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(terms) != 0 {
		t.Errorf("got %v, want empty history", terms)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			b := dune()
			b.ID = fmt.Sprintf("book-%d", n)
			if err := s.SaveBook(b); err != nil {
				t.Errorf("SaveBook: %v", err)
			}
			if _, err := s.IsSaved(b.ID); err != nil {
				t.Errorf("IsSaved: %v", err)
			}
			if err := s.RecordSearch(fmt.Sprintf("term-%d", n)); err != nil {
				t.Errorf("RecordSearch: %v", err)
			}
		}(i)
	}
	wg.Wait()

	books, err := s.SavedBooks()
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 8 {
		t.Errorf("got %d books, want 8", len(books))
	}
}
