package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"bookscout/internal/model"
	"bookscout/internal/ui/searchbar"
)

// stubService returns one book named after the term, so tests can tell
// which search produced a result set.
type stubService struct {
	err   error
	calls []string
}

func (s *stubService) Search(ctx context.Context, term string) ([]model.Book, error) {
	s.calls = append(s.calls, term)
	if s.err != nil {
		return nil, s.err
	}
	return []model.Book{
		{ID: term, Title: "The Art of " + term, Author: "Jane Doe", MatchScore: 0.95},
		{ID: term + "-2", Title: "Understanding " + term, Author: "John Smith", MatchScore: 0.85},
	}, nil
}

// blockService blocks until its context is canceled.
type blockService struct{}

func (blockService) Search(ctx context.Context, term string) ([]model.Book, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// fakeLibrary is an in-memory Library.
type fakeLibrary struct {
	saved    map[string]model.Book
	searches []string
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{saved: make(map[string]model.Book)}
}

func (f *fakeLibrary) SaveBook(b model.Book) error {
	f.saved[b.ID] = b
	return nil
}

func (f *fakeLibrary) RemoveSavedBook(id string) error {
	delete(f.saved, id)
	return nil
}

func (f *fakeLibrary) IsSaved(id string) (bool, error) {
	_, ok := f.saved[id]
	return ok, nil
}

func (f *fakeLibrary) SavedBooks() ([]model.Book, error) {
	var books []model.Book
	for _, b := range f.saved {
		books = append(books, b)
	}
	return books, nil
}

func (f *fakeLibrary) RecordSearch(term string) error {
	f.searches = append(f.searches, term)
	return nil
}

func (f *fakeLibrary) RecentSearches(limit int) ([]string, error) {
	if len(f.searches) > limit {
		return f.searches[len(f.searches)-limit:], nil
	}
	return f.searches, nil
}

// searched drives a full search round trip through the app.
func searched(t *testing.T, app App, query string) App {
	t.Helper()
	m, cmd := app.Update(searchbar.SubmitMsg{Query: query})
	app = m.(App)
	if cmd == nil {
		t.Fatalf("dispatching %q returned no command", query)
	}
	m, _ = app.Update(cmd())
	return m.(App)
}

func TestSearchRoundTrip(t *testing.T) {
	svc := &stubService{}
	app := NewApp(svc, newFakeLibrary())

	app = searched(t, app, "dragons")

	if len(app.Books()) != 2 {
		t.Fatalf("got %d books, want 2", len(app.Books()))
	}
	if app.Books()[0].ID != "dragons" {
		t.Errorf("top book ID = %q, want %q", app.Books()[0].ID, "dragons")
	}
	if app.Cursor() != 0 {
		t.Errorf("cursor = %d after new results, want 0", app.Cursor())
	}
	if len(svc.calls) != 1 || svc.calls[0] != "dragons" {
		t.Errorf("service calls = %v, want [dragons]", svc.calls)
	}
}

func TestSearchRecordsHistory(t *testing.T) {
	lib := newFakeLibrary()
	app := NewApp(&stubService{}, lib)

	searched(t, app, "dune")

	if len(lib.searches) != 1 || lib.searches[0] != "dune" {
		t.Errorf("recorded searches = %v, want [dune]", lib.searches)
	}
}

func TestStaleResultsAreDropped(t *testing.T) {
	app := NewApp(&stubService{}, nil)

	m, cmd1 := app.Update(searchbar.SubmitMsg{Query: "first"})
	app = m.(App)
	m, cmd2 := app.Update(searchbar.SubmitMsg{Query: "second"})
	app = m.(App)

	// The newer search resolves first.
	m, _ = app.Update(cmd2())
	app = m.(App)
	if app.Books()[0].ID != "second" {
		t.Fatalf("top book = %q, want second", app.Books()[0].ID)
	}

	// The older result arrives late and must not clobber the display.
	m, _ = app.Update(cmd1())
	app = m.(App)
	if app.Books()[0].ID != "second" {
		t.Errorf("stale result overwrote display, top book = %q", app.Books()[0].ID)
	}
}

func TestSupersededSearchIsCanceled(t *testing.T) {
	app := NewApp(blockService{}, nil)

	m, cmd1 := app.Update(searchbar.SubmitMsg{Query: "first"})
	app = m.(App)

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd1() }()

	// Dispatching a second search abandons the first.
	m, _ = app.Update(searchbar.SubmitMsg{Query: "second"})
	_ = m.(App)

	select {
	case msg := <-done:
		res, ok := msg.(SearchDone)
		if !ok {
			t.Fatalf("got %T, want SearchDone", msg)
		}
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("superseded search err = %v, want context.Canceled", res.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("superseded search was never canceled")
	}
}

func TestEmptyQueryClearsResults(t *testing.T) {
	svc := &stubService{}
	app := NewApp(svc, nil)
	app = searched(t, app, "dragons")

	m, _ := app.Update(searchbar.SubmitMsg{Query: ""})
	app = m.(App)

	if len(app.Books()) != 0 {
		t.Errorf("books should be cleared, got %d", len(app.Books()))
	}
	// The empty query never reaches the service.
	if len(svc.calls) != 1 {
		t.Errorf("service calls = %v, want only the original search", svc.calls)
	}
}

func TestSearchErrorIsSurfaced(t *testing.T) {
	app := NewApp(&stubService{err: errors.New("backend unreachable")}, nil)
	app = searched(t, app, "dragons")
	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = m.(App)

	if !strings.Contains(app.View(), "backend unreachable") {
		t.Error("view should show the search error")
	}
}

func TestNavigationInResults(t *testing.T) {
	app := NewApp(&stubService{}, nil)
	app = searched(t, app, "dragons")

	m, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	app = m.(App)
	if app.Cursor() != 1 {
		t.Errorf("j should move cursor to 1, got %d", app.Cursor())
	}

	// Bottom bound
	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	app = m.(App)
	if app.Cursor() != 1 {
		t.Errorf("j at bottom should stay at 1, got %d", app.Cursor())
	}

	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	app = m.(App)
	if app.Cursor() != 0 {
		t.Errorf("k should move cursor to 0, got %d", app.Cursor())
	}
}

func TestSaveToggle(t *testing.T) {
	lib := newFakeLibrary()
	app := NewApp(&stubService{}, lib)
	app = searched(t, app, "dragons")

	// s saves the selected book.
	m, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	app = m.(App)
	if cmd == nil {
		t.Fatal("s should return a save command")
	}
	msg := cmd()
	toggled, ok := msg.(SaveToggled)
	if !ok || !toggled.Saved {
		t.Fatalf("got %v, want SaveToggled{Saved: true}", msg)
	}
	if _, saved := lib.saved["dragons"]; !saved {
		t.Error("book was not persisted")
	}

	// s again unsaves it.
	m, cmd = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	app = m.(App)
	msg = cmd()
	if toggled, ok := msg.(SaveToggled); !ok || toggled.Saved {
		t.Fatalf("got %v, want SaveToggled{Saved: false}", msg)
	}
	if _, saved := lib.saved["dragons"]; saved {
		t.Error("book was not removed")
	}
}

func TestSavedBadgeReflectsLibrary(t *testing.T) {
	lib := newFakeLibrary()
	app := NewApp(&stubService{}, lib)
	app = searched(t, app, "dragons")
	m, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = m.(App)

	before := app.View()
	lib.saved["dragons"] = model.Book{ID: "dragons"}
	after := app.View()

	if before == after {
		t.Error("saved state should be re-read on every render")
	}
}

func TestTypingQDoesNotQuit(t *testing.T) {
	app := NewApp(&stubService{}, nil)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Error("q while typing should not quit")
		}
	}
}

func TestQuitFromResults(t *testing.T) {
	app := NewApp(&stubService{}, nil)
	app = searched(t, app, "dragons")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q in results should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q in results should quit")
	}
}

func TestQuitCtrlC(t *testing.T) {
	app := NewApp(&stubService{}, nil)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestViewNotReady(t *testing.T) {
	app := NewApp(&stubService{}, nil)

	if app.View() != "Loading..." {
		t.Errorf("View before WindowSizeMsg should be 'Loading...', got %q", app.View())
	}
}

func TestViewIdleState(t *testing.T) {
	app := NewApp(&stubService{}, nil)
	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = m.(App)

	if !strings.Contains(app.View(), "Type a topic") {
		t.Error("idle view should prompt for a search")
	}
}

func TestViewIdleShowsShelf(t *testing.T) {
	lib := newFakeLibrary()
	lib.saved["dune"] = model.Book{ID: "dune", Title: "Dune", Author: "Frank Herbert"}
	lib.searches = []string{"dragons", "dune"}

	app := NewApp(&stubService{}, lib)
	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = m.(App)

	view := app.View()
	if !strings.Contains(view, "Dune") {
		t.Error("idle view should list saved books")
	}
	if !strings.Contains(view, "dragons") {
		t.Error("idle view should list recent searches")
	}
}
