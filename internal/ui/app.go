package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bookscout/internal/model"
	"bookscout/internal/search"
	"bookscout/internal/ui/cards"
	"bookscout/internal/ui/searchbar"
)

// Library persists saved books and search history. A nil Library disables
// saving but leaves search fully functional.
type Library interface {
	SaveBook(b model.Book) error
	RemoveSavedBook(id string) error
	IsSaved(id string) (bool, error)
	SavedBooks() ([]model.Book, error)
	RecordSearch(term string) error
	RecentSearches(limit int) ([]string, error)
}

type focusArea int

const (
	focusSearch focusArea = iota
	focusResults
)

// App is the root Bubble Tea model. It owns the search bar, the current
// result set, and the save state lookup; the data source and the library
// are injected so the UI never hardcodes either.
type App struct {
	service search.Service
	library Library

	bar   searchbar.Model
	focus focusArea

	resp   *model.RecommendationResponse
	books  []model.Book
	cursor int
	query  string

	// seq identifies the most recently dispatched search. Results
	// arriving with an older sequence number are dropped, and the
	// superseded search's context is canceled on redispatch.
	seq       int
	cancel    context.CancelFunc
	searching bool

	err    error
	width  int
	height int
	ready  bool
}

// NewApp creates the root model around a search service and a library.
func NewApp(service search.Service, library Library) App {
	return App{
		service: service,
		library: library,
		bar:     searchbar.New(),
	}
}

// Init starts the search bar cursor blink.
func (a App) Init() tea.Cmd {
	return a.bar.Init()
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case searchbar.SubmitMsg:
		return a.dispatchSearch(msg.Query)

	case SearchDone:
		if msg.Seq != a.seq {
			// A newer search was dispatched while this one ran.
			return a, nil
		}
		a.searching = false
		a.cancel = nil
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.err = nil
		a.resp = msg.Resp
		a.books = nil
		if msg.Resp != nil {
			a.books = msg.Resp.Recommendations
		}
		a.cursor = 0
		if len(a.books) > 0 {
			a.focus = focusResults
			a.bar.Blur()
		}
		return a, nil

	case SaveToggled:
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, nil
	}

	return a, nil
}

// handleKeyMsg routes keys to the search bar or the result list depending
// on focus. ctrl+c always quits.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// Clear any existing error on key press
	if a.err != nil {
		a.err = nil
	}

	if a.focus == focusSearch {
		if msg.String() == "tab" && len(a.books) > 0 {
			a.focus = focusResults
			a.bar.Blur()
			return a, nil
		}
		var cmd tea.Cmd
		a.bar, cmd = a.bar.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit

	case "/", "tab":
		a.focus = focusSearch
		return a, a.bar.Focus()

	case "j", "down":
		if a.cursor < len(a.books)-1 {
			a.cursor++
		}
		return a, nil

	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "g", "home":
		a.cursor = 0
		return a, nil

	case "G", "end":
		if len(a.books) > 0 {
			a.cursor = len(a.books) - 1
		}
		return a, nil

	case "s", "enter":
		if len(a.books) > 0 && a.cursor < len(a.books) {
			return a, a.toggleSave(a.books[a.cursor])
		}
		return a, nil
	}

	return a, nil
}

// dispatchSearch abandons any in-flight search and starts a new one. An
// empty query clears the results immediately without hitting the service.
func (a App) dispatchSearch(query string) (tea.Model, tea.Cmd) {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.seq++
	a.query = query

	if query == "" {
		a.searching = false
		a.resp = nil
		a.books = nil
		a.cursor = 0
		a.focus = focusSearch
		return a, a.bar.Focus()
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.searching = true

	seq := a.seq
	svc := a.service
	lib := a.library
	return a, func() tea.Msg {
		defer cancel()
		if lib != nil {
			_ = lib.RecordSearch(query)
		}
		resp, err := resolve(ctx, svc, query)
		return SearchDone{Seq: seq, Query: query, Resp: resp, Err: err}
	}
}

// resolve prefers the full response when the service can produce one and
// synthesizes a books-only response otherwise.
func resolve(ctx context.Context, svc search.Service, query string) (*model.RecommendationResponse, error) {
	if full, ok := svc.(search.FullService); ok {
		return full.Recommend(ctx, query)
	}
	books, err := svc.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	resp := &model.RecommendationResponse{Recommendations: books}
	if len(books) > 0 {
		resp.TopBook = &books[0]
	}
	return resp, nil
}

// toggleSave flips the persisted state of a book.
func (a App) toggleSave(b model.Book) tea.Cmd {
	lib := a.library
	if lib == nil {
		return nil
	}
	return func() tea.Msg {
		saved, err := lib.IsSaved(b.ID)
		if err != nil {
			return SaveToggled{ID: b.ID, Err: err}
		}
		if saved {
			if err := lib.RemoveSavedBook(b.ID); err != nil {
				return SaveToggled{ID: b.ID, Saved: true, Err: err}
			}
			return SaveToggled{ID: b.ID, Saved: false}
		}
		if err := lib.SaveBook(b); err != nil {
			return SaveToggled{ID: b.ID, Err: err}
		}
		return SaveToggled{ID: b.ID, Saved: true}
	}
}

// isBookSaved is read fresh on every render so the badge always reflects
// the persisted state.
func (a App) isBookSaved(b model.Book) bool {
	if a.library == nil {
		return false
	}
	saved, err := a.library.IsSaved(b.ID)
	return err == nil && saved
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	sections := []string{
		HeaderStyle.Render("bookscout"),
		a.bar.View(),
	}

	switch {
	case a.searching:
		sections = append(sections, EmptyStyle.Render("searching \""+a.query+"\"..."))
	case a.err != nil:
		sections = append(sections, ErrorStyle.Render("Error: "+a.err.Error()+" (press any key to dismiss)"))
	case a.resp == nil:
		sections = append(sections, a.renderIdle())
	case len(a.books) == 0:
		sections = append(sections, EmptyStyle.Render("No results for \""+a.query+"\"."))
	default:
		sections = append(sections, a.renderTopPicks(), a.renderResults())
	}

	sections = append(sections, a.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a App) renderTopPicks() string {
	w := a.cardWidth()

	top := a.resp.TopBook
	if top == nil {
		top = &a.books[0]
	}

	row := []string{cards.BookCard(*top, a.isBookSaved(*top), w)}
	if a.resp.TopReview != nil {
		row = append(row, cards.MentionCard(a.resp.TopReview.Mention, w))
	}
	if a.resp.TopSocial != nil {
		row = append(row, cards.MentionCard(a.resp.TopSocial.Mention, w))
	}

	out := SectionHeader.Render("Top Picks") + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, row...)

	if a.resp.Insights != nil {
		out += "\n" + cards.InsightCard(*a.resp.Insights, min(a.width-4, 3*w))
	}
	return out
}

// renderIdle is the browse state shown before any search and after a
// clear: the saved shelf plus recent search terms.
func (a App) renderIdle() string {
	out := EmptyStyle.Render("Type a topic and press enter to get recommendations.")
	if a.library == nil {
		return out
	}

	if recent, err := a.library.RecentSearches(5); err == nil && len(recent) > 0 {
		out += "\n" + SectionHeader.Render("Recent Searches") + "\n" +
			NormalItem.Render(strings.Join(recent, " · "))
	}

	if saved, err := a.library.SavedBooks(); err == nil && len(saved) > 0 {
		var sb strings.Builder
		sb.WriteString(SectionHeader.Render("Saved Books"))
		sb.WriteString("\n")
		for _, b := range saved {
			sb.WriteString(NormalItem.Render(SavedBadge.Render("●") + " " + b.Title + " · " + b.Author))
			sb.WriteString("\n")
		}
		out += "\n" + strings.TrimRight(sb.String(), "\n")
	}
	return out
}

func (a App) renderResults() string {
	var sb strings.Builder
	sb.WriteString(SectionHeader.Render("Recommendations"))
	sb.WriteString("\n")

	for i, b := range a.books {
		line := fmt.Sprintf("%s · %s  %.0f%%", b.Title, b.Author, b.MatchScore*100)
		if a.isBookSaved(b) {
			line = SavedBadge.Render("●") + " " + line
		} else {
			line = "  " + line
		}
		if i == a.cursor && a.focus == focusResults {
			sb.WriteString(SelectedItem.Render(line))
		} else {
			sb.WriteString(NormalItem.Render(line))
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (a App) renderStatusBar() string {
	var hints string
	if a.focus == focusSearch {
		hints = StatusBarKey.Render("enter") + StatusBarText.Render(" search  ") +
			StatusBarKey.Render("esc") + StatusBarText.Render(" clear  ") +
			StatusBarKey.Render("tab") + StatusBarText.Render(" results  ") +
			StatusBarKey.Render("ctrl+c") + StatusBarText.Render(" quit")
	} else {
		hints = StatusBarKey.Render("j/k") + StatusBarText.Render(" move  ") +
			StatusBarKey.Render("s") + StatusBarText.Render(" save  ") +
			StatusBarKey.Render("/") + StatusBarText.Render(" search  ") +
			StatusBarKey.Render("q") + StatusBarText.Render(" quit")
	}

	count := ""
	if len(a.books) > 0 {
		count = StatusBarText.Render(fmt.Sprintf("  %d/%d", a.cursor+1, len(a.books)))
	}

	bar := StatusBar.Render(hints + count)
	if a.width > 0 {
		bar = StatusBar.Width(a.width).Render(hints + count)
	}
	return bar
}

func (a App) cardWidth() int {
	if a.width <= 0 {
		return 40
	}
	w := (a.width - 6) / 3
	if w < 28 {
		w = 28
	}
	if w > 46 {
		w = 46
	}
	return w
}

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// Books returns the current result set (for testing).
func (a App) Books() []model.Book {
	return a.books
}
