package cards

import (
	"strings"
	"testing"
	"unicode/utf8"

	"bookscout/internal/model"
)

func sampleBook() model.Book {
	return model.Book{
		ID:          "goodreads:234225",
		Title:       "Dune",
		Author:      "Frank Herbert",
		Summary:     "A desert planet holds the most valuable substance in the universe.",
		Genre:       "science fiction",
		MatchScore:  0.89,
		Rating:      4.2,
		ReviewCount: 1200,
		Year:        1965,
	}
}

func TestBookCardIsIdempotent(t *testing.T) {
	b := sampleBook()

	first := BookCard(b, true, 60)
	second := BookCard(b, true, 60)

	if first != second {
		t.Error("identical inputs rendered different output")
	}
}

func TestBookCardShowsSavedState(t *testing.T) {
	b := sampleBook()

	saved := BookCard(b, true, 60)
	unsaved := BookCard(b, false, 60)

	if saved == unsaved {
		t.Error("saved flag should change the rendering")
	}
	if !strings.Contains(saved, "saved") {
		t.Error("saved card missing saved badge")
	}
	if !strings.Contains(unsaved, "s to save") {
		t.Error("unsaved card missing save hint")
	}
}

func TestBookCardContent(t *testing.T) {
	out := BookCard(sampleBook(), false, 60)

	for _, want := range []string{"Dune", "Frank Herbert", "89% match", "1965"} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q", want)
		}
	}
}

func TestMentionCardBranchesOnKind(t *testing.T) {
	base := model.Mention{
		ID:      "m1",
		Title:   "A triumph of world-building",
		Source:  "The Times",
		Date:    "2024-03-01",
		Summary: "An expansive review.",
	}

	review := MentionCard(model.NewReview(base).Mention, 60)
	social := MentionCard(model.NewSocialPost(base).Mention, 60)

	if review == social {
		t.Error("review and social post rendered identically")
	}
	if !strings.Contains(review, "REVIEW") {
		t.Error("review card missing REVIEW header")
	}
	if !strings.Contains(social, "SOCIAL") {
		t.Error("social card missing SOCIAL header")
	}
}

func TestMentionCardIsIdempotent(t *testing.T) {
	m := model.Mention{Kind: model.KindReview, Title: "t", Source: "s", Summary: "x"}

	if MentionCard(m, 48) != MentionCard(m, 48) {
		t.Error("identical inputs rendered different output")
	}
}

func TestInsightCardSections(t *testing.T) {
	in := model.Insights{
		Analysis:            "A coherent collection.",
		ThematicConnections: []string{"ecology", "power"},
	}

	out := InsightCard(in, 60)

	if !strings.Contains(out, "Themes:") {
		t.Error("missing themes section")
	}
	if !strings.Contains(out, "ecology, power") {
		t.Error("missing theme values")
	}
	if strings.Contains(out, "Pathways:") {
		t.Error("empty section should be skipped")
	}
}

func TestInsightCardShowsScholarship(t *testing.T) {
	in := model.Insights{
		AcademicRelevance: []string{"ecocriticism", "postcolonial studies"},
	}

	out := InsightCard(in, 60)

	if !strings.Contains(out, "Scholarship:") {
		t.Error("missing scholarship section")
	}
	if !strings.Contains(out, "ecocriticism, postcolonial studies") {
		t.Error("missing scholarship values")
	}
}

func TestTruncateCutsAtRuneBoundary(t *testing.T) {
	s := strings.Repeat("é", 40)

	got := truncate(s, 20)

	if !utf8.ValidString(got) {
		t.Errorf("truncated string is not valid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
}

func TestInsightCardEmpty(t *testing.T) {
	out := InsightCard(model.Insights{}, 60)

	if !strings.Contains(out, "no insights available") {
		t.Error("empty insights should render a placeholder")
	}
	if out != InsightCard(model.Insights{}, 60) {
		t.Error("identical inputs rendered different output")
	}
}
