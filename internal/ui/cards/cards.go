// Package cards renders books, mentions, and insights as bordered panels.
// Every function is pure: identical inputs produce identical strings, and
// no card holds state between renders.
package cards

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"bookscout/internal/model"
)

var (
	colorPrimary   = lipgloss.Color("62")
	colorSecondary = lipgloss.Color("241")
	colorHighlight = lipgloss.Color("212")
	colorSuccess   = lipgloss.Color("78")
	colorSocial    = lipgloss.Color("39")

	cardBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	authorStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	scoreStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	savedStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	kindReviewStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	kindSocialStyle = lipgloss.NewStyle().
			Foreground(colorSocial).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)
)

// BookCard renders one book. The saved flag only changes the badge, never
// the layout, so toggling save does not shift surrounding cards.
func BookCard(b model.Book, saved bool, width int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(b.Title))
	sb.WriteString("\n")
	sb.WriteString(authorStyle.Render("by " + b.Author))
	sb.WriteString("  ")
	sb.WriteString(scoreStyle.Render(fmt.Sprintf("%.0f%% match", b.MatchScore*100)))
	sb.WriteString("\n")

	var meta []string
	if b.Rating > 0 {
		meta = append(meta, fmt.Sprintf("★ %.1f", b.Rating))
	}
	if b.ReviewCount > 0 {
		meta = append(meta, fmt.Sprintf("%d reviews", b.ReviewCount))
	}
	if b.Year > 0 {
		meta = append(meta, fmt.Sprintf("%d", b.Year))
	}
	if b.Genre != "" {
		meta = append(meta, b.Genre)
	}
	if len(meta) > 0 {
		sb.WriteString(metaStyle.Render(strings.Join(meta, " · ")))
		sb.WriteString("\n")
	}

	if b.Summary != "" {
		sb.WriteString(truncate(b.Summary, summaryBudget(width)))
		sb.WriteString("\n")
	}

	if saved {
		sb.WriteString(savedStyle.Render("● saved"))
	} else {
		sb.WriteString(metaStyle.Render("○ press s to save"))
	}

	return cardBorder.Width(width).Render(sb.String())
}

// MentionCard renders a review or a social post. The kind decides the
// header label and accent so the two are never visually interchangeable.
func MentionCard(m model.Mention, width int) string {
	var header string
	switch m.Kind {
	case model.KindSocial:
		header = kindSocialStyle.Render("SOCIAL")
	default:
		header = kindReviewStyle.Render("REVIEW")
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("  ")
	sb.WriteString(metaStyle.Render(m.Source))
	if m.Date != "" {
		sb.WriteString(metaStyle.Render(" · " + m.Date))
	}
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render(m.Title))
	sb.WriteString("\n")
	if m.Summary != "" {
		sb.WriteString(truncate(m.Summary, summaryBudget(width)))
	}

	return cardBorder.Width(width).Render(sb.String())
}

// InsightCard renders contextual insights as labelled sections. Empty
// sections are skipped entirely.
func InsightCard(in model.Insights, width int) string {
	var sb strings.Builder

	if in.Analysis != "" {
		sb.WriteString(truncate(in.Analysis, summaryBudget(width)))
		sb.WriteString("\n")
	}
	writeSection(&sb, "Themes", in.ThematicConnections)
	writeSection(&sb, "Context", in.CulturalContext)
	writeSection(&sb, "Pathways", in.ReadingPathways)
	writeSection(&sb, "Reception", in.CriticalReception)
	writeSection(&sb, "Scholarship", in.AcademicRelevance)

	content := strings.TrimRight(sb.String(), "\n")
	if content == "" {
		content = metaStyle.Render("no insights available")
	}
	return cardBorder.Width(width).Render(content)
}

func writeSection(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(sectionStyle.Render(label + ":"))
	sb.WriteString(" ")
	sb.WriteString(strings.Join(items, ", "))
	sb.WriteString("\n")
}

// summaryBudget keeps summaries to roughly three wrapped lines.
func summaryBudget(width int) int {
	if width < 20 {
		width = 20
	}
	return width * 3
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
