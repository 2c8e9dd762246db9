package engine

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"

	"bookscout/internal/model"
)

// Dedupe removes duplicate books, keyed by normalized title and author so
// the same book arriving from different sources under different IDs still
// collapses; books without a title fall back to their ID. When duplicates
// collide the higher match score wins. Returns the surviving books and the
// number removed.
func Dedupe(books []model.Book) ([]model.Book, int) {
	if len(books) == 0 {
		return nil, 0
	}

	var order []string
	byKey := make(map[string]model.Book)
	removed := 0

	for _, b := range books {
		key := strings.ToLower(strings.TrimSpace(b.Title)) + "|" + strings.ToLower(strings.TrimSpace(b.Author))
		if key == "|" {
			key = b.ID
		}
		if len(key) > 100 {
			sum := md5.Sum([]byte(key))
			key = hex.EncodeToString(sum[:])
		}

		if existing, ok := byKey[key]; ok {
			if b.MatchScore > existing.MatchScore {
				byKey[key] = b
			}
			removed++
			continue
		}
		byKey[key] = b
		order = append(order, key)
	}

	out := make([]model.Book, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out, removed
}

// SortByScore orders books best-first. The sort is stable so books with
// equal scores keep their incoming order.
func SortByScore(books []model.Book) []model.Book {
	out := make([]model.Book, len(books))
	copy(out, books)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}

// FilterByScore drops books scoring below min. Order is preserved.
func FilterByScore(books []model.Book, min float64) []model.Book {
	if min <= 0 {
		return books
	}
	out := make([]model.Book, 0, len(books))
	for _, b := range books {
		if b.MatchScore >= min {
			out = append(out, b)
		}
	}
	return out
}

// EnsureDiversity caps how many books a single author or genre may
// contribute, walking the list best-first and stopping at maxTotal.
func EnsureDiversity(books []model.Book, maxPerAuthor, maxPerGenre, maxTotal int) []model.Book {
	if len(books) == 0 {
		return nil
	}

	sorted := SortByScore(books)
	authorCounts := make(map[string]int)
	genreCounts := make(map[string]int)
	var out []model.Book

	for _, b := range sorted {
		author := strings.ToLower(strings.TrimSpace(b.Author))
		genre := strings.ToLower(strings.TrimSpace(b.Genre))
		if genre == "" {
			genre = "unknown"
		}

		if authorCounts[author] < maxPerAuthor && genreCounts[genre] < maxPerGenre {
			out = append(out, b)
			authorCounts[author]++
			genreCounts[genre]++
		}
		if len(out) >= maxTotal {
			break
		}
	}

	return out
}

// clampScore keeps an adjusted match score inside [0, 1].
func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// clampAdjustment bounds a provider's score delta to the allowed range.
func clampAdjustment(d float64) float64 {
	if d < -0.3 {
		return -0.3
	}
	if d > 0.3 {
		return 0.3
	}
	return d
}
