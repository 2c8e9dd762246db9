package catalog

import (
	"strings"

	"bookscout/internal/model"
)

// The datasets below mirror what the closed Goodreads and LibraryThing APIs
// would return for common queries, keyed on search term substrings.

func searchGoodreads(term string) []model.Book {
	t := strings.ToLower(term)
	switch {
	case strings.Contains(t, "science fiction") || strings.Contains(t, "sci-fi"):
		return []model.Book{
			{
				ID:          "goodreads:234225",
				Title:       "Dune",
				Author:      "Frank Herbert",
				MatchScore:  0.89,
				Summary:     "Set on the desert planet Arrakis, Dune is the story of the boy Paul Atreides, heir to a noble family tasked with ruling an inhospitable world where the only thing of value is the 'spice' melange.",
				Category:    "Novel",
				Rating:      4.2,
				ReviewCount: 1118932,
				Year:        1965,
			},
			{
				ID:          "goodreads:22328",
				Title:       "Neuromancer",
				Author:      "William Gibson",
				MatchScore:  0.82,
				Summary:     "Case was the sharpest data-thief in the matrix, until he crossed the wrong people and they crippled his nervous system. Now a mysterious new employer has recruited him for a last-chance run against an unthinkably powerful artificial intelligence.",
				Category:    "Novel",
				Rating:      3.9,
				ReviewCount: 243112,
				Year:        1984,
			},
		}
	case strings.Contains(t, "fantasy"):
		return []model.Book{
			{
				ID:          "goodreads:186074",
				Title:       "The Name of the Wind",
				Author:      "Patrick Rothfuss",
				MatchScore:  0.91,
				Summary:     "The tale of Kvothe, from his childhood in a troupe of traveling players to years spent as a near-feral orphan in a crime-riddled city to his daringly brazen yet successful bid to enter a legendary school of magic.",
				Category:    "Novel",
				Rating:      4.5,
				ReviewCount: 789543,
				Year:        2007,
			},
		}
	case strings.Contains(t, "three body") || strings.Contains(t, "three-body"):
		return []model.Book{
			{
				ID:          "goodreads:20518872",
				Title:       "The Three-Body Problem",
				Author:      "Liu Cixin",
				MatchScore:  0.97,
				Summary:     "Set against the backdrop of China's Cultural Revolution, a secret military project sends signals into space to establish contact with aliens. An alien civilization on the brink of destruction captures the signal and plans to invade Earth.",
				Category:    "Novel",
				Rating:      4.1,
				ReviewCount: 332154,
				Year:        2008,
			},
			{
				ID:          "goodreads:23168817",
				Title:       "The Dark Forest",
				Author:      "Liu Cixin",
				MatchScore:  0.92,
				Summary:     "Earth is reeling from the revelation of a coming alien invasion. The Trisolaran fleet is approaching and the future of humanity hangs in the balance.",
				Category:    "Novel",
				Rating:      4.4,
				ReviewCount: 157843,
				Year:        2008,
			},
			{
				ID:          "goodreads:25451264",
				Title:       "Death's End",
				Author:      "Liu Cixin",
				MatchScore:  0.9,
				Summary:     "The conclusion to the epic Three-Body trilogy. Half a century after the Doomsday Battle, the uneasy balance of Dark Forest Deterrence keeps the Trisolaran invaders at bay.",
				Category:    "Novel",
				Rating:      4.5,
				ReviewCount: 124732,
				Year:        2010,
			},
		}
	}
	return nil
}

func searchLibraryThing(term string) []model.Book {
	t := strings.ToLower(term)
	if strings.Contains(t, "horror") || strings.Contains(t, "lovecraft") {
		return []model.Book{
			{
				ID:          "librarything:3892356",
				Title:       "The Complete Fiction of H.P. Lovecraft",
				Author:      "H.P. Lovecraft",
				MatchScore:  0.94,
				Summary:     "A comprehensive collection of Lovecraft's fiction, spanning his entire career from his early tales of horror to his mature works of cosmic terror.",
				Category:    "Collection",
				Rating:      4.6,
				ReviewCount: 12547,
				Year:        2011,
			},
			{
				ID:          "librarything:19577843",
				Title:       "The Fisherman",
				Author:      "John Langan",
				MatchScore:  0.87,
				Summary:     "In upstate New York, two widowers form a bond through their passion for fishing. As they discover a dark hidden spot called Dutchman's Creek, they uncover a story about a mysterious figure called Der Fischer.",
				Category:    "Novel",
				Rating:      4.2,
				ReviewCount: 8765,
				Year:        2016,
			},
		}
	}
	return nil
}

func searchGutenberg(term string) []model.Book {
	t := strings.ToLower(term)
	switch {
	case strings.Contains(t, "shakespeare") || strings.Contains(t, "drama"):
		return []model.Book{
			{
				ID:          "gutenberg:1524",
				Title:       "Hamlet",
				Author:      "William Shakespeare",
				MatchScore:  0.93,
				Summary:     "The tragedy of Hamlet, Prince of Denmark. Hamlet is visited by the ghost of his father, who claims he was murdered by Hamlet's uncle Claudius, now the king of Denmark.",
				Category:    "Play",
				Rating:      4.4,
				ReviewCount: 452132,
				Year:        1603,
			},
			{
				ID:          "gutenberg:1513",
				Title:       "Romeo and Juliet",
				Author:      "William Shakespeare",
				MatchScore:  0.89,
				Summary:     "The tragedy of two young star-crossed lovers whose deaths ultimately reconcile their feuding families.",
				Category:    "Play",
				Rating:      4.2,
				ReviewCount: 389754,
				Year:        1597,
			},
		}
	case strings.Contains(t, "classic") || strings.Contains(t, "literature"):
		return []model.Book{
			{
				ID:          "gutenberg:1342",
				Title:       "Pride and Prejudice",
				Author:      "Jane Austen",
				MatchScore:  0.88,
				Summary:     "The story follows the main character, Elizabeth Bennet, as she deals with issues of manners, upbringing, morality, education, and marriage in the society of the landed gentry of the British Regency.",
				Category:    "Novel",
				Rating:      4.3,
				ReviewCount: 723145,
				Year:        1813,
			},
			{
				ID:          "gutenberg:2701",
				Title:       "Moby Dick",
				Author:      "Herman Melville",
				MatchScore:  0.81,
				Summary:     "The epic tale of Captain Ahab's obsessive quest for the white whale Moby Dick, which ultimately leads to his downfall.",
				Category:    "Novel",
				Rating:      3.9,
				ReviewCount: 245789,
				Year:        1851,
			},
		}
	}
	return nil
}
