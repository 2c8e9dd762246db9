package model

// MentionKind discriminates the two third-party commentary variants.
// Reviews and social posts share a shape but never a role: downstream
// rendering branches on the kind, so the discriminant travels with the data.
type MentionKind string

const (
	KindReview MentionKind = "review"
	KindSocial MentionKind = "social"
)

// Mention is the common shape for third-party commentary about a book:
// an editorial review or an informal social post. It is linked to a book
// conceptually, not by foreign key.
type Mention struct {
	Kind       MentionKind `json:"kind"`
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Author     string      `json:"author,omitempty"`
	Source     string      `json:"source"`
	Date       string      `json:"date"`
	Summary    string      `json:"summary"`
	URL        string      `json:"url,omitempty"`
	MatchScore float64     `json:"match_score,omitempty"`
}

// Review is a critical review from an originating publication.
// Nominal wrapper so a Review can never be passed where a SocialPost
// is expected, and vice versa.
type Review struct {
	Mention
}

// SocialPost is informal social commentary (X, Reddit, ...).
type SocialPost struct {
	Mention
}

// NewReview builds a Review with the kind discriminant set.
func NewReview(m Mention) Review {
	m.Kind = KindReview
	return Review{Mention: m}
}

// NewSocialPost builds a SocialPost with the kind discriminant set.
func NewSocialPost(m Mention) SocialPost {
	m.Kind = KindSocial
	return SocialPost{Mention: m}
}
