package domain

import "time"

const (
	ReviewStatusPending   = "pending"
	ReviewStatusPublished = "published"
	ReviewStatusHidden    = "hidden"

	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Review is a customer testimonial awaiting or past moderation.
type Review struct {
	ID         int64     `json:"id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	Rating     *int      `json:"rating"`
	Sentiment  *string   `json:"sentiment"`
	Status     string    `json:"status"`
	IsFeatured bool      `json:"is_featured"`
	CreatedAt  time.Time `json:"created_at"`
}

// SentimentFromRating maps 4-5 to positive, 3 to neutral and anything lower
// to negative.
func SentimentFromRating(rating int) string {
	switch {
	case rating >= 4:
		return SentimentPositive
	case rating == 3:
		return SentimentNeutral
	default:
		return SentimentNegative
	}
}

// SetRating stores rating and derives the sentiment from it.
func (r *Review) SetRating(rating int) {
	r.Rating = &rating
	s := SentimentFromRating(rating)
	r.Sentiment = &s
}

// SetSentiment overrides the derived sentiment.
func (r *Review) SetSentiment(s string) {
	r.Sentiment = &s
}

func (r *Review) SetStatus(s string) {
	r.Status = s
}

func (r *Review) SetFeatured(v bool) {
	r.IsFeatured = v
}

// ReviewPatch holds moderation changes. Nil fields are kept.
type ReviewPatch struct {
	Status     *string `json:"status" validate:"omitempty,oneof=pending published hidden"`
	IsFeatured *bool   `json:"is_featured"`
	Rating     *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Sentiment  *string `json:"sentiment" validate:"omitempty,oneof=positive neutral negative"`
}

// Apply writes the set fields onto r. An explicit Sentiment wins over the
// one derived from a patched Rating.
func (p ReviewPatch) Apply(r *Review) {
	if p.Status != nil {
		r.SetStatus(*p.Status)
	}
	if p.IsFeatured != nil {
		r.SetFeatured(*p.IsFeatured)
	}
	if p.Rating != nil {
		r.SetRating(*p.Rating)
	}
	if p.Sentiment != nil {
		r.SetSentiment(*p.Sentiment)
	}
}
