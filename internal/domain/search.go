package domain

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxQueryRunes = 200

	LangUA = "ua"
	LangRU = "ru"

	SuggestionIntent   = "intent"
	SuggestionTrending = "trending"
	SuggestionPage     = "page"

	maxIntentSuggestions = 8
	intentHitWeight      = 10
)

// Intent is a static site section matched by keyword.
type Intent struct {
	TitleUA  string
	TitleRU  string
	Route    string
	Keywords []string
}

// Title returns the title for lang, defaulting to Ukrainian.
func (i Intent) Title(lang string) string {
	if lang == LangRU {
		return i.TitleRU
	}
	return i.TitleUA
}

// Intents is the section taxonomy. Declaration order breaks score ties.
var Intents = []Intent{
	{
		TitleUA: "Масаж", TitleRU: "Массаж", Route: "/massage",
		Keywords: []string{"масаж", "массаж", "обличчя", "лица", "плече", "плечо", "шия", "шея", "спина", "головний", "головная"},
	},
	{
		TitleUA: "Тренування", TitleRU: "Тренировки", Route: "/training",
		Keywords: []string{"тренування", "тренировка", "вправи", "упражнения", "йога", "постава", "осанка", "розтяжка", "растяжка"},
	},
	{
		TitleUA: "Трави та збори", TitleRU: "Травы и сборы", Route: "/herbs",
		Keywords: []string{"трави", "травы", "збір", "сбор", "чай", "сон", "стрес", "стресс", "нерви", "нервы", "імун", "иммун"},
	},
	{
		TitleUA: "Рекомендації", TitleRU: "Рекомендации", Route: "/recommendations",
		Keywords: []string{"рекомендації", "рекомендации", "поради", "советы", "біль", "боль"},
	},
	{
		TitleUA: "Відгуки", TitleRU: "Отзывы", Route: "/reviews",
		Keywords: []string{"відгуки", "отзывы", "оцінка", "оценка"},
	},
}

// Suggestion is one entry of a suggestion list.
type Suggestion struct {
	Title string  `json:"title"`
	Route string  `json:"route"`
	Type  string  `json:"type"`
	Score float64 `json:"score"`
}

// SuggestResponse is the result of a suggestion lookup.
type SuggestResponse struct {
	Q        string       `json:"q"`
	Lang     string       `json:"lang"`
	Items    []Suggestion `json:"items"`
	Trending []Suggestion `json:"trending"`
}

var (
	// RE2 \s is ASCII only; \p{Z} and \x{85} cover NBSP, thin and ideographic spaces.
	whitespaceRun = regexp.MustCompile(`[\s\v\x{85}\p{Z}]+`)
	disallowed    = regexp.MustCompile(`[^\p{L}\p{N}_\s\v\x{85}\p{Z}\-’']`)
)

// Normalize canonicalises a raw query: lowercased, punctuation other than
// - ’ ' removed, whitespace runs collapsed, trimmed, cut to MaxQueryRunes.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	s := disallowed.ReplaceAllString(strings.ToLower(raw), "")
	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
	return strings.TrimSpace(TruncateRunes(s, MaxQueryRunes))
}

// TruncateRunes cuts s to at most n runes.
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// IntentSuggestions scores every intent by the number of its keywords that
// occur in norm. Intents without hits are dropped; at most eight remain.
func IntentSuggestions(norm, lang string) []Suggestion {
	out := make([]Suggestion, 0, len(Intents))
	for _, in := range Intents {
		hits := 0
		for _, kw := range in.Keywords {
			if strings.Contains(norm, kw) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		out = append(out, Suggestion{
			Title: in.Title(lang),
			Route: in.Route,
			Type:  SuggestionIntent,
			Score: float64(hits * intentHitWeight),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > maxIntentSuggestions {
		out = out[:maxIntentSuggestions]
	}
	return out
}

// PageSuggestions lists every intent as a navigation entry.
func PageSuggestions(lang string) []Suggestion {
	out := make([]Suggestion, 0, len(Intents))
	for _, in := range Intents {
		out = append(out, Suggestion{Title: in.Title(lang), Route: in.Route, Type: SuggestionPage, Score: 1})
	}
	return out
}

// TrendingQuery is a normalised query with its count inside a time window.
type TrendingQuery struct {
	QueryNorm string
	Count     int64
}

// Suggestion renders the trending query as a search-page link.
func (q TrendingQuery) Suggestion() Suggestion {
	return Suggestion{
		Title: q.QueryNorm,
		Route: "/search?q=" + q.QueryNorm,
		Type:  SuggestionTrending,
		Score: float64(q.Count),
	}
}

// SearchEvent is a logged search.
type SearchEvent struct {
	ID           int64     `json:"id"`
	Query        string    `json:"query"`
	QueryNorm    string    `json:"query_norm"`
	Lang         string    `json:"lang"`
	SessionID    *string   `json:"session_id,omitempty"`
	ChosenRoute  *string   `json:"chosen_route,omitempty"`
	ChosenItemID *int64    `json:"chosen_item_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SearchLogged acknowledges a stored search event.
type SearchLogged struct {
	OK        bool      `json:"ok"`
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
