package models

// Searchable listing fields a filter term may target.
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldDescription = "description"
)

// SuggestedBook is one AI book recommendation.
type SuggestedBook struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Why    string `json:"why"`
}

// AdvicePayload is the structured result of advice generation. The JSON shape
// is a compatibility contract with API clients: query_intent, topics and
// suggested_books are always present (empty rather than absent), warning only
// appears when generation degraded to a fallback.
type AdvicePayload struct {
	QueryIntent    string          `json:"query_intent"`
	Topics         []string        `json:"topics"`
	SuggestedBooks []SuggestedBook `json:"suggested_books"`
	Warning        string          `json:"warning,omitempty"`
}

// FilterTerm is one case-insensitive substring condition against a listing
// field. A slice of terms is combined disjunctively (OR).
type FilterTerm struct {
	Field string
	Value string
}

// FilterQuery holds the title/author strings extracted from a suggestion
// payload, reusable as explicit search parameters. Entries keep their
// first-seen order and duplicates are retained.
type FilterQuery struct {
	Titles  []string `json:"titles"`
	Authors []string `json:"authors"`
}

// Empty reports whether the filter query carries no reusable terms.
func (q FilterQuery) Empty() bool {
	return len(q.Titles) == 0 && len(q.Authors) == 0
}

// MatchResult pairs the listings matched against a suggestion payload with
// the filter query derived from it. Built fresh per request, never persisted.
type MatchResult struct {
	Books       []Book      `json:"books"`
	FilterQuery FilterQuery `json:"filter_query"`
}

// AdviceRequest is the payload for POST /advice.
type AdviceRequest struct {
	Prompt string `json:"prompt"`
}

// AdviceResponse is the envelope both presentation surfaces return.
// SearchURL is only populated on the browse surface, and only when the
// filter query is non-empty.
type AdviceResponse struct {
	AI           AdvicePayload `json:"ai"`
	MatchedBooks []Book        `json:"matched_books"`
	FilterQuery  FilterQuery   `json:"filter_query"`
	SearchURL    string        `json:"search_url,omitempty"`
}
