package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"bookx/internal/models"
)

// ---- Generator contract ----------------------------------------------------

// TextGenerator abstracts the outbound text-generation call. Implementations
// return the raw model output, which is treated as untrusted input.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ---- Service interface + implementation ------------------------------------

// AdviceService turns a free-text prompt into a structured suggestion
// payload. Advise never fails: when the generator is missing, errors out or
// returns something unparseable, the payload degrades and carries a warning
// instead.
type AdviceService interface {
	Advise(ctx context.Context, prompt string) models.AdvicePayload
}

type adviceService struct {
	llm TextGenerator // nil when generation is unconfigured
}

// NewAdviceService wires the generator. A nil generator is valid and puts the
// service in permanent fallback mode.
func NewAdviceService(llm TextGenerator) AdviceService {
	return &adviceService{llm: llm}
}

const adviceInstructions = "You are a helpful AI librarian. The user describes their problem/goal. " +
	"Return ONLY a compact JSON with this exact schema:\n" +
	"{\n" +
	"  \"query_intent\": \"string\",\n" +
	"  \"topics\": [\"string\"],\n" +
	"  \"suggested_books\": [\n" +
	"     { \"title\": \"string\", \"author\": \"string\", \"why\": \"one-sentence reason\" }\n" +
	"  ]\n" +
	"}"

const (
	maxIntentLen      = 160
	maxFallbackTopics = 5
)

var (
	fenceOpen  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	fenceClose = regexp.MustCompile("\\s*```$")
	topicWord  = regexp.MustCompile("[a-z]{4,}")
)

// Advise implements the contract above.
func (s *adviceService) Advise(ctx context.Context, prompt string) models.AdvicePayload {
	if s.llm == nil {
		return fallbackPayload(prompt)
	}

	raw, err := s.llm.GenerateContent(ctx, "User prompt: "+prompt+"\n\n"+adviceInstructions)
	if err != nil {
		return degradedPayload(prompt, err)
	}

	var payload models.AdvicePayload
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return degradedPayload(prompt, err)
	}
	return normalize(payload)
}

// stripFences removes a leading/trailing markdown code fence (optionally
// tagged "json", case-insensitively) so fenced replies parse like bare ones.
func stripFences(t string) string {
	t = strings.TrimSpace(t)
	t = fenceOpen.ReplaceAllString(t, "")
	t = fenceClose.ReplaceAllString(t, "")
	return t
}

// fallbackPayload is the deterministic answer used when generation is not
// configured: intent restates the prompt, topics are keywords lifted from it
// and the book list is a fixed set of generic self-help titles.
func fallbackPayload(prompt string) models.AdvicePayload {
	return models.AdvicePayload{
		QueryIntent: truncateIntent(prompt),
		Topics:      fallbackTopics(prompt),
		SuggestedBooks: []models.SuggestedBook{
			{Title: "Atomic Habits", Author: "James Clear", Why: "Build good habits and break bad ones."},
			{Title: "Deep Work", Author: "Cal Newport", Why: "Learn deep focus and reduce distraction."},
			{Title: "Mindset", Author: "Carol Dweck", Why: "Adopt a growth mindset for change."},
		},
		Warning: "Gemini is not configured; using fallback suggestions.",
	}
}

// degradedPayload is the answer for a failed generation attempt: no topics,
// no books, a warning naming the kind of failure.
func degradedPayload(prompt string, err error) models.AdvicePayload {
	return models.AdvicePayload{
		QueryIntent:    truncateIntent(prompt),
		Topics:         []string{},
		SuggestedBooks: []models.SuggestedBook{},
		Warning:        "AI error: " + errKind(err),
	}
}

// normalize makes the payload containers non-nil so the JSON shape contract
// (fields present, empty rather than absent) holds for any parsed input.
func normalize(p models.AdvicePayload) models.AdvicePayload {
	if p.Topics == nil {
		p.Topics = []string{}
	}
	if p.SuggestedBooks == nil {
		p.SuggestedBooks = []models.SuggestedBook{}
	}
	return p
}

// truncateIntent trims the prompt and caps it at maxIntentLen runes.
func truncateIntent(prompt string) string {
	r := []rune(strings.TrimSpace(prompt))
	if len(r) > maxIntentLen {
		r = r[:maxIntentLen]
	}
	return string(r)
}

// fallbackTopics extracts up to maxFallbackTopics lowercase alphabetic tokens
// of length >= 4 from the prompt, in order of appearance.
func fallbackTopics(prompt string) []string {
	topics := topicWord.FindAllString(strings.ToLower(prompt), maxFallbackTopics)
	if topics == nil {
		topics = []string{}
	}
	return topics
}

// errKind renders a short, stable name for the failure type, e.g.
// "json.SyntaxError". Plain fmt/errors values collapse to "error".
func errKind(err error) string {
	kind := strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
	if i := strings.LastIndex(kind, "/"); i >= 0 {
		kind = kind[i+1:]
	}
	switch kind {
	case "errors.errorString", "fmt.wrapError", "errors.joinError":
		return "error"
	}
	return kind
}
