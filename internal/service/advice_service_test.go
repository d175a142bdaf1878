package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookx/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeGenerator struct {
	text  string
	err   error
	calls int
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.calls++
	return f.text, f.err
}

// ==========================
// Fallback Mode Tests
// ==========================

func TestAdvise_FallbackDeterminism(t *testing.T) {
	svc := NewAdviceService(nil)

	first := svc.Advise(context.Background(), "I want to build better habits")
	second := svc.Advise(context.Background(), "I want to build better habits")

	assert.Equal(t, first, second)
	assert.Equal(t, "I want to build better habits", first.QueryIntent)
	assert.Equal(t, []string{"want", "build", "better", "habits"}, first.Topics)
	require.Len(t, first.SuggestedBooks, 3)
	assert.Equal(t, "Atomic Habits", first.SuggestedBooks[0].Title)
	assert.Equal(t, "James Clear", first.SuggestedBooks[0].Author)
	assert.NotEmpty(t, first.Warning)
}

func TestAdvise_FallbackTopics(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		topics []string
	}{
		{
			name:   "caps at five tokens in order of appearance",
			prompt: "learning productivity systems while managing remote engineering teams",
			topics: []string{"learning", "productivity", "systems", "while", "managing"},
		},
		{
			name:   "short and non-alphabetic tokens are skipped",
			prompt: "I am 42 and sad",
			topics: []string{},
		},
		{
			name:   "tokens are lowercased",
			prompt: "DUNE please",
			topics: []string{"dune", "please"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewAdviceService(nil).Advise(context.Background(), tt.prompt)
			assert.Equal(t, tt.topics, got.Topics)
		})
	}
}

func TestAdvise_IntentTruncation(t *testing.T) {
	prompt := "  " + strings.Repeat("x", 200) + "  "

	got := NewAdviceService(nil).Advise(context.Background(), prompt)

	assert.Len(t, []rune(got.QueryIntent), 160)
	assert.Equal(t, strings.Repeat("x", 160), got.QueryIntent)
}

// ==========================
// Generation Path Tests
// ==========================

func TestAdvise_FenceStripping(t *testing.T) {
	body := `{"query_intent":"x","topics":[],"suggested_books":[]}`

	tests := []struct {
		name string
		text string
	}{
		{name: "bare json", text: body},
		{name: "json fence", text: "```json\n" + body + "\n```"},
		{name: "uppercase fence tag", text: "```JSON\n" + body + "\n```"},
		{name: "untagged fence with whitespace", text: "  ```\n" + body + "\n```  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAdviceService(&fakeGenerator{text: tt.text})
			got := svc.Advise(context.Background(), "anything")

			assert.Empty(t, got.Warning)
			assert.Equal(t, "x", got.QueryIntent)
			assert.Equal(t, []string{}, got.Topics)
			assert.Equal(t, []models.SuggestedBook{}, got.SuggestedBooks)
		})
	}
}

func TestAdvise_NeverFails(t *testing.T) {
	tests := []struct {
		name    string
		gen     *fakeGenerator
		warning string
	}{
		{
			name:    "generator error",
			gen:     &fakeGenerator{err: errors.New("boom")},
			warning: "AI error: error",
		},
		{
			name:    "malformed json",
			gen:     &fakeGenerator{text: "here are some books you might like"},
			warning: "AI error: json.SyntaxError",
		},
		{
			name:    "wrong json type",
			gen:     &fakeGenerator{text: `{"topics":"not-a-list"}`},
			warning: "AI error: json.UnmarshalTypeError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewAdviceService(tt.gen).Advise(context.Background(), "find me a book")

			assert.Equal(t, tt.warning, got.Warning)
			assert.Equal(t, "find me a book", got.QueryIntent)
			assert.Equal(t, []string{}, got.Topics)
			assert.Equal(t, []models.SuggestedBook{}, got.SuggestedBooks)
			assert.Equal(t, 1, tt.gen.calls)
		})
	}
}

func TestAdvise_NormalizesMissingContainers(t *testing.T) {
	svc := NewAdviceService(&fakeGenerator{text: `{"query_intent":"just the intent"}`})

	got := svc.Advise(context.Background(), "anything")

	assert.Empty(t, got.Warning)
	assert.NotNil(t, got.Topics)
	assert.NotNil(t, got.SuggestedBooks)
	assert.Empty(t, got.Topics)
	assert.Empty(t, got.SuggestedBooks)
}
