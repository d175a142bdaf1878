package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookx/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeBookSource struct {
	books    []models.Book
	err      error
	calls    int
	gotTerms []models.FilterTerm
	gotLimit int
}

func (f *fakeBookSource) FindActive(_ context.Context, terms []models.FilterTerm, limit int) ([]models.Book, error) {
	f.calls++
	f.gotTerms = terms
	f.gotLimit = limit
	return f.books, f.err
}

func bookTitled(title string) models.Book {
	return models.Book{Title: title, IsActive: true}
}

// ==========================
// Predicate Construction Tests
// ==========================

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name      string
		payload   models.AdvicePayload
		wantTerms []models.FilterTerm
		wantQuery models.FilterQuery
	}{
		{
			name:      "empty payload produces no terms",
			payload:   models.AdvicePayload{},
			wantTerms: []models.FilterTerm{},
			wantQuery: models.FilterQuery{Titles: []string{}, Authors: []string{}},
		},
		{
			name:    "topics hit all three fields but never the filter query",
			payload: models.AdvicePayload{Topics: []string{" Focus "}},
			wantTerms: []models.FilterTerm{
				{Field: models.FieldTitle, Value: "focus"},
				{Field: models.FieldDescription, Value: "focus"},
				{Field: models.FieldAuthor, Value: "focus"},
			},
			wantQuery: models.FilterQuery{Titles: []string{}, Authors: []string{}},
		},
		{
			name: "suggestions add terms and query entries, blanks skipped",
			payload: models.AdvicePayload{SuggestedBooks: []models.SuggestedBook{
				{Title: " Dune ", Author: ""},
				{Title: "", Author: "Frank Herbert"},
				{Title: "   ", Author: "  "},
			}},
			wantTerms: []models.FilterTerm{
				{Field: models.FieldTitle, Value: "Dune"},
				{Field: models.FieldAuthor, Value: "Frank Herbert"},
			},
			wantQuery: models.FilterQuery{Titles: []string{"Dune"}, Authors: []string{"Frank Herbert"}},
		},
		{
			name: "duplicate suggestions are retained in encounter order",
			payload: models.AdvicePayload{SuggestedBooks: []models.SuggestedBook{
				{Title: "Dune", Author: "Frank Herbert"},
				{Title: "Dune", Author: ""},
			}},
			wantTerms: []models.FilterTerm{
				{Field: models.FieldTitle, Value: "Dune"},
				{Field: models.FieldAuthor, Value: "Frank Herbert"},
				{Field: models.FieldTitle, Value: "Dune"},
			},
			wantQuery: models.FilterQuery{Titles: []string{"Dune", "Dune"}, Authors: []string{"Frank Herbert"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, query := BuildFilter(tt.payload)
			assert.Equal(t, tt.wantTerms, terms)
			assert.Equal(t, tt.wantQuery, query)
		})
	}
}

// ==========================
// Match Tests
// ==========================

func TestMatch_EmptyPayloadSkipsStore(t *testing.T) {
	source := &fakeBookSource{books: []models.Book{bookTitled("should never surface")}}
	svc := NewMatchService(source)

	result, err := svc.Match(context.Background(), models.AdvicePayload{
		Topics:         []string{},
		SuggestedBooks: []models.SuggestedBook{},
	}, 20)

	require.NoError(t, err)
	assert.Empty(t, result.Books)
	assert.True(t, result.FilterQuery.Empty())
	assert.Equal(t, 0, source.calls, "no predicate terms must not touch the store")
}

func TestMatch_BlankSuggestionsSkipStore(t *testing.T) {
	source := &fakeBookSource{}
	svc := NewMatchService(source)

	result, err := svc.Match(context.Background(), models.AdvicePayload{
		SuggestedBooks: []models.SuggestedBook{{Title: "  ", Author: "", Why: "still no signal"}},
	}, 20)

	require.NoError(t, err)
	assert.Empty(t, result.Books)
	assert.Equal(t, 0, source.calls)
}

func TestMatch_PassesPredicateAndLimit(t *testing.T) {
	matched := []models.Book{bookTitled("Dune Messiah"), bookTitled("dune")}
	source := &fakeBookSource{books: matched}
	svc := NewMatchService(source)

	payload := models.AdvicePayload{
		SuggestedBooks: []models.SuggestedBook{{Title: "Dune", Author: "", Why: "close match"}},
	}

	result, err := svc.Match(context.Background(), payload, 20)

	require.NoError(t, err)
	assert.Equal(t, matched, result.Books)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 20, source.gotLimit)
	assert.Equal(t, []models.FilterTerm{{Field: models.FieldTitle, Value: "Dune"}}, source.gotTerms)
	assert.Equal(t, []string{"Dune"}, result.FilterQuery.Titles)
	assert.Empty(t, result.FilterQuery.Authors)
}

func TestMatch_SourceError(t *testing.T) {
	source := &fakeBookSource{err: errors.New("store down")}
	svc := NewMatchService(source)

	_, err := svc.Match(context.Background(), models.AdvicePayload{Topics: []string{"habits"}}, 20)

	assert.Error(t, err)
}

func TestMatch_NilStoreResultStaysEmptySlice(t *testing.T) {
	source := &fakeBookSource{books: nil}
	svc := NewMatchService(source)

	result, err := svc.Match(context.Background(), models.AdvicePayload{Topics: []string{"habits"}}, 20)

	require.NoError(t, err)
	assert.NotNil(t, result.Books)
	assert.Empty(t, result.Books)
}
