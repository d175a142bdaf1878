package service

import (
	"context"
	"strings"

	"bookx/internal/models"
)

// ---- Listing store contract ------------------------------------------------

// ActiveBookSource is the read-only view of the listing store the match
// engine needs: active listings filtered by an OR-combined set of substring
// terms, newest first, capped at limit.
type ActiveBookSource interface {
	FindActive(ctx context.Context, terms []models.FilterTerm, limit int) ([]models.Book, error)
}

// ---- Service interface + implementation ------------------------------------

// MatchService cross-references an advice payload against the listing store.
type MatchService interface {
	Match(ctx context.Context, payload models.AdvicePayload, limit int) (models.MatchResult, error)
}

type matchService struct {
	books ActiveBookSource
}

// NewMatchService wires the listing source.
func NewMatchService(books ActiveBookSource) MatchService {
	return &matchService{books: books}
}

// BuildFilter converts a suggestion payload into the disjunctive predicate
// over listings plus the reusable filter query.
//
// Topics match any of title/description/author but contribute no literal
// strings to the filter query; suggested books add a title term and/or an
// author term and the same strings, trimmed, to the query lists. The lists
// keep first-seen order and are not deduplicated.
func BuildFilter(payload models.AdvicePayload) ([]models.FilterTerm, models.FilterQuery) {
	terms := []models.FilterTerm{}
	query := models.FilterQuery{Titles: []string{}, Authors: []string{}}

	for _, raw := range payload.Topics {
		topic := strings.ToLower(strings.TrimSpace(raw))
		if topic == "" {
			continue
		}
		terms = append(terms,
			models.FilterTerm{Field: models.FieldTitle, Value: topic},
			models.FilterTerm{Field: models.FieldDescription, Value: topic},
			models.FilterTerm{Field: models.FieldAuthor, Value: topic},
		)
	}

	for _, suggestion := range payload.SuggestedBooks {
		if title := strings.TrimSpace(suggestion.Title); title != "" {
			terms = append(terms, models.FilterTerm{Field: models.FieldTitle, Value: title})
			query.Titles = append(query.Titles, title)
		}
		if author := strings.TrimSpace(suggestion.Author); author != "" {
			terms = append(terms, models.FilterTerm{Field: models.FieldAuthor, Value: author})
			query.Authors = append(query.Authors, author)
		}
	}

	return terms, query
}

// Match applies the payload-derived predicate to the active listings.
// A payload that produces no predicate terms yields an empty result without
// touching the store: no signal must not leak the whole catalog.
func (s *matchService) Match(ctx context.Context, payload models.AdvicePayload, limit int) (models.MatchResult, error) {
	terms, query := BuildFilter(payload)
	result := models.MatchResult{Books: []models.Book{}, FilterQuery: query}

	if len(terms) == 0 || limit <= 0 {
		return result, nil
	}

	books, err := s.books.FindActive(ctx, terms, limit)
	if err != nil {
		return result, err
	}
	if books != nil {
		result.Books = books
	}
	return result, nil
}
