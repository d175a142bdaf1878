package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookx/internal/models"
)

// ---- Repository contract ---------------------------------------------------

// BookStore is the persistence contract for listings. FindByID follows the
// "empty value, nil error" convention for misses; the service turns that
// into ErrNotFound.
type BookStore interface {
	Insert(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book models.Book) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (models.Book, error)
	FindByOwner(ctx context.Context, ownerID string, limit int) ([]models.Book, error)
	List(ctx context.Context, limit int) ([]models.Book, error)
	Search(ctx context.Context, query string, titles, authors []string, limit int) ([]models.Book, error)
}

// ---- Errors ----------------------------------------------------------------

var (
	// ErrNotFound signals an unknown or hidden listing id.
	ErrNotFound = errors.New("listing not found")
	// ErrNotOwner signals a write attempt on somebody else's listing.
	ErrNotOwner = errors.New("listing belongs to another user")
	// ErrInvalidInput wraps validation failures on listing input.
	ErrInvalidInput = errors.New("invalid listing input")
)

// ---- Service interface + implementation ------------------------------------

// BookService covers the listing CRUD and keyword search operations.
type BookService interface {
	Create(ctx context.Context, ownerID string, in models.BookInput) (models.Book, error)
	Get(ctx context.Context, id string) (models.Book, error)
	Update(ctx context.Context, id, ownerID string, in models.BookInput) (models.Book, error)
	Delete(ctx context.Context, id, ownerID string) error
	ListMine(ctx context.Context, ownerID string) ([]models.Book, error)
	Search(ctx context.Context, query string, titles, authors []string) ([]models.Book, error)
}

type bookService struct {
	store       BookStore
	validate    *validator.Validate
	searchLimit int
}

// NewBookService wires the store and the input validator.
func NewBookService(store BookStore, searchLimit int) BookService {
	return &bookService{
		store:       store,
		validate:    validator.New(),
		searchLimit: searchLimit,
	}
}

// Create validates the input and stores a new listing owned by ownerID.
// An omitted is_active defaults to visible.
func (s *bookService) Create(ctx context.Context, ownerID string, in models.BookInput) (models.Book, error) {
	if err := s.validate.Struct(in); err != nil {
		return models.Book{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	book := models.Book{
		OwnerID:     ownerID,
		Title:       in.Title,
		Author:      in.Author,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		PhoneNumber: in.PhoneNumber,
		Location:    in.Location,
		IsActive:    in.IsActive == nil || *in.IsActive,
	}
	if err := s.store.Insert(ctx, &book); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

// Get fetches a single listing by id.
func (s *bookService) Get(ctx context.Context, id string) (models.Book, error) {
	book, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.Book{}, err
	}
	if book.ID.IsZero() {
		return models.Book{}, ErrNotFound
	}
	return book, nil
}

// Update replaces the writable fields of a listing the caller owns.
func (s *bookService) Update(ctx context.Context, id, ownerID string, in models.BookInput) (models.Book, error) {
	if err := s.validate.Struct(in); err != nil {
		return models.Book{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	book, err := s.Get(ctx, id)
	if err != nil {
		return models.Book{}, err
	}
	if book.OwnerID != ownerID {
		return models.Book{}, ErrNotOwner
	}

	book.Title = in.Title
	book.Author = in.Author
	book.Description = in.Description
	book.ImageURL = in.ImageURL
	book.PhoneNumber = in.PhoneNumber
	book.Location = in.Location
	if in.IsActive != nil {
		book.IsActive = *in.IsActive
	}

	if err := s.store.Update(ctx, book); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

// Delete removes a listing the caller owns.
func (s *bookService) Delete(ctx context.Context, id, ownerID string) error {
	book, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if book.OwnerID != ownerID {
		return ErrNotOwner
	}
	return s.store.Delete(ctx, id)
}

// ListMine returns the caller's own listings, hidden ones included.
func (s *bookService) ListMine(ctx context.Context, ownerID string) ([]models.Book, error) {
	return s.store.FindByOwner(ctx, ownerID, s.searchLimit)
}

// Search runs the keyword search over active listings. The title/author
// inputs accept repeated values and comma/semicolon-delimited strings; both
// forms normalize to the same token sequence. With no filters at all it
// falls back to plain newest-first browsing.
func (s *bookService) Search(ctx context.Context, query string, titles, authors []string) ([]models.Book, error) {
	query = strings.TrimSpace(query)
	titles = SplitList(titles)
	authors = SplitList(authors)

	if query == "" && len(titles) == 0 && len(authors) == 0 {
		return s.store.List(ctx, s.searchLimit)
	}
	return s.store.Search(ctx, query, titles, authors, s.searchLimit)
}

// SplitList flattens a mix of repeated parameters and comma/semicolon
// delimited strings into trimmed, non-empty tokens in input order.
func SplitList(values []string) []string {
	out := []string{}
	for _, value := range values {
		for _, chunk := range strings.Split(strings.ReplaceAll(value, ";", ","), ",") {
			if token := strings.TrimSpace(chunk); token != "" {
				out = append(out, token)
			}
		}
	}
	return out
}
