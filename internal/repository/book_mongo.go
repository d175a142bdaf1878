package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"bookx/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookMongo persists book listings in the "books" collection.
//
// Expected schema:
//
//	books
//	  { _id: ObjectId, owner_id, title, author, description, image_url,
//	    phone_number, location, is_active, created_at, updated_at }
type BookMongo struct {
	col *mongo.Collection
}

// NewBookRepository wires the collection and makes sure the indexes the
// public queries rely on exist. Index creation is idempotent.
func NewBookRepository(ctx context.Context, db *mongo.Database) (*BookMongo, error) {
	col := db.Collection("books")

	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create book indexes: %w", err)
	}

	return &BookMongo{col: col}, nil
}

// icontains builds a case-insensitive substring condition on field.
// The value is quoted so user input is matched literally, never as a pattern.
func icontains(field, value string) bson.M {
	return bson.M{field: primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}}
}

// newestFirst is the collection's natural presentation order.
func newestFirst(limit int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
}

// -------------------------- writes ------------------------------------------

// Insert stores a new listing and fills in its ID and timestamps.
func (r *BookMongo) Insert(ctx context.Context, book *models.Book) error {
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, book)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		book.ID = oid
	}
	return nil
}

// Update replaces the stored listing with the same _id, bumping updated_at.
func (r *BookMongo) Update(ctx context.Context, book models.Book) error {
	book.UpdatedAt = time.Now().UTC()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": book.ID}, book)
	if err != nil {
		return fmt.Errorf("failed to update book %s: %w", book.ID.Hex(), err)
	}
	return nil
}

// Delete removes a listing by its hex ObjectID.
func (r *BookMongo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid book id %q: %w", id, err)
	}

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("failed to delete book %s: %w", id, err)
	}
	return nil
}

// -------------------------- reads -------------------------------------------

// FindByID fetches a listing by its hex ObjectID. When the document is not
// found (or the id is not a valid ObjectID) it returns an empty Book and a
// nil error so callers can decide how to surface the miss.
func (r *BookMongo) FindByID(ctx context.Context, id string) (models.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Book{}, nil
	}

	var book models.Book
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return models.Book{}, nil
	}
	if err != nil {
		return models.Book{}, fmt.Errorf("failed to find book %s: %w", id, err)
	}
	return book, nil
}

// FindByOwner returns every listing (active or not) posted by ownerID,
// newest first.
func (r *BookMongo) FindByOwner(ctx context.Context, ownerID string, limit int) ([]models.Book, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID}, limit)
}

// List returns active listings, newest first, with no text filters.
func (r *BookMongo) List(ctx context.Context, limit int) ([]models.Book, error) {
	return r.find(ctx, bson.M{"is_active": true}, limit)
}

// FindActive applies an OR-combined set of substring terms to the active
// listings. An empty term set is rejected: absence of filters must never
// widen the query to the whole catalog.
func (r *BookMongo) FindActive(ctx context.Context, terms []models.FilterTerm, limit int) ([]models.Book, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("at least one filter term is required")
	}

	or := make([]bson.M, 0, len(terms))
	for _, t := range terms {
		or = append(or, icontains(t.Field, t.Value))
	}

	return r.find(ctx, bson.M{"is_active": true, "$or": or}, limit)
}

// Search combines, with AND across categories and OR within: a free-text
// match over title/author/description, a title-contains disjunction and an
// author-contains disjunction. Empty categories impose no constraint.
func (r *BookMongo) Search(ctx context.Context, query string, titles, authors []string, limit int) ([]models.Book, error) {
	and := []bson.M{{"is_active": true}}

	if query != "" {
		and = append(and, bson.M{"$or": []bson.M{
			icontains(models.FieldTitle, query),
			icontains(models.FieldAuthor, query),
			icontains(models.FieldDescription, query),
		}})
	}
	if len(titles) > 0 {
		or := make([]bson.M, 0, len(titles))
		for _, t := range titles {
			or = append(or, icontains(models.FieldTitle, t))
		}
		and = append(and, bson.M{"$or": or})
	}
	if len(authors) > 0 {
		or := make([]bson.M, 0, len(authors))
		for _, a := range authors {
			or = append(or, icontains(models.FieldAuthor, a))
		}
		and = append(and, bson.M{"$or": or})
	}

	return r.find(ctx, bson.M{"$and": and}, limit)
}

// find runs a filtered query in presentation order and decodes the batch.
func (r *BookMongo) find(ctx context.Context, filter bson.M, limit int) ([]models.Book, error) {
	cur, err := r.col.Find(ctx, filter, newestFirst(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer cur.Close(ctx)

	books := []models.Book{}
	if err := cur.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("failed to decode books: %w", err)
	}
	return books, nil
}
