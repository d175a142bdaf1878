package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book is a single book-exchange advertisement.
type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     string             `bson:"owner_id" json:"owner_id"`
	Title       string             `bson:"title" json:"title"`
	Author      string             `bson:"author" json:"author"`
	Description string             `bson:"description" json:"description"`
	ImageURL    string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	PhoneNumber string             `bson:"phone_number" json:"phone_number"`
	Location    string             `bson:"location" json:"location"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// BookInput carries the writable listing fields for create and update.
// IsActive is a pointer so an omitted value defaults to "visible" on create
// without clobbering an explicit false on update.
type BookInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Author      string `json:"author" validate:"max=255"`
	Description string `json:"description" validate:"max=4000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	PhoneNumber string `json:"phone_number" validate:"max=32"`
	Location    string `json:"location" validate:"required,max=300"`
	IsActive    *bool  `json:"is_active"`
}
