package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaceholderImageURL is stored when a product is created without an image.
const PlaceholderImageURL = "https://images.unsplash.com/photo-1560472354-b33ff0c44a43?w=300&h=300&fit=crop"

type Product struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Category    string             `json:"category" bson:"category"`
	Price       float64            `json:"price" bson:"price"`
	Stock       int                `json:"stock" bson:"stock"`
	Description string             `json:"description" bson:"description"`
	ImageURL    string             `json:"imageUrl" bson:"imageUrl"`
	DateAdded   time.Time          `json:"dateAdded" bson:"dateAdded"`
}

// ProductInput is the body of a create request. Pointers distinguish an
// absent field from a zero value so presence can be validated.
type ProductInput struct {
	Name        *string  `json:"name" validate:"required,notblank"`
	Category    *string  `json:"category" validate:"required,notblank"`
	Price       *float64 `json:"price" validate:"required,gt=0"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	Description *string  `json:"description" validate:"required,notblank"`
	ImageURL    *string  `json:"imageUrl,omitempty" validate:"omitempty"`
}

// ProductPatch carries the fields of a partial update. Nil fields are left
// untouched; id and dateAdded are not patchable.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,notblank"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,notblank"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Description *string  `json:"description,omitempty" validate:"omitempty,notblank"`
	ImageURL    *string  `json:"imageUrl,omitempty" validate:"omitempty"`
}

// ToProduct builds the record to insert. Callers validate first.
func (in ProductInput) ToProduct(now time.Time) Product {
	p := Product{
		Name:        strings.TrimSpace(deref(in.Name)),
		Category:    strings.TrimSpace(deref(in.Category)),
		Description: strings.TrimSpace(deref(in.Description)),
		ImageURL:    strings.TrimSpace(deref(in.ImageURL)),
		DateAdded:   now,
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if p.ImageURL == "" {
		p.ImageURL = PlaceholderImageURL
	}
	return p
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil &&
		p.Stock == nil && p.Description == nil && p.ImageURL == nil
}

// Apply merges the patch into a copy of the product.
func (p ProductPatch) Apply(dst Product) Product {
	if p.Name != nil {
		dst.Name = strings.TrimSpace(*p.Name)
	}
	if p.Category != nil {
		dst.Category = strings.TrimSpace(*p.Category)
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Stock != nil {
		dst.Stock = *p.Stock
	}
	if p.Description != nil {
		dst.Description = strings.TrimSpace(*p.Description)
	}
	if p.ImageURL != nil {
		dst.ImageURL = strings.TrimSpace(*p.ImageURL)
	}
	return dst
}

// Ptr returns a pointer to v. Handy for building inputs and patches.
func Ptr[T any](v T) *T {
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
