package model_test

import (
	"testing"
	"time"

	"catalog-crud/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestProductInput_ToProduct(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	in := model.ProductInput{
		Name:        model.Ptr("  Desk Lamp "),
		Category:    model.Ptr("Home"),
		Price:       model.Ptr(24.99),
		Stock:       model.Ptr(3),
		Description: model.Ptr("Adjustable"),
	}

	p := in.ToProduct(now)

	assert.Equal(t, "Desk Lamp", p.Name)
	assert.Equal(t, 24.99, p.Price)
	assert.Equal(t, 3, p.Stock)
	assert.Equal(t, now, p.DateAdded)
	assert.Equal(t, model.PlaceholderImageURL, p.ImageURL)
	assert.True(t, p.ID.IsZero())
}

func TestProductInput_ToProductKeepsImage(t *testing.T) {
	in := model.ProductInput{ImageURL: model.Ptr("https://example.com/a.png")}
	assert.Equal(t, "https://example.com/a.png", in.ToProduct(time.Now()).ImageURL)

	in.ImageURL = model.Ptr("  ")
	assert.Equal(t, model.PlaceholderImageURL, in.ToProduct(time.Now()).ImageURL)
}

func TestProductPatch_Apply(t *testing.T) {
	added := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	base := model.Product{Name: "Yoga Mat", Category: "Fitness", Price: 29.95, Stock: 20, DateAdded: added}

	got := model.ProductPatch{Price: model.Ptr(19.5), Stock: model.Ptr(0)}.Apply(base)

	assert.Equal(t, 19.5, got.Price)
	assert.Equal(t, 0, got.Stock)
	assert.Equal(t, "Yoga Mat", got.Name)
	assert.Equal(t, added, got.DateAdded)
	assert.Equal(t, 29.95, base.Price, "source record is not modified")
}

func TestProductPatch_IsEmpty(t *testing.T) {
	assert.True(t, model.ProductPatch{}.IsEmpty())
	assert.False(t, model.ProductPatch{Stock: model.Ptr(0)}.IsEmpty())
}

func TestSampleProducts(t *testing.T) {
	samples := model.SampleProducts()
	assert.Len(t, samples, 6)
	for _, p := range samples {
		assert.NotEmpty(t, p.Name)
		assert.Greater(t, p.Price, 0.0)
	}
}
