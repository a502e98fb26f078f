package repository

import (
	"context"
	"sync"

	"catalog-crud/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryProductRepository keeps products in process memory, in insertion
// order. Used with STORE_DRIVER=memory and in tests.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []model.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{}
}

func (r *MemoryProductRepository) Insert(_ context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = primitive.NewObjectID()
	r.products = append(r.products, *product)
	return nil
}

func (r *MemoryProductRepository) FindAll(_ context.Context) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *MemoryProductRepository) FindByID(_ context.Context, id primitive.ObjectID) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	p := r.products[i]
	return &p, nil
}

func (r *MemoryProductRepository) Update(_ context.Context, id primitive.ObjectID, patch model.ProductPatch) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	r.products[i] = patch.Apply(r.products[i])
	p := r.products[i]
	return &p, nil
}

func (r *MemoryProductRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.products = append(r.products[:i], r.products[i+1:]...)
	return nil
}

func (r *MemoryProductRepository) ReplaceAll(_ context.Context, products []model.Product) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = make([]model.Product, len(products))
	for i := range products {
		products[i].ID = primitive.NewObjectID()
		r.products[i] = products[i]
	}
	return len(products), nil
}

func (r *MemoryProductRepository) Ping(context.Context) error {
	return nil
}

func (r *MemoryProductRepository) indexOf(id primitive.ObjectID) int {
	for i := range r.products {
		if r.products[i].ID == id {
			return i
		}
	}
	return -1
}
