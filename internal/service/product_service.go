package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"catalog-crud/internal/logger"
	"catalog-crud/internal/model"
	"catalog-crud/internal/repository"
	"catalog-crud/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"
)

// ErrNotFound covers unknown and malformed ids alike.
var ErrNotFound = errors.New("Product not found")

// ValidationError reports rejected input; Fields lists every failing field.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "Validation failed: " + strings.Join(msgs, ", ")
}

// ProductStore is the persistent store contract.
type ProductStore interface {
	Insert(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, patch model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ReplaceAll(ctx context.Context, products []model.Product) (int, error)
}

type ProductService struct {
	repo ProductStore
	now  func() time.Time
}

var ProductServiceTracer = otel.Tracer("ProductService")

func NewProductService(repo ProductStore) *ProductService {
	return &ProductService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *ProductService) Create(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Create")
	defer span.End()
	logger.Debug(ctx, "Service")

	if fields := validation.Struct(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	// Mongo keeps millisecond precision; truncate so the create response
	// matches what a later list returns.
	p := in.ToProduct(s.now().UTC().Truncate(time.Millisecond))
	if err := s.repo.Insert(ctx, &p); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Product created", slog.String("id", p.ID.Hex()), slog.String("name", p.Name))
	return &p, nil
}

func (s *ProductService) GetAll(ctx context.Context) ([]model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.GetAll")
	defer span.End()
	logger.Debug(ctx, "Service")

	return s.repo.FindAll(ctx)
}

func (s *ProductService) Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Update")
	defer span.End()
	logger.Debug(ctx, "Service")

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if fields := validation.Struct(patch); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	p, err := s.repo.Update(ctx, objID, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Delete")
	defer span.End()
	logger.Debug(ctx, "Service")

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	err = s.repo.Delete(ctx, objID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// Seed replaces the whole collection with the sample set and returns how many
// records were inserted.
func (s *ProductService) Seed(ctx context.Context) (int, error) {
	ctx, span := ProductServiceTracer.Start(ctx, "ProductService.Seed")
	defer span.End()

	samples := model.SampleProducts()
	now := s.now().UTC().Truncate(time.Millisecond)
	for i := range samples {
		samples[i].DateAdded = now
	}

	n, err := s.repo.ReplaceAll(ctx, samples)
	if err != nil {
		return 0, fmt.Errorf("seed products: %w", err)
	}

	logger.Info(ctx, "Database seeded", slog.Int("count", n))
	return n, nil
}
