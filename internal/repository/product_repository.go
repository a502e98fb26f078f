package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-crud/internal/logger"
	"catalog-crud/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
)

// ErrNotFound is returned when no record matches the id.
var ErrNotFound = errors.New("product not found")

const collectionName = "products"

type ProductRepository struct {
	collection *mongo.Collection
}

var ProductRepositoryTracer = otel.Tracer("ProductRepository")

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection(collectionName),
	}
}

func (r *ProductRepository) Insert(ctx context.Context, product *model.Product) error {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.Insert")
	defer span.End()
	logger.Debug(ctx, "Repository")

	product.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		span.RecordError(err)
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()
	logger.Debug(ctx, "Repository")

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]model.Product, 0)
	for cursor.Next(ctx) {
		var product model.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, product)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()
	logger.Debug(ctx, "Repository")

	var product model.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("find product %s: %w", id.Hex(), err)
	}
	return &product, nil
}

// Update applies the non-nil patch fields and returns the stored document
// after the update.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, patch model.ProductPatch) (*model.Product, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.Update")
	defer span.End()
	logger.Debug(ctx, "Repository")

	set := setDocument(patch)
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product model.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("update product %s: %w", id.Hex(), err)
	}
	return &product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()
	logger.Debug(ctx, "Repository")

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete product %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAll empties the collection and inserts products, assigning fresh ids.
func (r *ProductRepository) ReplaceAll(ctx context.Context, products []model.Product) (int, error) {
	ctx, span := ProductRepositoryTracer.Start(ctx, "ProductRepository.ReplaceAll")
	defer span.End()
	logger.Debug(ctx, "Repository")

	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("clear products: %w", err)
	}
	if len(products) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(products))
	for i := range products {
		products[i].ID = primitive.NewObjectID()
		docs[i] = products[i]
	}
	res, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("insert sample products: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (r *ProductRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, nil)
}

func setDocument(p model.ProductPatch) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Category != nil {
		set["category"] = strings.TrimSpace(*p.Category)
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Stock != nil {
		set["stock"] = *p.Stock
	}
	if p.Description != nil {
		set["description"] = strings.TrimSpace(*p.Description)
	}
	if p.ImageURL != nil {
		set["imageUrl"] = strings.TrimSpace(*p.ImageURL)
	}
	return set
}
