package client

import (
	"context"
	"net/url"

	"catalog-crud/internal/model"
)

// CatalogClient speaks the catalog REST API.
type CatalogClient struct {
	http *HTTPClient
}

type SeedResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type messageBody struct {
	Message string `json:"message"`
}

func NewCatalogClient(h *HTTPClient) *CatalogClient {
	return &CatalogClient{http: h}
}

func (c *CatalogClient) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.http.Get(ctx, "/api/products", &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func (c *CatalogClient) Create(ctx context.Context, in model.ProductInput) (model.Product, error) {
	var p model.Product
	err := c.http.Post(ctx, "/api/products", in, &p)
	return p, err
}

func (c *CatalogClient) Update(ctx context.Context, id string, patch model.ProductPatch) (model.Product, error) {
	var p model.Product
	err := c.http.Put(ctx, "/api/products/"+url.PathEscape(id), patch, &p)
	return p, err
}

// Delete returns the server's confirmation message.
func (c *CatalogClient) Delete(ctx context.Context, id string) (string, error) {
	var body messageBody
	err := c.http.Delete(ctx, "/api/products/"+url.PathEscape(id), &body)
	return body.Message, err
}

func (c *CatalogClient) Seed(ctx context.Context) (SeedResult, error) {
	var res SeedResult
	err := c.http.Get(ctx, "/api/seed", &res)
	return res, err
}
