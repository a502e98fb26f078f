package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"catalog-crud/internal/logger"
	"catalog-crud/internal/model"
	"catalog-crud/internal/service"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// CatalogService is what the handlers need from the product service.
type CatalogService interface {
	GetAll(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, in model.ProductInput) (*model.Product, error)
	Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	Seed(ctx context.Context) (int, error)
}

type ProductHandler struct {
	service CatalogService
}

type messageResponse struct {
	Message string `json:"message"`
}

type seedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

var HttpProductHandlerTracer = otel.Tracer("HttpProductHandler")

func NewProductHandler(service CatalogService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes mounts the catalog API on mux.
func (h *ProductHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.List)
	mux.HandleFunc("POST /api/products", h.Create)
	mux.HandleFunc("PUT /api/products/{id}", h.Update)
	mux.HandleFunc("DELETE /api/products/{id}", h.Delete)
	mux.HandleFunc("GET /api/seed", h.Seed)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.List")
	defer span.End()

	products, err := h.service.GetAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		logger.Error(ctx, "Failed to fetch products", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Create")
	defer span.End()

	var in model.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := h.service.Create(ctx, in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, statusFor(err), err.Error())
		return
	}
	span.SetAttributes(attribute.String("product.id", created.ID.Hex()))
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Update")
	defer span.End()

	id := r.PathValue("id")
	span.SetAttributes(attribute.String("product.id", id))

	var patch model.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updated, err := h.service.Update(ctx, id, patch)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Delete")
	defer span.End()

	id := r.PathValue("id")
	span.SetAttributes(attribute.String("product.id", id))

	if err := h.service.Delete(ctx, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

func (h *ProductHandler) Seed(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpProductHandlerTracer.Start(r.Context(), "HttpProductHandler.Seed")
	defer span.End()

	n, err := h.service.Seed(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		logger.Error(ctx, "Failed to seed products", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, seedResponse{Message: "Database seeded successfully", Count: n})
}

func statusFor(err error) int {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}
