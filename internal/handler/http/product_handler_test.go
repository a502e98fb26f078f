package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	handler "catalog-crud/internal/handler/http"
	"catalog-crud/internal/model"
	"catalog-crud/internal/repository"
	"catalog-crud/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newMux() *http.ServeMux {
	repo := repository.NewMemoryProductRepository()
	mux := http.NewServeMux()
	handler.NewProductHandler(service.NewProductService(repo)).RegisterRoutes(mux)
	mux.HandleFunc("GET /healthz", handler.NewHealthHandler(service.NewHealthService(repo, "memory")).Check)
	return mux
}

func do(t *testing.T, mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

const lampJSON = `{"name":"Desk Lamp","category":"Home","price":24.99,"stock":0,"description":"Adjustable LED lamp"}`

func TestProductHandler_CreateAndList(t *testing.T) {
	mux := newMux()

	rec := do(t, mux, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, mux, http.MethodPost, "/api/products", lampJSON)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	created := decode[model.Product](t, rec)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, 0, created.Stock)
	assert.Equal(t, model.PlaceholderImageURL, created.ImageURL)
	assert.False(t, created.DateAdded.IsZero())

	rec = do(t, mux, http.MethodGet, "/api/products", "")
	list := decode[[]model.Product](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])
}

func TestProductHandler_CreateRejectsBadInput(t *testing.T) {
	mux := newMux()

	rec := do(t, mux, http.MethodPost, "/api/products", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request payload", decode[map[string]string](t, rec)["message"])

	rec = do(t, mux, http.MethodPost, "/api/products", `{"name":"Lamp","category":"Home","price":0,"stock":1,"description":"d"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["message"], "price")

	rec = do(t, mux, http.MethodPost, "/api/products", `{"category":"Home","price":1,"stock":1,"description":"d"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, http.MethodGet, "/api/products", "")
	assert.JSONEq(t, `[]`, rec.Body.String(), "rejected creates leave nothing behind")
}

func TestProductHandler_Update(t *testing.T) {
	mux := newMux()
	created := decode[model.Product](t, do(t, mux, http.MethodPost, "/api/products", lampJSON))
	target := "/api/products/" + created.ID.Hex()

	rec := do(t, mux, http.MethodPut, target, `{"price":19.5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[model.Product](t, rec)
	assert.Equal(t, 19.5, updated.Price)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.DateAdded, updated.DateAdded)

	rec = do(t, mux, http.MethodPut, target, `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, updated, decode[model.Product](t, rec))

	rec = do(t, mux, http.MethodPut, target, `{"stock":-3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_UpdateUnknownID(t *testing.T) {
	mux := newMux()

	rec := do(t, mux, http.MethodPut, "/api/products/"+primitive.NewObjectID().Hex(), `{"price":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decode[map[string]string](t, rec)["message"])

	rec = do(t, mux, http.MethodPut, "/api/products/not-an-id", `{"price":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_Delete(t *testing.T) {
	mux := newMux()
	created := decode[model.Product](t, do(t, mux, http.MethodPost, "/api/products", lampJSON))
	target := "/api/products/" + created.ID.Hex()

	rec := do(t, mux, http.MethodDelete, target, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product deleted successfully", decode[map[string]string](t, rec)["message"])

	rec = do(t, mux, http.MethodDelete, target, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, mux, http.MethodDelete, "/api/products/123", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_Seed(t *testing.T) {
	mux := newMux()
	do(t, mux, http.MethodPost, "/api/products", lampJSON)

	rec := do(t, mux, http.MethodGet, "/api/seed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Message string `json:"message"`
		Count   int    `json:"count"`
	}](t, rec)
	assert.Equal(t, "Database seeded successfully", body.Message)
	assert.Equal(t, 6, body.Count)

	list := decode[[]model.Product](t, do(t, mux, http.MethodGet, "/api/products", ""))
	assert.Len(t, list, body.Count)
	for _, p := range list {
		assert.NotEqual(t, "Desk Lamp", p.Name)
	}
}

func TestHealthHandler_Check(t *testing.T) {
	rec := do(t, newMux(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"UP","data":{"memory":"UP"}}`, rec.Body.String())
}

func TestStaticHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	h := handler.NewStaticHandler(dir)

	rec := do(t, h, http.MethodGet, "/app.js", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/products/42", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app")

	rec = do(t, h, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/", "{}")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
