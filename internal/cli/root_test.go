package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	handler "catalog-crud/internal/handler/http"
	"catalog-crud/internal/model"
	"catalog-crud/internal/repository"
	"catalog-crud/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	handler.NewProductHandler(service.NewProductService(repository.NewMemoryProductRepository())).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "catalog-client", cmd.Use)

	for _, name := range []string{"list", "add", "update", "edit", "delete", "seed"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "command %s should exist", name)
		assert.Equal(t, name, sub.Name())
	}

	api := cmd.PersistentFlags().Lookup("api")
	require.NotNil(t, api)
	assert.Equal(t, defaultAPIURL, api.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "", "--format", "yaml", "list")
	assert.ErrorContains(t, err, `invalid format "yaml"`)
}

func TestSeedThenList(t *testing.T) {
	srv := newServer(t)

	out, errOut, err := execute(t, "", "--api", srv.URL, "seed")
	require.NoError(t, err)
	assert.Equal(t, "Seeded 6 products (6 loaded)\n", out)
	assert.Contains(t, errOut, "[success] Database seeded successfully")

	out, _, err = execute(t, "", "--api", srv.URL, "list", "--sort", "price", "--filter", "electronics")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Wireless Headphones")
	assert.NotContains(t, out, "Yoga Mat")
	assert.Less(t, strings.Index(out, "Wireless Headphones"), strings.Index(out, "Smart Watch"))
	assert.Contains(t, out, "2 of 6 products")
}

func TestAPIURLFromEnv(t *testing.T) {
	srv := newServer(t)
	t.Setenv("CATALOG_API_URL", srv.URL)

	out, _, err := execute(t, "", "--format", "json", "list")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestAddUpdateEditDelete(t *testing.T) {
	srv := newServer(t)
	api := []string{"--api", srv.URL, "--format", "json"}

	out, _, err := execute(t, "", append(api, "add", "--name", "Desk Lamp", "--category", "Home",
		"--price", "24.99", "--stock", "12", "--description", "Adjustable LED lamp")...)
	require.NoError(t, err)
	var created model.Product
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, model.PlaceholderImageURL, created.ImageURL)
	id := created.ID.Hex()

	out, _, err = execute(t, "", append(api, "update", id, "--stock", "7")...)
	require.NoError(t, err)
	var updated model.Product
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, 7, updated.Stock)
	assert.Equal(t, "Desk Lamp", updated.Name)

	out, _, err = execute(t, "", "--api", srv.URL, "edit", id, "price", "19.5")
	require.NoError(t, err)
	assert.Equal(t, "price = 19.50\n", out)

	out, _, err = execute(t, "n\n", "--api", srv.URL, "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")

	_, errOut, err := execute(t, "", "--api", srv.URL, "delete", "--yes", id)
	require.NoError(t, err)
	assert.Contains(t, errOut, "[success] Product deleted successfully!")

	out, _, err = execute(t, "", append(api, "list")...)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestAddValidationError(t *testing.T) {
	srv := newServer(t)

	_, errOut, err := execute(t, "", "--api", srv.URL, "add", "--name", "Lamp", "--category", "Home",
		"--price", "-5", "--stock", "1", "--description", "d")

	assert.EqualError(t, err, "Please enter a valid price")
	assert.Contains(t, errOut, "[error] Please enter a valid price")
}

func TestUpdateRequiresAField(t *testing.T) {
	srv := newServer(t)
	_, _, err := execute(t, "", "--api", srv.URL, "seed")
	require.NoError(t, err)
	out, _, err := execute(t, "", "--api", srv.URL, "--format", "json", "list")
	require.NoError(t, err)
	var products []model.Product
	require.NoError(t, json.Unmarshal([]byte(out), &products))

	_, _, err = execute(t, "", "--api", srv.URL, "update", products[0].ID.Hex())
	assert.ErrorContains(t, err, "nothing to update")
}

func TestListRejectsUnknownSort(t *testing.T) {
	_, _, err := execute(t, "", "list", "--sort", "rating")
	assert.ErrorContains(t, err, `invalid sort "rating"`)
}
