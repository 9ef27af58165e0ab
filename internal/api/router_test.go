package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/cart-service/internal/api/handlers"
	"github.com/Cheertaboi/cart-service/internal/catalog"
	"github.com/Cheertaboi/cart-service/internal/models"
	"github.com/Cheertaboi/cart-service/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewRouter(service.NewCartService(catalog.Default(), nil)))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeSnapshot(t *testing.T, resp *http.Response) models.Snapshot {
	t.Helper()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snap models.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	return snap
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListProducts(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, srv, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body handlers.ProductsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Products, 4)
	assert.Equal(t, "Laptop", body.Products[0].Name)
}

func TestCartFlow(t *testing.T) {
	srv := newTestServer(t)

	snap := decodeSnapshot(t, do(t, srv, http.MethodGet, "/cart", ""))
	assert.Empty(t, snap.Items)

	decodeSnapshot(t, do(t, srv, http.MethodPost, "/cart/items", `{"product_id": 1}`))
	snap = decodeSnapshot(t, do(t, srv, http.MethodPost, "/cart/items", `{"product_id": 2}`))
	assert.Equal(t, 800.0, snap.Subtotal)
	assert.False(t, snap.GiftAdded)

	snap = decodeSnapshot(t, do(t, srv, http.MethodPost, "/cart/items", `{"product_id": 1}`))
	assert.Equal(t, 1300.0, snap.Subtotal)
	assert.True(t, snap.GiftAdded)
	require.Len(t, snap.Items, 3)
	assert.Equal(t, catalog.GiftID, snap.Items[2].ID)
	assert.Equal(t, "Wireless Mouse", snap.Items[2].Name)
	assert.NotEmpty(t, snap.Notification)

	snap = decodeSnapshot(t, do(t, srv, http.MethodPatch, "/cart/items/1", `{"delta": -1}`))
	assert.Equal(t, 800.0, snap.Subtotal)
	assert.False(t, snap.GiftAdded)
	assert.Len(t, snap.Items, 2)

	snap = decodeSnapshot(t, do(t, srv, http.MethodDelete, "/cart/items/2", ""))
	assert.Len(t, snap.Items, 1)

	snap = decodeSnapshot(t, do(t, srv, http.MethodDelete, "/cart", ""))
	assert.Empty(t, snap.Items)
}

func TestAddUnknownProductReturnsUnchangedCart(t *testing.T) {
	srv := newTestServer(t)

	snap := decodeSnapshot(t, do(t, srv, http.MethodPost, "/cart/items", `{"product_id": 500}`))
	assert.Empty(t, snap.Items)
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"malformed add body", http.MethodPost, "/cart/items", `{"product_id":`},
		{"missing product id", http.MethodPost, "/cart/items", `{}`},
		{"zero delta", http.MethodPatch, "/cart/items/1", `{"delta": 0}`},
		{"delta above bound", http.MethodPatch, "/cart/items/1", `{"delta": 9223372036854775807}`},
		{"delta below bound", http.MethodPatch, "/cart/items/1", `{"delta": -1001}`},
		{"non numeric id on update", http.MethodPatch, "/cart/items/abc", `{"delta": 1}`},
		{"non numeric id on remove", http.MethodDelete, "/cart/items/abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestOversizedBodyIsRejected(t *testing.T) {
	router := NewRouter(service.NewCartService(catalog.Default(), nil))
	body := `{"product_id": 1, "pad": "` + strings.Repeat("x", 2<<20) + `"}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	var snap models.Snapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Empty(t, snap.Items)
}
