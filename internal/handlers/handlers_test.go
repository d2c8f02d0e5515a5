package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/shopadmin-golang/internal/handlers"
	"github.com/shopadmin/shopadmin-golang/internal/models"
	"github.com/shopadmin/shopadmin-golang/internal/routes"
	"github.com/shopadmin/shopadmin-golang/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*gin.Engine, *store.MemStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := store.NewMemStore()
	router := routes.SetupRouter(&handlers.Handlers{Store: s})
	return router, s
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestLoginFlow(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/login", gin.H{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[map[string]any](t, w)
	assert.NotEmpty(t, resp["token"])
	user, ok := resp["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "admin", user["username"])
	// The password hash never serializes.
	_, leaked := user["passwordHash"]
	assert.False(t, leaked)

	w = doJSON(t, router, http.MethodPost, "/api/login", gin.H{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown users get the same response as wrong passwords.
	w = doJSON(t, router, http.MethodPost, "/api/login", gin.H{
		"username": "nobody",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductCreateAndFetch(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/products", gin.H{
		"name":        "Wireless Headphones",
		"description": "Noise cancelling",
		"price":       199.99,
		"stock":       25,
		"sku":         "WH-1000",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.Product](t, w)
	assert.Equal(t, "published", created.Status)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decode[models.Product](t, w)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "WH-1000", fetched.SKU)
}

func TestProductValidation(t *testing.T) {
	router, _ := newTestServer(t)

	// Missing required fields.
	w := doJSON(t, router, http.MethodPost, "/api/products", gin.H{"name": "No price"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown status value.
	w = doJSON(t, router, http.MethodPost, "/api/products", gin.H{
		"name":        "Bad status",
		"description": "x",
		"price":       10,
		"sku":         "BS-1",
		"status":      "discontinued",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductListStockLabels(t *testing.T) {
	router, s := newTestServer(t)

	for i, stock := range []int{25, 5, 0} {
		_, err := s.CreateProduct(models.CreateProductInput{
			Name:        fmt.Sprintf("Product %d", i),
			Description: "x",
			Price:       10,
			Stock:       stock,
			SKU:         fmt.Sprintf("SKU-%d", i),
		})
		require.NoError(t, err)
	}

	w := doJSON(t, router, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rows := decode[[]models.ProductListView](t, w)
	require.Len(t, rows, 3)
	assert.Equal(t, "In Stock", rows[0].StockLabel)
	assert.Equal(t, "Low Stock", rows[1].StockLabel)
	assert.Equal(t, "Out of Stock", rows[2].StockLabel)
	assert.Equal(t, "$10.00", rows[0].Price)
	assert.Equal(t, "Uncategorized", rows[0].Category)
}

func TestProductNotFoundAndDelete(t *testing.T) {
	router, s := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	product, err := s.CreateProduct(models.CreateProductInput{
		Name: "Doomed", Description: "x", Price: 1, SKU: "DD-1",
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/products/%d", product.ID)
	w = doJSON(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Deleting again is a 404, not a silent success.
	w = doJSON(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteReferencedProductConflict(t *testing.T) {
	router, s := newTestServer(t)

	customer, err := s.CreateCustomer(models.CreateCustomerInput{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	product, err := s.CreateProduct(models.CreateProductInput{
		Name: "Headphones", Description: "x", Price: 199.99, Stock: 5, SKU: "WH-1",
	})
	require.NoError(t, err)
	_, err = s.CreateOrder(models.CreateOrderInput{
		CustomerID:      customer.ID,
		ShippingAddress: map[string]any{"street": "1 Main St"},
	}, []models.CreateOrderItemInput{
		{ProductID: product.ID, Quantity: 1, Price: 199.99},
	})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/products/%d", product.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCategoryTreeEndpoint(t *testing.T) {
	router, s := newTestServer(t)

	parent, err := s.CreateCategory(models.CreateCategoryInput{Name: "Electronics"})
	require.NoError(t, err)
	_, err = s.CreateCategory(models.CreateCategoryInput{Name: "Audio", ParentID: &parent.ID})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	tree := decode[[]models.Category](t, w)
	require.Len(t, tree, 1)
	assert.Equal(t, "electronics", tree[0].Slug)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "audio", tree[0].Children[0].Slug)
}

func TestOrderStatusEndpoint(t *testing.T) {
	router, s := newTestServer(t)

	customer, err := s.CreateCustomer(models.CreateCustomerInput{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	order, err := s.CreateOrder(models.CreateOrderInput{
		CustomerID:      customer.ID,
		ShippingAddress: map[string]any{"street": "1 Main St"},
	}, nil)
	require.NoError(t, err)

	path := fmt.Sprintf("/api/orders/%d/status", order.ID)

	w := doJSON(t, router, http.MethodPatch, path, gin.H{"status": "shipped"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.Order](t, w)
	assert.Equal(t, "shipped", updated.Status)

	w = doJSON(t, router, http.MethodPatch, path, gin.H{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/api/orders/999/status", gin.H{"status": "shipped"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateOrderEndpoint(t *testing.T) {
	router, s := newTestServer(t)

	customer, err := s.CreateCustomer(models.CreateCustomerInput{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	product, err := s.CreateProduct(models.CreateProductInput{
		Name: "Headphones", Description: "x", Price: 199.99, Stock: 5, SKU: "WH-1",
	})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"customerId":      customer.ID,
		"shippingAddress": gin.H{"street": "1 Main St"},
		"subtotal":        199.99,
		"total":           199.99,
		"items": []gin.H{
			{"productId": product.ID, "quantity": 1, "price": 199.99},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode[models.Order](t, w)
	assert.Equal(t, "ORD-0001", order.OrderNumber)

	// An order without items never reaches the store.
	w = doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"customerId":      customer.ID,
		"shippingAddress": gin.H{"street": "1 Main St"},
		"items":           []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A bad product reference is the caller's mistake, not a lookup miss.
	w = doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"customerId":      customer.ID,
		"shippingAddress": gin.H{"street": "1 Main St"},
		"items": []gin.H{
			{"productId": 999, "quantity": 1, "price": 1},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketReplyAuthorValidation(t *testing.T) {
	router, s := newTestServer(t)

	customer, err := s.CreateCustomer(models.CreateCustomerInput{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	ticket, err := s.CreateSupportTicket(models.CreateSupportTicketInput{
		CustomerID: customer.ID,
		Subject:    "Help",
		Message:    "Please",
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/support-tickets/%d/replies", ticket.ID)

	// No author.
	w := doJSON(t, router, http.MethodPost, path, gin.H{"message": "anonymous"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Both authors.
	w = doJSON(t, router, http.MethodPost, path, gin.H{
		"message": "two voices", "userId": 1, "customerId": customer.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Exactly one.
	w = doJSON(t, router, http.MethodPost, path, gin.H{
		"message": "hello", "customerId": customer.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	reply := decode[models.TicketReply](t, w)
	assert.Equal(t, ticket.ID, reply.TicketID)
}

func TestSiteSettingsEndpoints(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/site-settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	settings := decode[models.SiteSettings](t, w)
	assert.Equal(t, "ShopAdmin", settings.SiteName)

	w = doJSON(t, router, http.MethodPut, "/api/site-settings", gin.H{"siteName": "My Shop"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.SiteSettings](t, w)
	assert.Equal(t, "My Shop", updated.SiteName)
	assert.Equal(t, settings.PrimaryColor, updated.PrimaryColor)
}

func TestAuthGuard(t *testing.T) {
	t.Setenv("AUTH_REQUIRED", "true")
	router, _ := newTestServer(t)

	// Protected surface rejects anonymous calls.
	w := doJSON(t, router, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Login stays public and its token opens the door.
	w = doJSON(t, router, http.MethodPost, "/api/login", gin.H{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, ok := decode[map[string]any](t, w)["token"].(string)
	require.True(t, ok)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDashboardStatsEndpoint(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[models.DashboardStats](t, w)
	assert.Equal(t, "$0.00", stats.TotalSales)
	assert.Zero(t, stats.TotalOrders)
}
