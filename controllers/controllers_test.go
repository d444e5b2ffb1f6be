package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickbite/controllers"
	"quickbite/models"
	"quickbite/repository"
	"quickbite/routes"
	"quickbite/utils"
)

func newRouter(t *testing.T, cfg routes.Config) *mux.Router {
	t.Helper()
	users, err := repository.NewMemoryUsers()
	require.NoError(t, err)
	menu := repository.NewMemoryMenu()
	orders := repository.NewMemoryOrders()

	router := mux.NewRouter()
	routes.RegisterRoutes(router,
		controllers.NewAuthController(users),
		controllers.NewMenuController(menu),
		controllers.NewOrderController(orders, menu, utils.NewEmailService()),
		cfg,
	)
	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, router *mux.Router, username, password string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/login", models.LoginRequest{
		Username: username,
		Password: password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.AccessToken
}

func TestHealthCheck(t *testing.T) {
	router := newRouter(t, routes.Config{})
	rec := doJSON(t, router, http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestUnknownEndpointReturns404(t *testing.T) {
	router := newRouter(t, routes.Config{})
	rec := doJSON(t, router, http.MethodGet, "/nonexistent", nil, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginReturnsToken(t *testing.T) {
	router := newRouter(t, routes.Config{})
	rec := doJSON(t, router, http.MethodPost, "/login", models.LoginRequest{
		Username: "customer",
		Password: "customer123",
	}, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Greater(t, len(resp.AccessToken), 10)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 2, resp.UserID)
	assert.Equal(t, "customer", resp.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newRouter(t, routes.Config{})

	for name, creds := range map[string]models.LoginRequest{
		"unknown user": {Username: "nobody", Password: "whatever"},
		"bad password": {Username: "customer", Password: "wrong"},
	} {
		rec := doJSON(t, router, http.MethodPost, "/login", creds, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestGetMenuReturnsItems(t *testing.T) {
	router := newRouter(t, routes.Config{})
	rec := doJSON(t, router, http.MethodGet, "/menu", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.NotEmpty(t, items)
	for _, item := range items {
		assert.NotZero(t, item.ID)
		assert.NotEmpty(t, item.Name)
		assert.Greater(t, item.Price, 0.0)
	}
}

func TestGetMenuFiltersByCategory(t *testing.T) {
	router := newRouter(t, routes.Config{})
	rec := doJSON(t, router, http.MethodGet, "/menu?category=burgers", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.NotEmpty(t, items)
	for _, item := range items {
		assert.Equal(t, "burgers", item.Category)
	}
}

func TestGetMenuUnknownCategoryReturns404(t *testing.T) {
	router := newRouter(t, routes.Config{})
	rec := doJSON(t, router, http.MethodGet, "/menu?category=sushi", nil, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMenuItemByID(t *testing.T) {
	router := newRouter(t, routes.Config{})
	rec := doJSON(t, router, http.MethodGet, "/menu/1", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var item models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "Classic Burger", item.Name)

	rec = doJSON(t, router, http.MethodGet, "/menu/999", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCategories(t *testing.T) {
	router := newRouter(t, routes.Config{})
	rec := doJSON(t, router, http.MethodGet, "/categories", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["categories"], "burgers")
	assert.Contains(t, body["categories"], "beverages")
	assert.IsIncreasing(t, body["categories"])
}

func TestCreateOrderRecomputesTotal(t *testing.T) {
	router := newRouter(t, routes.Config{})
	rec := doJSON(t, router, http.MethodPost, "/order", models.Order{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Items: []models.OrderItem{
			{MenuItemID: 1, Quantity: 2, Price: 0.01}, // client price is ignored
			{MenuItemID: 6, Quantity: 1},
		},
		TotalAmount: 1.00,
	}, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var created models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, models.StatusPending, created.Status)
	// 2 x 12.99 + 4.99
	assert.Equal(t, 30.97, created.TotalAmount)
	assert.Equal(t, 12.99, created.Items[0].Price)
}

func TestCreateOrderUnknownItemReturns400(t *testing.T) {
	router := newRouter(t, routes.Config{})
	rec := doJSON(t, router, http.MethodPost, "/order", models.Order{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Items:         []models.OrderItem{{MenuItemID: 999, Quantity: 1}},
	}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderValidatesInput(t *testing.T) {
	router := newRouter(t, routes.Config{})

	noCustomer := models.Order{Items: []models.OrderItem{{MenuItemID: 1, Quantity: 1}}}
	rec := doJSON(t, router, http.MethodPost, "/order", noCustomer, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	noItems := models.Order{CustomerName: "Ada", CustomerEmail: "ada@example.com"}
	rec = doJSON(t, router, http.MethodPost, "/order", noItems, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	zeroQty := models.Order{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Items:         []models.OrderItem{{MenuItemID: 1, Quantity: 0}},
	}
	rec = doJSON(t, router, http.MethodPost, "/order", zeroQty, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderAuthGating(t *testing.T) {
	order := models.Order{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Items:         []models.OrderItem{{MenuItemID: 1, Quantity: 1}},
	}

	gated := newRouter(t, routes.Config{OrderRequireAuth: true})
	rec := doJSON(t, gated, http.MethodPost, "/order", order, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, gated, http.MethodPost, "/order", order, "invalid_token_here")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := login(t, gated, "customer", "customer123")
	rec = doJSON(t, gated, http.MethodPost, "/order", order, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	open := newRouter(t, routes.Config{OrderRequireAuth: false})
	rec = doJSON(t, open, http.MethodPost, "/order", order, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListOrdersRequiresAuth(t *testing.T) {
	router := newRouter(t, routes.Config{})

	rec := doJSON(t, router, http.MethodGet, "/order", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := login(t, router, "customer", "customer123")
	rec = doJSON(t, router, http.MethodGet, "/order", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	assert.Empty(t, orders)
}

func TestGetOrderByID(t *testing.T) {
	router := newRouter(t, routes.Config{})
	rec := doJSON(t, router, http.MethodPost, "/order", models.Order{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Items:         []models.OrderItem{{MenuItemID: 2, Quantity: 1}},
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/order/1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, "Ada", order.CustomerName)

	rec = doJSON(t, router, http.MethodGet, "/order/42", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	router := newRouter(t, routes.Config{})
	rec := doJSON(t, router, http.MethodPost, "/order", models.Order{
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Items:         []models.OrderItem{{MenuItemID: 3, Quantity: 1}},
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	staffToken := login(t, router, "staff", "staff123")

	rec = doJSON(t, router, http.MethodPut, "/order/1/status?status=preparing", nil, staffToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/order/1", nil, "")
	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, models.StatusPreparing, order.Status)

	rec = doJSON(t, router, http.MethodPut, "/order/1/status?status=burnt", nil, staffToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/order/1/status?status=ready", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	customerToken := login(t, router, "customer", "customer123")
	rec = doJSON(t, router, http.MethodPut, "/order/1/status?status=ready", nil, customerToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
