package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickbite/cart"
	"quickbite/client"
	"quickbite/controllers"
	"quickbite/repository"
	"quickbite/routes"
	"quickbite/storage"
	"quickbite/utils"
)

func newBackend(t *testing.T, cfg routes.Config) *httptest.Server {
	t.Helper()
	users, err := repository.NewMemoryUsers()
	require.NoError(t, err)

	router := mux.NewRouter()
	menu := repository.NewMemoryMenu()
	routes.RegisterRoutes(router,
		controllers.NewAuthController(users),
		controllers.NewMenuController(menu),
		controllers.NewOrderController(repository.NewMemoryOrders(), menu, utils.NewEmailService()),
		cfg,
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, cfg routes.Config) *client.Client {
	t.Helper()
	srv := newBackend(t, cfg)
	return client.New(srv.URL, client.NewSession(storage.NewMemory()))
}

func TestHealth(t *testing.T) {
	c := newClient(t, routes.Config{})
	assert.NoError(t, c.Health(context.Background()))
}

func TestLoginStoresToken(t *testing.T) {
	c := newClient(t, routes.Config{})

	resp, err := c.Login(context.Background(), "customer", "customer123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.True(t, c.Session().Authenticated())

	token, ok := c.Session().Token()
	require.True(t, ok)
	assert.Equal(t, resp.AccessToken, token)
}

func TestLoginBadCredentials(t *testing.T) {
	c := newClient(t, routes.Config{})

	_, err := c.Login(context.Background(), "customer", "wrong")
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, c.Session().Authenticated())
}

func TestMenuAndCategoryFilter(t *testing.T) {
	c := newClient(t, routes.Config{})

	items, err := c.Menu(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, items)

	burgers, err := c.MenuByCategory(context.Background(), "burgers")
	require.NoError(t, err)
	require.NotEmpty(t, burgers)
	for _, item := range burgers {
		assert.Equal(t, "burgers", item.Category)
	}
}

func TestCheckoutClearsCartOnSuccess(t *testing.T) {
	c := newClient(t, routes.Config{})
	ctx := context.Background()

	menu, err := c.Menu(ctx)
	require.NoError(t, err)
	basket := c.Session().Cart()
	require.NoError(t, basket.Add(cart.Item{ID: menu[0].ID, Name: menu[0].Name, Price: menu[0].Price, Category: menu[0].Category}))
	require.NoError(t, basket.Add(cart.Item{ID: menu[0].ID, Name: menu[0].Name, Price: menu[0].Price, Category: menu[0].Category}))

	order, err := c.Checkout(ctx, client.CustomerInfo{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Empty(t, basket.Items(), "cart should be empty after a successful order")
}

func TestCheckoutKeepsCartOnFailure(t *testing.T) {
	c := newClient(t, routes.Config{OrderRequireAuth: true})
	ctx := context.Background()

	basket := c.Session().Cart()
	require.NoError(t, basket.Add(cart.Item{ID: 1, Name: "Classic Burger", Price: 12.99}))

	_, err := c.Checkout(ctx, client.CustomerInfo{Name: "Ada", Email: "ada@example.com"})
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Len(t, basket.Items(), 1, "cart must survive a rejected order")
}

func TestCheckoutEmptyCart(t *testing.T) {
	c := newClient(t, routes.Config{})

	_, err := c.Checkout(context.Background(), client.CustomerInfo{Name: "Ada", Email: "ada@example.com"})
	assert.ErrorIs(t, err, client.ErrEmptyCart)
}

func TestCheckoutUnknownItemKeepsCart(t *testing.T) {
	c := newClient(t, routes.Config{})
	ctx := context.Background()

	basket := c.Session().Cart()
	require.NoError(t, basket.Add(cart.Item{ID: 999, Name: "Ghost Dish", Price: 9.99}))

	_, err := c.Checkout(ctx, client.CustomerInfo{Name: "Ada", Email: "ada@example.com"})
	require.Error(t, err)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Len(t, basket.Items(), 1)
}

func TestLogout(t *testing.T) {
	c := newClient(t, routes.Config{})

	_, err := c.Login(context.Background(), "customer", "customer123")
	require.NoError(t, err)

	basket := c.Session().Cart()
	require.NoError(t, basket.Add(cart.Item{ID: 1, Name: "Classic Burger", Price: 12.99}))

	c.Session().ClearToken()

	assert.False(t, c.Session().Authenticated())
	assert.Len(t, basket.Items(), 1, "logging out must not touch the cart")
}
