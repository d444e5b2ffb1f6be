// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"quickbite/controllers"
	"quickbite/middleware"
)

// Config holds route-level policy switches.
type Config struct {
	// OrderRequireAuth gates order submission on a valid bearer token.
	// The cart core is auth-independent; this is storefront policy.
	OrderRequireAuth bool
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, authController *controllers.AuthController, menuController *controllers.MenuController, orderController *controllers.OrderController, cfg Config) {
	router.Use(middleware.LoggingMiddleware)

	// Public routes
	router.HandleFunc("/", controllers.Root).Methods("GET")
	router.HandleFunc("/health", controllers.Health).Methods("GET")
	router.HandleFunc("/login", authController.Login).Methods("POST")

	// Menu routes
	router.HandleFunc("/menu", menuController.GetMenu).Methods("GET")
	router.HandleFunc("/menu/{id:[0-9]+}", menuController.GetMenuItem).Methods("GET")
	router.HandleFunc("/categories", menuController.GetCategories).Methods("GET")

	// Order submission: auth-gating is configurable
	createOrder := http.Handler(http.HandlerFunc(orderController.CreateOrder))
	if cfg.OrderRequireAuth {
		createOrder = middleware.AuthMiddleware(createOrder)
	}
	router.Handle("/order", createOrder).Methods("POST")
	router.HandleFunc("/order/{id:[0-9]+}", orderController.GetOrder).Methods("GET")

	// Protected order routes
	listOrders := middleware.AuthMiddleware(http.HandlerFunc(orderController.GetOrders))
	router.Handle("/order", listOrders).Methods("GET")

	updateStatus := middleware.AuthMiddleware(middleware.StaffMiddleware(http.HandlerFunc(orderController.UpdateOrderStatus)))
	router.Handle("/order/{id:[0-9]+}/status", updateStatus).Methods("PUT")
}
