// controllers/order.go
package controllers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"quickbite/models"
	"quickbite/repository"
	"quickbite/utils"
)

// OrderController handles order-related requests
type OrderController struct {
	Orders       repository.OrderRepository
	Menu         repository.MenuRepository
	EmailService *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(orders repository.OrderRepository, menu repository.MenuRepository, emailService *utils.EmailService) *OrderController {
	return &OrderController{
		Orders:       orders,
		Menu:         menu,
		EmailService: emailService,
	}
}

// CreateOrder validates the submitted items against the menu, recomputes
// the total server-side and stores the order. The client-supplied total
// is ignored; prices come from the menu, not the request.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if order.CustomerName == "" || order.CustomerEmail == "" {
		writeError(w, http.StatusBadRequest, "customer_name and customer_email are required")
		return
	}
	if len(order.Items) == 0 {
		writeError(w, http.StatusBadRequest, "Order must contain at least one item")
		return
	}

	var total float64
	for i, item := range order.Items {
		if item.Quantity < 1 {
			writeError(w, http.StatusBadRequest, "Item quantity must be at least 1")
			return
		}
		menuItem, err := oc.Menu.Find(r.Context(), item.MenuItemID)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Menu item with ID %d not found", item.MenuItemID))
			return
		}
		order.Items[i].Price = menuItem.Price
		total += menuItem.Price * float64(item.Quantity)
	}
	order.TotalAmount = math.Round(total*100) / 100
	order.Status = models.StatusPending
	order.CreatedAt = time.Now()

	created, err := oc.Orders.Create(r.Context(), order)
	if err != nil {
		logrus.WithError(err).Error("failed to create order")
		writeError(w, http.StatusInternalServerError, "Error creating order")
		return
	}

	// Confirmation mail is best-effort; the order stands either way.
	if err := oc.EmailService.SendOrderConfirmationEmail(created); err != nil {
		logrus.WithError(err).WithField("order_id", created.ID).Warn("failed to send confirmation email")
	}

	writeJSON(w, http.StatusOK, created)
}

// GetOrders retrieves all orders (requires authentication)
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := oc.Orders.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetOrder retrieves a single order by ID
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := oc.Orders.Find(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus moves an order to a new status (requires authentication)
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	status := r.URL.Query().Get("status")
	if !models.ValidStatus(status) {
		writeError(w, http.StatusBadRequest, "Invalid status. Must be one of: pending, preparing, ready, delivered, cancelled")
		return
	}

	if err := oc.Orders.UpdateStatus(r.Context(), id, status); err != nil {
		if err == repository.ErrNotFound {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Error updating order")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Order %d status updated to %s", id, status),
	})
}
