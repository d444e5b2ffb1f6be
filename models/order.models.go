package models

import "time"

// Order statuses a kitchen moves an order through.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is one menu item within an order, priced at the moment the
// order was placed
type OrderItem struct {
	MenuItemID int     `bson:"menu_item_id" json:"menu_item_id"`
	Quantity   int     `bson:"quantity" json:"quantity"`
	Price      float64 `bson:"price" json:"price"`
}

// Order represents a customer's order
type Order struct {
	ID              int         `bson:"id" json:"id"`
	Items           []OrderItem `bson:"items" json:"items"`
	CustomerName    string      `bson:"customer_name" json:"customer_name"`
	CustomerEmail   string      `bson:"customer_email" json:"customer_email"`
	CustomerPhone   string      `bson:"customer_phone,omitempty" json:"customer_phone,omitempty"`
	DeliveryAddress string      `bson:"delivery_address,omitempty" json:"delivery_address,omitempty"`
	TotalAmount     float64     `bson:"total_amount" json:"total_amount"`
	Status          string      `bson:"status" json:"status"`
	CreatedAt       time.Time   `bson:"created_at" json:"created_at"`
}
