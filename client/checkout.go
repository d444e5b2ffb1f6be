package client

import (
	"context"

	"github.com/pkg/errors"

	"quickbite/models"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the cart.
var ErrEmptyCart = errors.New("client: cart is empty")

// CustomerInfo is what the order form collects.
type CustomerInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Checkout submits the session's cart as an order. The cart is cleared
// only after the backend accepts the order; on any failure it is left
// untouched so the user can retry.
func (c *Client) Checkout(ctx context.Context, info CustomerInfo) (models.Order, error) {
	lines := c.session.Cart().Items()
	if len(lines) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	items := make([]models.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = models.OrderItem{
			MenuItemID: line.ID,
			Quantity:   line.Quantity,
			Price:      line.Price,
		}
	}

	order := models.Order{
		Items:           items,
		CustomerName:    info.Name,
		CustomerEmail:   info.Email,
		CustomerPhone:   info.Phone,
		DeliveryAddress: info.Address,
		TotalAmount:     c.session.Cart().Total(),
	}

	created, err := c.CreateOrder(ctx, order)
	if err != nil {
		return models.Order{}, err
	}

	c.session.Cart().Clear()
	return created, nil
}
