package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"quickbite/models"
)

// seedMenu is the demo menu served when no database is configured.
var seedMenu = []models.MenuItem{
	{ID: 1, Name: "Classic Burger", Description: "Beef patty with lettuce, tomato, and cheese", Price: 12.99, Category: "burgers", Available: true},
	{ID: 2, Name: "Chicken Caesar Salad", Description: "Fresh romaine with grilled chicken and caesar dressing", Price: 10.99, Category: "salads", Available: true},
	{ID: 3, Name: "Margherita Pizza", Description: "Fresh mozzarella, tomato sauce, and basil", Price: 14.99, Category: "pizza", Available: true},
	{ID: 4, Name: "Fish Tacos", Description: "Grilled fish with cabbage slaw and chipotle mayo", Price: 13.99, Category: "tacos", Available: true},
	{ID: 5, Name: "Chocolate Brownie", Description: "Rich chocolate brownie with vanilla ice cream", Price: 6.99, Category: "desserts", Available: true},
	{ID: 6, Name: "French Fries", Description: "Crispy golden fries with sea salt", Price: 4.99, Category: "sides", Available: true},
	{ID: 7, Name: "Craft Beer", Description: "Local IPA on tap", Price: 5.99, Category: "beverages", Available: true},
	{ID: 8, Name: "Iced Coffee", Description: "Cold brew coffee with milk", Price: 3.99, Category: "beverages", Available: true},
}

var seedUsers = []struct {
	models.User
	password string
}{
	{models.User{UserID: 1, Username: "admin", Role: "admin"}, "admin123"},
	{models.User{UserID: 2, Username: "customer", Role: "customer"}, "customer123"},
	{models.User{UserID: 3, Username: "staff", Role: "staff"}, "staff123"},
}

// MemoryMenu serves the demo menu from process memory.
type MemoryMenu struct {
	menu []models.MenuItem
}

func NewMemoryMenu() *MemoryMenu {
	return &MemoryMenu{menu: seedMenu}
}

func (m *MemoryMenu) List(ctx context.Context) ([]models.MenuItem, error) {
	out := make([]models.MenuItem, len(m.menu))
	copy(out, m.menu)
	return out, nil
}

func (m *MemoryMenu) ListByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range m.menu {
		if strings.EqualFold(item.Category, category) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *MemoryMenu) Find(ctx context.Context, id int) (models.MenuItem, error) {
	for _, item := range m.menu {
		if item.ID == id {
			return item, nil
		}
	}
	return models.MenuItem{}, ErrNotFound
}

func (m *MemoryMenu) Categories(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, item := range m.menu {
		if item.Category != "" && !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

// MemoryOrders stores orders in process memory with small sequential ids.
type MemoryOrders struct {
	mu     sync.RWMutex
	orders []models.Order
	nextID int
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{nextID: 1}
}

func (m *MemoryOrders) Create(ctx context.Context, order models.Order) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order.ID = m.nextID
	m.nextID++
	m.orders = append(m.orders, order)
	return order, nil
}

func (m *MemoryOrders) List(ctx context.Context) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Order, len(m.orders))
	copy(out, m.orders)
	return out, nil
}

func (m *MemoryOrders) Find(ctx context.Context, id int) (models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, ErrNotFound
}

func (m *MemoryOrders) UpdateStatus(ctx context.Context, id int, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}

// MemoryUsers holds the demo accounts with bcrypt-hashed passwords.
type MemoryUsers struct {
	users map[string]models.User
}

func NewMemoryUsers() (*MemoryUsers, error) {
	m := &MemoryUsers{users: make(map[string]models.User, len(seedUsers))}
	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u := su.User
		u.PasswordHash = string(hash)
		m.users[u.Username] = u
	}
	return m, nil
}

func (m *MemoryUsers) FindByUsername(ctx context.Context, username string) (models.User, error) {
	u, ok := m.users[username]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}
