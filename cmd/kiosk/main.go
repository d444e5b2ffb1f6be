// Command kiosk is a terminal smoke client for the QuickBite API: it logs
// in, fills a cart from the live menu and submits an order. With
// REDIS_ADDR set the session (cart and token) survives kiosk restarts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"quickbite/cart"
	"quickbite/client"
	"quickbite/storage"
)

func main() {
	var (
		baseURL  = flag.String("api", "http://127.0.0.1:8000", "backend base URL")
		username = flag.String("user", "customer", "login username")
		password = flag.String("pass", "customer123", "login password")
		name     = flag.String("name", "Walk-in Customer", "customer name on the order")
		email    = flag.String("email", "kiosk@quickbite.local", "customer email on the order")
		items    = flag.String("items", "1x2,6", "items to order as id[xqty],...")
	)
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		logrus.Debug("loaded .env")
	}

	sessionStorage, err := openStorage()
	if err != nil {
		logrus.WithError(err).Fatal("failed to open session storage")
	}
	session := client.NewSession(sessionStorage)
	if id := os.Getenv("KIOSK_ID"); id != "" {
		session = client.NewSessionWithID(sessionStorage, id)
	}
	c := client.New(*baseURL, session)

	session.Cart().Subscribe(func() {
		logrus.WithFields(logrus.Fields{
			"items": session.Cart().ItemCount(),
			"total": fmt.Sprintf("%.2f", session.Cart().Total()),
		}).Info("cart updated")
	})

	ctx := context.Background()
	if err := c.Health(ctx); err != nil {
		logrus.WithError(err).Fatal("backend is not healthy")
	}

	if _, err := c.Login(ctx, *username, *password); err != nil {
		logrus.WithError(err).Fatal("login failed")
	}

	menu, err := c.Menu(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to fetch menu")
	}
	byID := make(map[int]cart.Item, len(menu))
	for _, m := range menu {
		byID[m.ID] = cart.Item{ID: m.ID, Name: m.Name, Price: m.Price, Category: m.Category}
	}

	for _, spec := range strings.Split(*items, ",") {
		id, qty, err := parseItemSpec(spec)
		if err != nil {
			logrus.WithError(err).Fatalf("bad item spec %q", spec)
		}
		item, ok := byID[id]
		if !ok {
			logrus.Fatalf("menu item %d not found", id)
		}
		for i := 0; i < qty; i++ {
			if err := c.Session().Cart().Add(item); err != nil {
				logrus.WithError(err).Fatal("failed to add item to cart")
			}
		}
	}

	order, err := c.Checkout(ctx, client.CustomerInfo{Name: *name, Email: *email})
	if err != nil {
		logrus.WithError(err).Fatal("checkout failed")
	}
	fmt.Printf("order #%d placed, total $%.2f (%s)\n", order.ID, order.TotalAmount, order.Status)
}

// openStorage picks Redis when configured, in-process memory otherwise.
func openStorage() (cart.Storage, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return storage.NewMemory(), nil
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("bad REDIS_DB %q: %w", v, err)
		}
		db = n
	}
	return storage.NewRedis(addr, db)
}

// parseItemSpec reads "id" or "idxqty", e.g. "1x2" is two of item 1.
func parseItemSpec(spec string) (id, qty int, err error) {
	spec = strings.TrimSpace(spec)
	qty = 1
	if i := strings.IndexByte(spec, 'x'); i >= 0 {
		qty, err = strconv.Atoi(spec[i+1:])
		if err != nil || qty < 1 {
			return 0, 0, fmt.Errorf("bad quantity in %q", spec)
		}
		spec = spec[:i]
	}
	id, err = strconv.Atoi(spec)
	if err != nil {
		return 0, 0, fmt.Errorf("bad item id in %q", spec)
	}
	return id, qty, nil
}
