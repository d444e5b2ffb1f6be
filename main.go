// main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"quickbite/controllers"
	"quickbite/repository"
	"quickbite/routes"
	"quickbite/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found. Proceeding with environment variables.")
	}

	if level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		logrus.SetLevel(level)
	}

	// Set the JWT secret key
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		utils.JwtKey = []byte(secret)
	}

	emailService := utils.NewEmailService()

	// Persistence: MongoDB when MONGO_URI is set, otherwise the seeded
	// in-memory repositories.
	var (
		menuRepo  repository.MenuRepository
		orderRepo repository.OrderRepository
		userRepo  repository.UserRepository
	)
	ctx := context.Background()
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		client, err := repository.Dial(ctx, uri)
		if err != nil {
			logrus.WithError(err).Fatal("failed to connect to mongodb")
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logrus.WithError(err).Error("mongodb disconnect failed")
			}
		}()

		mongoMenu := repository.NewMongoMenu(client)
		mongoUsers := repository.NewMongoUsers(client)
		if err := mongoMenu.Seed(ctx); err != nil {
			logrus.WithError(err).Fatal("failed to seed menu")
		}
		if err := mongoUsers.Seed(ctx); err != nil {
			logrus.WithError(err).Fatal("failed to seed users")
		}
		menuRepo = mongoMenu
		orderRepo = repository.NewMongoOrders(client)
		userRepo = mongoUsers
		logrus.Info("using mongodb repositories")
	} else {
		users, err := repository.NewMemoryUsers()
		if err != nil {
			logrus.WithError(err).Fatal("failed to seed users")
		}
		menuRepo = repository.NewMemoryMenu()
		orderRepo = repository.NewMemoryOrders()
		userRepo = users
		logrus.Info("MONGO_URI not set, using in-memory repositories")
	}

	// Initialize controllers
	authController := controllers.NewAuthController(userRepo)
	menuController := controllers.NewMenuController(menuRepo)
	orderController := controllers.NewOrderController(orderRepo, menuRepo, emailService)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, authController, menuController, orderController, routes.Config{
		OrderRequireAuth: getEnv("ORDER_REQUIRE_AUTH", "false") == "true",
	})

	port := getEnv("PORT", "8000")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Serve until interrupted, then drain in-flight requests.
	go func() {
		logrus.WithField("port", port).Info("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("shutdown failed")
	}
	logrus.Info("server stopped")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
