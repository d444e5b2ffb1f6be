package controllers

import (
	"net/http"
	"time"
)

// Health is the liveness probe
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Root describes the API for anyone poking at the base URL
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Welcome to QuickBite",
		"endpoints": map[string]string{
			"menu":   "/menu",
			"orders": "/order",
			"login":  "/login",
		},
	})
}
