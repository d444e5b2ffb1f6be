package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"quickbite/repository"
)

// MenuController handles menu-related requests
type MenuController struct {
	Menu repository.MenuRepository
}

// NewMenuController creates a new MenuController
func NewMenuController(menu repository.MenuRepository) *MenuController {
	return &MenuController{Menu: menu}
}

// GetMenu retrieves the menu, optionally filtered by category
func (mc *MenuController) GetMenu(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" {
		items, err := mc.Menu.ListByCategory(r.Context(), category)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Error fetching menu")
			return
		}
		if len(items) == 0 {
			writeError(w, http.StatusNotFound, fmt.Sprintf("No items found in category: %s", category))
			return
		}
		writeJSON(w, http.StatusOK, items)
		return
	}

	items, err := mc.Menu.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching menu")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetMenuItem retrieves a single menu item by ID
func (mc *MenuController) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid menu item ID")
		return
	}

	item, err := mc.Menu.Find(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Menu item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// GetCategories retrieves all distinct menu categories
func (mc *MenuController) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := mc.Menu.Categories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching categories")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"categories": categories})
}
