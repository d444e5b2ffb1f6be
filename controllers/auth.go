package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"quickbite/models"
	"quickbite/repository"
	"quickbite/utils"
)

// AuthController handles login requests
type AuthController struct {
	Users repository.UserRepository
}

// NewAuthController creates a new AuthController
func NewAuthController(users repository.UserRepository) *AuthController {
	return &AuthController{Users: users}
}

// Login authenticates a username/password pair and returns a bearer token
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := ac.Users.FindByUsername(r.Context(), creds.Username)
	if err != nil {
		// Same response for unknown user and bad password.
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		writeError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.UserID,
		Username:    user.Username,
	})
}
