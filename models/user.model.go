package models

// User represents a storefront account. Passwords are stored bcrypt-hashed.
type User struct {
	UserID       int    `bson:"user_id" json:"user_id"`
	Username     string `bson:"username" json:"username"`
	PasswordHash string `bson:"password_hash" json:"-"`
	Role         string `bson:"role" json:"role,omitempty"` // "admin", "customer" or "staff"
}

// LoginRequest carries the credentials posted to /login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the token payload returned on a successful login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int    `json:"user_id"`
	Username    string `json:"username"`
}
