package client

import (
	"quickbite/cart"
)

// defaultTokenKey matches the key the web storefront keeps its token under.
const defaultTokenKey = "authToken"

// Session bundles a user's cart and bearer token over one storage
// collaborator. The cart exists with or without a token; authentication
// only matters when the storefront decides to gate checkout.
type Session struct {
	storage  cart.Storage
	cart     *cart.Store
	tokenKey string
}

// NewSession creates a session over storage using the default keys.
func NewSession(storage cart.Storage) *Session {
	return &Session{
		storage:  storage,
		cart:     cart.NewStore(storage),
		tokenKey: defaultTokenKey,
	}
}

// NewSessionWithID namespaces the session keys by id, so several kiosks
// can share one Redis without stepping on each other's carts.
func NewSessionWithID(storage cart.Storage, id string) *Session {
	return &Session{
		storage:  storage,
		cart:     cart.NewStoreWithKey(storage, "cart:"+id),
		tokenKey: defaultTokenKey + ":" + id,
	}
}

// Cart returns the session's cart store.
func (s *Session) Cart() *cart.Store {
	return s.cart
}

// Token returns the stored bearer token, if any.
func (s *Session) Token() (string, bool) {
	return s.storage.Get(s.tokenKey)
}

// SetToken stores the bearer token.
func (s *Session) SetToken(token string) error {
	return s.storage.Set(s.tokenKey, token)
}

// ClearToken logs the session out. The cart is left alone.
func (s *Session) ClearToken() {
	s.storage.Remove(s.tokenKey)
}

// Authenticated reports whether a bearer token is present. It says
// nothing about whether the backend still accepts it.
func (s *Session) Authenticated() bool {
	_, ok := s.Token()
	return ok
}
