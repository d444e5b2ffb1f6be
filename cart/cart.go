// Package cart owns the client-side shopping cart: canonical in-memory
// state, persistence through a key-value storage collaborator, and change
// notifications for interested UI components.
package cart

import (
	"encoding/json"
	"math"
	"sync"

	"github.com/pkg/errors"
)

// DefaultKey is the storage key the store persists under when no explicit
// key is given. It matches the key the web storefront uses.
const DefaultKey = "cart"

// ErrStorage reports that a mutation could not be persisted. The in-memory
// cart is rolled back to the last durable state before this is returned.
var ErrStorage = errors.New("cart: storage write failed")

// Storage is the external key-value persistence capability the store
// writes through. Implementations live in the storage package.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string)
}

// Item carries the display fields copied from a menu item at the moment it
// is added. The store never refreshes them from the backend afterwards.
type Item struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
}

// Line is one distinct product in the cart. Quantity is always >= 1; a
// line that would drop to zero is removed instead.
type Line struct {
	Item
	Quantity int `json:"quantity"`
}

// Subtotal returns Price x Quantity for this line.
func (l Line) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Store mediates every read and write of the cart. All mutations persist
// synchronously before the change notification fires, so a reader right
// after a successful write always observes it.
type Store struct {
	mu       sync.Mutex
	storage  Storage
	key      string
	lines    []Line
	loaded   bool
	notifier *Notifier
}

// NewStore creates a store persisting under DefaultKey.
func NewStore(storage Storage) *Store {
	return NewStoreWithKey(storage, DefaultKey)
}

// NewStoreWithKey creates a store persisting under the given key. Distinct
// keys give independent carts over the same storage, one per session.
func NewStoreWithKey(storage Storage, key string) *Store {
	return &Store{
		storage:  storage,
		key:      key,
		notifier: NewNotifier(),
	}
}

// Subscribe registers fn to run after every successful mutation.
func (s *Store) Subscribe(fn func()) Subscription {
	return s.notifier.Subscribe(fn)
}

// Unsubscribe cancels a subscription obtained from Subscribe.
func (s *Store) Unsubscribe(sub Subscription) {
	s.notifier.Unsubscribe(sub)
}

// Items returns the cart lines in insertion order. The returned slice is a
// copy; mutating it does not affect the cart.
func (s *Store) Items() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Add puts one unit of item in the cart: an existing line's quantity grows
// by one, otherwise a new line with quantity 1 is appended.
func (s *Store) Add(item Item) error {
	return s.mutate(func(lines []Line) []Line {
		for i := range lines {
			if lines[i].ID == item.ID {
				lines[i].Quantity++
				return lines
			}
		}
		return append(lines, Line{Item: item, Quantity: 1})
	})
}

// Remove deletes the line with the given id. Removing an absent id is a
// no-op, not an error.
func (s *Store) Remove(id int) error {
	return s.mutate(func(lines []Line) []Line {
		return deleteLine(lines, id)
	})
}

// SetQuantity sets an existing line's quantity. A quantity <= 0 removes
// the line. Setting the quantity of an absent id is a no-op.
func (s *Store) SetQuantity(id, quantity int) error {
	if quantity <= 0 {
		return s.Remove(id)
	}
	return s.mutate(func(lines []Line) []Line {
		for i := range lines {
			if lines[i].ID == id {
				lines[i].Quantity = quantity
			}
		}
		return lines
	})
}

// Total recomputes the cart total on every call, rounded to cents.
// An empty cart totals exactly 0.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	var total float64
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return math.Round(total*100) / 100
}

// ItemCount returns the sum of quantities over all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// Clear empties the cart, removes the persisted value and notifies.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.loaded = true
	s.storage.Remove(s.key)
	s.mu.Unlock()
	s.notifier.Publish()
}

// mutate runs the read-modify-persist-notify sequence under the store
// lock. On persist failure the in-memory view is rolled back and the
// notification is suppressed.
func (s *Store) mutate(fn func(lines []Line) []Line) error {
	s.mu.Lock()
	s.load()
	prev := s.lines
	next := make([]Line, len(prev))
	copy(next, prev)
	s.lines = fn(next)

	if err := s.persist(); err != nil {
		s.lines = prev
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notifier.Publish()
	return nil
}

func (s *Store) persist() error {
	lines := s.lines
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	if err := s.storage.Set(s.key, string(data)); err != nil {
		return errors.Wrapf(ErrStorage, "key %q: %v", s.key, err)
	}
	return nil
}

// load pulls the persisted cart into memory on first access. Corrupt or
// foreign data falls back to an empty cart rather than failing; the store
// caches afterwards and relies on its own writes staying current.
func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	raw, ok := s.storage.Get(s.key)
	if !ok {
		return
	}
	s.lines = decodeLines(raw)
}

// decodeLines validates persisted JSON against the cart schema. Anything
// that does not parse as a line array yields an empty cart; individual
// lines with a non-positive quantity, a negative price, or a duplicate id
// are dropped.
func decodeLines(raw string) []Line {
	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil
	}
	seen := make(map[int]bool, len(lines))
	valid := lines[:0]
	for _, l := range lines {
		if l.Quantity < 1 || l.Price < 0 || seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		valid = append(valid, l)
	}
	if len(valid) == 0 {
		return nil
	}
	return valid
}

func deleteLine(lines []Line, id int) []Line {
	out := lines[:0]
	for _, l := range lines {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}
