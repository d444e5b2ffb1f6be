package cart

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Subscription identifies a registered handler so it can be removed.
type Subscription struct {
	id uint64
}

// Notifier broadcasts "cart changed" signals to registered handlers.
// Delivery is synchronous, in registration order, and best-effort: there
// is no replay for handlers registered after a publish.
type Notifier struct {
	mu       sync.Mutex
	nextID   uint64
	handlers []handler
}

type handler struct {
	id uint64
	fn func()
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers fn and returns a handle for Unsubscribe.
func (n *Notifier) Subscribe(fn func()) Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	n.handlers = append(n.handlers, handler{id: n.nextID, fn: fn})
	return Subscription{id: n.nextID}
}

// Unsubscribe removes the handler for sub. Unknown handles are ignored.
func (n *Notifier) Unsubscribe(sub Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, h := range n.handlers {
		if h.id == sub.id {
			n.handlers = append(n.handlers[:i], n.handlers[i+1:]...)
			return
		}
	}
}

// Publish invokes every handler registered at the time of the call.
// A panicking handler does not stop the remaining handlers.
func (n *Notifier) Publish() {
	n.mu.Lock()
	hs := make([]handler, len(n.handlers))
	copy(hs, n.handlers)
	n.mu.Unlock()

	for _, h := range hs {
		run(h.fn)
	}
}

func run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Warn("cart change handler panicked")
		}
	}()
	fn()
}
