// Package notify provides the catalog change broadcast. The persisted slot
// has no subscription primitive of its own, so every mounted view registers
// here and re-reads its snapshot when any writer publishes.
package notify

import "sync"

type subscriber struct {
	id int
	fn func()
}

// Notifier fans a zero-payload "catalog changed" signal out to subscribers.
// Handlers run synchronously in subscription order; when Publish returns,
// every handler subscribed at call time has been invoked once.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber
}

func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers a handler and returns its unsubscribe function, the
// only lifecycle control there is.
func (n *Notifier) Subscribe(fn func()) (unsubscribe func()) {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs = append(n.subs, subscriber{id: id, fn: fn})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish invokes every currently-subscribed handler once.
func (n *Notifier) Publish() {
	n.mu.Lock()
	subs := make([]subscriber, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}
