// Package service wraps the API client with one service per entity. Every
// mutating call that succeeds fires the service's change listeners once,
// with no payload: a pure invalidation signal. Failures never notify.
package service

import "sync"

// Notifier is an instance-owned change-listener registry. Each service owns
// exactly one; nothing is shared at package level.
type Notifier struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func()
}

// Subscribe registers fn and returns its unsubscribe func. Unsubscribing is
// idempotent. A listener removed before a mutation completes is not invoked
// for it.
func (n *Notifier) Subscribe(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.listeners == nil {
		n.listeners = make(map[int]func())
	}
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	return func() {
		n.mu.Lock()
		delete(n.listeners, id)
		n.mu.Unlock()
	}
}

// Notify invokes every currently registered listener exactly once. Listeners
// run outside the lock, so they may subscribe or unsubscribe freely.
func (n *Notifier) Notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.listeners))
	for _, fn := range n.listeners {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len returns the number of registered listeners.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}
