package feed

import (
	"sync"
)

// ChangeKind identifies what happened to an employee's ledger.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// Change is a notification that an employee's transaction set changed.
// Consumers re-query; the change itself carries no document payload.
type Change struct {
	EmployeeID    string
	TransactionID string
	Kind          ChangeKind
}

// Hub fans ledger changes out to per-employee subscribers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Change]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Change]struct{}),
	}
}

// Subscribe registers a subscriber for one employee's ledger and returns the
// change channel and a cleanup function. The channel is closed by cleanup;
// callers must invoke it when the consuming view is torn down.
func (h *Hub) Subscribe(employeeID string) (chan Change, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Change, 16)

	if h.subscribers[employeeID] == nil {
		h.subscribers[employeeID] = make(map[chan Change]struct{})
	}
	h.subscribers[employeeID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[employeeID], ch)
			close(ch)
			if len(h.subscribers[employeeID]) == 0 {
				delete(h.subscribers, employeeID)
			}
		})
	}

	return ch, cleanup
}

// Publish delivers a change to all subscribers of the employee.
func (h *Hub) Publish(change Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[change.EmployeeID]; ok {
		for ch := range subs {
			select {
			case ch <- change:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock).
				// A dropped change is safe: consumers re-query on the next one.
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for an employee.
func (h *Hub) SubscriberCount(employeeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[employeeID]; ok {
		return len(subs)
	}
	return 0
}
