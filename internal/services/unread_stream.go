package services

import (
	"log"
	"sync"
)

// UnreadUpdate is pushed to a receiver when a conversation's unread count
// changes. One update per (task, sender) pair.
type UnreadUpdate struct {
	TaskID   string `json:"task_id"`
	SenderID string `json:"sender_id"`
	Count    int64  `json:"count"`
}

// UnreadBroadcaster fans unread-count changes out to subscribed
// connections, replacing client-side polling with push. Delivery is best
// effort: a subscriber that cannot keep up misses updates rather than
// blocking the sender.
type UnreadBroadcaster struct {
	mu   sync.RWMutex
	subs map[string]map[chan UnreadUpdate]struct{}
}

func NewUnreadBroadcaster() *UnreadBroadcaster {
	return &UnreadBroadcaster{subs: make(map[string]map[chan UnreadUpdate]struct{})}
}

// Subscribe registers the user for updates. The returned cancel func must
// be called when the connection closes.
func (b *UnreadBroadcaster) Subscribe(userID string) (<-chan UnreadUpdate, func()) {
	ch := make(chan UnreadUpdate, 16)

	b.mu.Lock()
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[chan UnreadUpdate]struct{})
	}
	b.subs[userID][ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs[userID], ch)
		if len(b.subs[userID]) == 0 {
			delete(b.subs, userID)
		}
		b.mu.Unlock()
	}

	return ch, cancel
}

func (b *UnreadBroadcaster) Publish(userID string, update UnreadUpdate) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[userID] {
		select {
		case ch <- update:
		default:
			log.Printf("unread stream: subscriber of %s is slow, dropping update", userID)
		}
	}
}
