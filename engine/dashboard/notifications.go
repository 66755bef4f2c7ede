package dashboard

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	sdk "github.com/onflow/flow-go-sdk"
)

const (
	DefaultNotificationTTL = 8 * time.Second

	maxNotifications = 128
)

type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is a user message that is dismissed automatically once it expires.
type Notification struct {
	ID            string
	Kind          Kind
	Message       string
	TransactionID sdk.Identifier
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// Notifications stores the live notifications. Only the most recent ones are kept.
type Notifications struct {
	ttl   time.Duration
	cache *expirable.LRU[string, Notification]

	mu  sync.Mutex
	seq uint64
	// order of insertion, notifications created within the same clock tick keep their order
	order map[string]uint64
}

func NewNotifications(ttl time.Duration) *Notifications {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}

	n := &Notifications{
		ttl:   ttl,
		order: make(map[string]uint64),
	}
	n.cache = expirable.NewLRU[string, Notification](maxNotifications, n.onEvict, ttl)
	return n
}

func (n *Notifications) onEvict(id string, _ Notification) {
	n.mu.Lock()
	delete(n.order, id)
	n.mu.Unlock()
}

// Add stores a new notification and returns it.
func (n *Notifications) Add(kind Kind, message string, txID sdk.Identifier) Notification {
	now := time.Now()
	notification := Notification{
		ID:            uuid.New().String(),
		Kind:          kind,
		Message:       message,
		TransactionID: txID,
		CreatedAt:     now,
		ExpiresAt:     now.Add(n.ttl),
	}

	n.mu.Lock()
	n.seq++
	n.order[notification.ID] = n.seq
	n.mu.Unlock()

	n.cache.Add(notification.ID, notification)
	return notification
}

// Dismiss removes a notification before it expires. Returns false if it is unknown or expired.
func (n *Notifications) Dismiss(id string) bool {
	return n.cache.Remove(id)
}

// List returns the live notifications, oldest first.
func (n *Notifications) List() []Notification {
	now := time.Now()
	values := n.cache.Values()

	live := make([]Notification, 0, len(values))
	for _, notification := range values {
		if now.Before(notification.ExpiresAt) {
			live = append(live, notification)
		}
	}

	n.mu.Lock()
	sort.Slice(live, func(i, j int) bool {
		return n.order[live[i].ID] < n.order[live[j].ID]
	})
	n.mu.Unlock()
	return live
}
