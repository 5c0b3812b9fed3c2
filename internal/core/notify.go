package core

// notify.go implements the transient notification queue.
//
// Each notification moves created -> visible -> dismissed. Dismissal happens on
// an explicit Dismiss call or when the lifetime timer fires, whichever comes
// first. Every visible notification owns a cancellable timer handle; Dismiss
// stops it so no late expiry fires. An expiry callback only removes the exact
// entry it was armed for.

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity classifies a notification for display.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// DefaultNotificationLifetime is how long a notification stays visible by default.
const DefaultNotificationLifetime = 3 * time.Second

// Notification is a transient user-facing message.
type Notification struct {
	ID        string        `json:"id"`
	Message   string        `json:"message"`
	Severity  Severity      `json:"severity"`
	Lifetime  time.Duration `json:"lifetime"` // 0 persists until dismissed
	CreatedAt time.Time     `json:"createdAt"`
}

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// Scheduler arranges for f to run after d and returns a handle to cancel it.
type Scheduler func(d time.Duration, f func()) Timer

// RealScheduler schedules callbacks with time.AfterFunc.
func RealScheduler(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// EventKind describes a notification state transition.
type EventKind string

const (
	EventShown     EventKind = "shown"
	EventDismissed EventKind = "dismissed"
	EventExpired   EventKind = "expired"
)

// Event is delivered to subscribers on every transition.
type Event struct {
	Kind         EventKind    `json:"kind"`
	Notification Notification `json:"notification"`
}

type notificationEntry struct {
	n     Notification
	timer Timer // nil for sticky notifications
}

// NotificationQueue holds visible notifications in insertion order.
type NotificationQueue struct {
	mu       sync.Mutex
	entries  []*notificationEntry
	lifetime time.Duration
	schedule Scheduler
	now      func() time.Time

	listenerMu sync.Mutex
	listeners  []chan Event
}

// QueueOption configures a NotificationQueue.
type QueueOption func(*NotificationQueue)

// WithDefaultLifetime sets the lifetime used by Push. Zero makes Push sticky.
func WithDefaultLifetime(d time.Duration) QueueOption {
	return func(q *NotificationQueue) { q.lifetime = d }
}

// WithScheduler replaces time.AfterFunc, e.g. with a fake clock in tests.
func WithScheduler(s Scheduler) QueueOption {
	return func(q *NotificationQueue) { q.schedule = s }
}

// WithQueueClock sets the time source for CreatedAt.
func WithQueueClock(now func() time.Time) QueueOption {
	return func(q *NotificationQueue) { q.now = now }
}

// NewNotificationQueue creates an empty queue.
func NewNotificationQueue(opts ...QueueOption) *NotificationQueue {
	q := &NotificationQueue{
		lifetime: DefaultNotificationLifetime,
		schedule: RealScheduler,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push shows a notification with the queue's default lifetime.
func (q *NotificationQueue) Push(message string, severity Severity) Notification {
	return q.PushWithLifetime(message, severity, q.lifetime)
}

// PushWithLifetime shows a notification that expires after lifetime.
// A lifetime of zero or less keeps it visible until dismissed.
func (q *NotificationQueue) PushWithLifetime(message string, severity Severity, lifetime time.Duration) Notification {
	if lifetime < 0 {
		lifetime = 0
	}

	entry := &notificationEntry{
		n: Notification{
			ID:        uuid.NewString(),
			Message:   message,
			Severity:  severity,
			Lifetime:  lifetime,
			CreatedAt: q.now(),
		},
	}

	q.mu.Lock()
	q.entries = append(q.entries, entry)
	if lifetime > 0 {
		entry.timer = q.schedule(lifetime, func() { q.expire(entry) })
	}
	q.mu.Unlock()

	q.notify(Event{Kind: EventShown, Notification: entry.n})
	return entry.n
}

// Success shows a success notification.
func (q *NotificationQueue) Success(message string) Notification {
	return q.Push(message, SeveritySuccess)
}

// Error shows an error notification.
func (q *NotificationQueue) Error(message string) Notification {
	return q.Push(message, SeverityError)
}

// Info shows an informational notification.
func (q *NotificationQueue) Info(message string) Notification {
	return q.Push(message, SeverityInfo)
}

// Warning shows a warning notification.
func (q *NotificationQueue) Warning(message string) Notification {
	return q.Push(message, SeverityWarning)
}

// Dismiss removes a notification and cancels its pending expiry.
// Returns false if the notification is no longer visible.
func (q *NotificationQueue) Dismiss(id string) bool {
	q.mu.Lock()
	var removed *notificationEntry
	for i, e := range q.entries {
		if e.n.ID == id {
			removed = e
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			break
		}
	}
	if removed != nil && removed.timer != nil {
		removed.timer.Stop()
		removed.timer = nil
	}
	q.mu.Unlock()

	if removed == nil {
		return false
	}
	q.notify(Event{Kind: EventDismissed, Notification: removed.n})
	return true
}

// expire removes entry if it is still visible.
func (q *NotificationQueue) expire(entry *notificationEntry) {
	q.mu.Lock()
	found := false
	for i, e := range q.entries {
		if e == entry {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			entry.timer = nil
			found = true
			break
		}
	}
	q.mu.Unlock()

	if found {
		q.notify(Event{Kind: EventExpired, Notification: entry.n})
	}
}

// List returns the visible notifications in insertion order.
func (q *NotificationQueue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	result := make([]Notification, len(q.entries))
	for i, e := range q.entries {
		result[i] = e.n
	}
	return result
}

// Len returns the number of visible notifications.
func (q *NotificationQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Clear dismisses every notification and cancels all pending timers.
func (q *NotificationQueue) Clear() {
	q.mu.Lock()
	cleared := q.entries
	q.entries = nil
	for _, e := range cleared {
		if e.timer != nil {
			e.timer.Stop()
			e.timer = nil
		}
	}
	q.mu.Unlock()

	for _, e := range cleared {
		q.notify(Event{Kind: EventDismissed, Notification: e.n})
	}
}

// Subscribe returns a channel of queue events and a function that unsubscribes.
// Delivery is non-blocking: a listener that falls behind misses events.
func (q *NotificationQueue) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	q.listenerMu.Lock()
	q.listeners = append(q.listeners, ch)
	q.listenerMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			q.listenerMu.Lock()
			defer q.listenerMu.Unlock()
			for i, l := range q.listeners {
				if l == ch {
					q.listeners = append(q.listeners[:i], q.listeners[i+1:]...)
					break
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}

// notify sends an event to all listeners.
func (q *NotificationQueue) notify(ev Event) {
	q.listenerMu.Lock()
	defer q.listenerMu.Unlock()

	for _, ch := range q.listeners {
		select {
		case ch <- ev:
		default:
			// Listener is slow, skip this event
		}
	}
}
