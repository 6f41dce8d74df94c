package notify

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// DefaultTTL is how long an alert stays visible.
const DefaultTTL = 5 * time.Second

// Kind classifies an alert.
type Kind string

const (
	KindSuccess Kind = "success"
	KindFailure Kind = "failure"
)

// Alert is a transient, self-expiring notification.
type Alert struct {
	ID        int64
	Kind      Kind
	Message   string
	CreatedAt time.Time
}

// Text returns the message normalized for display.
func (a Alert) Text() string {
	return Normalize(a.Message)
}

// Queue holds alerts until their individual timers expire them.
type Queue struct {
	ttl   time.Duration
	clock clock.WithDelayedExecution

	mu       sync.Mutex
	alerts   []Alert
	timers   map[int64]clock.Timer
	lastID   int64
	closed   bool
	onChange []func()
}

// New builds a Queue. A zero ttl uses DefaultTTL and a nil clk uses the
// wall clock.
func New(ttl time.Duration, clk clock.WithDelayedExecution) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Queue{
		ttl:    ttl,
		clock:  clk,
		timers: make(map[int64]clock.Timer),
	}
}

// TTL reports the configured alert lifetime.
func (q *Queue) TTL() time.Duration {
	return q.ttl
}

// Push appends an alert and schedules its expiry. It returns the alert id.
// After Close the alert is dropped and zero is returned.
func (q *Queue) Push(kind Kind, message string) int64 {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return 0
	}
	now := q.clock.Now()
	id := now.UnixNano()
	if id <= q.lastID {
		id = q.lastID + 1
	}
	q.lastID = id

	q.alerts = append(q.alerts, Alert{ID: id, Kind: kind, Message: message, CreatedAt: now})
	q.timers[id] = q.clock.AfterFunc(q.ttl, func() { q.expire(id) })
	hooks := q.onChange
	q.mu.Unlock()

	notify(hooks)
	return id
}

// Dismiss removes the alert with id and cancels its timer. Unknown or already
// expired ids are ignored.
func (q *Queue) Dismiss(id int64) {
	q.mu.Lock()
	timer := q.timers[id]
	removed := q.remove(id)
	hooks := q.onChange
	q.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
	if removed {
		notify(hooks)
	}
}

// Alerts returns the current alerts in insertion order.
func (q *Queue) Alerts() []Alert {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.alerts) == 0 {
		return nil
	}
	out := make([]Alert, len(q.alerts))
	copy(out, q.alerts)
	return out
}

// Len reports the number of visible alerts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.alerts)
}

// OnChange registers fn to run whenever an alert is added or removed.
func (q *Queue) OnChange(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onChange = append(q.onChange, fn)
}

// Close cancels every pending timer and rejects further pushes. Alerts
// already visible stay until the queue is discarded.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	timers := make([]clock.Timer, 0, len(q.timers))
	for id, t := range q.timers {
		timers = append(timers, t)
		delete(q.timers, id)
	}
	q.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
}

// expire runs from the alert's own timer. It must not call back into the
// timer: fake clocks invoke callbacks while holding their lock.
func (q *Queue) expire(id int64) {
	q.mu.Lock()
	removed := q.remove(id)
	hooks := q.onChange
	q.mu.Unlock()

	if removed {
		notify(hooks)
	}
}

// remove deletes id from the alert list and timer set. Callers hold q.mu.
func (q *Queue) remove(id int64) bool {
	delete(q.timers, id)
	for i, a := range q.alerts {
		if a.ID == id {
			q.alerts = append(q.alerts[:i], q.alerts[i+1:]...)
			return true
		}
	}
	return false
}

func notify(hooks []func()) {
	for _, fn := range hooks {
		fn()
	}
}
