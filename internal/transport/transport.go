package transport

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Doer performs a single HTTP round trip. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Ensure http.Client implements Doer at compile time.
var _ Doer = (*http.Client)(nil)

// Call identifies one outstanding request.
type Call struct {
	ID        uuid.UUID
	Method    string
	URL       string
	StartedAt time.Time
}

// Observer receives paired start/end signals for every call made through an
// Instrumented doer.
type Observer interface {
	CallStarted(call Call)
	CallEnded(call Call, err error)
}

// Instrumented wraps a Doer and broadcasts a start signal before each call and
// exactly one end signal once the call settles, whatever the outcome.
type Instrumented struct {
	next Doer
	now  func() time.Time

	mu        sync.RWMutex
	observers []*subscription
}

type subscription struct {
	observer Observer
}

// Ensure Instrumented implements Doer at compile time.
var _ Doer = (*Instrumented)(nil)

// NewInstrumented decorates next. A nil next falls back to http.DefaultClient.
func NewInstrumented(next Doer) *Instrumented {
	if next == nil {
		next = http.DefaultClient
	}
	return &Instrumented{next: next, now: time.Now}
}

// Subscribe registers o for every subsequent call. The returned func removes
// the subscription; calling it more than once is harmless.
func (t *Instrumented) Subscribe(o Observer) func() {
	sub := &subscription{observer: o}

	t.mu.Lock()
	t.observers = append(t.observers, sub)
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			for i, s := range t.observers {
				if s == sub {
					t.observers = append(t.observers[:i], t.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// ErrCallPanicked is the error observers receive when the wrapped Doer
// panics. The panic is re-raised after CallEnded.
var ErrCallPanicked = errors.New("transport: call panicked")

// Do implements Doer.
func (t *Instrumented) Do(req *http.Request) (resp *http.Response, err error) {
	call := Call{
		ID:        uuid.New(),
		Method:    req.Method,
		StartedAt: t.now(),
	}
	if req.URL != nil {
		call.URL = req.URL.String()
	}

	// Observers are captured once so a call that races Subscribe still sees
	// a balanced pair on the same set.
	observers := t.snapshot()
	for _, o := range observers {
		o.CallStarted(call)
	}

	var once sync.Once
	end := func(err error) {
		once.Do(func() {
			for _, o := range observers {
				o.CallEnded(call, err)
			}
		})
	}
	defer func() {
		if r := recover(); r != nil {
			end(ErrCallPanicked)
			panic(r)
		}
		end(err)
	}()

	return t.next.Do(req)
}

func (t *Instrumented) snapshot() []Observer {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Observer, len(t.observers))
	for i, s := range t.observers {
		out[i] = s.observer
	}
	return out
}
