// Package busy tracks outstanding API calls to drive a busy indicator.
package busy

import (
	"sync"

	"github.com/five82/dnsdeck/internal/transport"
)

// Counter is a non-negative in-flight call count.
type Counter struct {
	mu       sync.Mutex
	count    int
	onChange []func(count int)
}

// Ensure Counter observes transport calls at compile time.
var _ transport.Observer = (*Counter)(nil)

// Increment records a started call.
func (c *Counter) Increment() {
	c.mu.Lock()
	c.count++
	n, hooks := c.count, c.onChange
	c.mu.Unlock()

	notify(hooks, n)
}

// Decrement records a finished call. At zero it is a no-op.
func (c *Counter) Decrement() {
	c.mu.Lock()
	if c.count == 0 {
		c.mu.Unlock()
		return
	}
	c.count--
	n, hooks := c.count, c.onChange
	c.mu.Unlock()

	notify(hooks, n)
}

// Count returns the current number of outstanding calls.
func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Busy reports whether any call is outstanding.
func (c *Counter) Busy() bool {
	return c.Count() > 0
}

// OnChange registers fn to run after every change of the count. Hooks run on
// the goroutine that changed the count, outside the lock.
func (c *Counter) OnChange(fn func(count int)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = append(c.onChange, fn)
}

// CallStarted implements transport.Observer.
func (c *Counter) CallStarted(transport.Call) { c.Increment() }

// CallEnded implements transport.Observer.
func (c *Counter) CallEnded(transport.Call, error) { c.Decrement() }

func notify(hooks []func(int), n int) {
	for _, fn := range hooks {
		fn(n)
	}
}
