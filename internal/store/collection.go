package store

import "sync"

// Collection is the synced local view of one remote resource. Every sync
// operation runs the same three phases: begin flips the loading flag and
// clears the previous error, then exactly one of the fulfilled merges or
// fail lands the result.
//
// Each begin bumps a generation counter and phase-two calls carry the
// generation they belong to. A call from a superseded generation is
// discarded, so a slow, stale fetch that resolves after a newer one can
// never overwrite fresher data.
type Collection[T any] struct {
	id func(T) string

	mu      sync.Mutex
	gen     uint64
	items   []T
	current *T
	loading bool
	err     string
}

// NewCollection builds a collection whose elements are keyed by id.
func NewCollection[T any](id func(T) string) *Collection[T] {
	return &Collection[T]{id: id}
}

// View is an immutable snapshot of the collection for rendering.
type View[T any] struct {
	Items   []T
	Current *T
	Loading bool
	Err     string
}

// View returns a copy of the current state.
func (c *Collection[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View[T]{Loading: c.loading, Err: c.err}
	if len(c.items) > 0 {
		v.Items = make([]T, len(c.items))
		copy(v.Items, c.items)
	}
	if c.current != nil {
		cur := *c.current
		v.Current = &cur
	}
	return v
}

// begin starts a sync operation and returns its generation.
func (c *Collection[T]) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.loading = true
	c.err = ""
	return c.gen
}

// live reports whether gen is still the newest operation. Callers must hold mu.
func (c *Collection[T]) live(gen uint64) bool {
	return gen == c.gen
}

// replace installs the server's page as the entire local list. The visible
// list always matches the last successful response, never a partial merge.
func (c *Collection[T]) replace(gen uint64, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.live(gen) {
		return false
	}
	c.items = items
	c.loading = false
	return true
}

// setCurrent installs the single "entity being viewed" slot.
func (c *Collection[T]) setCurrent(gen uint64, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.live(gen) {
		return false
	}
	c.current = &item
	c.loading = false
	return true
}

// fail records the normalized error message and drops the loading flag.
func (c *Collection[T]) fail(gen uint64, msg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.live(gen) {
		return false
	}
	c.err = msg
	c.loading = false
	return true
}

// prepend adds a confirmed-created entity to the front of the list,
// most-recent-first.
func (c *Collection[T]) prepend(gen uint64, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.live(gen) {
		return false
	}
	c.items = append([]T{item}, c.items...)
	c.loading = false
	return true
}

// replaceByID swaps the confirmed-updated entity into the list in place,
// and refreshes the current slot when it holds the same id, so no stale
// duplicate view survives.
func (c *Collection[T]) replaceByID(gen uint64, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.live(gen) {
		return false
	}
	key := c.id(item)
	for i := range c.items {
		if c.id(c.items[i]) == key {
			c.items[i] = item
			break
		}
	}
	if c.current != nil && c.id(*c.current) == key {
		cur := item
		c.current = &cur
	}
	c.loading = false
	return true
}

// removeByID filters a confirmed-deleted entity out of the list.
func (c *Collection[T]) removeByID(gen uint64, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.live(gen) {
		return false
	}
	kept := c.items[:0]
	for _, it := range c.items {
		if c.id(it) != key {
			kept = append(kept, it)
		}
	}
	c.items = kept
	if c.current != nil && c.id(*c.current) == key {
		c.current = nil
	}
	c.loading = false
	return true
}
