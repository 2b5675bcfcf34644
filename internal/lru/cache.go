package lru

import (
	"container/list"
	"sync"
)

type CacheIdentifier interface {
	Identifier() string
}

type listEntry[T CacheIdentifier] struct {
	id    string
	entry T
}

// Cache is a thread-safe least-recently-used cache of generic entries.
// A capacity of zero or less disables the cache.
type Cache[T CacheIdentifier] struct {
	capacity int
	onEvict  func(T)

	mu    sync.Mutex
	order *list.List
	index map[string]*list.Element
}

type Option[T CacheIdentifier] func(*Cache[T])

// WithOnEvict registers fn to be called with every entry pushed out of the cache.
// It is called with the cache lock held and must not call back into the cache.
func WithOnEvict[T CacheIdentifier](fn func(T)) Option[T] {
	return func(c *Cache[T]) {
		c.onEvict = fn
	}
}

func NewCache[T CacheIdentifier](capacity int, opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache[T]) Capacity() int {
	return c.capacity
}

func (c *Cache[T]) addEntryUnsafe(entry T) {
	if c.capacity <= 0 {
		return
	}

	id := entry.Identifier()
	if element, ok := c.index[id]; ok {
		element.Value.(*listEntry[T]).entry = entry
		c.order.MoveToFront(element)
		return
	}

	for c.order.Len() >= c.capacity {
		c.evictUnsafe()
	}

	c.index[id] = c.order.PushFront(&listEntry[T]{id: id, entry: entry})
}

func (c *Cache[T]) evictUnsafe() {
	element := c.order.Back()
	if element == nil {
		return
	}
	e := c.order.Remove(element).(*listEntry[T])
	delete(c.index, e.id)
	if c.onEvict != nil {
		c.onEvict(e.entry)
	}
}

// Add inserts entry or replaces the entry with the same identifier.
func (c *Cache[T]) Add(entry T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addEntryUnsafe(entry)
}

func (c *Cache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// GetOrCreate returns the entry with id or stores the one returned by generate.
// The generated entry must have the identifier id.
func (c *Cache[T]) GetOrCreate(id string, generate func() (T, error)) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.getUnsafe(id); ok {
		return entry, true, nil
	}

	entry, err := generate()
	if err != nil {
		return entry, false, err
	}
	c.addEntryUnsafe(entry)
	return entry, false, nil
}

func (c *Cache[T]) GetByID(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getUnsafe(id)
}

func (c *Cache[T]) getUnsafe(id string) (T, bool) {
	element, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	c.order.MoveToFront(element)
	return element.Value.(*listEntry[T]).entry, true
}

func (c *Cache[T]) DeleteByID(id string) (present bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.index[id]
	if !ok {
		return false
	}
	c.order.Remove(element)
	delete(c.index, id)
	return true
}

func (c *Cache[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.index = make(map[string]*list.Element)
}

func (c *Cache[T]) Newest() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.order.Len() == 0 {
		var zero T
		return zero, false
	}
	return c.order.Front().Value.(*listEntry[T]).entry, true
}

// List returns the entries from the least to the most recently used.
func (c *Cache[T]) List() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]T, 0, c.order.Len())
	for element := c.order.Back(); element != nil; element = element.Prev() {
		entries = append(entries, element.Value.(*listEntry[T]).entry)
	}
	return entries
}
