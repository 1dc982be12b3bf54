// Package cache implements a thread-safe least-recently-used cache of
// compiled JMESPath expressions, keyed by their source text.
//
// Callers reach it through CachedCompiler (see jmespath.go), which wraps
// a Cache around Compile so repeatedly evaluating the same expression
// string against many different documents only parses it once.
//
// Unlike a plain entry-count LRU, capacity here is a budget on total AST
// size rather than a budget on the number of cached expressions: a
// hundred one-token expressions and one hundred-node expression cost the
// cache roughly the same amount of memory, so eviction weighs each entry
// by how many nodes its Expression's arena holds (Expression.Weight)
// instead of counting it as one.
//
// # Example
//
//	c := cache.New(1024)
//	expr, err := c.GetOrCompile("people[*].first", compile)
package cache

import (
	"container/list"
	"sync"

	"github.com/gojmespath/gojmespath/pkg/types"
)

// entry pairs a cached expression with the weight it was inserted at, so
// eviction can unwind totalWeight without re-deriving it from the arena
// (the arena is still reachable through expr, but re-walking it on every
// eviction would defeat the point of caching).
type entry struct {
	key    string
	expr   *types.Expression
	weight int
}

// Cache is a thread-safe, weight-bounded LRU cache of compiled
// expressions. Weight is the sum of Expression.Weight() across all
// resident entries; once it would exceed capacity, entries are evicted
// from the least-recently-used end until it doesn't.
//
// Safe for concurrent use by multiple goroutines.
type Cache struct {
	mu          sync.Mutex
	capacity    int
	totalWeight int
	order       *list.List // front = most recently used
	byKey       map[string]*list.Element
}

// New creates a cache with the given weight budget. A non-positive
// capacity is replaced with a default of 256, matching a workload of a
// few hundred small, single-node expressions.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 256
	}
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		byKey:    make(map[string]*list.Element),
	}
}

// Get looks up key and, if present, marks it most recently used.
func (c *Cache) Get(key string) (*types.Expression, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.byKey[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry).expr, true
}

// Set inserts or replaces the expression stored under key, evicting
// least-recently-used entries first if the insert would push the cache
// over its weight budget.
func (c *Cache) Set(key string, expr *types.Expression) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := expr.Weight()

	if el, ok := c.byKey[key]; ok {
		old := el.Value.(*entry)
		c.totalWeight += w - old.weight
		old.expr, old.weight = expr, w
		c.order.MoveToFront(el)
		c.evictOverBudgetLocked()
		return
	}

	el := c.order.PushFront(&entry{key: key, expr: expr, weight: w})
	c.byKey[key] = el
	c.totalWeight += w
	c.evictOverBudgetLocked()
}

// GetOrCompile returns the cached expression for key if present,
// otherwise runs compile, caches a successful result, and returns it.
// A failing compile is never cached, so the caller can retry.
func (c *Cache) GetOrCompile(key string, compile func() (*types.Expression, error)) (*types.Expression, error) {
	if expr, ok := c.Get(key); ok {
		return expr, nil
	}
	expr, err := compile()
	if err != nil {
		return nil, err
	}
	c.Set(key, expr)
	return expr, nil
}

// Len returns the number of expressions currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byKey)
}

// Capacity returns the cache's weight budget.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Invalidate drops key from the cache, if present.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.byKey[key]
	if !ok {
		return
	}
	c.removeLocked(el)
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.byKey = make(map[string]*list.Element)
	c.totalWeight = 0
}

// evictOverBudgetLocked drops entries from the back of order (least
// recently used) until totalWeight fits within capacity, or only one
// entry remains — a single expression heavier than the whole budget is
// still kept, rather than evicted the instant it's inserted.
func (c *Cache) evictOverBudgetLocked() {
	for c.totalWeight > c.capacity && c.order.Len() > 1 {
		c.removeLocked(c.order.Back())
	}
}

// removeLocked detaches el from both the list and the index and unwinds
// its weight. Must be called with c.mu held.
func (c *Cache) removeLocked(el *list.Element) {
	e := el.Value.(*entry)
	c.order.Remove(el)
	delete(c.byKey, e.key)
	c.totalWeight -= e.weight
}
