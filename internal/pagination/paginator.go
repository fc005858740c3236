package pagination

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// DefaultCacheSize is the number of results a Paginator keeps by default.
const DefaultCacheSize = 64

// Paginator memoizes Paginate results keyed by the text digest and the budgets
// key. It is safe for concurrent use.
type Paginator struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most recently used

	hits   uint64
	misses uint64
}

type cacheEntry struct {
	key    string
	result Result
}

// CacheStats reports cache usage.
type CacheStats struct {
	Entries  int    `json:"entries"`
	Capacity int    `json:"capacity"`
	Hits     uint64 `json:"hits"`
	Misses   uint64 `json:"misses"`
}

// NewPaginator creates a Paginator holding at most capacity results.
func NewPaginator(capacity int) *Paginator {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Paginator{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Paginate returns the cached result for (text, b), computing it on a miss.
// The computation runs outside the lock, so concurrent misses on the same key
// may both compute; they produce identical results.
func (p *Paginator) Paginate(text string, b Budgets) Result {
	key := CacheKey(text, b)

	p.mu.Lock()
	if el, ok := p.entries[key]; ok {
		p.order.MoveToFront(el)
		p.hits++
		res := el.Value.(*cacheEntry).result
		p.mu.Unlock()
		return res
	}
	p.misses++
	p.mu.Unlock()

	res := Paginate(text, b)

	p.mu.Lock()
	defer p.mu.Unlock()
	if el, ok := p.entries[key]; ok {
		p.order.MoveToFront(el)
		return el.Value.(*cacheEntry).result
	}
	p.entries[key] = p.order.PushFront(&cacheEntry{key: key, result: res})
	for p.order.Len() > p.capacity {
		oldest := p.order.Back()
		p.order.Remove(oldest)
		delete(p.entries, oldest.Value.(*cacheEntry).key)
	}
	return res
}

// Invalidate drops every cached result.
func (p *Paginator) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = make(map[string]*list.Element)
	p.order.Init()
}

// Stats returns a snapshot of cache usage.
func (p *Paginator) Stats() CacheStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return CacheStats{
		Entries:  p.order.Len(),
		Capacity: p.capacity,
		Hits:     p.hits,
		Misses:   p.misses,
	}
}

// CacheKey identifies a (text, budgets) pair.
func CacheKey(text string, b Budgets) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:]) + "/" + b.Key()
}
