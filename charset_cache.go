package chartist

import (
	"crypto/sha256"
	"encoding/hex"
	"image"
	"sync"
	"sync/atomic"
)

// CharsetCache provides thread-safe caching of decoded charsets for
// long-running applications such as servers rendering many banners.
// The cache uses a simple LRU eviction policy when the maximum size is reached.
//
// Keys are file paths for LoadCharset and "sha256:<hex>" content hashes for
// DecodeCharset, so identical bytes share one entry whatever their source.
type CharsetCache struct {
	mu        sync.RWMutex
	charsets  map[string]*cacheEntry
	lru       *lruList
	maxSize   int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	key     string
	charset *Charset
	size    int64 // Approximate memory size in bytes
	lruNode *lruNode
}

type lruNode struct {
	key  string
	prev *lruNode
	next *lruNode
}

type lruList struct {
	head *lruNode
	tail *lruNode
	size int
}

// Global default cache for convenience
var defaultCache = NewCharsetCache(32)

// NewCharsetCache creates a new cache holding at most maxSize charsets.
// A maxSize of 0 or negative means unlimited cache size.
func NewCharsetCache(maxSize int) *CharsetCache {
	return &CharsetCache{
		charsets: make(map[string]*cacheEntry),
		lru:      &lruList{},
		maxSize:  maxSize,
	}
}

// LoadCharsetCached loads a charset from disk through the default cache.
func LoadCharsetCached(path string) (*Charset, error) {
	return defaultCache.LoadCharset(path)
}

// LoadCharset loads a charset from disk, returning the cached copy if the
// path was loaded before. This method is safe for concurrent use.
func (c *CharsetCache) LoadCharset(path string) (*Charset, error) {
	if cs := c.get(path); cs != nil {
		return cs, nil
	}

	cs, err := LoadCharset(path)
	if err != nil {
		return nil, err
	}

	c.put(path, cs)
	return cs, nil
}

// DecodeCharsetCached decodes charset bytes through the default cache.
func DecodeCharsetCached(data []byte) (*Charset, error) {
	return defaultCache.DecodeCharset(data)
}

// DecodeCharset decodes charset bytes, keyed by their SHA256 hash.
// This method is safe for concurrent use.
func (c *CharsetCache) DecodeCharset(data []byte) (*Charset, error) {
	hash := sha256.Sum256(data)
	key := "sha256:" + hex.EncodeToString(hash[:])

	if cs := c.get(key); cs != nil {
		return cs, nil
	}

	cs, err := DecodeCharsetBytes(data)
	if err != nil {
		return nil, err
	}

	c.put(key, cs)
	return cs, nil
}

// get looks up key under a read lock and takes the write lock only to
// update the LRU position of a hit.
func (c *CharsetCache) get(key string) *Charset {
	c.mu.RLock()
	entry, exists := c.charsets[key]
	c.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		return nil
	}

	c.mu.Lock()
	// The entry may have been evicted or replaced between the two locks.
	if cur, still := c.charsets[key]; still && cur == entry {
		c.lru.moveToFront(entry.lruNode)
	}
	c.mu.Unlock()

	c.hits.Add(1)
	return entry.charset
}

// put adds a charset, evicting the least recently used entry when full.
func (c *CharsetCache) put(key string, cs *Charset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.charsets[key]; exists {
		return
	}

	if c.maxSize > 0 && len(c.charsets) >= c.maxSize {
		c.evictLRU()
	}

	node := c.lru.pushFront(key)
	c.charsets[key] = &cacheEntry{
		key:     key,
		charset: cs,
		size:    estimateCharsetSize(cs),
		lruNode: node,
	}
}

// evictLRU removes the least recently used charset from the cache
func (c *CharsetCache) evictLRU() {
	if c.lru.tail == nil {
		return
	}

	key := c.lru.tail.key
	delete(c.charsets, key)
	c.lru.remove(c.lru.tail)
	c.evictions.Add(1)
}

// Clear removes all charsets from the cache.
// This method is safe for concurrent use.
func (c *CharsetCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.charsets = make(map[string]*cacheEntry)
	c.lru = &lruList{}
}

// Stats returns cache statistics.
// This method is safe for concurrent use.
func (c *CharsetCache) Stats() CacheStats {
	c.mu.RLock()
	size := len(c.charsets)
	var bytes int64
	for _, e := range c.charsets {
		bytes += e.size
	}
	c.mu.RUnlock()

	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Bytes:     bytes,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// CacheStats contains cache performance statistics
type CacheStats struct {
	Size      int    // Current number of cached charsets
	MaxSize   int    // Maximum cache size
	Bytes     int64  // Approximate pixel memory held
	Hits      uint64 // Number of cache hits
	Misses    uint64 // Number of cache misses
	Evictions uint64 // Number of evictions
}

// HitRate returns the cache hit rate as a percentage (0-100)
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) * 100 / float64(total)
}

// estimateCharsetSize approximates the pixel buffer of a charset in bytes.
func estimateCharsetSize(cs *Charset) int64 {
	if cs == nil {
		return 0
	}
	pixels := int64(cs.Width) * int64(cs.Height)

	switch img := cs.img.(type) {
	case *image.Paletted:
		return pixels + int64(len(img.Palette))*16
	case *image.Gray:
		return pixels
	case *image.Gray16:
		return pixels * 2
	case *image.RGBA64, *image.NRGBA64:
		return pixels * 8
	default:
		return pixels * 4
	}
}

// LRU list operations
func (l *lruList) pushFront(key string) *lruNode {
	node := &lruNode{key: key}

	if l.head == nil {
		l.head = node
		l.tail = node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}

	l.size++
	return node
}

func (l *lruList) moveToFront(node *lruNode) {
	if node == l.head {
		return
	}

	if node.prev != nil {
		node.prev.next = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	if node == l.tail {
		l.tail = node.prev
	}

	node.prev = nil
	node.next = l.head
	l.head.prev = node
	l.head = node
}

func (l *lruList) remove(node *lruNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}

	l.size--
}

// SetDefaultCacheSize replaces the default cache with an empty one holding
// at most maxSize charsets. Call it once at application startup.
func SetDefaultCacheSize(maxSize int) {
	defaultCache = NewCharsetCache(maxSize)
}

// ClearDefaultCache clears the default charset cache.
func ClearDefaultCache() {
	defaultCache.Clear()
}

// DefaultCacheStats returns statistics for the default cache.
func DefaultCacheStats() CacheStats {
	return defaultCache.Stats()
}
