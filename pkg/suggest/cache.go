package suggest

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
)

// RecentCache remembers the most recently used keys, up to a fixed size.
// Least recently used keys are evicted first.
type RecentCache struct {
	accessTime  map[string]int64
	accessCount int64
	maxKeys     int
	mu          sync.RWMutex
}

func NewRecentCache(maxKeys int) *RecentCache {
	if maxKeys <= 0 {
		maxKeys = 1
	}
	return &RecentCache{
		accessTime: make(map[string]int64, maxKeys),
		maxKeys:    maxKeys,
	}
}

// Touch marks key as used now.
func (rc *RecentCache) Touch(key string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if _, ok := rc.accessTime[key]; !ok && len(rc.accessTime) >= rc.maxKeys {
		rc.evictLRU()
	}
	rc.accessTime[key] = rc.nextAccessTime()
}

// Forget drops key from the cache.
func (rc *RecentCache) Forget(key string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	delete(rc.accessTime, key)
}

// Rank returns the recency rank of key, 0 for the most recent, and false
// when the key is not cached.
func (rc *RecentCache) Rank(key string) (int, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	t, ok := rc.accessTime[key]
	if !ok {
		return 0, false
	}
	rank := 0
	for _, other := range rc.accessTime {
		if other > t {
			rank++
		}
	}
	return rank, true
}

// Less orders a before b when a was used more recently. Keys that were
// never used compare equal to each other and sort after used keys.
func (rc *RecentCache) Less(a, b string) bool {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	ta, okA := rc.accessTime[a]
	tb, okB := rc.accessTime[b]
	switch {
	case okA && okB:
		return ta > tb
	case okA:
		return true
	default:
		return false
	}
}

func (rc *RecentCache) Len() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.accessTime)
}

func (rc *RecentCache) Stats() map[string]int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	return map[string]int{
		"recentKeys":    len(rc.accessTime),
		"maxRecentKeys": rc.maxKeys,
		"recentTouches": int(rc.accessCount),
	}
}

func (rc *RecentCache) nextAccessTime() int64 {
	rc.accessCount++
	return rc.accessCount
}

func (rc *RecentCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64
	found := false

	for key, t := range rc.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldestKey = key
			found = true
		}
	}

	if found {
		delete(rc.accessTime, oldestKey)
		log.Debugf("Evicted '%s' from recent cache", oldestKey)
	}
}
