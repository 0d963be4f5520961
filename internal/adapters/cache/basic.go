package cache

import (
	"sync"
	"time"
)

type basicCacheEntry[T any] struct {
	data  T
	valid bool
}

// basicCache keeps every entry until it is deleted
type basicCache[T any] struct {
	entries sync.Map // string -> basicCacheEntry[T]
}

func (c *basicCache[T]) getOrClaim(key string) hitResult[T] {
	stored, loaded := c.entries.LoadOrStore(key, basicCacheEntry[T]{})
	if !loaded {
		return hitResult[T]{claimed: true}
	}

	entry := stored.(basicCacheEntry[T])
	return hitResult[T]{data: entry.data, valid: entry.valid}
}

func (c *basicCache[T]) set(key string, data T) {
	c.entries.Store(key, basicCacheEntry[T]{data: data, valid: true})
}

func (c *basicCache[T]) delete(key string) {
	c.entries.Delete(key)
}

func (c *basicCache[T]) wait() {
	time.Sleep(time.Millisecond)
}

func NewBasicCache[T any]() Cache[T] {
	return &basicCache[T]{}
}
