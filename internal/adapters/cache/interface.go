package cache

type hitResult[T any] struct {
	data    T
	valid   bool
	claimed bool
}

// Cache stores computed query results by key.
//
// A missing key is claimed by the first caller, who is expected to either set or
// delete it. Other callers wait until the entry becomes valid.
type Cache[T any] interface {
	getOrClaim(key string) hitResult[T]
	set(key string, data T)
	delete(key string)
	wait()
}
