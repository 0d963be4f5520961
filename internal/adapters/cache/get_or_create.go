package cache

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/meeplestats/meeplestats/internal/logging"
)

var tracer = otel.Tracer("meeplestats/adapters/cache")

// GetOrCreate returns the cached value for key, computing it with create on a miss.
// Concurrent callers for the same key wait for the first one instead of computing again.
// Returns data, created, error
func GetOrCreate[T any](ctx context.Context, cache Cache[T], key string, create func() (T, error)) (T, bool, error) {
	ctx, span := tracer.Start(ctx, "cache.GetOrCreate")
	defer span.End()
	span.SetAttributes(attribute.String("cache.key", key))

	var empty T
	logger := logging.FromContext(ctx)

	for {
		result := cache.getOrClaim(key)

		switch {
		case result.claimed:
			span.SetAttributes(attribute.Bool("cache.hit", false))
			logger.InfoContext(ctx, "Computing query result", "cache", "miss", "key", key)

			data, err := fillClaimed(cache, key, create)
			if err != nil {
				return empty, false, fmt.Errorf("failed to create cache entry: %w", err)
			}
			return data, true, nil
		case result.valid:
			span.SetAttributes(attribute.Bool("cache.hit", true))
			logger.InfoContext(ctx, "Serving cached query result", "cache", "hit", "key", key)
			return result.data, false, nil
		}

		if err := ctx.Err(); err != nil {
			return empty, false, fmt.Errorf("gave up waiting for cache entry: %w", err)
		}

		cache.wait()
	}
}

// fillClaimed sets a claimed entry. The claim is released if create fails or
// panics so other callers can try again.
func fillClaimed[T any](cache Cache[T], key string, create func() (T, error)) (T, error) {
	set := false
	defer func() {
		if !set {
			cache.delete(key)
		}
	}()

	data, err := create()
	if err != nil {
		return data, err
	}

	cache.set(key, data)
	set = true
	return data, nil
}
