package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreate(t *testing.T) {
	t.Parallel()

	caches := map[string]func(t *testing.T) Cache[string]{
		"basic": func(t *testing.T) Cache[string] {
			return NewBasicCache[string]()
		},
		"ttl": func(t *testing.T) Cache[string] {
			c, stop := NewTTLCache[string](time.Minute)
			t.Cleanup(stop)
			return c
		},
	}

	for name, newCache := range caches {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			t.Run("miss then hit", func(t *testing.T) {
				t.Parallel()

				c := newCache(t)
				ctx := t.Context()

				data, created, err := GetOrCreate(ctx, c, "v1/summary/2024//", func() (string, error) {
					return "data1", nil
				})
				require.NoError(t, err)
				require.True(t, created)
				require.Equal(t, "data1", data)

				data, created, err = GetOrCreate(ctx, c, "v1/summary/2024//", func() (string, error) {
					t.Fatal("unreachable")
					return "", nil
				})
				require.NoError(t, err)
				require.False(t, created)
				require.Equal(t, "data1", data)
			})

			t.Run("keys are independent", func(t *testing.T) {
				t.Parallel()

				c := newCache(t)
				ctx := t.Context()

				for i := range 3 {
					key := fmt.Sprintf("v1/milestones/%d/hours/", 2020+i)
					data, created, err := GetOrCreate(ctx, c, key, func() (string, error) {
						return key, nil
					})
					require.NoError(t, err)
					require.True(t, created)
					require.Equal(t, key, data)
				}
			})

			t.Run("error releases the claim", func(t *testing.T) {
				t.Parallel()

				c := newCache(t)
				ctx := t.Context()
				computeErr := errors.New("compute failed")

				_, created, err := GetOrCreate(ctx, c, "key", func() (string, error) {
					return "", computeErr
				})
				require.ErrorIs(t, err, computeErr)
				require.False(t, created)

				data, created, err := GetOrCreate(ctx, c, "key", func() (string, error) {
					return "data2", nil
				})
				require.NoError(t, err)
				require.True(t, created)
				require.Equal(t, "data2", data)
			})

			t.Run("panic releases the claim", func(t *testing.T) {
				t.Parallel()

				c := newCache(t)
				ctx := t.Context()

				require.Panics(t, func() {
					_, _, _ = GetOrCreate(ctx, c, "key", func() (string, error) {
						panic("logic error: boom")
					})
				})

				data, created, err := GetOrCreate(ctx, c, "key", func() (string, error) {
					return "data3", nil
				})
				require.NoError(t, err)
				require.True(t, created)
				require.Equal(t, "data3", data)
			})

			t.Run("concurrent callers compute once", func(t *testing.T) {
				t.Parallel()

				c := newCache(t)
				ctx := t.Context()

				var calls atomic.Int32
				release := make(chan struct{})

				const callers = 10
				results := make([]string, callers)
				wg := sync.WaitGroup{}
				wg.Add(callers)
				for i := range callers {
					go func() {
						defer wg.Done()
						data, _, err := GetOrCreate(ctx, c, "shared", func() (string, error) {
							calls.Add(1)
							<-release
							return "shared-data", nil
						})
						assert.NoError(t, err)
						results[i] = data
					}()
				}

				time.Sleep(20 * time.Millisecond)
				close(release)
				wg.Wait()

				require.Equal(t, int32(1), calls.Load())
				for _, result := range results {
					require.Equal(t, "shared-data", result)
				}
			})

			t.Run("waiting caller gives up when the context is done", func(t *testing.T) {
				t.Parallel()

				c := newCache(t)

				claimed := make(chan struct{})
				release := make(chan struct{})
				done := make(chan struct{})
				go func() {
					defer close(done)
					_, _, err := GetOrCreate(t.Context(), c, "slow", func() (string, error) {
						close(claimed)
						<-release
						return "slow-data", nil
					})
					assert.NoError(t, err)
				}()
				<-claimed

				ctx, cancel := context.WithTimeout(t.Context(), 30*time.Millisecond)
				defer cancel()
				_, created, err := GetOrCreate(ctx, c, "slow", func() (string, error) {
					t.Fatal("unreachable")
					return "", nil
				})
				require.ErrorIs(t, err, context.DeadlineExceeded)
				require.False(t, created)

				close(release)
				<-done
			})
		})
	}
}
