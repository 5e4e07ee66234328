// Package lock provides an in-process keyed mutex. Holders of the same key
// are serialized; different keys never block each other.
package lock

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Keyed hands out one weighted semaphore of size 1 per key. Entries are
// reference counted and dropped once nobody holds or waits for them.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	sem  *semaphore.Weighted
	refs int
}

func NewKeyed() *Keyed {
	return &Keyed{locks: make(map[string]*entry)}
}

// Lock acquires every key and returns a function releasing them all. Keys are
// taken in sorted order so two callers locking overlapping sets cannot
// deadlock; duplicates are ignored. If ctx ends while waiting, the keys
// acquired so far are released and ctx.Err() is returned.
func (k *Keyed) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = slices.Clone(keys)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	acquired := make([]string, 0, len(keys))
	release := func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			k.release(acquired[i])
		}
	}

	for _, key := range keys {
		e := k.ref(key)
		if err := e.sem.Acquire(ctx, 1); err != nil {
			k.unref(key)
			release()
			return nil, err
		}
		acquired = append(acquired, key)
	}

	var once sync.Once
	return func() { once.Do(release) }, nil
}

func (k *Keyed) ref(key string) *entry {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, ok := k.locks[key]
	if !ok {
		e = &entry{sem: semaphore.NewWeighted(1)}
		k.locks[key] = e
	}
	e.refs++

	return e
}

func (k *Keyed) unref(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e := k.locks[key]
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
}

func (k *Keyed) release(key string) {
	k.mu.Lock()
	e := k.locks[key]
	k.mu.Unlock()

	e.sem.Release(1)
	k.unref(key)
}

// size reports the number of live entries.
func (k *Keyed) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
