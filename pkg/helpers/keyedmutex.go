package helpers

import "sync"

// KeyedMutex serializes work per key while leaving different keys fully
// independent. Used to guard read-modify-write cycles on per-user state.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use. Locks are
// never evicted; the key space is bounded by the user population.
func (km *KeyedMutex) Lock(key string) {
	km.mu.Lock()
	lock, ok := km.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		km.locks[key] = lock
	}
	km.mu.Unlock()

	lock.Lock()
}

func (km *KeyedMutex) Unlock(key string) {
	km.mu.Lock()
	lock := km.locks[key]
	km.mu.Unlock()

	if lock != nil {
		lock.Unlock()
	}
}
