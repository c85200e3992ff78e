package profile

import "sync"

// Locker serializes work per username. Entries are reference counted and
// dropped once the last holder unlocks.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*keyLock)}
}

// Lock blocks until username is free and returns the matching unlock func.
func (l *Locker) Lock(username string) (unlock func()) {
	l.mu.Lock()
	kl, ok := l.locks[username]
	if !ok {
		kl = &keyLock{}
		l.locks[username] = kl
	}
	kl.refs++
	l.mu.Unlock()

	kl.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			kl.mu.Unlock()

			l.mu.Lock()
			kl.refs--
			if kl.refs == 0 {
				delete(l.locks, username)
			}
			l.mu.Unlock()
		})
	}
}

func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
