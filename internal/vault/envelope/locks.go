package envelope

import "sync"

// accountLocks hands out one RWMutex per account. Rotation takes the write
// lock for the whole read-old/derive/unwrap/rewrite sequence; decryption
// takes the read lock so it never observes a half-updated envelope.
type accountLocks struct {
	mu sync.Mutex
	m  map[string]*sync.RWMutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{m: make(map[string]*sync.RWMutex)}
}

func (l *accountLocks) get(accountID string) *sync.RWMutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk, ok := l.m[accountID]
	if !ok {
		lk = &sync.RWMutex{}
		l.m[accountID] = lk
	}
	return lk
}
