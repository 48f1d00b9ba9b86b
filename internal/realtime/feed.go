// Package realtime pushes collection changes to subscribers.
//
// A Feed only says that something changed in a tenant's collection; Watch
// turns that signal into a fresh full result set for the subscriber.
package realtime

import (
	"context"
	"sync"
)

// Feed carries change signals per collection and tenant.
type Feed interface {
	Notify(ctx context.Context, collection, companyID string) error
	// Subscribe calls fn on every change until the returned cancel func is called.
	Subscribe(ctx context.Context, collection, companyID string, fn func()) (func(), error)
}

func topic(collection, companyID string) string {
	return collection + ":" + companyID
}

// LocalFeed delivers changes to subscribers in the same process.
type LocalFeed struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]func()
}

// NewLocalFeed returns an empty in-process feed.
func NewLocalFeed() *LocalFeed {
	return &LocalFeed{subs: map[string]map[int]func(){}}
}

func (f *LocalFeed) Notify(ctx context.Context, collection, companyID string) error {
	f.mu.RLock()
	subs := f.subs[topic(collection, companyID)]
	fns := make([]func(), 0, len(subs))
	for _, fn := range subs {
		fns = append(fns, fn)
	}
	f.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
	return nil
}

func (f *LocalFeed) Subscribe(ctx context.Context, collection, companyID string, fn func()) (func(), error) {
	key := topic(collection, companyID)

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	if f.subs[key] == nil {
		f.subs[key] = map[int]func(){}
	}
	f.subs[key][id] = fn
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs[key], id)
			if len(f.subs[key]) == 0 {
				delete(f.subs, key)
			}
		})
	}, nil
}
