package action

import (
	"sync"

	"golang.org/x/sync/semaphore"
)

// inflight one running submission per key
type inflight struct {
	mu   sync.Mutex
	sems map[string]*semaphore.Weighted
}

func newInflight() *inflight {
	return &inflight{sems: map[string]*semaphore.Weighted{}}
}

// acquire false if key is already held
func (g *inflight) acquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	sem, found := g.sems[key]
	if !found {
		sem = semaphore.NewWeighted(1)
		g.sems[key] = sem
	}
	g.mu.Unlock()

	if !sem.TryAcquire(1) {
		return nil, false
	}

	return func() { sem.Release(1) }, true
}
