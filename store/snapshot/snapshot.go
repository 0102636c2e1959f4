package snapshot

import (
	"sync"
	"sync/atomic"
	"time"

	"synthpool/core"
)

// Store in-memory read model
//
// readers Load an immutable snapshot; writers replace a whole half and
// publish a new pointer, fields are never mutated in place
type Store struct {
	current atomic.Pointer[core.Snapshot]
	mu      sync.Mutex
}

// New new snapshot store, starts with no pool and an empty account
func New() *Store {
	s := &Store{}
	s.current.Store(&core.Snapshot{
		Account: core.EmptyAccount(time.Time{}),
	})

	return s
}

var _ core.ISnapshotStore = (*Store)(nil)

// Load current snapshot, never nil
func (s *Store) Load() *core.Snapshot {
	return s.current.Load()
}

// PublishPool replace the pool snapshot
func (s *Store) PublishPool(pool *core.PoolSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	s.current.Store(&core.Snapshot{
		Pool:    pool,
		Account: prev.Account,
	})
}

// PublishAccount replace the account snapshot
func (s *Store) PublishAccount(account *core.AccountSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	s.current.Store(&core.Snapshot{
		Pool:    prev.Pool,
		Account: account,
	})
}
