package snapshot

import (
	"sync"
	"testing"
	"time"

	"synthpool/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreStartsEmpty(t *testing.T) {
	s := New()

	snap := s.Load()
	require.NotNil(t, snap)
	assert.Nil(t, snap.Pool)
	assert.True(t, snap.Account.IsEmpty())
}

func TestPublishReplacesHalf(t *testing.T) {
	s := New()

	pool := &core.PoolSnapshot{UpdatedAt: time.Now()}
	s.PublishPool(pool)

	account := &core.AccountSnapshot{Owner: "0x1", Balances: map[string]core.Amount{}}
	s.PublishAccount(account)

	snap := s.Load()
	assert.Same(t, pool, snap.Pool)
	assert.Same(t, account, snap.Account)

	// earlier readers keep their own copy
	pool2 := &core.PoolSnapshot{UpdatedAt: time.Now()}
	s.PublishPool(pool2)
	assert.Same(t, pool, snap.Pool)
	assert.Same(t, pool2, s.Load().Pool)
	assert.Same(t, account, s.Load().Account)
}

func TestConcurrentPublish(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.PublishPool(&core.PoolSnapshot{})
		}()
		go func() {
			defer wg.Done()
			s.PublishAccount(&core.AccountSnapshot{Owner: "0x1"})
		}()
	}
	wg.Wait()

	snap := s.Load()
	assert.NotNil(t, snap.Pool)
	assert.Equal(t, "0x1", snap.Account.Owner)
}
