package core

import (
	"context"
	"time"
)

// AccountSnapshot balances and positions of the connected wallet
type AccountSnapshot struct {
	Owner     string            `json:"owner,omitempty"`
	Balances  map[string]Amount `json:"balances"`
	Mint      []*MintPosition   `json:"mint"`
	Borrow    []*BorrowPosition `json:"borrow"`
	Supply    *SupplyPosition   `json:"supply,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// EmptyAccount snapshot for a disconnected or mismatched wallet
func EmptyAccount(t time.Time) *AccountSnapshot {
	return &AccountSnapshot{
		Balances:  map[string]Amount{},
		UpdatedAt: t,
	}
}

// IsEmpty no owner and no balances
func (a *AccountSnapshot) IsEmpty() bool {
	return a == nil || (a.Owner == "" && len(a.Balances) == 0)
}

// Balance balance of symbol, zero if absent
func (a *AccountSnapshot) Balance(symbol string) Amount {
	if a == nil {
		return Amount{Decimals: TokenDecimals}
	}

	if b, ok := a.Balances[symbol]; ok {
		return b
	}

	return Amount{Decimals: TokenDecimals}
}

// Snapshot read model shared by all readers; never mutated after publish
type Snapshot struct {
	Pool    *PoolSnapshot    `json:"pool"`
	Account *AccountSnapshot `json:"account"`
}

// IAccountReader read balances and positions of owner from chain
type IAccountReader interface {
	ReadAccount(ctx context.Context, owner string) (*AccountSnapshot, error)
}

// ISnapshotStore single writer snapshot store
type ISnapshotStore interface {
	Load() *Snapshot
	PublishPool(pool *PoolSnapshot)
	PublishAccount(account *AccountSnapshot)
}
