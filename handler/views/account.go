package views

import (
	"time"

	"synthpool/core"
)

// MintPosition mint position with metrics, metrics are left out while the pool is loading
type MintPosition struct {
	*core.MintPosition
	Metrics *core.PositionMetrics `json:"metrics,omitempty"`
}

// BorrowPosition borrow position with metrics
type BorrowPosition struct {
	*core.BorrowPosition
	Metrics *core.PositionMetrics `json:"metrics,omitempty"`
}

// SupplyPosition supply position with usd values
type SupplyPosition struct {
	*core.SupplyPosition
	View *core.SupplyView `json:"view,omitempty"`
}

// Account account view
type Account struct {
	Owner     string                 `json:"owner,omitempty"`
	Balances  map[string]core.Amount `json:"balances"`
	Mint      []*MintPosition        `json:"mint"`
	Borrow    []*BorrowPosition      `json:"borrow"`
	Supply    *SupplyPosition        `json:"supply,omitempty"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// AccountView render account snapshot with metrics computed against pool
func AccountView(snapshot *core.Snapshot, positions core.IPositionService) Account {
	account := snapshot.Account
	view := Account{
		Owner:     account.Owner,
		Balances:  account.Balances,
		Mint:      make([]*MintPosition, 0, len(account.Mint)),
		Borrow:    make([]*BorrowPosition, 0, len(account.Borrow)),
		UpdatedAt: account.UpdatedAt,
	}

	for _, p := range account.Mint {
		m, _ := positions.MintMetrics(snapshot.Pool, p)
		view.Mint = append(view.Mint, &MintPosition{MintPosition: p, Metrics: m})
	}

	for _, p := range account.Borrow {
		m, _ := positions.BorrowMetrics(snapshot.Pool, p)
		view.Borrow = append(view.Borrow, &BorrowPosition{BorrowPosition: p, Metrics: m})
	}

	if p := account.Supply; p != nil {
		v, _ := positions.SupplyView(snapshot.Pool, p)
		view.Supply = &SupplyPosition{SupplyPosition: p, View: v}
	}

	return view
}
