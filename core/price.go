package core

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// PriceTick hourly exchange ticker row, immutable once written
type PriceTick struct {
	ID            int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	TraceID       string          `sql:"size:36;unique_index:idx_price_ticks_trace" json:"trace_id,omitempty"`
	Symbol        string          `sql:"size:20;index:idx_price_ticks_symbol" json:"symbol"`
	LastPrice     decimal.Decimal `sql:"type:decimal(24,8)" json:"last_price"`
	PrevPrice24h  decimal.Decimal `sql:"type:decimal(24,8)" json:"prev_price_24h"`
	Price24hPcnt  decimal.Decimal `sql:"type:decimal(16,8)" json:"price_24h_pcnt"`
	Volume24h     decimal.Decimal `sql:"type:decimal(32,8)" json:"volume_24h"`
	UsdIndexPrice decimal.Decimal `sql:"type:decimal(24,8)" json:"usd_index_price"`
	Source        string          `sql:"size:32" json:"source"`
	Content       types.JSONText  `sql:"type:varchar(2048)" json:"-"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP;index:idx_price_ticks_created" json:"created_at"`
}

// PriceTickFilter list filter, symbol == and created_at >
type PriceTickFilter struct {
	Symbol string
	Since  time.Time
	Limit  int
}

// Ticker exchange ticker of one symbol
type Ticker struct {
	Symbol        string          `json:"symbol"`
	LastPrice     decimal.Decimal `json:"lastPrice"`
	PrevPrice24h  decimal.Decimal `json:"prevPrice24h"`
	Price24hPcnt  decimal.Decimal `json:"price24hPcnt"`
	Volume24h     decimal.Decimal `json:"volume24h"`
	UsdIndexPrice decimal.Decimal `json:"usdIndexPrice"`
	Raw           []byte          `json:"-"`
}

// IPriceTickStore price history store
type IPriceTickStore interface {
	Create(ctx context.Context, tick *PriceTick) error
	List(ctx context.Context, filter PriceTickFilter) ([]*PriceTick, error)
	// Latest most recent tick of symbol, ErrSymbolNotFound if none stored
	Latest(ctx context.Context, symbol string) (*PriceTick, error)
}

// ITickerService exchange ticker
type ITickerService interface {
	PullTicker(ctx context.Context, symbol string) (*Ticker, error)
}
