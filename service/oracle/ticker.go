package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"synthpool/core"
	"synthpool/pkg/number"
	"synthpool/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
)

// TickerService bybit v5 spot ticker
type TickerService struct {
	Endpoint string
	Category string
}

// New new ticker service
func New(cfg core.PriceHistory) core.ITickerService {
	category := cfg.Category
	if category == "" {
		category = "spot"
	}

	return &TickerService{
		Endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		Category: category,
	}
}

type tickersResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		Category string            `json:"category"`
		List     []json.RawMessage `json:"list"`
	} `json:"result"`
}

// amounts come back as strings, empty when not applicable
type tickerItem struct {
	Symbol        string `json:"symbol"`
	LastPrice     string `json:"lastPrice"`
	PrevPrice24h  string `json:"prevPrice24h"`
	Price24hPcnt  string `json:"price24hPcnt"`
	Volume24h     string `json:"volume24h"`
	UsdIndexPrice string `json:"usdIndexPrice"`
}

// PullTicker pull the ticker of symbol
func (s *TickerService) PullTicker(ctx context.Context, symbol string) (*core.Ticker, error) {
	url := fmt.Sprintf("%s/v5/market/tickers", s.Endpoint)
	logger.FromContext(ctx).Debugln("pull ticker:", url, symbol)

	resp, err := resthttp.Request(ctx).
		SetQueryParam("category", s.Category).
		SetQueryParam("symbol", symbol).
		Get(url)
	if err != nil {
		return nil, err
	}

	var body tickersResponse
	if err := resthttp.ParseResponse(resp, &body); err != nil {
		return nil, err
	}

	if body.RetCode != 0 {
		if strings.Contains(strings.ToLower(body.RetMsg), "symbol") {
			return nil, core.WrapError(core.ErrSymbolNotFound, fmt.Errorf("bybit %d: %s", body.RetCode, body.RetMsg))
		}

		return nil, fmt.Errorf("bybit %d: %s", body.RetCode, body.RetMsg)
	}

	for _, raw := range body.Result.List {
		var item tickerItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, err
		}

		if item.Symbol != symbol {
			continue
		}

		return &core.Ticker{
			Symbol:        item.Symbol,
			LastPrice:     number.Decimal(item.LastPrice),
			PrevPrice24h:  number.Decimal(item.PrevPrice24h),
			Price24hPcnt:  number.Decimal(item.Price24hPcnt),
			Volume24h:     number.Decimal(item.Volume24h),
			UsdIndexPrice: number.Decimal(item.UsdIndexPrice),
			Raw:           raw,
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", core.ErrSymbolNotFound, symbol)
}
