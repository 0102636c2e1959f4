package account

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"synthpool/core"
	"synthpool/service/chain"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cast"
	"golang.org/x/sync/errgroup"
)

// New new account reader
func New(client core.IChainClient, cfg core.Chain) core.IAccountReader {
	return &accountReader{
		client: client,
		cfg:    cfg,
	}
}

type accountReader struct {
	client core.IChainClient
	cfg    core.Chain
}

// ReadAccount read coin balances and every position of owner
func (r *accountReader) ReadAccount(ctx context.Context, owner string) (*core.AccountSnapshot, error) {
	var (
		mu      sync.Mutex
		account = &core.AccountSnapshot{
			Owner:    owner,
			Balances: make(map[string]core.Amount, len(r.cfg.Coins)),
		}
	)

	g, ctx := errgroup.WithContext(ctx)
	for symbol, coin := range r.cfg.Coins {
		symbol, coin := symbol, coin
		g.Go(func() error {
			raw, err := r.client.GetBalance(ctx, owner, coin.Type)
			if err != nil {
				return fmt.Errorf("read balance %s: %w", symbol, err)
			}

			decimals := coin.Decimals
			if decimals == 0 {
				decimals = core.TokenDecimals
			}

			mu.Lock()
			account.Balances[symbol] = core.NewAmount(raw, decimals)
			mu.Unlock()
			return nil
		})
	}

	if table := r.cfg.Positions.Mint; table != "" {
		g.Go(func() error {
			positions, err := r.readTable(ctx, table, owner)
			if err != nil {
				return fmt.Errorf("read mint positions: %w", err)
			}

			for _, fields := range positions {
				p, err := parseMintPosition(owner, fields)
				if err != nil {
					return err
				}

				account.Mint = append(account.Mint, p)
			}

			return nil
		})
	}

	if table := r.cfg.Positions.Borrow; table != "" {
		g.Go(func() error {
			positions, err := r.readTable(ctx, table, owner)
			if err != nil {
				return fmt.Errorf("read borrow positions: %w", err)
			}

			for _, fields := range positions {
				p, err := parseBorrowPosition(owner, fields)
				if err != nil {
					return err
				}

				account.Borrow = append(account.Borrow, p)
			}

			return nil
		})
	}

	if table := r.cfg.Positions.Supply; table != "" {
		g.Go(func() error {
			positions, err := r.readTable(ctx, table, owner)
			if err != nil {
				return fmt.Errorf("read supply position: %w", err)
			}

			if len(positions) == 0 {
				return nil
			}

			p, err := parseSupplyPosition(owner, positions[0])
			if err != nil {
				return err
			}

			account.Supply = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	account.UpdatedAt = time.Now()
	return account, nil
}

// readTable fields of the table entries keyed by owner
func (r *accountReader) readTable(ctx context.Context, tableID, owner string) ([]map[string]interface{}, error) {
	log := logger.FromContext(ctx).WithField("table", tableID)

	entries, err := r.client.GetDynamicFields(ctx, tableID)
	if err != nil {
		log.WithError(err).Errorln("chain.GetDynamicFields")
		return nil, err
	}

	var out []map[string]interface{}
	for _, entry := range entries {
		if !ownedBy(entry.Name, owner) {
			continue
		}

		obj, err := r.client.GetObject(ctx, entry.ObjectID)
		if err != nil {
			log.WithError(err).Errorln("chain.GetObject", entry.ObjectID)
			return nil, err
		}

		fields := obj.Fields
		if _, ok := fields["value"]; ok {
			if fields, err = chain.FieldStruct(obj.Fields, "value"); err != nil {
				return nil, err
			}
		}

		out = append(out, fields)
	}

	return out, nil
}

// ownedBy table key is the owner address or a struct with an owner field
func ownedBy(name interface{}, owner string) bool {
	if m, err := cast.ToStringMapE(name); err == nil {
		if inner, ok := m["fields"]; ok {
			m = cast.ToStringMap(inner)
		}

		name = m["owner"]
	}

	return strings.EqualFold(cast.ToString(name), owner)
}
