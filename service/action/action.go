package action

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"synthpool/core"
	"synthpool/internal/risk"
	"synthpool/pkg/metrics"
	"synthpool/pkg/number"
	"synthpool/service/wallet"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// New new action service
func New(
	chain core.IChainClient,
	cfg core.Chain,
	params core.RiskParams,
	snapshots core.ISnapshotStore,
	positions core.IPositionService,
) core.IActionService {
	return &actionService{
		chain:     chain,
		cfg:       cfg,
		params:    params,
		snapshots: snapshots,
		positions: positions,
		inflight:  newInflight(),
	}
}

type actionService struct {
	chain     core.IChainClient
	cfg       core.Chain
	params    core.RiskParams
	snapshots core.ISnapshotStore
	positions core.IPositionService
	inflight  *inflight
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", core.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// positiveAmount parse a user entered amount, must be numeric and > 0
func positiveAmount(name, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Zero, invalid("%s %q is not a number", name, v)
	}

	if !d.IsPositive() {
		return decimal.Zero, invalid("%s must be positive", name)
	}

	return d, nil
}

func (s *actionService) validate(owner string, action core.Action) (core.ActionTarget, error) {
	if !wallet.ValidAddress(owner) {
		return core.ActionTarget{}, invalid("address %q", owner)
	}

	if _, err := core.ParseAction(string(action)); err != nil {
		return core.ActionTarget{}, err
	}

	target, ok := s.cfg.Actions[string(action)]
	if !ok {
		return core.ActionTarget{}, fmt.Errorf("%w: %s not deployed", core.ErrUnknownAction, action)
	}

	return target, nil
}

func (s *actionService) coinType(symbol string) (core.CoinConfig, error) {
	coin, ok := s.cfg.Coins[symbol]
	if !ok || coin.Type == "" {
		return core.CoinConfig{}, invalid("coin %s not configured", symbol)
	}

	if coin.Decimals == 0 {
		coin.Decimals = core.TokenDecimals
	}

	return coin, nil
}

// spend coin objects of owner covering amount, raw amount and coin ids
func (s *actionService) spend(ctx context.Context, owner, symbol string, amount decimal.Decimal) (*big.Int, []string, error) {
	coin, err := s.coinType(symbol)
	if err != nil {
		return nil, nil, err
	}

	raw, err := number.ToRaw(amount, coin.Decimals)
	if err != nil {
		return nil, nil, invalid("amount %s", amount)
	}

	if raw.Sign() == 0 {
		return nil, nil, invalid("amount %s below the smallest unit", amount)
	}

	coins, err := s.chain.GetCoins(ctx, owner, coin.Type)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("chain.GetCoins", owner, symbol)
		return nil, nil, err
	}

	var (
		total = new(big.Int)
		ids   []string
	)

	for _, c := range coins {
		if c.Balance == nil || c.Balance.Sign() <= 0 {
			continue
		}

		ids = append(ids, c.ObjectID)
		total.Add(total, c.Balance)
		if total.Cmp(raw) >= 0 {
			return raw, ids, nil
		}
	}

	return nil, nil, fmt.Errorf("%w: %s %s available, %s requested", core.ErrInsufficientBalance,
		number.DisplayOrZero(total, coin.Decimals), symbol, amount)
}

func (s *actionService) Prepare(ctx context.Context, req *core.ActionRequest) (*core.PreparedTx, error) {
	log := logger.FromContext(ctx).WithField("action", req.Action)

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return nil, invalid("%s", err)
	}

	target, err := s.validate(req.Owner, req.Action)
	if err != nil {
		return nil, err
	}

	call := &core.MoveCall{
		Target: fmt.Sprintf("%s::%s::%s", s.cfg.PackageID, target.Module, target.Function),
	}

	for _, obj := range target.Objects {
		call.Arguments = append(call.Arguments, obj)
	}

	if err := s.buildArguments(ctx, req, call); err != nil {
		return nil, err
	}

	txBytes, err := s.chain.MoveCall(ctx, req.Owner, call, s.cfg.GasBudget)
	if err != nil {
		log.WithError(err).Errorln("chain.MoveCall", call.Target)
		return nil, core.WrapError(core.ErrChainRejection, err)
	}

	return &core.PreparedTx{
		Owner:   req.Owner,
		Action:  req.Action,
		Call:    call,
		TxBytes: txBytes,
	}, nil
}

func (s *actionService) buildArguments(ctx context.Context, req *core.ActionRequest, call *core.MoveCall) error {
	switch req.Action {
	case core.ActionFaucet:
		return nil

	case core.ActionWithdraw:
		amount, err := positiveAmount("amount", req.Amount)
		if err != nil {
			return err
		}

		raw, err := number.ToRaw(amount, core.TokenDecimals)
		if err != nil || raw.Sign() == 0 {
			return invalid("amount %s", amount)
		}

		call.Arguments = append(call.Arguments, raw.String())
		return nil

	case core.ActionSupply:
		return s.spendArguments(ctx, req.Owner, core.SymbolUSDC, req.Amount, call)

	case core.ActionBurn, core.ActionRepay:
		return s.spendArguments(ctx, req.Owner, core.SymbolBTC, req.Amount, call)

	case core.ActionAddCollateral:
		asset, err := core.ParseCollateralAsset(req.CollateralType)
		if err != nil {
			return err
		}

		if err := s.collateralTypeArgument(asset, call); err != nil {
			return err
		}

		return s.spendArguments(ctx, req.Owner, asset.String(), req.Amount, call)

	case core.ActionMint:
		return s.mintArguments(ctx, req, call)

	case core.ActionBorrow:
		return s.borrowArguments(ctx, req, call)
	}

	return fmt.Errorf("%w: %s", core.ErrUnknownAction, req.Action)
}

func (s *actionService) collateralTypeArgument(asset core.CollateralAsset, call *core.MoveCall) error {
	coin, err := s.coinType(asset.String())
	if err != nil {
		return err
	}

	call.TypeArguments = append(call.TypeArguments, coin.Type)
	return nil
}

func (s *actionService) spendArguments(ctx context.Context, owner, symbol, amount string, call *core.MoveCall) error {
	d, err := positiveAmount("amount", amount)
	if err != nil {
		return err
	}

	raw, coins, err := s.spend(ctx, owner, symbol, d)
	if err != nil {
		return err
	}

	call.Arguments = append(call.Arguments, coins, raw.String())
	return nil
}

func (s *actionService) mintArguments(ctx context.Context, req *core.ActionRequest, call *core.MoveCall) error {
	asset, err := core.ParseCollateralAsset(req.CollateralType)
	if err != nil {
		return err
	}

	collateral, err := positiveAmount("collateral amount", req.CollateralAmount)
	if err != nil {
		return err
	}

	mint, err := positiveAmount("mint amount", req.Amount)
	if err != nil {
		return err
	}

	pool := s.snapshots.Load().Pool
	if pool == nil {
		return fmt.Errorf("%w: pool not loaded", core.ErrStaleData)
	}

	quote, err := s.positions.QuoteMint(pool, &core.MintQuoteRequest{
		CollateralType:   asset,
		CollateralAmount: collateral,
		MintAmount:       mint,
	})
	if err != nil {
		return err
	}

	if !quote.Sufficient {
		return fmt.Errorf("%w: %s %s required", core.ErrInsufficientCollateral, quote.RequiredCollateral, asset)
	}

	if err := s.collateralTypeArgument(asset, call); err != nil {
		return err
	}

	raw, coins, err := s.spend(ctx, req.Owner, asset.String(), collateral)
	if err != nil {
		return err
	}

	mintRaw, err := number.ToRaw(mint, core.TokenDecimals)
	if err != nil || mintRaw.Sign() == 0 {
		return invalid("mint amount %s", mint)
	}

	call.Arguments = append(call.Arguments, coins, raw.String(), mintRaw.String())
	return nil
}

func (s *actionService) borrowArguments(ctx context.Context, req *core.ActionRequest, call *core.MoveCall) error {
	asset, err := core.ParseCollateralAsset(req.CollateralType)
	if err != nil {
		return err
	}

	collateral, err := positiveAmount("collateral amount", req.CollateralAmount)
	if err != nil {
		return err
	}

	leverage, err := decimal.NewFromString(strings.TrimSpace(req.Leverage))
	if err != nil || !risk.ValidLeverage(leverage, s.params.MaxLeverage) {
		return invalid("leverage %q must be between 1 and %s", req.Leverage, s.params.MaxLeverage)
	}

	if err := s.collateralTypeArgument(asset, call); err != nil {
		return err
	}

	raw, coins, err := s.spend(ctx, req.Owner, asset.String(), collateral)
	if err != nil {
		return err
	}

	leverageRaw, _ := number.ToRaw(leverage, core.LeverageDecimals)
	call.Arguments = append(call.Arguments, coins, raw.String(), leverageRaw.String())
	return nil
}

func (s *actionService) Submit(ctx context.Context, req *core.SubmitRequest) (*core.TxReceipt, error) {
	log := logger.FromContext(ctx).WithField("action", req.Action)

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return nil, invalid("%s", err)
	}

	if _, err := s.validate(req.Owner, req.Action); err != nil {
		return nil, err
	}

	release, ok := s.inflight.acquire(inflightKey(req.Owner, req.Action))
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrActionInFlight, req.Action)
	}
	defer release()

	receipt, err := s.submit(ctx, req)
	metrics.ActionTotal.WithLabelValues(string(req.Action), metrics.Result(err)).Inc()
	if err != nil {
		log.WithError(err).Errorln("submit")
		return nil, err
	}

	log.Infoln("submitted", receipt.Digest)
	return receipt, nil
}

// submit one attempt, chain errors are passed through verbatim
func (s *actionService) submit(ctx context.Context, req *core.SubmitRequest) (*core.TxReceipt, error) {
	receipt, err := s.chain.ExecuteTransaction(ctx, req.TxBytes, req.Signatures)
	if err != nil {
		return nil, core.WrapError(core.ErrChainRejection, err)
	}

	if !receipt.Succeeded() {
		msg := receipt.Error
		if msg == "" {
			msg = "transaction " + receipt.Status
		}

		return receipt, core.WrapError(core.ErrChainRejection, errors.New(msg))
	}

	return receipt, nil
}

// inflightKey addresses are case insensitive hex
func inflightKey(owner string, action core.Action) string {
	return strings.ToLower(owner) + ":" + string(action)
}
