package account

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"synthpool/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "0x1111111111111111111111111111111111111111111111111111111111111111"
	bob   = "0x2222222222222222222222222222222222222222222222222222222222222222"
)

type fakeChain struct {
	core.IChainClient
	balances map[string]*big.Int
	tables   map[string][]*core.DynamicField
	objects  map[string]*core.ChainObject
}

func (c *fakeChain) GetBalance(_ context.Context, _, coinType string) (*big.Int, error) {
	b, ok := c.balances[coinType]
	if !ok {
		return nil, errors.New("rpc down")
	}

	return b, nil
}

func (c *fakeChain) GetDynamicFields(_ context.Context, parentID string) ([]*core.DynamicField, error) {
	return c.tables[parentID], nil
}

func (c *fakeChain) GetObject(_ context.Context, id string) (*core.ChainObject, error) {
	obj, ok := c.objects[id]
	if !ok {
		return nil, errors.New("object not found")
	}

	return obj, nil
}

func testConfig() core.Chain {
	return core.Chain{
		Coins: map[string]core.CoinConfig{
			core.SymbolUSDC: {Type: "0xpkg::usdc::USDC"},
			core.SymbolSUI:  {Type: "0x2::sui::SUI", Decimals: 9},
		},
		Positions: core.PositionTables{
			Mint:   "0xmint",
			Borrow: "0xborrow",
			Supply: "0xsupply",
		},
	}
}

func testChain() *fakeChain {
	return &fakeChain{
		balances: map[string]*big.Int{
			"0xpkg::usdc::USDC": big.NewInt(2500000000000),
			"0x2::sui::SUI":     big.NewInt(1000000000),
		},
		tables: map[string][]*core.DynamicField{
			"0xmint": {
				{ObjectID: "0xm1", Name: alice},
				{ObjectID: "0xm2", Name: bob},
			},
			"0xborrow": {
				{ObjectID: "0xb1", Name: map[string]interface{}{"owner": alice, "id": "1"}},
			},
			"0xsupply": {},
		},
		objects: map[string]*core.ChainObject{
			"0xm1": {ID: "0xm1", Fields: map[string]interface{}{
				"name": alice,
				"value": map[string]interface{}{
					"type": "0xpkg::synth::MintPosition",
					"fields": map[string]interface{}{
						"collateral_type":      "USDC",
						"collateral_amount":    "2000000000000",
						"debt_amount":          "12000000",
						"min_collateral_ratio": "150",
					},
				},
			}},
			"0xb1": {ID: "0xb1", Fields: map[string]interface{}{
				"collateral_type":        float64(1),
				"collateral_amount":      "10000000000",
				"borrowed_amount":        "500000",
				"leverage":               "30000",
				"entry_btc_price":        "600000000",
				"entry_collateral_price": "10000",
			}},
		},
	}
}

func TestReadAccount(t *testing.T) {
	r := New(testChain(), testConfig())

	account, err := r.ReadAccount(context.Background(), alice)
	require.NoError(t, err)

	assert.Equal(t, alice, account.Owner)
	assert.Equal(t, "2500", account.Balance(core.SymbolUSDC).String())
	assert.Equal(t, "1", account.Balance(core.SymbolSUI).String())

	require.Len(t, account.Mint, 1)
	mint := account.Mint[0]
	assert.Equal(t, core.CollateralUSDC, mint.CollateralType)
	assert.Equal(t, "2000", mint.CollateralAmount.String())
	assert.Equal(t, "0.012", mint.DebtAmount.String())
	assert.Equal(t, "150", mint.MinCollateralRatio.String())

	require.Len(t, account.Borrow, 1)
	borrow := account.Borrow[0]
	assert.Equal(t, core.CollateralUSDC, borrow.CollateralType)
	assert.Equal(t, "10", borrow.CollateralAmount.String())
	assert.Equal(t, "0.0005", borrow.BorrowedAmount.String())
	assert.Equal(t, "3", borrow.Leverage.String())
	assert.Equal(t, "60000", borrow.EntryBtcPrice.String())
	assert.Equal(t, "1", borrow.EntryCollateralPrice.String())

	assert.Nil(t, account.Supply)
}

func TestReadAccountFails(t *testing.T) {
	c := testChain()
	delete(c.balances, "0x2::sui::SUI")

	_, err := New(c, testConfig()).ReadAccount(context.Background(), alice)
	assert.Error(t, err)

	c = testChain()
	c.objects["0xb1"].Fields["collateral_type"] = "DOGE"

	_, err = New(c, testConfig()).ReadAccount(context.Background(), alice)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestOwnedBy(t *testing.T) {
	assert.True(t, ownedBy(alice, alice))
	assert.False(t, ownedBy(bob, alice))
	assert.True(t, ownedBy(map[string]interface{}{"owner": alice}, alice))
	assert.True(t, ownedBy(map[string]interface{}{
		"type":   "0xpkg::synth::Key",
		"fields": map[string]interface{}{"owner": alice},
	}, alice))
	assert.False(t, ownedBy(nil, alice))
}

func TestParseMintPositionWithoutRatio(t *testing.T) {
	p, err := parseMintPosition("0xowner", map[string]interface{}{
		"collateral_type":   "USDC",
		"collateral_amount": "2000000000000",
		"debt_amount":       "30000000",
	})
	require.NoError(t, err)

	assert.Equal(t, core.CollateralUSDC, p.CollateralType)
	assert.Equal(t, "2000", p.CollateralAmount.Decimal().String())
	assert.True(t, p.MinCollateralRatio.IsZero())
}
