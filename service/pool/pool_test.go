package pool

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"synthpool/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChain struct {
	core.IChainClient
	objects map[string]*core.ChainObject
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
		Oracles: map[string]string{
			core.SymbolBTC: "0xbtc",
			core.SymbolSUI: "0xsui",
		},
		LendingPool: "0xpool",
	}
}

func testObjects() map[string]*core.ChainObject {
	return map[string]*core.ChainObject{
		"0xbtc": {ID: "0xbtc", Fields: map[string]interface{}{"price": "1000000000"}},
		"0xsui": {ID: "0xsui", Fields: map[string]interface{}{"price": "7900"}},
		"0xpool": {ID: "0xpool", Fields: map[string]interface{}{
			"total_supplied": "10000000000000",
			"total_borrowed": "2500000000000",
			"borrow_rate":    float64(850),
			"supply_rate":    "212",
		}},
	}
}

func TestReadPool(t *testing.T) {
	r := New(&fakeChain{objects: testObjects()}, testConfig())

	snapshot, err := r.ReadPool(context.Background())
	require.NoError(t, err)

	btc, ok := snapshot.Price(core.SymbolBTC)
	require.True(t, ok)
	assert.Equal(t, "100000", btc.String())

	sui, ok := snapshot.Price(core.SymbolSUI)
	require.True(t, ok)
	assert.Equal(t, "0.79", sui.String())

	require.NotNil(t, snapshot.LendingPool)
	assert.Equal(t, "10000", snapshot.LendingPool.TotalSupplied.String())
	assert.Equal(t, "2500", snapshot.LendingPool.TotalBorrowed.String())
	assert.Equal(t, "8.5", snapshot.LendingPool.BorrowRate.String())
	assert.Equal(t, "2.12", snapshot.LendingPool.SupplyRate.String())
	assert.Equal(t, "0.25", snapshot.LendingPool.UtilizationRate().String())
	assert.Equal(t, big.NewInt(1000000000), snapshot.Prices[core.SymbolBTC].Price.Raw)
	assert.False(t, snapshot.UpdatedAt.IsZero())
}

func TestReadPoolFailsWhole(t *testing.T) {
	objects := testObjects()
	delete(objects, "0xsui")

	r := New(&fakeChain{objects: objects}, testConfig())
	_, err := r.ReadPool(context.Background())
	assert.Error(t, err)

	objects = testObjects()
	objects["0xpool"].Fields["supply_rate"] = "abc"

	r = New(&fakeChain{objects: objects}, testConfig())
	_, err = r.ReadPool(context.Background())
	assert.Error(t, err)
}
