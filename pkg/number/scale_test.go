package number

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDisplay(t *testing.T) {
	d, err := ToDisplay(big.NewInt(1_500_000_000), 9)
	require.NoError(t, err)
	assert.Equal(t, "1.5", d.String())

	d, err = ToDisplay(big.NewInt(425678900), 4)
	require.NoError(t, err)
	assert.Equal(t, "42567.89", d.String())

	// wider than 2^64
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	d, err = ToDisplay(huge, 9)
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901.23456789", d.String())

	_, err = ToDisplay(big.NewInt(-1), 9)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ToDisplay(nil, 9)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestToRawTruncates(t *testing.T) {
	raw, err := ToRaw(Decimal("0.0000000019"), 9)
	require.NoError(t, err)
	assert.Equal(t, "1", raw.String())

	raw, err = ToRaw(Decimal("2000"), 9)
	require.NoError(t, err)
	assert.Equal(t, "2000000000000", raw.String())

	raw, err = ToRaw(Decimal("1.99999"), 2)
	require.NoError(t, err)
	assert.Equal(t, "199", raw.String())

	_, err = ToRaw(Decimal("-0.1"), 9)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestRoundTrip(t *testing.T) {
	huge, _ := new(big.Int).SetString("98765432109876543210987654321", 10)
	raws := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(999_999_999),
		new(big.Int).SetUint64(^uint64(0)),
		huge,
	}

	for _, r := range raws {
		for _, d := range []int32{0, 2, 4, 9, 18} {
			display, err := ToDisplay(r, d)
			require.NoError(t, err)

			back, err := ToRaw(display, d)
			require.NoError(t, err)
			assert.Equal(t, 0, r.Cmp(back), "raw %s decimals %d", r, d)
		}
	}
}

func TestParseRaw(t *testing.T) {
	raw, err := ParseRaw(" 18446744073709551616 ")
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551616", raw.String())

	for _, s := range []string{"", "abc", "-5", "1.5"} {
		_, err := ParseRaw(s)
		assert.ErrorIs(t, err, ErrInvalidAmount, s)
	}
}

func TestDisplayOrZero(t *testing.T) {
	assert.True(t, DisplayOrZero(big.NewInt(-3), 9).Equal(decimal.Zero))
	assert.Equal(t, "0.03", DisplayOrZero(big.NewInt(30_000_000), 9).String())
}
