package convert

import (
	"errors"
	"math/big"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"perpmirror/internal/layout"
	"perpmirror/internal/model"
)

func symbol(s string) [32]byte {
	var out [32]byte
	copy(out[:], s)
	return out
}

func TestScaleFunctions(t *testing.T) {
	cases := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"rate", Rate(12_500), "0.125"},
		{"signed rate", SignedRate(-12_500), "-0.125"},
		{"small rate", SmallRate(15), "1.5"},
		{"usd", Usd(25_000_000_000), "2.5"},
		{"signed usd", SignedUsd(-25_000_000_000), "-2.5"},
		{"price", Price(6_512_345_678), "65.12345678"},
		{"token six decimals", Token(1_500_000, 6), "1.5"},
		{"token nine decimals", Token(1_500_000, 9), "0.0015"},
		{"signed token", SignedToken(-1_500_000, 6), "-1.5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, tc.got.Equal(decimal.RequireFromString(tc.want)), tc.got.String())
		})
	}
}

func TestScaleRoundTrip(t *testing.T) {
	raws := []uint64{0, 1, 999, 1_234_567_890_123}

	for _, raw := range raws {
		scaled := Usd(raw)
		back := scaled.Shift(UsdExponent)
		require.True(t, back.Equal(decimal.NewFromUint64(raw)), back.String())

		scaled = Token(raw, 9)
		back = scaled.Shift(9)
		require.True(t, back.Equal(decimal.NewFromUint64(raw)), back.String())
	}
}

func TestBigScaleFunctions(t *testing.T) {
	raw, ok := new(big.Int).SetString("123456789012345678901", 10)
	require.True(t, ok)

	got := TokenBig(raw, 9)
	require.True(t, got.Equal(decimal.RequireFromString("123456789012.345678901")), got.String())

	neg := new(big.Int).Neg(raw)
	signed := SignedSmallRateBig(neg)
	require.True(t, signed.Equal(decimal.RequireFromString("-12345678901234567890.1")), signed.String())
}

func TestSymbolString(t *testing.T) {
	require.Equal(t, "BTCUSD", SymbolString(symbol("BTCUSD")))
	require.Equal(t, "", SymbolString([32]byte{}))

	full := [32]byte{}
	for i := range full {
		full[i] = 'A'
	}
	require.Len(t, SymbolString(full), 32)
}

func TestToTradeToken(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	token := ToTradeToken(layout.TradeToken{
		Mint:              mint,
		Symbol:            symbol("SOL"),
		Index:             2,
		Decimals:          9,
		Discount:          95_000,
		LiquidationFactor: 5_000,
		TotalLiability:    1_000_000_000,
		TotalAmount:       2_500_000_000,
	})

	require.Equal(t, mint, token.Mint)
	require.Equal(t, "SOL", token.Symbol)
	require.Equal(t, uint16(9), token.Decimals)
	require.True(t, token.Discount.Equal(decimal.RequireFromString("0.95")))
	require.True(t, token.LiquidationFactor.Equal(decimal.RequireFromString("0.05")))
	require.True(t, token.TotalLiability.Equal(decimal.NewFromInt(1)))
	require.True(t, token.TotalAmount.Equal(decimal.RequireFromString("2.5")))
}

func TestToPoolResolvesMintDecimals(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	tokens := []model.TradeToken{{Mint: mint, Decimals: 6}}

	pool, err := ToPool(layout.Pool{
		Name:  symbol("SOL-LP"),
		Key:   solana.NewWallet().PublicKey(),
		Mint:  mint,
		Index: 1,
		Balance: layout.PoolBalance{
			Amount:           5_000_000,
			SettleFundingFee: -250_000,
		},
		TotalSupply: 10_000_000,
	}, tokens)
	require.NoError(t, err)

	require.Equal(t, "SOL-LP", pool.Name)
	require.True(t, pool.Balance.Amount.Equal(decimal.NewFromInt(5)), pool.Balance.Amount.String())
	require.True(t, pool.Balance.SettleFundingFee.Equal(decimal.RequireFromString("-0.25")))
	require.True(t, pool.TotalSupply.Equal(decimal.NewFromInt(10)))
}

func TestToPoolUnknownMint(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	_, err := ToPool(layout.Pool{Mint: mint}, nil)

	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)
	require.Equal(t, "trade token", resolution.Kind)
	require.Equal(t, mint.String(), resolution.Reference)
}

func TestToPoolUnknownStatusTag(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	tokens := []model.TradeToken{{Mint: mint, Decimals: 6}}

	_, err := ToPool(layout.Pool{Mint: mint, Status: 99}, tokens)
	require.Error(t, err)
	var resolution *ResolutionError
	require.False(t, errors.As(err, &resolution))
}

func TestFindPoolByIndex(t *testing.T) {
	pools := []model.Pool{{Index: 0}, {Index: 2}}

	pool, err := FindPoolByIndex(pools, 2)
	require.NoError(t, err)
	require.Equal(t, uint16(2), pool.Index)

	_, err = FindPoolByIndex(pools, 1)
	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)
	require.Equal(t, "pool", resolution.Kind)
	require.Equal(t, "index 1", resolution.Reference)
}

func TestEnumUnknownTags(t *testing.T) {
	_, err := model.OrderSideFromTag(9)
	require.Error(t, err)
	_, err = model.OrderTypeFromTag(9)
	require.Error(t, err)
	_, err = model.PositionStatusFromTag(9)
	require.Error(t, err)
	_, err = model.PoolStatusFromTag(9)
	require.Error(t, err)
	_, err = model.UserStatusFromTag(9)
	require.Error(t, err)
	_, err = model.OrderStatusFromTag(9)
	require.Error(t, err)
	_, err = model.StopTypeFromTag(9)
	require.Error(t, err)
}

func TestToUserAbortsOnUnknownMint(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	raw := layout.User{
		Key:       solana.NewWallet().PublicKey(),
		Authority: solana.NewWallet().PublicKey(),
		Tokens:    []layout.UserToken{{Mint: mint, Amount: 100}},
	}

	_, err := ToUser(raw, nil, nil)
	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)
	require.Equal(t, mint.String(), resolution.Reference)
}
