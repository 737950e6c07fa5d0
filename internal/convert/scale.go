// Package convert turns raw fixed-point ledger structures into scaled
// decimal domain objects. All functions are pure; cross-entity references
// are resolved against the snapshot collections supplied by the caller and
// a failed resolution is a hard error, never a silent default.
package convert

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Fixed-point exponents used by the program. Which exponent applies depends
// on the field's semantic category, not on a single global constant.
const (
	RateExponent      = 5
	SmallRateExponent = 1
	UsdExponent       = 10
	PriceExponent     = 8
)

// Rate scales a percentage-like field.
func Rate(raw uint64) decimal.Decimal {
	return decimal.NewFromUint64(raw).Shift(-RateExponent)
}

// SignedRate scales a signed percentage-like field.
func SignedRate(raw int64) decimal.Decimal {
	return decimal.New(raw, -RateExponent)
}

// SmallRate scales a coarse per-unit accumulator field.
func SmallRate(raw uint64) decimal.Decimal {
	return decimal.NewFromUint64(raw).Shift(-SmallRateExponent)
}

// SignedSmallRateBig scales a signed 128-bit per-unit accumulator.
func SignedSmallRateBig(raw *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(raw, -SmallRateExponent)
}

// Usd scales a USD-denominated amount.
func Usd(raw uint64) decimal.Decimal {
	return decimal.NewFromUint64(raw).Shift(-UsdExponent)
}

// SignedUsd scales a signed USD-denominated amount.
func SignedUsd(raw int64) decimal.Decimal {
	return decimal.New(raw, -UsdExponent)
}

// Price scales a quote price field.
func Price(raw uint64) decimal.Decimal {
	return decimal.NewFromUint64(raw).Shift(-PriceExponent)
}

// Token scales a token amount by the mint's declared decimals.
func Token(raw uint64, decimals uint16) decimal.Decimal {
	return decimal.NewFromUint64(raw).Shift(-int32(decimals))
}

// SignedToken scales a signed token amount by the mint's declared decimals.
func SignedToken(raw int64, decimals uint16) decimal.Decimal {
	return decimal.New(raw, -int32(decimals))
}

// TokenBig scales a 128-bit token amount by the mint's declared decimals.
func TokenBig(raw *big.Int, decimals uint16) decimal.Decimal {
	return decimal.NewFromBigInt(raw, -int32(decimals))
}
