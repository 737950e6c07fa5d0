package model

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// Market is the scaled snapshot of one perp market account.
type Market struct {
	Symbol          string
	Index           uint16
	PoolKey         solana.PublicKey
	PoolMint        solana.PublicKey
	IndexMintOracle solana.PublicKey
	StablePoolKey   solana.PublicKey
	StablePoolMint  solana.PublicKey

	Config            MarketConfig
	LongOpenInterest  MarketPosition
	ShortOpenInterest MarketPosition
	FundingFee        MarketFundingFee
}

// MarketConfig carries per-market trading limits.
type MarketConfig struct {
	MaxLeverage             decimal.Decimal
	TickSize                decimal.Decimal
	OpenFeeRate             decimal.Decimal
	CloseFeeRate            decimal.Decimal
	MaxLongOpenInterestCap  decimal.Decimal
	MaxShortOpenInterestCap decimal.Decimal
	MaxPoolLiquidityShare   decimal.Decimal
}

// MarketPosition aggregates one side's open interest. OpenInterest is in
// units of the market's pool token, EntryPrice in quote price units.
type MarketPosition struct {
	OpenInterest decimal.Decimal
	EntryPrice   decimal.Decimal
}

// MarketFundingFee carries the per-side funding accumulators.
type MarketFundingFee struct {
	LongRate           decimal.Decimal
	ShortRate          decimal.Decimal
	LongAmountPerSize  decimal.Decimal
	ShortAmountPerSize decimal.Decimal
	UpdatedAt          int64
}
