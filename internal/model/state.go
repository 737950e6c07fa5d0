package model

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// State is the scaled snapshot of the program's global state account.
// Sequence fields drive how many market, pool and trade token accounts exist.
type State struct {
	Admin              solana.PublicKey
	BumpSigner         solana.PublicKey
	Keeper             solana.PublicKey
	MarketSequence     uint16
	PoolSequence       uint16
	TradeTokenSequence uint16

	MinOrderMarginUSD         decimal.Decimal
	MaxMaintenanceMarginRate  decimal.Decimal
	FundingFeeBaseRate        decimal.Decimal
	TradingFeePoolRewardsRate decimal.Decimal
	PoolRewardsIntervalLimit  uint64
}
