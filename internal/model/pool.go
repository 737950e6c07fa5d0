package model

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// Pool is the scaled snapshot of one liquidity pool account. Token amounts
// are expressed in units of the pool's mint.
type Pool struct {
	Name   string
	Key    solana.PublicKey
	Mint   solana.PublicKey
	Index  uint16
	Status PoolStatus
	Stable bool

	Balance       PoolBalance
	StableBalance PoolBalance
	BorrowingFee  PoolBorrowingFee
	FeeReward     PoolFeeReward
	Config        PoolConfig

	TotalSupply         decimal.Decimal
	Apr                 decimal.Decimal
	InsuranceFundAmount decimal.Decimal
}

// PoolBalance tracks a pool's token holdings.
type PoolBalance struct {
	Amount           decimal.Decimal
	HoldAmount       decimal.Decimal
	UnsettleAmount   decimal.Decimal
	SettleFundingFee decimal.Decimal
	LossAmount       decimal.Decimal
}

// PoolBorrowingFee carries the borrowing fee accumulators.
type PoolBorrowingFee struct {
	TotalAmount         decimal.Decimal
	TotalRealizedAmount decimal.Decimal
	CumulativePerToken  decimal.Decimal
	UpdatedAt           int64
}

// PoolFeeReward carries staking reward accumulators.
type PoolFeeReward struct {
	Amount                  decimal.Decimal
	UnsettleAmount          decimal.Decimal
	CumulativePerStakeToken decimal.Decimal
}

// PoolConfig carries per-pool staking limits.
type PoolConfig struct {
	MinStakeAmount         decimal.Decimal
	MinUnStakeAmount       decimal.Decimal
	PoolLiquidityLimit     decimal.Decimal
	StakeFeeRate           decimal.Decimal
	UnStakeFeeRate         decimal.Decimal
	UnsettleMintRatioLimit decimal.Decimal
	BorrowingInterestRate  decimal.Decimal
}
