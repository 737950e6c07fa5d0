package layout

import "github.com/gagliardetto/solana-go"

// Pool is the raw liquidity pool account.
type Pool struct {
	Name   [32]byte
	Key    solana.PublicKey
	Mint   solana.PublicKey
	Index  uint16
	Status uint8
	Stable bool

	Balance       PoolBalance
	StableBalance PoolBalance
	BorrowingFee  PoolBorrowingFee
	FeeReward     PoolFeeReward
	Config        PoolConfig

	TotalSupply         uint64
	Apr                 uint64
	InsuranceFundAmount uint64
}

// PoolBalance is a raw token holding block.
type PoolBalance struct {
	Amount           uint64
	HoldAmount       uint64
	UnsettleAmount   uint64
	SettleFundingFee int64
	LossAmount       uint64
}

// PoolBorrowingFee is the raw borrowing fee accumulator block.
type PoolBorrowingFee struct {
	TotalAmount         uint64
	TotalRealizedAmount uint64
	CumulativePerToken  uint64
	UpdatedAt           int64
}

// PoolFeeReward is the raw staking reward accumulator block.
type PoolFeeReward struct {
	Amount                  uint64
	UnsettleAmount          uint64
	CumulativePerStakeToken uint64
}

// PoolConfig is the raw per-pool staking limits.
type PoolConfig struct {
	MinStakeAmount         uint64
	MinUnStakeAmount       uint64
	PoolLiquidityLimit     uint64
	StakeFeeRate           uint32
	UnStakeFeeRate         uint32
	UnsettleMintRatioLimit uint32
	BorrowingInterestRate  uint64
}

// DecodePool decodes a raw pool account buffer.
func DecodePool(data []byte) (Pool, error) {
	return decode[Pool](data, "pool")
}
