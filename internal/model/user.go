package model

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// User is the scaled snapshot of one user account, including its token
// balances, stakes, positions and orders.
type User struct {
	Key               solana.PublicKey
	Authority         solana.PublicKey
	NextOrderID       uint64
	NextLiquidationID uint64
	Status            UserStatus
	HoldUSD           decimal.Decimal

	Tokens    []UserToken
	Stakes    []UserStake
	Positions []UserPosition
	Orders    []UserOrder
}

// UserToken is one token balance row. Amounts are in units of the mint.
type UserToken struct {
	Mint            solana.PublicKey
	Amount          decimal.Decimal
	UsedAmount      decimal.Decimal
	LiabilityAmount decimal.Decimal
}

// UserStake is one pool stake row. Amount is in units of the pool's mint.
type UserStake struct {
	PoolKey solana.PublicKey
	Amount  decimal.Decimal

	RewardsToken             solana.PublicKey
	RealizedRewardsAmount    decimal.Decimal
	OpenRewardsPerStakeToken decimal.Decimal
}

// UserPosition is one open position row.
type UserPosition struct {
	Key         solana.PublicKey
	Symbol      string
	IsLong      bool
	CrossMargin bool
	MarginMint  solana.PublicKey
	IndexMint   solana.PublicKey
	Status      PositionStatus

	PositionSize         decimal.Decimal
	EntryPrice           decimal.Decimal
	InitialMargin        decimal.Decimal
	InitialMarginUSD     decimal.Decimal
	MaintenanceMarginUSD decimal.Decimal
	HoldPoolAmount       decimal.Decimal

	OpenFee                  decimal.Decimal
	OpenFeeUSD               decimal.Decimal
	RealizedBorrowingFee     decimal.Decimal
	RealizedBorrowingFeeUSD  decimal.Decimal
	OpenBorrowingFeePerToken decimal.Decimal
	RealizedFundingFee       decimal.Decimal
	RealizedFundingFeeUSD    decimal.Decimal
	OpenFundingFeePerSize    decimal.Decimal
	CloseFeeUSD              decimal.Decimal

	UpdatedAt int64
}

// UserOrder is one pending order row.
type UserOrder struct {
	OrderID     uint64
	Symbol      string
	Side        OrderSide
	Type        OrderType
	StopType    StopType
	Status      OrderStatus
	CrossMargin bool
	MarginMint  solana.PublicKey

	Margin          decimal.Decimal
	Leverage        decimal.Decimal
	Size            decimal.Decimal
	TriggerPrice    decimal.Decimal
	AcceptablePrice decimal.Decimal
	CreatedAt       int64
}
