package layout

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// User is the raw user account. The vectors carry a borsh u32 length prefix.
type User struct {
	Key               solana.PublicKey
	Authority         solana.PublicKey
	NextOrderID       uint64
	NextLiquidationID uint64
	HoldUSD           uint64
	Status            uint8

	Tokens    []UserToken
	Stakes    []UserStake
	Positions []UserPosition
	Orders    []UserOrder
}

// UserToken is one raw token balance row.
type UserToken struct {
	Mint            solana.PublicKey
	Amount          uint64
	UsedAmount      uint64
	LiabilityAmount uint64
}

// UserStake is one raw pool stake row.
type UserStake struct {
	PoolKey solana.PublicKey
	Amount  uint64

	RewardsToken             solana.PublicKey
	RealizedRewardsAmount    uint64
	OpenRewardsPerStakeToken uint64
}

// UserPosition is one raw position row.
type UserPosition struct {
	Key         solana.PublicKey
	Symbol      [32]byte
	IsLong      bool
	CrossMargin bool
	MarginMint  solana.PublicKey
	IndexMint   solana.PublicKey
	Status      uint8

	PositionSize         uint64
	EntryPrice           uint64
	InitialMargin        uint64
	InitialMarginUSD     uint64
	MaintenanceMarginUSD uint64
	HoldPoolAmount       uint64

	OpenFee                  uint64
	OpenFeeUSD               uint64
	RealizedBorrowingFee     uint64
	RealizedBorrowingFeeUSD  uint64
	OpenBorrowingFeePerToken uint64
	RealizedFundingFee       int64
	RealizedFundingFeeUSD    int64
	OpenFundingFeePerSize    bin.Int128
	CloseFeeUSD              uint64

	UpdatedAt int64
}

// UserOrder is one raw order row.
type UserOrder struct {
	OrderID     uint64
	Symbol      [32]byte
	Side        uint8
	OrderType   uint8
	StopType    uint8
	Status      uint8
	CrossMargin bool
	MarginMint  solana.PublicKey

	Margin          uint64
	Leverage        uint32
	Size            uint64
	TriggerPrice    uint64
	AcceptablePrice uint64
	CreatedAt       int64
}

// DecodeUser decodes a raw user account buffer.
func DecodeUser(data []byte) (User, error) {
	return decode[User](data, "user")
}
