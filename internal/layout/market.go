package layout

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Market is the raw perp market account.
type Market struct {
	Symbol          [32]byte
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

// MarketConfig is the raw per-market trading limits.
type MarketConfig struct {
	MaxLeverage               uint32
	TickSize                  uint64
	OpenFeeRate               uint64
	CloseFeeRate              uint64
	MaxLongOpenInterestCap    uint64
	MaxShortOpenInterestCap   uint64
	MaxPoolLiquidityShareRate uint32
}

// MarketPosition is one side's raw open interest. OpenInterest is a token
// amount in the pool mint's native units.
type MarketPosition struct {
	OpenInterest bin.Uint128
	EntryPrice   uint64
}

// MarketFundingFee is the raw funding accumulator block.
type MarketFundingFee struct {
	LongRate           int64
	ShortRate          int64
	LongAmountPerSize  bin.Int128
	ShortAmountPerSize bin.Int128
	UpdatedAt          int64
}

// DecodeMarket decodes a raw market account buffer.
func DecodeMarket(data []byte) (Market, error) {
	return decode[Market](data, "market")
}
