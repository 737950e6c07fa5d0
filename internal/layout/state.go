package layout

import "github.com/gagliardetto/solana-go"

// State is the raw global state account.
type State struct {
	Admin              solana.PublicKey
	BumpSigner         solana.PublicKey
	Keeper             solana.PublicKey
	MarketSequence     uint16
	PoolSequence       uint16
	TradeTokenSequence uint16

	MinOrderMarginUSD         uint64
	MaxMaintenanceMarginRate  uint32
	FundingFeeBaseRate        uint64
	TradingFeePoolRewardsRate uint32
	PoolRewardsIntervalLimit  uint64
}

// DecodeState decodes a raw state account buffer.
func DecodeState(data []byte) (State, error) {
	return decode[State](data, "state")
}
