package convert

import (
	"perpmirror/internal/layout"
	"perpmirror/internal/model"
)

// ToState scales a raw state account into its domain snapshot.
func ToState(raw layout.State) model.State {
	return model.State{
		Admin:              raw.Admin,
		BumpSigner:         raw.BumpSigner,
		Keeper:             raw.Keeper,
		MarketSequence:     raw.MarketSequence,
		PoolSequence:       raw.PoolSequence,
		TradeTokenSequence: raw.TradeTokenSequence,

		MinOrderMarginUSD:         Usd(raw.MinOrderMarginUSD),
		MaxMaintenanceMarginRate:  Rate(uint64(raw.MaxMaintenanceMarginRate)),
		FundingFeeBaseRate:        Rate(raw.FundingFeeBaseRate),
		TradingFeePoolRewardsRate: Rate(uint64(raw.TradingFeePoolRewardsRate)),
		PoolRewardsIntervalLimit:  raw.PoolRewardsIntervalLimit,
	}
}
