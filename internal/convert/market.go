package convert

import (
	"perpmirror/internal/layout"
	"perpmirror/internal/model"
)

// ToMarket scales a raw market account. Open interest token amounts are
// scaled by the decimals of the pool mint's trade token, which must be
// resolvable among tokens.
func ToMarket(raw layout.Market, tokens []model.TradeToken) (model.Market, error) {
	poolToken, err := FindTradeToken(tokens, raw.PoolMint)
	if err != nil {
		return model.Market{}, err
	}

	return model.Market{
		Symbol:          SymbolString(raw.Symbol),
		Index:           raw.Index,
		PoolKey:         raw.PoolKey,
		PoolMint:        raw.PoolMint,
		IndexMintOracle: raw.IndexMintOracle,
		StablePoolKey:   raw.StablePoolKey,
		StablePoolMint:  raw.StablePoolMint,

		Config: model.MarketConfig{
			MaxLeverage:             Rate(uint64(raw.Config.MaxLeverage)),
			TickSize:                Price(raw.Config.TickSize),
			OpenFeeRate:             Rate(raw.Config.OpenFeeRate),
			CloseFeeRate:            Rate(raw.Config.CloseFeeRate),
			MaxLongOpenInterestCap:  Usd(raw.Config.MaxLongOpenInterestCap),
			MaxShortOpenInterestCap: Usd(raw.Config.MaxShortOpenInterestCap),
			MaxPoolLiquidityShare:   Rate(uint64(raw.Config.MaxPoolLiquidityShareRate)),
		},
		LongOpenInterest: model.MarketPosition{
			OpenInterest: TokenBig(raw.LongOpenInterest.OpenInterest.BigInt(), poolToken.Decimals),
			EntryPrice:   Price(raw.LongOpenInterest.EntryPrice),
		},
		ShortOpenInterest: model.MarketPosition{
			OpenInterest: TokenBig(raw.ShortOpenInterest.OpenInterest.BigInt(), poolToken.Decimals),
			EntryPrice:   Price(raw.ShortOpenInterest.EntryPrice),
		},
		FundingFee: model.MarketFundingFee{
			LongRate:           SignedRate(raw.FundingFee.LongRate),
			ShortRate:          SignedRate(raw.FundingFee.ShortRate),
			LongAmountPerSize:  SignedSmallRateBig(raw.FundingFee.LongAmountPerSize.BigInt()),
			ShortAmountPerSize: SignedSmallRateBig(raw.FundingFee.ShortAmountPerSize.BigInt()),
			UpdatedAt:          raw.FundingFee.UpdatedAt,
		},
	}, nil
}
