package convert

import (
	"perpmirror/internal/layout"
	"perpmirror/internal/model"
)

// ToRewards scales a raw rewards account. Amounts are denominated in the
// owning pool's mint, so the pool is resolved by index and its mint's trade
// token supplies the decimals.
func ToRewards(raw layout.Rewards, pools []model.Pool, tokens []model.TradeToken) (model.Rewards, error) {
	pool, err := FindPoolByIndex(pools, raw.PoolIndex)
	if err != nil {
		return model.Rewards{}, err
	}
	mintToken, err := FindTradeToken(tokens, pool.Mint)
	if err != nil {
		return model.Rewards{}, err
	}

	return model.Rewards{
		PoolIndex: raw.PoolIndex,

		DaoRewardsVault:       raw.DaoRewardsVault,
		DaoTotalRewardsAmount: Token(raw.DaoTotalRewardsAmount, mintToken.Decimals),

		PoolRewardsVault:       raw.PoolRewardsVault,
		PoolTotalRewardsAmount: Token(raw.PoolTotalRewardsAmount, mintToken.Decimals),
	}, nil
}
