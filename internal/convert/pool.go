package convert

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"perpmirror/internal/layout"
	"perpmirror/internal/model"
)

// ToPool scales a raw pool account. Token amounts are scaled by the decimals
// of the pool mint's trade token, which must be resolvable among tokens.
func ToPool(raw layout.Pool, tokens []model.TradeToken) (model.Pool, error) {
	mintToken, err := FindTradeToken(tokens, raw.Mint)
	if err != nil {
		return model.Pool{}, err
	}
	decimals := mintToken.Decimals

	status, err := model.PoolStatusFromTag(raw.Status)
	if err != nil {
		return model.Pool{}, fmt.Errorf("pool %s: %w", raw.Key, err)
	}

	return model.Pool{
		Name:   SymbolString(raw.Name),
		Key:    raw.Key,
		Mint:   raw.Mint,
		Index:  raw.Index,
		Status: status,
		Stable: raw.Stable,

		Balance:       toPoolBalance(raw.Balance, decimals),
		StableBalance: toPoolBalance(raw.StableBalance, decimals),
		BorrowingFee: model.PoolBorrowingFee{
			TotalAmount:         Token(raw.BorrowingFee.TotalAmount, decimals),
			TotalRealizedAmount: Token(raw.BorrowingFee.TotalRealizedAmount, decimals),
			CumulativePerToken:  SmallRate(raw.BorrowingFee.CumulativePerToken),
			UpdatedAt:           raw.BorrowingFee.UpdatedAt,
		},
		FeeReward: model.PoolFeeReward{
			Amount:                  Token(raw.FeeReward.Amount, decimals),
			UnsettleAmount:          Token(raw.FeeReward.UnsettleAmount, decimals),
			CumulativePerStakeToken: SmallRate(raw.FeeReward.CumulativePerStakeToken),
		},
		Config: model.PoolConfig{
			MinStakeAmount:         Token(raw.Config.MinStakeAmount, decimals),
			MinUnStakeAmount:       Token(raw.Config.MinUnStakeAmount, decimals),
			PoolLiquidityLimit:     Rate(raw.Config.PoolLiquidityLimit),
			StakeFeeRate:           Rate(uint64(raw.Config.StakeFeeRate)),
			UnStakeFeeRate:         Rate(uint64(raw.Config.UnStakeFeeRate)),
			UnsettleMintRatioLimit: Rate(uint64(raw.Config.UnsettleMintRatioLimit)),
			BorrowingInterestRate:  Rate(raw.Config.BorrowingInterestRate),
		},

		TotalSupply:         Token(raw.TotalSupply, decimals),
		Apr:                 Rate(raw.Apr),
		InsuranceFundAmount: Token(raw.InsuranceFundAmount, decimals),
	}, nil
}

func toPoolBalance(raw layout.PoolBalance, decimals uint16) model.PoolBalance {
	return model.PoolBalance{
		Amount:           Token(raw.Amount, decimals),
		HoldAmount:       Token(raw.HoldAmount, decimals),
		UnsettleAmount:   Token(raw.UnsettleAmount, decimals),
		SettleFundingFee: SignedToken(raw.SettleFundingFee, decimals),
		LossAmount:       Token(raw.LossAmount, decimals),
	}
}

// FindPool resolves a pool by its account key among the loaded set.
func FindPool(pools []model.Pool, key solana.PublicKey) (model.Pool, error) {
	for _, p := range pools {
		if p.Key.Equals(key) {
			return p, nil
		}
	}
	return model.Pool{}, &ResolutionError{Kind: "pool", Reference: key.String()}
}

// FindPoolByIndex resolves a pool by its sequence index among the loaded set.
func FindPoolByIndex(pools []model.Pool, index uint16) (model.Pool, error) {
	for _, p := range pools {
		if p.Index == index {
			return p, nil
		}
	}
	return model.Pool{}, &ResolutionError{Kind: "pool", Reference: fmt.Sprintf("index %d", index)}
}
