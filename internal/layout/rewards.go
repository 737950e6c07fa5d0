package layout

import "github.com/gagliardetto/solana-go"

// Rewards is the raw per-pool rewards account.
type Rewards struct {
	PoolIndex uint16

	DaoRewardsVault       solana.PublicKey
	DaoTotalRewardsAmount uint64

	PoolRewardsVault       solana.PublicKey
	PoolTotalRewardsAmount uint64
}

// DecodeRewards decodes a raw rewards account buffer.
func DecodeRewards(data []byte) (Rewards, error) {
	return decode[Rewards](data, "rewards")
}
