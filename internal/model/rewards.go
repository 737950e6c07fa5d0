package model

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// Rewards is the scaled snapshot of one pool's rewards account. Amounts are
// in units of the pool's mint.
type Rewards struct {
	PoolIndex uint16

	DaoRewardsVault       solana.PublicKey
	DaoTotalRewardsAmount decimal.Decimal

	PoolRewardsVault       solana.PublicKey
	PoolTotalRewardsAmount decimal.Decimal
}
