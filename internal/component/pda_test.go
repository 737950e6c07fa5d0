package component

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestAddressDerivationIsDeterministic(t *testing.T) {
	programID := solana.NewWallet().PublicKey()

	first, err := StateAddress(programID)
	require.NoError(t, err)
	second, err := StateAddress(programID)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestAddressDerivationVariesByIndex(t *testing.T) {
	programID := solana.NewWallet().PublicKey()

	pool0, err := PoolAddress(programID, 0)
	require.NoError(t, err)
	pool1, err := PoolAddress(programID, 1)
	require.NoError(t, err)
	require.NotEqual(t, pool0, pool1)

	market0, err := MarketAddress(programID, 0)
	require.NoError(t, err)
	require.NotEqual(t, pool0, market0)

	token0, err := TradeTokenAddress(programID, 0)
	require.NoError(t, err)
	rewards0, err := RewardsAddress(programID, 0)
	require.NoError(t, err)
	require.NotEqual(t, token0, rewards0)
}

func TestUserAddressVariesByAuthority(t *testing.T) {
	programID := solana.NewWallet().PublicKey()

	user1, err := UserAddress(programID, solana.NewWallet().PublicKey())
	require.NoError(t, err)
	user2, err := UserAddress(programID, solana.NewWallet().PublicKey())
	require.NoError(t, err)
	require.NotEqual(t, user1, user2)
}

func TestSubscriberSetPreservesInsertionOrder(t *testing.T) {
	set := newSubscriberSet[int]()

	keys := make([]solana.PublicKey, 4)
	for i := range keys {
		keys[i] = solana.NewWallet().PublicKey()
		set.add(keys[i], nil)
	}
	// Duplicate add is ignored.
	set.add(keys[0], nil)

	require.Len(t, set.all(), 4)
	for _, key := range keys {
		require.True(t, set.has(key))
	}
}
