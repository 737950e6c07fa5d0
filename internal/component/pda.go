// Package component exposes per-entity facades over the subscriber core:
// each facade owns a map of subscribers keyed by derived account address and
// converts raw snapshots to scaled domain objects on read.
package component

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

func indexSeed(index uint16) []byte {
	seed := make([]byte, 2)
	binary.LittleEndian.PutUint16(seed, index)
	return seed
}

// StateAddress derives the program's global state account address.
func StateAddress(programID solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{[]byte("state")}, programID)
	return addr, err
}

// MarketAddress derives the market account address for one sequence index.
func MarketAddress(programID solana.PublicKey, index uint16) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{[]byte("market"), indexSeed(index)}, programID)
	return addr, err
}

// PoolAddress derives the pool account address for one sequence index.
func PoolAddress(programID solana.PublicKey, index uint16) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{[]byte("pool"), indexSeed(index)}, programID)
	return addr, err
}

// TradeTokenAddress derives the trade token account address for one sequence
// index.
func TradeTokenAddress(programID solana.PublicKey, index uint16) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{[]byte("trade_token"), indexSeed(index)}, programID)
	return addr, err
}

// RewardsAddress derives the rewards account address for one pool index.
func RewardsAddress(programID solana.PublicKey, poolIndex uint16) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{[]byte("rewards"), indexSeed(poolIndex)}, programID)
	return addr, err
}

// UserAddress derives the user account address for one wallet authority.
func UserAddress(programID, authority solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress([][]byte{[]byte("user"), authority.Bytes()}, programID)
	return addr, err
}
