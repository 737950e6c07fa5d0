package component

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"perpmirror/internal/accounts"
	"perpmirror/internal/layout"
	"perpmirror/internal/model"
)

// ledgerStub serves borsh-encoded accounts keyed by address, mimicking the
// positional semantics of the bulk read.
type ledgerStub struct {
	mu       sync.Mutex
	accounts map[solana.PublicKey][]byte
	slot     uint64
}

func newLedgerStub() *ledgerStub {
	return &ledgerStub{accounts: make(map[solana.PublicKey][]byte), slot: 1}
}

func (l *ledgerStub) put(t *testing.T, key solana.PublicKey, v interface{}) {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(make([]byte, layout.DiscriminatorLen))
	require.NoError(t, bin.NewBorshEncoder(&buf).Encode(v))

	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[key] = buf.Bytes()
	l.slot++
}

func (l *ledgerStub) GetAccountInfo(_ context.Context, key solana.PublicKey) ([]byte, uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts[key], l.slot, nil
}

func (l *ledgerStub) GetMultipleAccounts(_ context.Context, keys []solana.PublicKey) ([][]byte, uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	buffers := make([][]byte, len(keys))
	for i, key := range keys {
		buffers[i] = l.accounts[key]
	}
	return buffers, l.slot, nil
}

func seedProgram(t *testing.T, stub *ledgerStub, programID solana.PublicKey) (mint solana.PublicKey) {
	t.Helper()

	stateAddr, err := StateAddress(programID)
	require.NoError(t, err)
	stub.put(t, stateAddr, layout.State{
		TradeTokenSequence: 1,
		PoolSequence:       1,
		MarketSequence:     1,
	})

	mint = solana.NewWallet().PublicKey()
	oracleFeed := solana.NewWallet().PublicKey()

	tokenAddr, err := TradeTokenAddress(programID, 0)
	require.NoError(t, err)
	token := layout.TradeToken{
		Mint:     mint,
		Oracle:   oracleFeed,
		Index:    0,
		Decimals: 6,
	}
	copy(token.Symbol[:], "USDC")
	stub.put(t, tokenAddr, token)

	poolAddr, err := PoolAddress(programID, 0)
	require.NoError(t, err)
	pool := layout.Pool{
		Key:   poolAddr,
		Mint:  mint,
		Index: 0,
		Balance: layout.PoolBalance{
			Amount: 5_000_000,
		},
	}
	copy(pool.Name[:], "USDC-LP")
	stub.put(t, poolAddr, pool)

	marketAddr, err := MarketAddress(programID, 0)
	require.NoError(t, err)
	market := layout.Market{
		Index:    0,
		PoolKey:  poolAddr,
		PoolMint: mint,
	}
	copy(market.Symbol[:], "SOLUSDC")
	stub.put(t, marketAddr, market)

	stub.put(t, oracleFeed, layout.PriceUpdate{
		Exponent:         -8,
		NumPublishers:    3,
		MaxNumPublishers: 3,
		Price:            100_000_000,
		PublishSlot:      9,
	})

	return mint
}

func newTestMirror(t *testing.T, stub *ledgerStub, programID solana.PublicKey, opts MirrorOptions) *Mirror {
	t.Helper()
	loader := accounts.NewBulkAccountLoader(stub, time.Second, zap.NewNop())
	mirror, err := NewMirror(programID, loader, opts, zap.NewNop())
	require.NoError(t, err)
	return mirror
}

func TestMirrorSubscribeDiscoversAccounts(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	stub := newLedgerStub()
	seedProgram(t, stub, programID)

	mirror := newTestMirror(t, stub, programID, MirrorOptions{})
	ctx := context.Background()
	require.NoError(t, mirror.Subscribe(ctx))
	defer mirror.Unsubscribe()

	st, err := mirror.State().Get(ctx, false)
	require.NoError(t, err)
	require.Equal(t, uint16(1), st.TradeTokenSequence)

	tokens, err := mirror.TradeTokens().All(ctx, false)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	require.Equal(t, "USDC", tokens[0].Symbol)

	pools, err := mirror.Pools().All(ctx, false)
	require.NoError(t, err)
	require.Len(t, pools, 1)
	require.Equal(t, "USDC-LP", pools[0].Name)
	require.True(t, pools[0].Balance.Amount.Equal(decimal.NewFromInt(5)), pools[0].Balance.Amount.String())

	markets, err := mirror.Markets().All(ctx, false)
	require.NoError(t, err)
	require.Len(t, markets, 1)
	require.Equal(t, "SOLUSDC", markets[0].Symbol)

	feeds := mirror.Oracles().Feeds()
	require.Len(t, feeds, 1)

	sample, err := mirror.Oracles().Price(feeds[0])
	require.NoError(t, err)
	require.True(t, sample.Price.Equal(decimal.NewFromInt(1)), sample.Price.String())
	require.Equal(t, uint64(9), sample.Slot)
}

func TestMirrorSkipsMissingAccounts(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	stub := newLedgerStub()

	// Sequence says two pools but only pool 0 exists on the ledger yet.
	stateAddr, err := StateAddress(programID)
	require.NoError(t, err)
	stub.put(t, stateAddr, layout.State{PoolSequence: 2, TradeTokenSequence: 1})

	mint := solana.NewWallet().PublicKey()
	tokenAddr, err := TradeTokenAddress(programID, 0)
	require.NoError(t, err)
	stub.put(t, tokenAddr, layout.TradeToken{Mint: mint, Decimals: 6})

	poolAddr, err := PoolAddress(programID, 0)
	require.NoError(t, err)
	stub.put(t, poolAddr, layout.Pool{Key: poolAddr, Mint: mint})

	mirror := newTestMirror(t, stub, programID, MirrorOptions{})
	ctx := context.Background()
	require.NoError(t, mirror.Subscribe(ctx))
	defer mirror.Unsubscribe()

	pools, err := mirror.Pools().All(ctx, false)
	require.NoError(t, err)
	require.Len(t, pools, 1)
}

func TestMirrorTracksUsers(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	stub := newLedgerStub()
	mint := seedProgram(t, stub, programID)

	authority := solana.NewWallet().PublicKey()
	userAddr, err := UserAddress(programID, authority)
	require.NoError(t, err)
	stub.put(t, userAddr, layout.User{
		Key:       userAddr,
		Authority: authority,
		HoldUSD:   25_000_000_000,
		Tokens: []layout.UserToken{
			{Mint: mint, Amount: 1_500_000},
		},
	})

	mirror := newTestMirror(t, stub, programID, MirrorOptions{
		Authorities: []solana.PublicKey{authority},
	})
	ctx := context.Background()
	require.NoError(t, mirror.Subscribe(ctx))
	defer mirror.Unsubscribe()

	user, err := mirror.Users().GetByAuthority(ctx, authority, false)
	require.NoError(t, err)
	require.Equal(t, authority, user.Authority)
	require.Equal(t, model.UserStatusNormal, user.Status)
	require.True(t, user.HoldUSD.Equal(decimal.RequireFromString("2.5")), user.HoldUSD.String())
	require.Len(t, user.Tokens, 1)
	require.True(t, user.Tokens[0].Amount.Equal(decimal.RequireFromString("1.5")))

	users, err := mirror.Users().All(ctx, false)
	require.NoError(t, err)
	require.Len(t, users, 1)
}
