package accounts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	mu         sync.Mutex
	buffers    map[solana.PublicKey][]byte
	slot       uint64
	err        error
	multiCalls int
	onMulti    func(keys []solana.PublicKey)
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{buffers: make(map[solana.PublicKey][]byte)}
}

func (f *fakeFetcher) set(key solana.PublicKey, buffer []byte, slot uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buffers[key] = buffer
	f.slot = slot
}

func (f *fakeFetcher) GetAccountInfo(_ context.Context, key solana.PublicKey) ([]byte, uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.buffers[key], f.slot, nil
}

func (f *fakeFetcher) GetMultipleAccounts(_ context.Context, keys []solana.PublicKey) ([][]byte, uint64, error) {
	f.mu.Lock()
	f.multiCalls++
	err := f.err
	slot := f.slot
	buffers := make([][]byte, len(keys))
	for i, key := range keys {
		buffers[i] = f.buffers[key]
	}
	hook := f.onMulti
	f.mu.Unlock()

	if hook != nil {
		hook(keys)
	}
	if err != nil {
		return nil, 0, err
	}
	return buffers, slot, nil
}

func testKey(t *testing.T) solana.PublicKey {
	t.Helper()
	account := solana.NewWallet()
	return account.PublicKey()
}

func TestLoaderFanOut(t *testing.T) {
	fetcher := newFakeFetcher()
	loader := NewBulkAccountLoader(fetcher, time.Second, zap.NewNop())

	key := testKey(t)
	fetcher.set(key, []byte{1, 2, 3}, 7)

	var got1, got2 []byte
	var slot1, slot2 uint64
	loader.AddAccount(key, func(buffer []byte, slot uint64) {
		got1, slot1 = buffer, slot
	})
	loader.AddAccount(key, func(buffer []byte, slot uint64) {
		got2, slot2 = buffer, slot
	})
	require.Equal(t, 2, loader.callbackCount(key))

	require.NoError(t, loader.Load(context.Background()))
	require.Equal(t, []byte{1, 2, 3}, got1)
	require.Equal(t, []byte{1, 2, 3}, got2)
	require.Equal(t, uint64(7), slot1)
	require.Equal(t, uint64(7), slot2)
}

func TestLoaderRemoveLastCallbackDropsAccount(t *testing.T) {
	fetcher := newFakeFetcher()
	loader := NewBulkAccountLoader(fetcher, time.Second, zap.NewNop())

	key := testKey(t)
	id := loader.AddAccount(key, func([]byte, uint64) {})
	require.Equal(t, 1, loader.callbackCount(key))

	loader.RemoveAccount(key, id)
	require.Equal(t, 0, loader.callbackCount(key))

	require.NoError(t, loader.Load(context.Background()))
	require.Equal(t, 0, fetcher.multiCalls)
}

func TestLoaderLateResultAfterRemovalDropped(t *testing.T) {
	fetcher := newFakeFetcher()
	loader := NewBulkAccountLoader(fetcher, time.Second, zap.NewNop())

	key := testKey(t)
	fetcher.set(key, []byte{9}, 3)

	delivered := false
	id := loader.AddAccount(key, func([]byte, uint64) {
		delivered = true
	})

	// Remove the subscription while the bulk read is in flight; the result
	// arriving afterwards must be dropped silently.
	fetcher.onMulti = func([]solana.PublicKey) {
		loader.RemoveAccount(key, id)
	}

	require.NoError(t, loader.Load(context.Background()))
	require.False(t, delivered)
}

func TestLoaderStaleSlotDropped(t *testing.T) {
	fetcher := newFakeFetcher()
	loader := NewBulkAccountLoader(fetcher, time.Second, zap.NewNop())

	key := testKey(t)
	var calls int
	loader.AddAccount(key, func([]byte, uint64) {
		calls++
	})

	fetcher.set(key, []byte{1}, 5)
	require.NoError(t, loader.Load(context.Background()))
	require.Equal(t, 1, calls)

	fetcher.set(key, []byte{2}, 3)
	require.NoError(t, loader.Load(context.Background()))
	require.Equal(t, 1, calls)

	fetcher.set(key, []byte{3}, 5)
	require.NoError(t, loader.Load(context.Background()))
	require.Equal(t, 2, calls)
}

func TestLoaderChunksLargeBatches(t *testing.T) {
	fetcher := newFakeFetcher()
	loader := NewBulkAccountLoader(fetcher, time.Second, zap.NewNop())

	for i := 0; i < fetchChunkSize+1; i++ {
		loader.AddAccount(solana.NewWallet().PublicKey(), func([]byte, uint64) {})
	}

	require.NoError(t, loader.Load(context.Background()))
	require.Equal(t, 2, fetcher.multiCalls)
}

func TestLoaderErrorCallbacks(t *testing.T) {
	fetcher := newFakeFetcher()
	loader := NewBulkAccountLoader(fetcher, time.Second, zap.NewNop())

	key := testKey(t)
	loader.AddAccount(key, func([]byte, uint64) {
		t.Fatal("update callback must not fire on a failed cycle")
	})

	var got error
	id := loader.AddErrorCallback(func(err error) {
		got = err
	})

	wantErr := fmt.Errorf("transport down")
	fetcher.mu.Lock()
	fetcher.err = wantErr
	fetcher.mu.Unlock()

	require.Error(t, loader.Load(context.Background()))
	require.True(t, errors.Is(got, wantErr))

	loader.RemoveErrorCallback(id)
	got = nil
	require.Error(t, loader.Load(context.Background()))
	require.NoError(t, got)
}

func TestLoaderStartStopPolling(t *testing.T) {
	fetcher := newFakeFetcher()
	loader := NewBulkAccountLoader(fetcher, 10*time.Millisecond, zap.NewNop())

	key := testKey(t)
	fetcher.set(key, []byte{1}, 1)

	updates := make(chan uint64, 16)
	loader.AddAccount(key, func(_ []byte, slot uint64) {
		select {
		case updates <- slot:
		default:
		}
	})

	ctx := context.Background()
	loader.StartPolling(ctx)
	loader.StartPolling(ctx) // second call is a no-op

	select {
	case <-updates:
	case <-time.After(2 * time.Second):
		t.Fatal("no update delivered by the poll loop")
	}

	loader.StopPolling()
	loader.StopPolling() // second call is a no-op
}
