package accounts

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Fetcher is the narrow ledger read surface the loader needs. Implementations
// are bound to a commitment level chosen at construction. A nil buffer means
// the account does not exist at that commitment.
type Fetcher interface {
	GetAccountInfo(ctx context.Context, key solana.PublicKey) ([]byte, uint64, error)
	GetMultipleAccounts(ctx context.Context, keys []solana.PublicKey) ([][]byte, uint64, error)
}

// UpdateFunc receives the raw buffer and slot for one tracked account. The
// buffer may be nil when the account does not exist; callbacks must treat
// that as "no update", not an error.
type UpdateFunc func(buffer []byte, slot uint64)

// ErrorFunc receives transport-level failures of the bulk fetch.
type ErrorFunc func(err error)

// fetchChunkSize bounds how many accounts go into one multiple-accounts read.
const fetchChunkSize = 99

type trackedAccount struct {
	callbacks map[uint64]UpdateFunc
	buffer    []byte
	slot      uint64
}

// BulkAccountLoader amortizes many independent account subscriptions into
// periodic bulk reads and fans results out per logical subscription.
// AddAccount and RemoveAccount are safe to call concurrently with the poll
// loop.
type BulkAccountLoader struct {
	fetcher  Fetcher
	interval time.Duration
	log      *zap.Logger

	mu             sync.Mutex
	accounts       map[solana.PublicKey]*trackedAccount
	errorCallbacks map[uint64]ErrorFunc
	nextID         uint64

	polling  atomic.Bool
	inFlight atomic.Bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewBulkAccountLoader builds a loader polling at the given interval.
func NewBulkAccountLoader(fetcher Fetcher, interval time.Duration, logger *zap.Logger) *BulkAccountLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &BulkAccountLoader{
		fetcher:        fetcher,
		interval:       interval,
		log:            logger,
		accounts:       make(map[solana.PublicKey]*trackedAccount),
		errorCallbacks: make(map[uint64]ErrorFunc),
	}
}

// AddAccount registers interest in one account. If the account is already
// tracked the existing tracking slot is reused and another callback is added.
// The returned id removes exactly this callback.
func (l *BulkAccountLoader) AddAccount(key solana.PublicKey, onUpdate UpdateFunc) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	ta, ok := l.accounts[key]
	if !ok {
		ta = &trackedAccount{callbacks: make(map[uint64]UpdateFunc)}
		l.accounts[key] = ta
	}
	l.nextID++
	ta.callbacks[l.nextID] = onUpdate
	return l.nextID
}

// RemoveAccount removes one callback. The account leaves the poll batch once
// its last callback is gone.
func (l *BulkAccountLoader) RemoveAccount(key solana.PublicKey, callbackID uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ta, ok := l.accounts[key]
	if !ok {
		return
	}
	delete(ta.callbacks, callbackID)
	if len(ta.callbacks) == 0 {
		delete(l.accounts, key)
	}
}

// AddErrorCallback registers a callback for transport-level failures,
// decoupled from per-account delivery.
func (l *BulkAccountLoader) AddErrorCallback(onError ErrorFunc) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	l.errorCallbacks[l.nextID] = onError
	return l.nextID
}

// RemoveErrorCallback removes a previously registered error callback.
func (l *BulkAccountLoader) RemoveErrorCallback(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.errorCallbacks, id)
}

// StartPolling launches the poll loop. Calling it again while running is a
// no-op.
func (l *BulkAccountLoader) StartPolling(ctx context.Context) {
	if !l.polling.CompareAndSwap(false, true) {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.wg.Add(1)
	go l.run(ctx)
	l.log.Info("account poll loop started", zap.Duration("interval", l.interval))
}

// StopPolling stops the poll loop and waits for the current cycle to finish.
func (l *BulkAccountLoader) StopPolling() {
	if !l.polling.CompareAndSwap(true, false) {
		return
	}
	l.cancel()
	l.wg.Wait()
	l.log.Info("account poll loop stopped")
}

func (l *BulkAccountLoader) run(ctx context.Context) {
	defer l.wg.Done()

	backoffCfg := backoff.NewExponentialBackOff()
	backoffCfg.InitialInterval = l.interval
	backoffCfg.MaxInterval = 10 * l.interval

	if err := l.Load(ctx); err != nil && ctx.Err() != nil {
		return
	}

	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := l.Load(ctx); err != nil {
			// Stretch the next cycle so a failing transport is not hammered.
			timer.Reset(l.interval + backoffCfg.NextBackOff())
			continue
		}
		backoffCfg.Reset()
		timer.Reset(l.interval)
	}
}

// Load performs one bulk fetch cycle over the currently tracked accounts. At
// most one cycle runs at a time; a call overlapping a running cycle returns
// immediately.
func (l *BulkAccountLoader) Load(ctx context.Context) error {
	if !l.inFlight.CompareAndSwap(false, true) {
		return nil
	}
	defer l.inFlight.Store(false)

	keys := l.trackedKeys()
	for start := 0; start < len(keys); start += fetchChunkSize {
		end := start + fetchChunkSize
		if end > len(keys) {
			end = len(keys)
		}
		chunk := keys[start:end]

		buffers, slot, err := l.fetcher.GetMultipleAccounts(ctx, chunk)
		if err != nil {
			l.log.Warn("bulk account fetch failed", zap.Int("accounts", len(chunk)), zap.Error(err))
			l.notifyError(err)
			return err
		}
		for i, key := range chunk {
			l.handleAccount(key, buffers[i], slot)
		}
	}
	return nil
}

// FetchAccount performs one direct single-account read, bypassing the batch.
func (l *BulkAccountLoader) FetchAccount(ctx context.Context, key solana.PublicKey) ([]byte, uint64, error) {
	return l.fetcher.GetAccountInfo(ctx, key)
}

func (l *BulkAccountLoader) trackedKeys() []solana.PublicKey {
	l.mu.Lock()
	defer l.mu.Unlock()

	keys := make([]solana.PublicKey, 0, len(l.accounts))
	for key := range l.accounts {
		keys = append(keys, key)
	}
	return keys
}

func (l *BulkAccountLoader) handleAccount(key solana.PublicKey, buffer []byte, slot uint64) {
	l.mu.Lock()
	ta, ok := l.accounts[key]
	if !ok {
		// Removed while the fetch was in flight; nobody is left to notify.
		l.mu.Unlock()
		return
	}
	if slot < ta.slot {
		l.mu.Unlock()
		return
	}
	ta.buffer = buffer
	ta.slot = slot
	callbacks := make([]UpdateFunc, 0, len(ta.callbacks))
	for _, cb := range ta.callbacks {
		callbacks = append(callbacks, cb)
	}
	l.mu.Unlock()

	for _, cb := range callbacks {
		cb(buffer, slot)
	}
}

func (l *BulkAccountLoader) notifyError(err error) {
	l.mu.Lock()
	callbacks := make([]ErrorFunc, 0, len(l.errorCallbacks))
	for _, cb := range l.errorCallbacks {
		callbacks = append(callbacks, cb)
	}
	l.mu.Unlock()

	for _, cb := range callbacks {
		cb(err)
	}
}

func (l *BulkAccountLoader) callbackCount(key solana.PublicKey) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	ta, ok := l.accounts[key]
	if !ok {
		return 0
	}
	return len(ta.callbacks)
}
