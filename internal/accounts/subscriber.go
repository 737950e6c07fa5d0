package accounts

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// DecodeFunc maps a raw account buffer to a typed structure.
type DecodeFunc[T any] func(data []byte) (T, error)

// SubscriberOption customizes a Subscriber.
type SubscriberOption[T any] func(*Subscriber[T])

// WithUpdateHook installs a hook invoked after each accepted cache update
// with the new value and its slot. The hook runs outside the subscriber's
// lock.
func WithUpdateHook[T any](hook func(data T, slot uint64)) SubscriberOption[T] {
	return func(s *Subscriber[T]) {
		s.hook = hook
	}
}

// Subscriber owns one account identity, registers with the loader, and
// exposes a slot-gated cached value. The cache holds the highest slot ever
// observed; an update carrying the same slot as the cache overwrites it,
// a lower slot is discarded.
type Subscriber[T any] struct {
	kind   string
	key    solana.PublicKey
	loader *BulkAccountLoader
	decode DecodeFunc[T]
	hook   func(T, uint64)
	log    *zap.Logger

	mu              sync.RWMutex
	data            *DataAndSlot[T]
	callbackID      uint64
	errorCallbackID uint64
	hasCallback     bool
	subscribed      bool
}

// NewSubscriber builds a subscriber for one account. kind names the entity
// for errors and logs.
func NewSubscriber[T any](kind string, key solana.PublicKey, loader *BulkAccountLoader, decode DecodeFunc[T], logger *zap.Logger, opts ...SubscriberOption[T]) *Subscriber[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Subscriber[T]{
		kind:   kind,
		key:    key,
		loader: loader,
		decode: decode,
		log:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the account identity this subscriber owns.
func (s *Subscriber[T]) Key() solana.PublicKey {
	return s.key
}

// Subscribe registers the subscriber with the loader. It is idempotent: a
// second call is a no-op returning true. A non-nil seed primes the cache at
// slot 0 before registration. If no value is cached after registration, one
// direct fetch is attempted so callers are not left without data until the
// next poll cycle; subscribe succeeds whether or not that fetch produced a
// value (existence is observable via DoesAccountExist).
func (s *Subscriber[T]) Subscribe(ctx context.Context, seed *T) bool {
	s.mu.Lock()
	if s.subscribed {
		s.mu.Unlock()
		return true
	}
	if seed != nil && s.data == nil {
		s.data = &DataAndSlot[T]{Data: *seed, Slot: 0}
	}
	if !s.hasCallback {
		s.callbackID = s.loader.AddAccount(s.key, s.handleUpdate)
		s.errorCallbackID = s.loader.AddErrorCallback(s.handleError)
		s.hasCallback = true
	}
	s.mu.Unlock()

	s.FetchIfUnloaded(ctx)

	s.mu.Lock()
	s.subscribed = true
	s.mu.Unlock()
	return true
}

// Unsubscribe removes the account and error callbacks from the loader.
// Calling it again, or before Subscribe, is a no-op.
func (s *Subscriber[T]) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.subscribed {
		return
	}
	if s.hasCallback {
		s.loader.RemoveAccount(s.key, s.callbackID)
		s.loader.RemoveErrorCallback(s.errorCallbackID)
		s.callbackID = 0
		s.errorCallbackID = 0
		s.hasCallback = false
	}
	s.subscribed = false
}

// Fetch performs one direct read and applies it through the same slot gate
// as the poll path. Fetch errors are logged and swallowed so that an account
// that does not exist yet does not break startup.
func (s *Subscriber[T]) Fetch(ctx context.Context) {
	buffer, slot, err := s.loader.FetchAccount(ctx, s.key)
	if err != nil {
		s.log.Warn("direct account fetch failed",
			zap.String("kind", s.kind),
			zap.Stringer("account", s.key),
			zap.Error(err),
		)
		return
	}
	s.applyBuffer(buffer, slot)
}

// FetchIfUnloaded fetches only when no value is cached yet. It guarantees at
// least one load attempt before first use without refetching on every
// subscribe.
func (s *Subscriber[T]) FetchIfUnloaded(ctx context.Context) {
	if !s.DoesAccountExist() {
		s.Fetch(ctx)
	}
}

// GetAccountAndSlot returns the cached snapshot. It fails with
// ErrNotSubscribed before Subscribe and with AccountNotFoundError when
// nothing has been loaded.
func (s *Subscriber[T]) GetAccountAndSlot() (DataAndSlot[T], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.subscribed {
		return DataAndSlot[T]{}, ErrNotSubscribed
	}
	if s.data == nil {
		return DataAndSlot[T]{}, &AccountNotFoundError{Kind: s.kind, Address: s.key}
	}
	return *s.data, nil
}

// UpdateData applies an externally sourced value, e.g. one the caller
// received through another route. Note the gate differs from the poll path:
// only a strictly newer slot is accepted here.
func (s *Subscriber[T]) UpdateData(data T, slot uint64) {
	s.mu.Lock()
	if s.data != nil && s.data.Slot >= slot {
		s.mu.Unlock()
		return
	}
	s.data = &DataAndSlot[T]{Data: data, Slot: slot}
	hook := s.hook
	s.mu.Unlock()

	if hook != nil {
		hook(data, slot)
	}
}

// DoesAccountExist reports whether a value has ever been loaded. False after
// subscribing means the ledger account has not been created (or not seen)
// yet.
func (s *Subscriber[T]) DoesAccountExist() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data != nil
}

// Subscribed reports whether Subscribe has completed.
func (s *Subscriber[T]) Subscribed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subscribed
}

// AssertSubscribed fails fast when the subscriber is used before Subscribe.
func (s *Subscriber[T]) AssertSubscribed() error {
	if !s.Subscribed() {
		return ErrNotSubscribed
	}
	return nil
}

// handleUpdate is the loader callback. An empty buffer means the account does
// not exist and is not an update. A buffer at a slot lower than the cache is
// stale and dropped; an equal slot overwrites, which keeps same-slot
// corrections.
func (s *Subscriber[T]) handleUpdate(buffer []byte, slot uint64) {
	s.applyBuffer(buffer, slot)
}

func (s *Subscriber[T]) handleError(err error) {
	s.log.Debug("poll cycle failed",
		zap.String("kind", s.kind),
		zap.Stringer("account", s.key),
		zap.Error(err),
	)
}

func (s *Subscriber[T]) applyBuffer(buffer []byte, slot uint64) {
	if len(buffer) == 0 {
		return
	}
	s.mu.Lock()
	if s.data != nil && s.data.Slot > slot {
		s.mu.Unlock()
		return
	}
	decoded, err := s.decode(buffer)
	if err != nil {
		s.mu.Unlock()
		s.log.Warn("account decode failed",
			zap.String("kind", s.kind),
			zap.Stringer("account", s.key),
			zap.Error(err),
		)
		return
	}
	s.data = &DataAndSlot[T]{Data: decoded, Slot: slot}
	hook := s.hook
	s.mu.Unlock()

	if hook != nil {
		hook(decoded, slot)
	}
}
