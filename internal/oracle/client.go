package oracle

import (
	"context"
	"errors"
	"sync"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"perpmirror/internal/accounts"
	"perpmirror/internal/layout"
	"perpmirror/internal/model"
)

// ErrPriceDataNotFound reports a price read against an empty history.
var ErrPriceDataNotFound = errors.New("price data not found")

// SampleHook observes each decoded sample as it enters the stash.
type SampleHook func(feed solana.PublicKey, sample model.OraclePriceData)

// Client maintains the most recent decoded samples for one price feed,
// independent of the loader's own raw cache.
type Client struct {
	sub    *accounts.Subscriber[layout.PriceUpdate]
	stable bool
	hook   SampleHook

	mu    sync.RWMutex
	stash *Stash[model.OraclePriceData]
}

// NewClient builds a client for one feed holding up to capacity samples.
// stable enables parity pegging. hook may be nil.
func NewClient(feed solana.PublicKey, loader *accounts.BulkAccountLoader, capacity int, stable bool, hook SampleHook, logger *zap.Logger) (*Client, error) {
	stash, err := NewStash[model.OraclePriceData](capacity)
	if err != nil {
		return nil, err
	}
	c := &Client{
		stable: stable,
		hook:   hook,
		stash:  stash,
	}
	c.sub = accounts.NewSubscriber("price feed", feed, loader, layout.DecodePriceUpdate, logger,
		accounts.WithUpdateHook[layout.PriceUpdate](c.onUpdate))
	return c, nil
}

// Feed returns the price feed account identity.
func (c *Client) Feed() solana.PublicKey {
	return c.sub.Key()
}

// Subscribe registers the feed with the loader. Idempotent.
func (c *Client) Subscribe(ctx context.Context) bool {
	return c.sub.Subscribe(ctx, nil)
}

// Unsubscribe removes the feed from the loader. Idempotent.
func (c *Client) Unsubscribe() {
	c.sub.Unsubscribe()
}

// Price returns the most recent sample. Unlike Stash.Last, an empty history
// is an error here: a caller asking for a price must get a real sample or
// ErrPriceDataNotFound.
func (c *Client) Price() (model.OraclePriceData, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	last := c.stash.Last(1)
	if len(last) == 0 {
		return model.OraclePriceData{}, ErrPriceDataNotFound
	}
	return last[0], nil
}

// Samples returns up to n of the most recent samples, most recent first. An
// under-filled history returns what is available; an empty one returns an
// empty slice, not an error.
func (c *Client) Samples(n int) []model.OraclePriceData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stash.Last(n)
}

func (c *Client) onUpdate(raw layout.PriceUpdate, slot uint64) {
	sample := DecodeSample(raw, c.stable)
	if sample.Slot == 0 {
		sample.Slot = slot
	}

	c.mu.Lock()
	c.stash.Enqueue(sample)
	c.mu.Unlock()

	if c.hook != nil {
		c.hook(c.sub.Key(), sample)
	}
}
