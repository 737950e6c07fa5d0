package component

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"perpmirror/internal/accounts"
	"perpmirror/internal/model"
	"perpmirror/internal/oracle"
)

// OracleComponent manages one price client per feed referenced by the trade
// tokens. Feeds are discovered from the token set rather than derived, so the
// component re-syncs whenever the token list changes.
type OracleComponent struct {
	loader      *accounts.BulkAccountLoader
	capacity    int
	stableMints map[solana.PublicKey]bool
	hook        oracle.SampleHook
	log         *zap.Logger

	mu      sync.RWMutex
	clients map[solana.PublicKey]*oracle.Client
	order   []solana.PublicKey
}

// NewOracleComponent builds the facade. capacity bounds each feed's sample
// history. stableMints marks which token mints get parity pegging. hook, if
// not nil, observes every decoded sample across all feeds.
func NewOracleComponent(loader *accounts.BulkAccountLoader, capacity int, stableMints map[solana.PublicKey]bool, hook oracle.SampleHook, logger *zap.Logger) *OracleComponent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OracleComponent{
		loader:      loader,
		capacity:    capacity,
		stableMints: stableMints,
		hook:        hook,
		log:         logger,
		clients:     make(map[solana.PublicKey]*oracle.Client),
	}
}

// SyncFeeds creates and subscribes a price client for each token's oracle
// feed. Feeds already known are left alone, so repeated calls only pick up
// newly listed tokens.
func (c *OracleComponent) SyncFeeds(ctx context.Context, tokens []model.TradeToken) error {
	for _, token := range tokens {
		if token.Oracle.IsZero() {
			continue
		}
		client, err := c.ensure(token)
		if err != nil {
			return err
		}
		client.Subscribe(ctx)
	}
	return nil
}

func (c *OracleComponent) ensure(token model.TradeToken) (*oracle.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if client, ok := c.clients[token.Oracle]; ok {
		return client, nil
	}
	client, err := oracle.NewClient(token.Oracle, c.loader, c.capacity, c.stableMints[token.Mint], c.hook, c.log)
	if err != nil {
		return nil, err
	}
	c.clients[token.Oracle] = client
	c.order = append(c.order, token.Oracle)
	return client, nil
}

// Unsubscribe removes every feed from the loader.
func (c *OracleComponent) Unsubscribe() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, client := range c.clients {
		client.Unsubscribe()
	}
}

// Price returns the most recent sample for one feed, or ErrPriceDataNotFound
// when the feed is unknown or has no samples yet.
func (c *OracleComponent) Price(feed solana.PublicKey) (model.OraclePriceData, error) {
	c.mu.RLock()
	client, ok := c.clients[feed]
	c.mu.RUnlock()
	if !ok {
		return model.OraclePriceData{}, oracle.ErrPriceDataNotFound
	}
	return client.Price()
}

// Samples returns up to n of the most recent samples for one feed, most
// recent first. An unknown feed returns nil.
func (c *OracleComponent) Samples(feed solana.PublicKey, n int) []model.OraclePriceData {
	c.mu.RLock()
	client, ok := c.clients[feed]
	c.mu.RUnlock()
	if !ok {
		return nil
	}
	return client.Samples(n)
}

// Feeds returns every tracked feed in discovery order.
func (c *OracleComponent) Feeds() []solana.PublicKey {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]solana.PublicKey, len(c.order))
	copy(out, c.order)
	return out
}
