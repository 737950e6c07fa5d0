package component

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"perpmirror/internal/accounts"
	"perpmirror/internal/convert"
	"perpmirror/internal/layout"
	"perpmirror/internal/model"
)

// PoolComponent mirrors every liquidity pool account.
type PoolComponent struct {
	programID   solana.PublicKey
	loader      *accounts.BulkAccountLoader
	state       *StateComponent
	tradeTokens *TradeTokenComponent
	log         *zap.Logger
	set         *subscriberSet[layout.Pool]
}

// NewPoolComponent builds the facade. Pool amounts are scaled through the
// trade token component's decimals.
func NewPoolComponent(programID solana.PublicKey, loader *accounts.BulkAccountLoader, state *StateComponent, tradeTokens *TradeTokenComponent, logger *zap.Logger) *PoolComponent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PoolComponent{
		programID:   programID,
		loader:      loader,
		state:       state,
		tradeTokens: tradeTokens,
		log:         logger,
		set:         newSubscriberSet[layout.Pool](),
	}
}

// Subscribe derives one subscriber per pool index from the state sequence
// and subscribes each.
func (c *PoolComponent) Subscribe(ctx context.Context) error {
	st, err := c.state.Get(ctx, false)
	if err != nil {
		return err
	}
	for i := uint16(0); i < st.PoolSequence; i++ {
		addr, err := PoolAddress(c.programID, i)
		if err != nil {
			return err
		}
		if c.set.has(addr) {
			continue
		}
		c.set.add(addr, accounts.NewSubscriber("pool", addr, c.loader, layout.DecodePool, c.log))
	}
	c.set.subscribe(ctx)
	return nil
}

// Unsubscribe removes every owned subscriber from the loader.
func (c *PoolComponent) Unsubscribe() {
	c.set.unsubscribe()
}

// Get returns one scaled pool by account address. sync forces a direct
// fetch first.
func (c *PoolComponent) Get(ctx context.Context, key solana.PublicKey, sync bool) (model.Pool, error) {
	sub, ok := c.set.get(key)
	if !ok {
		return model.Pool{}, &convert.ResolutionError{Kind: "pool", Reference: key.String()}
	}
	if sync {
		sub.Fetch(ctx)
	}
	ds, err := sub.GetAccountAndSlot()
	if err != nil {
		return model.Pool{}, err
	}
	tokens, err := c.tradeTokens.All(ctx, false)
	if err != nil {
		return model.Pool{}, err
	}
	return convert.ToPool(ds.Data, tokens)
}

// All returns every loaded pool in index order. Accounts that do not exist
// on the ledger yet are skipped.
func (c *PoolComponent) All(ctx context.Context, sync bool) ([]model.Pool, error) {
	tokens, err := c.tradeTokens.All(ctx, false)
	if err != nil {
		return nil, err
	}
	subs := c.set.all()
	out := make([]model.Pool, 0, len(subs))
	for _, sub := range subs {
		if sync {
			sub.Fetch(ctx)
		}
		ds, err := sub.GetAccountAndSlot()
		if err != nil {
			var notFound *accounts.AccountNotFoundError
			if errors.As(err, &notFound) {
				continue
			}
			return nil, err
		}
		pool, err := convert.ToPool(ds.Data, tokens)
		if err != nil {
			return nil, err
		}
		out = append(out, pool)
	}
	return out, nil
}
