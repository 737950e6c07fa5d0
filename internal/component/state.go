package component

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"perpmirror/internal/accounts"
	"perpmirror/internal/convert"
	"perpmirror/internal/layout"
	"perpmirror/internal/model"
)

// StateComponent owns the single global state subscriber. Its sequence
// fields drive how many subscribers the other components create.
type StateComponent struct {
	sub *accounts.Subscriber[layout.State]
}

// NewStateComponent derives the state address and builds its subscriber.
func NewStateComponent(programID solana.PublicKey, loader *accounts.BulkAccountLoader, logger *zap.Logger) (*StateComponent, error) {
	addr, err := StateAddress(programID)
	if err != nil {
		return nil, err
	}
	return &StateComponent{
		sub: accounts.NewSubscriber("state", addr, loader, layout.DecodeState, logger),
	}, nil
}

// Subscribe registers the state account with the loader. Idempotent.
func (c *StateComponent) Subscribe(ctx context.Context) bool {
	return c.sub.Subscribe(ctx, nil)
}

// Unsubscribe removes the state account from the loader. Idempotent.
func (c *StateComponent) Unsubscribe() {
	c.sub.Unsubscribe()
}

// Get returns the scaled state snapshot. sync forces a direct fetch first.
func (c *StateComponent) Get(ctx context.Context, sync bool) (model.State, error) {
	if sync {
		c.sub.Fetch(ctx)
	}
	ds, err := c.sub.GetAccountAndSlot()
	if err != nil {
		return model.State{}, err
	}
	return convert.ToState(ds.Data), nil
}

// Key returns the derived state account address.
func (c *StateComponent) Key() solana.PublicKey {
	return c.sub.Key()
}
