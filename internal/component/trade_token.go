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

// TradeTokenComponent mirrors every trade token account. It is the decimals
// authority the other components resolve against.
type TradeTokenComponent struct {
	programID solana.PublicKey
	loader    *accounts.BulkAccountLoader
	state     *StateComponent
	log       *zap.Logger
	set       *subscriberSet[layout.TradeToken]
}

// NewTradeTokenComponent builds the facade. Subscribers are created lazily
// on Subscribe, once the state sequence is known.
func NewTradeTokenComponent(programID solana.PublicKey, loader *accounts.BulkAccountLoader, state *StateComponent, logger *zap.Logger) *TradeTokenComponent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TradeTokenComponent{
		programID: programID,
		loader:    loader,
		state:     state,
		log:       logger,
		set:       newSubscriberSet[layout.TradeToken](),
	}
}

// Subscribe derives one subscriber per trade token index from the state
// sequence and subscribes each. Already-known addresses are kept as-is, so
// repeated calls only pick up newly appended indexes.
func (c *TradeTokenComponent) Subscribe(ctx context.Context) error {
	st, err := c.state.Get(ctx, false)
	if err != nil {
		return err
	}
	for i := uint16(0); i < st.TradeTokenSequence; i++ {
		addr, err := TradeTokenAddress(c.programID, i)
		if err != nil {
			return err
		}
		if c.set.has(addr) {
			continue
		}
		c.set.add(addr, accounts.NewSubscriber("trade token", addr, c.loader, layout.DecodeTradeToken, c.log))
	}
	c.set.subscribe(ctx)
	return nil
}

// Unsubscribe removes every owned subscriber from the loader.
func (c *TradeTokenComponent) Unsubscribe() {
	c.set.unsubscribe()
}

// Get returns one scaled trade token by account address. sync forces a
// direct fetch first.
func (c *TradeTokenComponent) Get(ctx context.Context, key solana.PublicKey, sync bool) (model.TradeToken, error) {
	sub, ok := c.set.get(key)
	if !ok {
		return model.TradeToken{}, &convert.ResolutionError{Kind: "trade token", Reference: key.String()}
	}
	if sync {
		sub.Fetch(ctx)
	}
	ds, err := sub.GetAccountAndSlot()
	if err != nil {
		return model.TradeToken{}, err
	}
	return convert.ToTradeToken(ds.Data), nil
}

// All returns every loaded trade token in index order. Accounts that do not
// exist on the ledger yet are skipped.
func (c *TradeTokenComponent) All(ctx context.Context, sync bool) ([]model.TradeToken, error) {
	subs := c.set.all()
	out := make([]model.TradeToken, 0, len(subs))
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
		out = append(out, convert.ToTradeToken(ds.Data))
	}
	return out, nil
}
