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

// MarketComponent mirrors every perp market account.
type MarketComponent struct {
	programID   solana.PublicKey
	loader      *accounts.BulkAccountLoader
	state       *StateComponent
	tradeTokens *TradeTokenComponent
	log         *zap.Logger
	set         *subscriberSet[layout.Market]
}

// NewMarketComponent builds the facade. Open interest amounts are scaled
// through the trade token component's decimals.
func NewMarketComponent(programID solana.PublicKey, loader *accounts.BulkAccountLoader, state *StateComponent, tradeTokens *TradeTokenComponent, logger *zap.Logger) *MarketComponent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarketComponent{
		programID:   programID,
		loader:      loader,
		state:       state,
		tradeTokens: tradeTokens,
		log:         logger,
		set:         newSubscriberSet[layout.Market](),
	}
}

// Subscribe derives one subscriber per market index from the state sequence
// and subscribes each.
func (c *MarketComponent) Subscribe(ctx context.Context) error {
	st, err := c.state.Get(ctx, false)
	if err != nil {
		return err
	}
	for i := uint16(0); i < st.MarketSequence; i++ {
		addr, err := MarketAddress(c.programID, i)
		if err != nil {
			return err
		}
		if c.set.has(addr) {
			continue
		}
		c.set.add(addr, accounts.NewSubscriber("market", addr, c.loader, layout.DecodeMarket, c.log))
	}
	c.set.subscribe(ctx)
	return nil
}

// Unsubscribe removes every owned subscriber from the loader.
func (c *MarketComponent) Unsubscribe() {
	c.set.unsubscribe()
}

// Get returns one scaled market by account address. sync forces a direct
// fetch first.
func (c *MarketComponent) Get(ctx context.Context, key solana.PublicKey, sync bool) (model.Market, error) {
	sub, ok := c.set.get(key)
	if !ok {
		return model.Market{}, &convert.ResolutionError{Kind: "market", Reference: key.String()}
	}
	if sync {
		sub.Fetch(ctx)
	}
	ds, err := sub.GetAccountAndSlot()
	if err != nil {
		return model.Market{}, err
	}
	tokens, err := c.tradeTokens.All(ctx, false)
	if err != nil {
		return model.Market{}, err
	}
	return convert.ToMarket(ds.Data, tokens)
}

// All returns every loaded market in index order. Accounts that do not
// exist on the ledger yet are skipped.
func (c *MarketComponent) All(ctx context.Context, sync bool) ([]model.Market, error) {
	tokens, err := c.tradeTokens.All(ctx, false)
	if err != nil {
		return nil, err
	}
	subs := c.set.all()
	out := make([]model.Market, 0, len(subs))
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
		market, err := convert.ToMarket(ds.Data, tokens)
		if err != nil {
			return nil, err
		}
		out = append(out, market)
	}
	return out, nil
}
