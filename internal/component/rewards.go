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

// RewardsComponent mirrors the per-pool rewards accounts. Rewards accounts
// track the pool sequence one to one.
type RewardsComponent struct {
	programID   solana.PublicKey
	loader      *accounts.BulkAccountLoader
	state       *StateComponent
	pools       *PoolComponent
	tradeTokens *TradeTokenComponent
	log         *zap.Logger
	set         *subscriberSet[layout.Rewards]
}

// NewRewardsComponent builds the facade. Reward amounts are denominated in
// the owning pool's mint, so both the pool and trade token components are
// needed at read time.
func NewRewardsComponent(programID solana.PublicKey, loader *accounts.BulkAccountLoader, state *StateComponent, pools *PoolComponent, tradeTokens *TradeTokenComponent, logger *zap.Logger) *RewardsComponent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RewardsComponent{
		programID:   programID,
		loader:      loader,
		state:       state,
		pools:       pools,
		tradeTokens: tradeTokens,
		log:         logger,
		set:         newSubscriberSet[layout.Rewards](),
	}
}

// Subscribe derives one subscriber per pool index from the state sequence
// and subscribes each.
func (c *RewardsComponent) Subscribe(ctx context.Context) error {
	st, err := c.state.Get(ctx, false)
	if err != nil {
		return err
	}
	for i := uint16(0); i < st.PoolSequence; i++ {
		addr, err := RewardsAddress(c.programID, i)
		if err != nil {
			return err
		}
		if c.set.has(addr) {
			continue
		}
		c.set.add(addr, accounts.NewSubscriber("rewards", addr, c.loader, layout.DecodeRewards, c.log))
	}
	c.set.subscribe(ctx)
	return nil
}

// Unsubscribe removes every owned subscriber from the loader.
func (c *RewardsComponent) Unsubscribe() {
	c.set.unsubscribe()
}

// Get returns one scaled rewards account by address. sync forces a direct
// fetch first.
func (c *RewardsComponent) Get(ctx context.Context, key solana.PublicKey, sync bool) (model.Rewards, error) {
	sub, ok := c.set.get(key)
	if !ok {
		return model.Rewards{}, &convert.ResolutionError{Kind: "rewards", Reference: key.String()}
	}
	if sync {
		sub.Fetch(ctx)
	}
	ds, err := sub.GetAccountAndSlot()
	if err != nil {
		return model.Rewards{}, err
	}
	pools, tokens, err := c.resolve(ctx)
	if err != nil {
		return model.Rewards{}, err
	}
	return convert.ToRewards(ds.Data, pools, tokens)
}

// All returns every loaded rewards account in pool index order. Accounts
// that do not exist on the ledger yet are skipped.
func (c *RewardsComponent) All(ctx context.Context, sync bool) ([]model.Rewards, error) {
	pools, tokens, err := c.resolve(ctx)
	if err != nil {
		return nil, err
	}
	subs := c.set.all()
	out := make([]model.Rewards, 0, len(subs))
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
		rewards, err := convert.ToRewards(ds.Data, pools, tokens)
		if err != nil {
			return nil, err
		}
		out = append(out, rewards)
	}
	return out, nil
}

func (c *RewardsComponent) resolve(ctx context.Context) ([]model.Pool, []model.TradeToken, error) {
	pools, err := c.pools.All(ctx, false)
	if err != nil {
		return nil, nil, err
	}
	tokens, err := c.tradeTokens.All(ctx, false)
	if err != nil {
		return nil, nil, err
	}
	return pools, tokens, nil
}
