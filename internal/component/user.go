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

// UserComponent mirrors user accounts for an explicit set of wallet
// authorities. Unlike the sequence-driven components, users are added one
// authority at a time.
type UserComponent struct {
	programID   solana.PublicKey
	loader      *accounts.BulkAccountLoader
	tradeTokens *TradeTokenComponent
	pools       *PoolComponent
	log         *zap.Logger
	set         *subscriberSet[layout.User]
}

// NewUserComponent builds the facade. Token, position and order rows resolve
// their mints through the trade token component and stakes resolve through
// the pool component.
func NewUserComponent(programID solana.PublicKey, loader *accounts.BulkAccountLoader, tradeTokens *TradeTokenComponent, pools *PoolComponent, logger *zap.Logger) *UserComponent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserComponent{
		programID:   programID,
		loader:      loader,
		tradeTokens: tradeTokens,
		pools:       pools,
		log:         logger,
		set:         newSubscriberSet[layout.User](),
	}
}

// AddUser derives the user account for a wallet authority, subscribes it and
// returns the derived address. Adding the same authority twice is a no-op.
func (c *UserComponent) AddUser(ctx context.Context, authority solana.PublicKey) (solana.PublicKey, error) {
	addr, err := UserAddress(c.programID, authority)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if sub, ok := c.set.get(addr); ok {
		sub.Subscribe(ctx, nil)
		return addr, nil
	}
	sub := accounts.NewSubscriber("user", addr, c.loader, layout.DecodeUser, c.log)
	c.set.add(addr, sub)
	sub.Subscribe(ctx, nil)
	return addr, nil
}

// Unsubscribe removes every tracked user from the loader.
func (c *UserComponent) Unsubscribe() {
	c.set.unsubscribe()
}

// Get returns one scaled user by derived account address. sync forces a
// direct fetch first.
func (c *UserComponent) Get(ctx context.Context, key solana.PublicKey, sync bool) (model.User, error) {
	sub, ok := c.set.get(key)
	if !ok {
		return model.User{}, &convert.ResolutionError{Kind: "user", Reference: key.String()}
	}
	if sync {
		sub.Fetch(ctx)
	}
	ds, err := sub.GetAccountAndSlot()
	if err != nil {
		return model.User{}, err
	}
	tokens, pools, err := c.resolve(ctx)
	if err != nil {
		return model.User{}, err
	}
	return convert.ToUser(ds.Data, tokens, pools)
}

// GetByAuthority is Get keyed by wallet authority instead of the derived
// account address.
func (c *UserComponent) GetByAuthority(ctx context.Context, authority solana.PublicKey, sync bool) (model.User, error) {
	addr, err := UserAddress(c.programID, authority)
	if err != nil {
		return model.User{}, err
	}
	return c.Get(ctx, addr, sync)
}

// All returns every loaded user in the order their authorities were added.
// Accounts that do not exist on the ledger yet are skipped.
func (c *UserComponent) All(ctx context.Context, sync bool) ([]model.User, error) {
	tokens, pools, err := c.resolve(ctx)
	if err != nil {
		return nil, err
	}
	subs := c.set.all()
	out := make([]model.User, 0, len(subs))
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
		user, err := convert.ToUser(ds.Data, tokens, pools)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, nil
}

func (c *UserComponent) resolve(ctx context.Context) ([]model.TradeToken, []model.Pool, error) {
	tokens, err := c.tradeTokens.All(ctx, false)
	if err != nil {
		return nil, nil, err
	}
	pools, err := c.pools.All(ctx, false)
	if err != nil {
		return nil, nil, err
	}
	return tokens, pools, nil
}
