package component

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"perpmirror/internal/accounts"
	"perpmirror/internal/oracle"
)

// MirrorOptions tunes the assembled component set.
type MirrorOptions struct {
	// OracleStashCapacity bounds each feed's sample history.
	OracleStashCapacity int
	// StableMints marks token mints whose oracle prices get parity pegging.
	StableMints map[solana.PublicKey]bool
	// SampleHook, if not nil, observes every decoded oracle sample.
	SampleHook oracle.SampleHook
	// Authorities are wallet authorities whose user accounts are tracked
	// from the start. More can be added later through Users().AddUser.
	Authorities []solana.PublicKey
}

const defaultOracleStashCapacity = 30

// Mirror assembles every component behind a single subscribe and unsubscribe
// pair. Subscription order follows the dependency chain: state first, then
// trade tokens, then everything that resolves against them.
type Mirror struct {
	state       *StateComponent
	tradeTokens *TradeTokenComponent
	pools       *PoolComponent
	markets     *MarketComponent
	rewards     *RewardsComponent
	users       *UserComponent
	oracles     *OracleComponent

	authorities []solana.PublicKey
	log         *zap.Logger
}

// NewMirror wires the component set against one loader.
func NewMirror(programID solana.PublicKey, loader *accounts.BulkAccountLoader, opts MirrorOptions, logger *zap.Logger) (*Mirror, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.OracleStashCapacity <= 0 {
		opts.OracleStashCapacity = defaultOracleStashCapacity
	}

	state, err := NewStateComponent(programID, loader, logger)
	if err != nil {
		return nil, fmt.Errorf("derive state address: %w", err)
	}
	tradeTokens := NewTradeTokenComponent(programID, loader, state, logger)
	pools := NewPoolComponent(programID, loader, state, tradeTokens, logger)
	markets := NewMarketComponent(programID, loader, state, tradeTokens, logger)
	rewards := NewRewardsComponent(programID, loader, state, pools, tradeTokens, logger)
	users := NewUserComponent(programID, loader, tradeTokens, pools, logger)
	oracles := NewOracleComponent(loader, opts.OracleStashCapacity, opts.StableMints, opts.SampleHook, logger)

	return &Mirror{
		state:       state,
		tradeTokens: tradeTokens,
		pools:       pools,
		markets:     markets,
		rewards:     rewards,
		users:       users,
		oracles:     oracles,
		authorities: opts.Authorities,
		log:         logger,
	}, nil
}

// Subscribe brings every component online. The state account is loaded
// first so the sequence-driven components can derive their address sets.
func (m *Mirror) Subscribe(ctx context.Context) error {
	m.state.Subscribe(ctx)
	if err := m.tradeTokens.Subscribe(ctx); err != nil {
		return fmt.Errorf("subscribe trade tokens: %w", err)
	}
	if err := m.pools.Subscribe(ctx); err != nil {
		return fmt.Errorf("subscribe pools: %w", err)
	}
	if err := m.markets.Subscribe(ctx); err != nil {
		return fmt.Errorf("subscribe markets: %w", err)
	}
	if err := m.rewards.Subscribe(ctx); err != nil {
		return fmt.Errorf("subscribe rewards: %w", err)
	}
	for _, authority := range m.authorities {
		if _, err := m.users.AddUser(ctx, authority); err != nil {
			return fmt.Errorf("add user %s: %w", authority, err)
		}
	}

	tokens, err := m.tradeTokens.All(ctx, false)
	if err != nil {
		return fmt.Errorf("list trade tokens: %w", err)
	}
	if err := m.oracles.SyncFeeds(ctx, tokens); err != nil {
		return fmt.Errorf("sync oracle feeds: %w", err)
	}

	m.log.Info("mirror subscribed",
		zap.Int("trade_tokens", len(tokens)),
		zap.Int("oracle_feeds", len(m.oracles.Feeds())))
	return nil
}

// Unsubscribe takes every component offline. Safe to call more than once.
func (m *Mirror) Unsubscribe() {
	m.oracles.Unsubscribe()
	m.users.Unsubscribe()
	m.rewards.Unsubscribe()
	m.markets.Unsubscribe()
	m.pools.Unsubscribe()
	m.tradeTokens.Unsubscribe()
	m.state.Unsubscribe()
}

// State returns the global state component.
func (m *Mirror) State() *StateComponent { return m.state }

// TradeTokens returns the trade token component.
func (m *Mirror) TradeTokens() *TradeTokenComponent { return m.tradeTokens }

// Pools returns the pool component.
func (m *Mirror) Pools() *PoolComponent { return m.pools }

// Markets returns the market component.
func (m *Mirror) Markets() *MarketComponent { return m.markets }

// Rewards returns the rewards component.
func (m *Mirror) Rewards() *RewardsComponent { return m.rewards }

// Users returns the user component.
func (m *Mirror) Users() *UserComponent { return m.users }

// Oracles returns the oracle component.
func (m *Mirror) Oracles() *OracleComponent { return m.oracles }
