package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"perpmirror/internal/accounts"
	"perpmirror/internal/component"
	"perpmirror/internal/config"
	"perpmirror/internal/ledger"
)

// runWatch keeps the mirror polling and periodically logs a price and market
// summary. A smoke harness more than an operational mode.
func runWatch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	programID, err := solana.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		return fmt.Errorf("parse program id: %w", err)
	}
	stableMints, err := parseKeySet(cfg.StableMints)
	if err != nil {
		return fmt.Errorf("parse stable mints: %w", err)
	}
	commitment, err := ledger.ParseCommitment(cfg.Commitment)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := ledger.NewClient(cfg.RPCURL, commitment)
	defer client.Close()

	loader := accounts.NewBulkAccountLoader(client, cfg.PollInterval, logger)

	mirror, err := component.NewMirror(programID, loader, component.MirrorOptions{
		OracleStashCapacity: cfg.OracleStashSize,
		StableMints:         stableMints,
	}, logger)
	if err != nil {
		return err
	}

	if err := mirror.Subscribe(ctx); err != nil {
		return fmt.Errorf("subscribe mirror: %w", err)
	}
	defer mirror.Unsubscribe()

	loader.StartPolling(ctx)
	defer loader.StopPolling()

	interval := cfg.RecordInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			logSummary(ctx, mirror, logger)
		}
	}
}

func logSummary(ctx context.Context, mirror *component.Mirror, logger *zap.Logger) {
	tokens, err := mirror.TradeTokens().All(ctx, false)
	if err != nil {
		logger.Warn("list trade tokens failed", zap.Error(err))
		return
	}
	for _, token := range tokens {
		sample, err := mirror.Oracles().Price(token.Oracle)
		if err != nil {
			continue
		}
		logger.Info("price",
			zap.String("symbol", token.Symbol),
			zap.String("price", sample.Price.String()),
			zap.Uint64("slot", sample.Slot),
		)
	}

	markets, err := mirror.Markets().All(ctx, false)
	if err != nil {
		logger.Warn("list markets failed", zap.Error(err))
		return
	}
	for _, market := range markets {
		logger.Info("market",
			zap.String("symbol", market.Symbol),
			zap.String("long_oi", market.LongOpenInterest.OpenInterest.String()),
			zap.String("short_oi", market.ShortOpenInterest.OpenInterest.String()),
			zap.String("long_funding_rate", market.FundingFee.LongRate.String()),
			zap.String("short_funding_rate", market.FundingFee.ShortRate.String()),
		)
	}
}
