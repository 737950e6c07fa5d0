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

// runPrices does a one-shot subscribe, reads each tracked feed once and
// prints the latest sample per token.
func runPrices(cmd *cobra.Command, _ []string) error {
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

	loader := accounts.NewBulkAccountLoader(client, time.Second, logger)

	mirror, err := component.NewMirror(programID, loader, component.MirrorOptions{
		StableMints: stableMints,
	}, logger)
	if err != nil {
		return err
	}

	if err := mirror.Subscribe(ctx); err != nil {
		return fmt.Errorf("subscribe mirror: %w", err)
	}
	defer mirror.Unsubscribe()

	// One bulk read so every feed has a fresh sample.
	if err := loader.Load(ctx); err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}

	tokens, err := mirror.TradeTokens().All(ctx, false)
	if err != nil {
		return fmt.Errorf("list trade tokens: %w", err)
	}

	for _, token := range tokens {
		sample, err := mirror.Oracles().Price(token.Oracle)
		if err != nil {
			logger.Warn("no price",
				zap.String("symbol", token.Symbol),
				zap.String("feed", token.Oracle.String()),
				zap.Error(err))
			continue
		}
		logger.Info("price",
			zap.String("symbol", token.Symbol),
			zap.String("mint", token.Mint.String()),
			zap.String("price", sample.Price.String()),
			zap.String("confidence", sample.Confidence.String()),
			zap.String("twap", sample.Twap.String()),
			zap.Uint64("slot", sample.Slot),
			zap.Bool("sufficient", sample.HasSufficientDataPoints),
		)
	}

	return nil
}
