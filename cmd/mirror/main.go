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
	"go.uber.org/zap/zapcore"

	"perpmirror/internal/accounts"
	"perpmirror/internal/component"
	"perpmirror/internal/config"
	"perpmirror/internal/ledger"
	"perpmirror/internal/oracle"
	"perpmirror/internal/storage"
	"perpmirror/internal/storage/postgres"
)

func main() {
	root := &cobra.Command{
		Use:          "mirror",
		Short:        "Perp program account mirror",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the mirror",
		RunE:  runMirror,
	}

	runCmd.Flags().String("rpc", "", "ledger RPC URL")
	runCmd.Flags().String("program", "", "perp program ID")
	runCmd.Flags().String("commitment", "confirmed", "commitment level (processed, confirmed, finalized)")
	runCmd.Flags().Duration("poll-interval", time.Second, "account poll interval")
	runCmd.Flags().Int("oracle-stash-size", 30, "oracle samples kept per feed")
	runCmd.Flags().StringSlice("user", nil, "wallet authorities to track (comma-separated)")
	runCmd.Flags().StringSlice("stable-mint", nil, "stablecoin mints whose prices get parity pegging (comma-separated)")
	runCmd.Flags().String("record-out", "", "optional oracle sample JSONL path")
	runCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for oracle samples")
	runCmd.Flags().Duration("record-interval", 5*time.Second, "oracle sample flush interval")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	pricesCmd := &cobra.Command{
		Use:   "prices",
		Short: "Fetch and print current oracle prices",
		RunE:  runPrices,
	}

	pricesCmd.Flags().String("rpc", "", "ledger RPC URL")
	pricesCmd.Flags().String("program", "", "perp program ID")
	pricesCmd.Flags().String("commitment", "confirmed", "commitment level (processed, confirmed, finalized)")
	pricesCmd.Flags().StringSlice("stable-mint", nil, "stablecoin mints whose prices get parity pegging (comma-separated)")
	pricesCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(pricesCmd)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll and periodically print prices and market summaries",
		RunE:  runWatch,
	}

	watchCmd.Flags().String("rpc", "", "ledger RPC URL")
	watchCmd.Flags().String("program", "", "perp program ID")
	watchCmd.Flags().String("commitment", "confirmed", "commitment level (processed, confirmed, finalized)")
	watchCmd.Flags().Duration("poll-interval", time.Second, "account poll interval")
	watchCmd.Flags().Int("oracle-stash-size", 30, "oracle samples kept per feed")
	watchCmd.Flags().StringSlice("stable-mint", nil, "stablecoin mints whose prices get parity pegging (comma-separated)")
	watchCmd.Flags().Duration("record-interval", 5*time.Second, "summary print interval")
	watchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(watchCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMirror(cmd *cobra.Command, _ []string) error {
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
	authorities, err := parseKeys(cfg.Users)
	if err != nil {
		return fmt.Errorf("parse user authorities: %w", err)
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

	var recorder storage.Recorder
	switch {
	case cfg.PgDSN != "":
		store, err := postgres.NewStore(ctx, cfg.PgDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		recorder = store
	case cfg.RecordOut != "":
		recorder = storage.NewJsonlRecorder(cfg.RecordOut)
	}

	var buffer *sampleBuffer
	var hook oracle.SampleHook
	if recorder != nil {
		buffer = &sampleBuffer{}
		hook = buffer.hook
	}

	mirror, err := component.NewMirror(programID, loader, component.MirrorOptions{
		OracleStashCapacity: cfg.OracleStashSize,
		StableMints:         stableMints,
		SampleHook:          hook,
		Authorities:         authorities,
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

	logger.Info("mirror start",
		zap.String("rpc", cfg.RPCURL),
		zap.String("program", programID.String()),
		zap.String("commitment", string(commitment)),
		zap.Duration("poll_interval", cfg.PollInterval),
		zap.Int("users", len(authorities)),
		zap.Bool("recording", recorder != nil),
	)

	if recorder == nil {
		<-ctx.Done()
		return nil
	}

	return recordSamples(ctx, buffer, recorder, cfg.RecordInterval, logger)
}

func parseKeys(inputs []string) ([]solana.PublicKey, error) {
	keys := make([]solana.PublicKey, 0, len(inputs))
	for _, input := range inputs {
		key, err := solana.PublicKeyFromBase58(input)
		if err != nil {
			return nil, fmt.Errorf("parse key %q: %w", input, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func parseKeySet(inputs []string) (map[solana.PublicKey]bool, error) {
	keys, err := parseKeys(inputs)
	if err != nil {
		return nil, err
	}
	set := make(map[solana.PublicKey]bool, len(keys))
	for _, key := range keys {
		set[key] = true
	}
	return set, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
