package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("rpc", "", "")
	flags.String("program", "", "")
	flags.String("commitment", "confirmed", "")
	flags.Duration("poll-interval", time.Second, "")
	flags.Int("oracle-stash-size", 30, "")
	flags.StringSlice("user", nil, "")
	flags.StringSlice("stable-mint", nil, "")
	flags.String("record-out", "", "")
	flags.String("pg-dsn", "", "")
	flags.Duration("record-interval", 5*time.Second, "")
	flags.String("log-level", "info", "")
	return flags
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", newFlagSet())
	require.NoError(t, err)

	require.Equal(t, "confirmed", cfg.Commitment)
	require.Equal(t, time.Second, cfg.PollInterval)
	require.Equal(t, 30, cfg.OracleStashSize)
	require.Equal(t, 5*time.Second, cfg.RecordInterval)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.Users)
}

func TestLoadFromFlags(t *testing.T) {
	flags := newFlagSet()
	require.NoError(t, flags.Set("rpc", "http://localhost:8899"))
	require.NoError(t, flags.Set("program", "ExampleProgram111"))
	require.NoError(t, flags.Set("poll-interval", "250ms"))
	require.NoError(t, flags.Set("user", "alice,bob"))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8899", cfg.RPCURL)
	require.Equal(t, "ExampleProgram111", cfg.ProgramID)
	require.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	require.Equal(t, []string{"alice", "bob"}, cfg.Users)
}

func TestSplitAndClean(t *testing.T) {
	require.Nil(t, splitAndClean(""))
	require.Equal(t, []string{"a", "b"}, splitAndClean(" a , b ,, "))
}
