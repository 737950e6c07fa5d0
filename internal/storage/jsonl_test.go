package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestJsonlRecorderAppendsSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "samples.jsonl")
	recorder := NewJsonlRecorder(path)

	batch := []PriceSample{
		{
			Feed:       "feedA",
			Price:      decimal.RequireFromString("65123.45"),
			Slot:       10,
			Sufficient: true,
			RecordedAt: time.Now().UTC(),
		},
		{
			Feed:  "feedB",
			Price: decimal.NewFromInt(1),
			Slot:  11,
		},
	}

	require.NoError(t, recorder.PutSampleBatch(context.Background(), batch))
	require.NoError(t, recorder.PutSampleBatch(context.Background(), batch[:1]))
	require.NoError(t, recorder.PutSampleBatch(context.Background(), nil))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var lines []PriceSample
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var sample PriceSample
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &sample))
		lines = append(lines, sample)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, lines, 3)
	require.Equal(t, "feedA", lines[0].Feed)
	require.True(t, lines[0].Price.Equal(decimal.RequireFromString("65123.45")))
	require.Equal(t, "feedB", lines[1].Feed)
	require.Equal(t, uint64(10), lines[2].Slot)
}
