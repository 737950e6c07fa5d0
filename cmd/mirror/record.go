package main

import (
	"context"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"perpmirror/internal/model"
	"perpmirror/internal/storage"
)

// sampleBuffer collects decoded oracle samples from the update hook until the
// next flush. The hook runs on the poll loop goroutine, so appends only.
type sampleBuffer struct {
	mu      sync.Mutex
	pending []storage.PriceSample
}

func (b *sampleBuffer) hook(feed solana.PublicKey, sample model.OraclePriceData) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, storage.PriceSample{
		Feed:           feed.String(),
		Price:          sample.Price,
		Confidence:     sample.Confidence,
		Twap:           sample.Twap,
		TwapConfidence: sample.TwapConfidence,
		Slot:           sample.Slot,
		Sufficient:     sample.HasSufficientDataPoints,
		RecordedAt:     time.Now().UTC(),
	})
}

func (b *sampleBuffer) drain() []storage.PriceSample {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	return out
}

// recordSamples flushes the buffer to the recorder on an interval until the
// context ends, then performs one final flush.
func recordSamples(ctx context.Context, buffer *sampleBuffer, recorder storage.Recorder, interval time.Duration, logger *zap.Logger) error {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			flush(flushCtx, buffer, recorder, logger)
			return nil
		case <-ticker.C:
			flush(ctx, buffer, recorder, logger)
		}
	}
}

func flush(ctx context.Context, buffer *sampleBuffer, recorder storage.Recorder, logger *zap.Logger) {
	samples := buffer.drain()
	if len(samples) == 0 {
		return
	}
	if err := recorder.PutSampleBatch(ctx, samples); err != nil {
		logger.Warn("record oracle samples failed", zap.Int("samples", len(samples)), zap.Error(err))
		return
	}
	logger.Debug("recorded oracle samples", zap.Int("samples", len(samples)))
}
