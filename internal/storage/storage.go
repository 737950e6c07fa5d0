package storage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceSample is one decoded oracle sample flattened for persistence.
type PriceSample struct {
	Feed           string          `json:"feed"`
	Price          decimal.Decimal `json:"price"`
	Confidence     decimal.Decimal `json:"confidence"`
	Twap           decimal.Decimal `json:"twap"`
	TwapConfidence decimal.Decimal `json:"twap_confidence"`
	Slot           uint64          `json:"slot"`
	Sufficient     bool            `json:"sufficient"`
	RecordedAt     time.Time       `json:"recorded_at"`
}

// Recorder defines a write-only sink for oracle samples. The mirror never
// reads recorded samples back.
type Recorder interface {
	PutSampleBatch(ctx context.Context, samples []PriceSample) error
}
