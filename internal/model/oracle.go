package model

import "github.com/shopspring/decimal"

// OraclePriceData is one decoded sample from an oracle price feed, rescaled
// from the feed's native exponent to the internal price precision.
type OraclePriceData struct {
	Price          decimal.Decimal
	Confidence     decimal.Decimal
	Twap           decimal.Decimal
	TwapConfidence decimal.Decimal
	Slot           uint64

	// HasSufficientDataPoints is a soft data-quality signal: enough
	// independent publishers reported into the aggregate. Callers decide
	// whether to trust a sample without it.
	HasSufficientDataPoints bool
}
