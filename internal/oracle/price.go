package oracle

import (
	"github.com/shopspring/decimal"

	"perpmirror/internal/convert"
	"perpmirror/internal/layout"
	"perpmirror/internal/model"
)

// sufficientPublishers is the publisher count treated as enough for a
// trustworthy aggregate, capped by what the feed declares.
const sufficientPublishers = 3

var (
	one = decimal.NewFromInt(1)

	// pegTolerance is 5 bps, the widest deviation a stablecoin feed may
	// show and still be snapped to parity.
	pegTolerance = decimal.New(5, -4)
)

// DecodeSample converts a raw feed update from its native exponent into an
// OraclePriceData sample at the internal price precision. stable enables
// parity pegging for stablecoin feeds.
func DecodeSample(raw layout.PriceUpdate, stable bool) model.OraclePriceData {
	price := decimal.New(raw.Price, raw.Exponent).Round(convert.PriceExponent)
	confidence := decimal.NewFromUint64(raw.Confidence).Shift(raw.Exponent).Round(convert.PriceExponent)
	twap := decimal.New(raw.Twap, raw.Exponent).Round(convert.PriceExponent)
	twapConfidence := decimal.NewFromUint64(raw.TwapConfidence).Shift(raw.Exponent).Round(convert.PriceExponent)

	if stable {
		price = PegStablePrice(price, confidence)
	}

	required := raw.MaxNumPublishers
	if required > sufficientPublishers {
		required = sufficientPublishers
	}

	return model.OraclePriceData{
		Price:                   price,
		Confidence:              confidence,
		Twap:                    twap,
		TwapConfidence:          twapConfidence,
		Slot:                    raw.PublishSlot,
		HasSufficientDataPoints: raw.NumPublishers >= required,
	}
}

// PegStablePrice snaps a near-parity price to exactly 1 when its deviation
// is inside both the feed confidence and the peg tolerance. Noise-driven
// wobble on assets expected to trade at parity disappears; a real deviation
// passes through unchanged.
func PegStablePrice(price, confidence decimal.Decimal) decimal.Decimal {
	tolerance := pegTolerance
	if confidence.LessThan(tolerance) {
		tolerance = confidence
	}
	if price.Sub(one).Abs().LessThan(tolerance) {
		return one
	}
	return price
}
