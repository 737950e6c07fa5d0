package oracle

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"perpmirror/internal/layout"
)

func TestDecodeSampleRescalesExponent(t *testing.T) {
	raw := layout.PriceUpdate{
		Exponent:         -8,
		NumPublishers:    5,
		MaxNumPublishers: 10,
		Price:            6_512_345_678_900, // 65123.456789
		Confidence:       1_500_000_000,     // 15
		Twap:             6_500_000_000_000, // 65000
		TwapConfidence:   2_000_000_000,     // 20
		PublishSlot:      123,
	}

	sample := DecodeSample(raw, false)
	require.True(t, sample.Price.Equal(decimal.RequireFromString("65123.456789")), sample.Price.String())
	require.True(t, sample.Confidence.Equal(decimal.NewFromInt(15)))
	require.True(t, sample.Twap.Equal(decimal.NewFromInt(65000)))
	require.True(t, sample.TwapConfidence.Equal(decimal.NewFromInt(20)))
	require.Equal(t, uint64(123), sample.Slot)
	require.True(t, sample.HasSufficientDataPoints)
}

func TestDecodeSampleSufficientPublishers(t *testing.T) {
	cases := []struct {
		name string
		num  uint32
		max  uint32
		want bool
	}{
		{"meets cap", 3, 10, true},
		{"below cap", 2, 10, false},
		{"small feed fully covered", 2, 2, true},
		{"small feed not covered", 1, 2, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := layout.PriceUpdate{
				Exponent:         -8,
				NumPublishers:    tc.num,
				MaxNumPublishers: tc.max,
				Price:            100_000_000,
			}
			sample := DecodeSample(raw, false)
			require.Equal(t, tc.want, sample.HasSufficientDataPoints)
		})
	}
}

func TestPegStablePrice(t *testing.T) {
	cases := []struct {
		name       string
		price      string
		confidence string
		want       string
	}{
		{"inside confidence and tolerance", "1.0003", "0.0004", "1"},
		{"outside tight confidence", "1.0003", "0.0002", "1.0003"},
		{"outside peg tolerance", "1.01", "0.02", "1.01"},
		{"below parity pegged", "0.9997", "0.0004", "1"},
		{"exact parity", "1", "0.0001", "1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PegStablePrice(
				decimal.RequireFromString(tc.price),
				decimal.RequireFromString(tc.confidence),
			)
			require.True(t, got.Equal(decimal.RequireFromString(tc.want)), got.String())
		})
	}
}

func TestDecodeSamplePegsOnlyStableFeeds(t *testing.T) {
	raw := layout.PriceUpdate{
		Exponent:         -8,
		NumPublishers:    3,
		MaxNumPublishers: 3,
		Price:            100_030_000, // 1.0003
		Confidence:       40_000,      // 0.0004
	}

	stable := DecodeSample(raw, true)
	require.True(t, stable.Price.Equal(decimal.NewFromInt(1)), stable.Price.String())

	volatile := DecodeSample(raw, false)
	require.True(t, volatile.Price.Equal(decimal.RequireFromString("1.0003")), volatile.Price.String())
}
