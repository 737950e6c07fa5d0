package layout

// PriceUpdate is the raw oracle price feed account. Price, Confidence and the
// time-weighted fields are fixed-point integers scaled by 10^-Exponent
// (Exponent is negative for sub-unit precision, matching the feed program).
type PriceUpdate struct {
	Exponent         int32
	NumPublishers    uint32
	MaxNumPublishers uint32

	Price          int64
	Confidence     uint64
	Twap           int64
	TwapConfidence uint64
	PublishSlot    uint64
}

// DecodePriceUpdate decodes a raw price feed account buffer.
func DecodePriceUpdate(data []byte) (PriceUpdate, error) {
	return decode[PriceUpdate](data, "price update")
}
