package layout

import "github.com/gagliardetto/solana-go"

// TradeToken is the raw trade token account.
type TradeToken struct {
	Mint     solana.PublicKey
	Oracle   solana.PublicKey
	Symbol   [32]byte
	Index    uint16
	Decimals uint16

	Discount          uint32
	LiquidationFactor uint32
	TotalLiability    uint64
	TotalAmount       uint64
}

// DecodeTradeToken decodes a raw trade token account buffer.
func DecodeTradeToken(data []byte) (TradeToken, error) {
	return decode[TradeToken](data, "trade token")
}
