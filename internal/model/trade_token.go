package model

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// TradeToken is the scaled snapshot of one trade token account. Decimals is
// the mint's declared precision and is what every other entity uses to scale
// amounts denominated in this token.
type TradeToken struct {
	Mint     solana.PublicKey
	Oracle   solana.PublicKey
	Symbol   string
	Index    uint16
	Decimals uint16

	Discount          decimal.Decimal
	LiquidationFactor decimal.Decimal
	TotalLiability    decimal.Decimal
	TotalAmount       decimal.Decimal
}
