package convert

import (
	"github.com/gagliardetto/solana-go"

	"perpmirror/internal/layout"
	"perpmirror/internal/model"
)

// ToTradeToken scales a raw trade token account. Amounts are scaled by the
// token's own declared decimals.
func ToTradeToken(raw layout.TradeToken) model.TradeToken {
	return model.TradeToken{
		Mint:     raw.Mint,
		Oracle:   raw.Oracle,
		Symbol:   SymbolString(raw.Symbol),
		Index:    raw.Index,
		Decimals: raw.Decimals,

		Discount:          Rate(uint64(raw.Discount)),
		LiquidationFactor: Rate(uint64(raw.LiquidationFactor)),
		TotalLiability:    Token(raw.TotalLiability, raw.Decimals),
		TotalAmount:       Token(raw.TotalAmount, raw.Decimals),
	}
}

// FindTradeToken resolves a trade token by mint among the loaded set.
func FindTradeToken(tokens []model.TradeToken, mint solana.PublicKey) (model.TradeToken, error) {
	for _, t := range tokens {
		if t.Mint.Equals(mint) {
			return t, nil
		}
	}
	return model.TradeToken{}, &ResolutionError{Kind: "trade token", Reference: mint.String()}
}
