package convert

import (
	"fmt"

	"perpmirror/internal/layout"
	"perpmirror/internal/model"
)

// ToUser scales a raw user account. Token rows resolve their mint's trade
// token; stakes resolve their pool and then that pool's mint; positions and
// orders resolve their margin mint. Any failed resolution aborts the whole
// conversion rather than returning a partially scaled object.
func ToUser(raw layout.User, tokens []model.TradeToken, pools []model.Pool) (model.User, error) {
	status, err := model.UserStatusFromTag(raw.Status)
	if err != nil {
		return model.User{}, fmt.Errorf("user %s: %w", raw.Key, err)
	}

	user := model.User{
		Key:               raw.Key,
		Authority:         raw.Authority,
		NextOrderID:       raw.NextOrderID,
		NextLiquidationID: raw.NextLiquidationID,
		Status:            status,
		HoldUSD:           Usd(raw.HoldUSD),
	}

	for _, t := range raw.Tokens {
		token, err := FindTradeToken(tokens, t.Mint)
		if err != nil {
			return model.User{}, err
		}
		user.Tokens = append(user.Tokens, model.UserToken{
			Mint:            t.Mint,
			Amount:          Token(t.Amount, token.Decimals),
			UsedAmount:      Token(t.UsedAmount, token.Decimals),
			LiabilityAmount: Token(t.LiabilityAmount, token.Decimals),
		})
	}

	for _, st := range raw.Stakes {
		pool, err := FindPool(pools, st.PoolKey)
		if err != nil {
			return model.User{}, err
		}
		mintToken, err := FindTradeToken(tokens, pool.Mint)
		if err != nil {
			return model.User{}, err
		}
		user.Stakes = append(user.Stakes, model.UserStake{
			PoolKey: st.PoolKey,
			Amount:  Token(st.Amount, mintToken.Decimals),

			RewardsToken:             st.RewardsToken,
			RealizedRewardsAmount:    Token(st.RealizedRewardsAmount, mintToken.Decimals),
			OpenRewardsPerStakeToken: SmallRate(st.OpenRewardsPerStakeToken),
		})
	}

	for _, p := range raw.Positions {
		position, err := toUserPosition(p, tokens)
		if err != nil {
			return model.User{}, err
		}
		user.Positions = append(user.Positions, position)
	}

	for _, o := range raw.Orders {
		order, err := toUserOrder(o, tokens)
		if err != nil {
			return model.User{}, err
		}
		user.Orders = append(user.Orders, order)
	}

	return user, nil
}

func toUserPosition(raw layout.UserPosition, tokens []model.TradeToken) (model.UserPosition, error) {
	marginToken, err := FindTradeToken(tokens, raw.MarginMint)
	if err != nil {
		return model.UserPosition{}, err
	}
	status, err := model.PositionStatusFromTag(raw.Status)
	if err != nil {
		return model.UserPosition{}, fmt.Errorf("position %s: %w", raw.Key, err)
	}
	decimals := marginToken.Decimals

	return model.UserPosition{
		Key:         raw.Key,
		Symbol:      SymbolString(raw.Symbol),
		IsLong:      raw.IsLong,
		CrossMargin: raw.CrossMargin,
		MarginMint:  raw.MarginMint,
		IndexMint:   raw.IndexMint,
		Status:      status,

		PositionSize:         Usd(raw.PositionSize),
		EntryPrice:           Price(raw.EntryPrice),
		InitialMargin:        Token(raw.InitialMargin, decimals),
		InitialMarginUSD:     Usd(raw.InitialMarginUSD),
		MaintenanceMarginUSD: Usd(raw.MaintenanceMarginUSD),
		HoldPoolAmount:       Token(raw.HoldPoolAmount, decimals),

		OpenFee:                  Token(raw.OpenFee, decimals),
		OpenFeeUSD:               Usd(raw.OpenFeeUSD),
		RealizedBorrowingFee:     Token(raw.RealizedBorrowingFee, decimals),
		RealizedBorrowingFeeUSD:  Usd(raw.RealizedBorrowingFeeUSD),
		OpenBorrowingFeePerToken: SmallRate(raw.OpenBorrowingFeePerToken),
		RealizedFundingFee:       SignedToken(raw.RealizedFundingFee, decimals),
		RealizedFundingFeeUSD:    SignedUsd(raw.RealizedFundingFeeUSD),
		OpenFundingFeePerSize:    SignedSmallRateBig(raw.OpenFundingFeePerSize.BigInt()),
		CloseFeeUSD:              Usd(raw.CloseFeeUSD),

		UpdatedAt: raw.UpdatedAt,
	}, nil
}

func toUserOrder(raw layout.UserOrder, tokens []model.TradeToken) (model.UserOrder, error) {
	marginToken, err := FindTradeToken(tokens, raw.MarginMint)
	if err != nil {
		return model.UserOrder{}, err
	}
	side, err := model.OrderSideFromTag(raw.Side)
	if err != nil {
		return model.UserOrder{}, fmt.Errorf("order %d: %w", raw.OrderID, err)
	}
	orderType, err := model.OrderTypeFromTag(raw.OrderType)
	if err != nil {
		return model.UserOrder{}, fmt.Errorf("order %d: %w", raw.OrderID, err)
	}
	stopType, err := model.StopTypeFromTag(raw.StopType)
	if err != nil {
		return model.UserOrder{}, fmt.Errorf("order %d: %w", raw.OrderID, err)
	}
	status, err := model.OrderStatusFromTag(raw.Status)
	if err != nil {
		return model.UserOrder{}, fmt.Errorf("order %d: %w", raw.OrderID, err)
	}

	return model.UserOrder{
		OrderID:     raw.OrderID,
		Symbol:      SymbolString(raw.Symbol),
		Side:        side,
		Type:        orderType,
		StopType:    stopType,
		Status:      status,
		CrossMargin: raw.CrossMargin,
		MarginMint:  raw.MarginMint,

		Margin:          Token(raw.Margin, marginToken.Decimals),
		Leverage:        Rate(uint64(raw.Leverage)),
		Size:            Usd(raw.Size),
		TriggerPrice:    Price(raw.TriggerPrice),
		AcceptablePrice: Price(raw.AcceptablePrice),
		CreatedAt:       raw.CreatedAt,
	}, nil
}
