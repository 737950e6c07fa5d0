package model

import "fmt"

// OrderSide is the direction of an order.
type OrderSide uint8

const (
	OrderSideNone OrderSide = iota
	OrderSideLong
	OrderSideShort
)

func (s OrderSide) String() string {
	switch s {
	case OrderSideNone:
		return "none"
	case OrderSideLong:
		return "long"
	case OrderSideShort:
		return "short"
	default:
		return fmt.Sprintf("order_side(%d)", uint8(s))
	}
}

// OrderSideFromTag maps a wire tag to an OrderSide.
func OrderSideFromTag(tag uint8) (OrderSide, error) {
	switch tag {
	case 0:
		return OrderSideNone, nil
	case 1:
		return OrderSideLong, nil
	case 2:
		return OrderSideShort, nil
	default:
		return 0, fmt.Errorf("unknown order side tag: %d", tag)
	}
}

// OrderType distinguishes market, limit and stop orders.
type OrderType uint8

const (
	OrderTypeNone OrderType = iota
	OrderTypeMarket
	OrderTypeLimit
	OrderTypeStop
)

func (t OrderType) String() string {
	switch t {
	case OrderTypeNone:
		return "none"
	case OrderTypeMarket:
		return "market"
	case OrderTypeLimit:
		return "limit"
	case OrderTypeStop:
		return "stop"
	default:
		return fmt.Sprintf("order_type(%d)", uint8(t))
	}
}

// OrderTypeFromTag maps a wire tag to an OrderType.
func OrderTypeFromTag(tag uint8) (OrderType, error) {
	switch tag {
	case 0:
		return OrderTypeNone, nil
	case 1:
		return OrderTypeMarket, nil
	case 2:
		return OrderTypeLimit, nil
	case 3:
		return OrderTypeStop, nil
	default:
		return 0, fmt.Errorf("unknown order type tag: %d", tag)
	}
}

// StopType qualifies a stop order.
type StopType uint8

const (
	StopTypeNone StopType = iota
	StopTypeStopLoss
	StopTypeTakeProfit
)

func (t StopType) String() string {
	switch t {
	case StopTypeNone:
		return "none"
	case StopTypeStopLoss:
		return "stop_loss"
	case StopTypeTakeProfit:
		return "take_profit"
	default:
		return fmt.Sprintf("stop_type(%d)", uint8(t))
	}
}

// StopTypeFromTag maps a wire tag to a StopType.
func StopTypeFromTag(tag uint8) (StopType, error) {
	switch tag {
	case 0:
		return StopTypeNone, nil
	case 1:
		return StopTypeStopLoss, nil
	case 2:
		return StopTypeTakeProfit, nil
	default:
		return 0, fmt.Errorf("unknown stop type tag: %d", tag)
	}
}

// PositionStatus is the lifecycle state of a user position.
type PositionStatus uint8

const (
	PositionStatusInit PositionStatus = iota
	PositionStatusUsing
	PositionStatusClosed
)

func (s PositionStatus) String() string {
	switch s {
	case PositionStatusInit:
		return "init"
	case PositionStatusUsing:
		return "using"
	case PositionStatusClosed:
		return "closed"
	default:
		return fmt.Sprintf("position_status(%d)", uint8(s))
	}
}

// PositionStatusFromTag maps a wire tag to a PositionStatus.
func PositionStatusFromTag(tag uint8) (PositionStatus, error) {
	switch tag {
	case 0:
		return PositionStatusInit, nil
	case 1:
		return PositionStatusUsing, nil
	case 2:
		return PositionStatusClosed, nil
	default:
		return 0, fmt.Errorf("unknown position status tag: %d", tag)
	}
}

// PoolStatus is the operational state of a liquidity pool.
type PoolStatus uint8

const (
	PoolStatusNormal PoolStatus = iota
	PoolStatusStakePaused
	PoolStatusUnStakePaused
)

func (s PoolStatus) String() string {
	switch s {
	case PoolStatusNormal:
		return "normal"
	case PoolStatusStakePaused:
		return "stake_paused"
	case PoolStatusUnStakePaused:
		return "unstake_paused"
	default:
		return fmt.Sprintf("pool_status(%d)", uint8(s))
	}
}

// PoolStatusFromTag maps a wire tag to a PoolStatus.
func PoolStatusFromTag(tag uint8) (PoolStatus, error) {
	switch tag {
	case 0:
		return PoolStatusNormal, nil
	case 1:
		return PoolStatusStakePaused, nil
	case 2:
		return PoolStatusUnStakePaused, nil
	default:
		return 0, fmt.Errorf("unknown pool status tag: %d", tag)
	}
}

// UserStatus is the lifecycle state of a user account.
type UserStatus uint8

const (
	UserStatusNormal UserStatus = iota
	UserStatusLiquidating
)

func (s UserStatus) String() string {
	switch s {
	case UserStatusNormal:
		return "normal"
	case UserStatusLiquidating:
		return "liquidating"
	default:
		return fmt.Sprintf("user_status(%d)", uint8(s))
	}
}

// UserStatusFromTag maps a wire tag to a UserStatus.
func UserStatusFromTag(tag uint8) (UserStatus, error) {
	switch tag {
	case 0:
		return UserStatusNormal, nil
	case 1:
		return UserStatusLiquidating, nil
	default:
		return 0, fmt.Errorf("unknown user status tag: %d", tag)
	}
}

// OrderStatus is the lifecycle state of an order slot.
type OrderStatus uint8

const (
	OrderStatusInit OrderStatus = iota
	OrderStatusUsing
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusInit:
		return "init"
	case OrderStatusUsing:
		return "using"
	default:
		return fmt.Sprintf("order_status(%d)", uint8(s))
	}
}

// OrderStatusFromTag maps a wire tag to an OrderStatus.
func OrderStatusFromTag(tag uint8) (OrderStatus, error) {
	switch tag {
	case 0:
		return OrderStatusInit, nil
	case 1:
		return OrderStatusUsing, nil
	default:
		return 0, fmt.Errorf("unknown order status tag: %d", tag)
	}
}
