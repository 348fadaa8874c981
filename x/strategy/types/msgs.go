package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgInitStrategy     = "init_strategy"
	TypeMsgQueueFeeChange   = "queue_fee_change"
	TypeMsgConfirmFeeChange = "confirm_fee_change"
)

// MsgInitStrategy defines the InitStrategy message
type MsgInitStrategy struct {
	Authority     string `json:"authority"`
	StrategyID    string `json:"strategy_id"`
	VaultID       string `json:"vault_id"`
	Underlying    string `json:"underlying"`
	VenueID       string `json:"venue_id"`
	PositionDenom string `json:"position_denom"`
}

// Route implements sdk.Msg
func (msg MsgInitStrategy) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgInitStrategy) Type() string { return TypeMsgInitStrategy }

// ValidateBasic implements sdk.Msg
func (msg MsgInitStrategy) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if msg.StrategyID == "" {
		return ErrStrategyNotFound
	}
	if msg.VaultID == "" || msg.Underlying == "" || msg.VenueID == "" {
		return ErrVenueNotRegistered
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgInitStrategy) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgInitStrategy) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgInitStrategy) Reset() { *msg = MsgInitStrategy{} }

// String implements proto.Message
func (msg MsgInitStrategy) String() string {
	return fmt.Sprintf("MsgInitStrategy{StrategyID: %s, VaultID: %s, VenueID: %s}", msg.StrategyID, msg.VaultID, msg.VenueID)
}

// MsgInitStrategyResponse defines the InitStrategy response
type MsgInitStrategyResponse struct{}

// MsgQueueFeeChange defines the QueueFeeChange message
type MsgQueueFeeChange struct {
	Authority  string `json:"authority"`
	StrategyID string `json:"strategy_id"`
	Param      string `json:"param"`
	Value      uint64 `json:"value"`
}

// Route implements sdk.Msg
func (msg MsgQueueFeeChange) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgQueueFeeChange) Type() string { return TypeMsgQueueFeeChange }

// ValidateBasic implements sdk.Msg
func (msg MsgQueueFeeChange) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if msg.StrategyID == "" {
		return ErrStrategyNotFound
	}
	switch msg.Param {
	case FeeParamStrategist, FeeParamPlatform, FeeParamProfitSharing, FeeParamTimelockDelay:
	default:
		return ErrUnknownFeeParam
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgQueueFeeChange) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgQueueFeeChange) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgQueueFeeChange) Reset() { *msg = MsgQueueFeeChange{} }

// String implements proto.Message
func (msg MsgQueueFeeChange) String() string {
	return fmt.Sprintf("MsgQueueFeeChange{StrategyID: %s, Param: %s, Value: %d}", msg.StrategyID, msg.Param, msg.Value)
}

// MsgQueueFeeChangeResponse defines the QueueFeeChange response
type MsgQueueFeeChangeResponse struct {
	ETA int64 `json:"eta"`
}

// MsgConfirmFeeChange defines the ConfirmFeeChange message
type MsgConfirmFeeChange struct {
	Authority  string `json:"authority"`
	StrategyID string `json:"strategy_id"`
	Param      string `json:"param"`
}

// Route implements sdk.Msg
func (msg MsgConfirmFeeChange) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgConfirmFeeChange) Type() string { return TypeMsgConfirmFeeChange }

// ValidateBasic implements sdk.Msg
func (msg MsgConfirmFeeChange) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if msg.StrategyID == "" {
		return ErrStrategyNotFound
	}
	switch msg.Param {
	case FeeParamStrategist, FeeParamPlatform, FeeParamProfitSharing, FeeParamTimelockDelay:
	default:
		return ErrUnknownFeeParam
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgConfirmFeeChange) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgConfirmFeeChange) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgConfirmFeeChange) Reset() { *msg = MsgConfirmFeeChange{} }

// String implements proto.Message
func (msg MsgConfirmFeeChange) String() string {
	return fmt.Sprintf("MsgConfirmFeeChange{StrategyID: %s, Param: %s}", msg.StrategyID, msg.Param)
}

// MsgConfirmFeeChangeResponse defines the ConfirmFeeChange response
type MsgConfirmFeeChangeResponse struct{}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgInitStrategy{}
	_ sdk.Msg = &MsgQueueFeeChange{}
	_ sdk.Msg = &MsgConfirmFeeChange{}
)
