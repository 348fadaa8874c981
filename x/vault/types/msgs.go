package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgCreateVault             = "create_vault"
	TypeMsgDeposit                 = "deposit"
	TypeMsgWithdraw                = "withdraw"
	TypeMsgTransferShares          = "transfer_shares"
	TypeMsgApproveShares           = "approve_shares"
	TypeMsgDoHardWork              = "do_hard_work"
	TypeMsgSetInvestFraction       = "set_invest_fraction"
	TypeMsgAnnounceStrategySwitch  = "announce_strategy_switch"
	TypeMsgFinalizeStrategySwitch  = "finalize_strategy_switch"
	TypeMsgScheduleUpgrade         = "schedule_upgrade"
	TypeMsgFinalizeUpgrade         = "finalize_upgrade"
	TypeMsgSalvage                 = "salvage"
)

// MsgCreateVault defines the CreateVault message
type MsgCreateVault struct {
	Authority             string `json:"authority"`
	VaultID               string `json:"vault_id"`
	Underlying            string `json:"underlying"`
	Decimals              uint32 `json:"decimals"`
	AutoHarvestOnDeposit  bool   `json:"auto_harvest_on_deposit"`
	AutoHarvestOnWithdraw bool   `json:"auto_harvest_on_withdraw"`
}

// Route implements sdk.Msg
func (msg MsgCreateVault) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreateVault) Type() string { return TypeMsgCreateVault }

// ValidateBasic implements sdk.Msg
func (msg MsgCreateVault) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	if msg.Underlying == "" {
		return ErrUnderlyingMismatch
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreateVault) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreateVault) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreateVault) Reset() { *msg = MsgCreateVault{} }

// String implements proto.Message
func (msg MsgCreateVault) String() string {
	return fmt.Sprintf("MsgCreateVault{VaultID: %s, Underlying: %s}", msg.VaultID, msg.Underlying)
}

// MsgCreateVaultResponse defines the CreateVault response
type MsgCreateVaultResponse struct {
	VaultID        string `json:"vault_id"`
	UnderlyingUnit string `json:"underlying_unit"`
}

// MsgDeposit defines the Deposit message
type MsgDeposit struct {
	Depositor   string `json:"depositor"`
	VaultID     string `json:"vault_id"`
	Beneficiary string `json:"beneficiary"`
	Amount      string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgDeposit) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgDeposit) Type() string { return TypeMsgDeposit }

// ValidateBasic implements sdk.Msg
func (msg MsgDeposit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Depositor); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgDeposit) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Depositor)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgDeposit) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgDeposit) Reset() { *msg = MsgDeposit{} }

// String implements proto.Message
func (msg MsgDeposit) String() string {
	return fmt.Sprintf("MsgDeposit{Depositor: %s, VaultID: %s, Amount: %s}", msg.Depositor, msg.VaultID, msg.Amount)
}

// MsgDepositResponse defines the Deposit response
type MsgDepositResponse struct {
	SharesMinted  string `json:"shares_minted"`
	PricePerShare string `json:"price_per_share"`
}

// MsgWithdraw defines the Withdraw message
type MsgWithdraw struct {
	Caller   string `json:"caller"`
	VaultID  string `json:"vault_id"`
	Owner    string `json:"owner"`
	Receiver string `json:"receiver"`
	Shares   string `json:"shares"`
}

// Route implements sdk.Msg
func (msg MsgWithdraw) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdraw) Type() string { return TypeMsgWithdraw }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgWithdraw) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgWithdraw) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWithdraw) Reset() { *msg = MsgWithdraw{} }

// String implements proto.Message
func (msg MsgWithdraw) String() string {
	return fmt.Sprintf("MsgWithdraw{Caller: %s, VaultID: %s, Shares: %s}", msg.Caller, msg.VaultID, msg.Shares)
}

// MsgWithdrawResponse defines the Withdraw response
type MsgWithdrawResponse struct {
	UnderlyingReturned string `json:"underlying_returned"`
}

// MsgTransferShares defines the TransferShares message
type MsgTransferShares struct {
	From    string `json:"from"`
	VaultID string `json:"vault_id"`
	To      string `json:"to"`
	Shares  string `json:"shares"`
}

// Route implements sdk.Msg
func (msg MsgTransferShares) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTransferShares) Type() string { return TypeMsgTransferShares }

// ValidateBasic implements sdk.Msg
func (msg MsgTransferShares) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.From); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.To); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgTransferShares) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.From)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgTransferShares) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgTransferShares) Reset() { *msg = MsgTransferShares{} }

// String implements proto.Message
func (msg MsgTransferShares) String() string {
	return fmt.Sprintf("MsgTransferShares{From: %s, To: %s, Shares: %s}", msg.From, msg.To, msg.Shares)
}

// MsgTransferSharesResponse defines the TransferShares response
type MsgTransferSharesResponse struct{}

// MsgApproveShares defines the ApproveShares message
type MsgApproveShares struct {
	Owner   string `json:"owner"`
	VaultID string `json:"vault_id"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgApproveShares) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgApproveShares) Type() string { return TypeMsgApproveShares }

// ValidateBasic implements sdk.Msg
func (msg MsgApproveShares) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Spender); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgApproveShares) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgApproveShares) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgApproveShares) Reset() { *msg = MsgApproveShares{} }

// String implements proto.Message
func (msg MsgApproveShares) String() string {
	return fmt.Sprintf("MsgApproveShares{Owner: %s, Spender: %s, Amount: %s}", msg.Owner, msg.Spender, msg.Amount)
}

// MsgApproveSharesResponse defines the ApproveShares response
type MsgApproveSharesResponse struct{}

// MsgDoHardWork defines the DoHardWork message
type MsgDoHardWork struct {
	Caller  string `json:"caller"`
	VaultID string `json:"vault_id"`
}

// Route implements sdk.Msg
func (msg MsgDoHardWork) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgDoHardWork) Type() string { return TypeMsgDoHardWork }

// ValidateBasic implements sdk.Msg
func (msg MsgDoHardWork) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgDoHardWork) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgDoHardWork) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgDoHardWork) Reset() { *msg = MsgDoHardWork{} }

// String implements proto.Message
func (msg MsgDoHardWork) String() string {
	return fmt.Sprintf("MsgDoHardWork{Caller: %s, VaultID: %s}", msg.Caller, msg.VaultID)
}

// MsgDoHardWorkResponse defines the DoHardWork response
type MsgDoHardWorkResponse struct {
	Invested      string `json:"invested"`
	PricePerShare string `json:"price_per_share"`
}

// MsgSetInvestFraction defines the SetInvestFraction message
type MsgSetInvestFraction struct {
	Authority   string `json:"authority"`
	VaultID     string `json:"vault_id"`
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
}

// Route implements sdk.Msg
func (msg MsgSetInvestFraction) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetInvestFraction) Type() string { return TypeMsgSetInvestFraction }

// ValidateBasic implements sdk.Msg
func (msg MsgSetInvestFraction) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if msg.Denominator == 0 {
		return ErrZeroDenominator
	}
	if msg.Numerator > msg.Denominator {
		return ErrInvalidFraction
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSetInvestFraction) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSetInvestFraction) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSetInvestFraction) Reset() { *msg = MsgSetInvestFraction{} }

// String implements proto.Message
func (msg MsgSetInvestFraction) String() string {
	return fmt.Sprintf("MsgSetInvestFraction{VaultID: %s, Fraction: %d/%d}", msg.VaultID, msg.Numerator, msg.Denominator)
}

// MsgSetInvestFractionResponse defines the SetInvestFraction response
type MsgSetInvestFractionResponse struct{}

// MsgAnnounceStrategySwitch defines the AnnounceStrategySwitch message
type MsgAnnounceStrategySwitch struct {
	Authority  string `json:"authority"`
	VaultID    string `json:"vault_id"`
	StrategyID string `json:"strategy_id"`
}

// Route implements sdk.Msg
func (msg MsgAnnounceStrategySwitch) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgAnnounceStrategySwitch) Type() string { return TypeMsgAnnounceStrategySwitch }

// ValidateBasic implements sdk.Msg
func (msg MsgAnnounceStrategySwitch) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	if msg.StrategyID == "" {
		return ErrStrategyUndefined
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgAnnounceStrategySwitch) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgAnnounceStrategySwitch) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgAnnounceStrategySwitch) Reset() { *msg = MsgAnnounceStrategySwitch{} }

// String implements proto.Message
func (msg MsgAnnounceStrategySwitch) String() string {
	return fmt.Sprintf("MsgAnnounceStrategySwitch{VaultID: %s, StrategyID: %s}", msg.VaultID, msg.StrategyID)
}

// MsgAnnounceStrategySwitchResponse defines the AnnounceStrategySwitch response
type MsgAnnounceStrategySwitchResponse struct {
	ETA int64 `json:"eta"`
}

// MsgFinalizeStrategySwitch defines the FinalizeStrategySwitch message
type MsgFinalizeStrategySwitch struct {
	Authority  string `json:"authority"`
	VaultID    string `json:"vault_id"`
	StrategyID string `json:"strategy_id"`
}

// Route implements sdk.Msg
func (msg MsgFinalizeStrategySwitch) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgFinalizeStrategySwitch) Type() string { return TypeMsgFinalizeStrategySwitch }

// ValidateBasic implements sdk.Msg
func (msg MsgFinalizeStrategySwitch) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	if msg.StrategyID == "" {
		return ErrStrategyUndefined
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgFinalizeStrategySwitch) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgFinalizeStrategySwitch) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgFinalizeStrategySwitch) Reset() { *msg = MsgFinalizeStrategySwitch{} }

// String implements proto.Message
func (msg MsgFinalizeStrategySwitch) String() string {
	return fmt.Sprintf("MsgFinalizeStrategySwitch{VaultID: %s, StrategyID: %s}", msg.VaultID, msg.StrategyID)
}

// MsgFinalizeStrategySwitchResponse defines the FinalizeStrategySwitch response
type MsgFinalizeStrategySwitchResponse struct{}

// MsgScheduleUpgrade defines the ScheduleUpgrade message
type MsgScheduleUpgrade struct {
	Authority      string `json:"authority"`
	VaultID        string `json:"vault_id"`
	Implementation string `json:"implementation"`
}

// Route implements sdk.Msg
func (msg MsgScheduleUpgrade) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgScheduleUpgrade) Type() string { return TypeMsgScheduleUpgrade }

// ValidateBasic implements sdk.Msg
func (msg MsgScheduleUpgrade) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	if msg.Implementation == "" {
		return ErrNothingPending
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgScheduleUpgrade) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgScheduleUpgrade) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgScheduleUpgrade) Reset() { *msg = MsgScheduleUpgrade{} }

// String implements proto.Message
func (msg MsgScheduleUpgrade) String() string {
	return fmt.Sprintf("MsgScheduleUpgrade{VaultID: %s, Implementation: %s}", msg.VaultID, msg.Implementation)
}

// MsgScheduleUpgradeResponse defines the ScheduleUpgrade response
type MsgScheduleUpgradeResponse struct {
	ETA int64 `json:"eta"`
}

// MsgFinalizeUpgrade defines the FinalizeUpgrade message
type MsgFinalizeUpgrade struct {
	Authority string `json:"authority"`
	VaultID   string `json:"vault_id"`
}

// Route implements sdk.Msg
func (msg MsgFinalizeUpgrade) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgFinalizeUpgrade) Type() string { return TypeMsgFinalizeUpgrade }

// ValidateBasic implements sdk.Msg
func (msg MsgFinalizeUpgrade) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgFinalizeUpgrade) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgFinalizeUpgrade) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgFinalizeUpgrade) Reset() { *msg = MsgFinalizeUpgrade{} }

// String implements proto.Message
func (msg MsgFinalizeUpgrade) String() string {
	return fmt.Sprintf("MsgFinalizeUpgrade{VaultID: %s}", msg.VaultID)
}

// MsgFinalizeUpgradeResponse defines the FinalizeUpgrade response
type MsgFinalizeUpgradeResponse struct{}

// MsgSalvage defines the Salvage message
type MsgSalvage struct {
	Authority string `json:"authority"`
	VaultID   string `json:"vault_id"`
	Token     string `json:"token"`
	Amount    string `json:"amount"`
	Recipient string `json:"recipient"`
}

// Route implements sdk.Msg
func (msg MsgSalvage) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSalvage) Type() string { return TypeMsgSalvage }

// ValidateBasic implements sdk.Msg
func (msg MsgSalvage) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Recipient); err != nil {
		return err
	}
	if msg.VaultID == "" {
		return ErrVaultNotFound
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSalvage) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSalvage) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSalvage) Reset() { *msg = MsgSalvage{} }

// String implements proto.Message
func (msg MsgSalvage) String() string {
	return fmt.Sprintf("MsgSalvage{VaultID: %s, Token: %s, Amount: %s}", msg.VaultID, msg.Token, msg.Amount)
}

// MsgSalvageResponse defines the Salvage response
type MsgSalvageResponse struct{}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgCreateVault{}
	_ sdk.Msg = &MsgDeposit{}
	_ sdk.Msg = &MsgWithdraw{}
	_ sdk.Msg = &MsgTransferShares{}
	_ sdk.Msg = &MsgApproveShares{}
	_ sdk.Msg = &MsgDoHardWork{}
	_ sdk.Msg = &MsgSetInvestFraction{}
	_ sdk.Msg = &MsgAnnounceStrategySwitch{}
	_ sdk.Msg = &MsgFinalizeStrategySwitch{}
	_ sdk.Msg = &MsgScheduleUpgrade{}
	_ sdk.Msg = &MsgFinalizeUpgrade{}
	_ sdk.Msg = &MsgSalvage{}
)
