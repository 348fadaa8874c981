package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-vault/metrics"
	"github.com/openalpha/yield-vault/x/vault/types"
)

// MsgServer defines the vault MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// toFloat converts a big integer amount for metric export. Precision loss is
// acceptable for monitoring.
func toFloat(amount math.Int) float64 {
	f, _ := strconv.ParseFloat(amount.String(), 64)
	return f
}

// CreateVault handles MsgCreateVault
func (m *MsgServer) CreateVault(ctx context.Context, msg *types.MsgCreateVault) (*types.MsgCreateVaultResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	v, err := m.keeper.CreateVault(sdkCtx, msg.Authority, msg.VaultID, msg.Underlying, msg.Decimals, msg.AutoHarvestOnDeposit, msg.AutoHarvestOnWithdraw)
	if err != nil {
		return nil, err
	}

	metrics.GetCollector().UpdateSystemMetrics(sdkCtx.BlockHeight(), len(m.keeper.GetAllVaults(sdkCtx)))

	return &types.MsgCreateVaultResponse{
		VaultID:        v.VaultID,
		UnderlyingUnit: v.UnderlyingUnit.String(),
	}, nil
}

// Deposit handles MsgDeposit
func (m *MsgServer) Deposit(ctx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	shares, err := m.keeper.Deposit(sdkCtx, msg.VaultID, msg.Depositor, msg.Beneficiary, amount)
	if err != nil {
		return nil, err
	}

	pricePerShare, err := m.keeper.PricePerShare(sdkCtx, msg.VaultID)
	if err != nil {
		return nil, err
	}

	metrics.GetCollector().RecordDeposit(msg.VaultID, toFloat(amount))

	return &types.MsgDepositResponse{
		SharesMinted:  shares.String(),
		PricePerShare: pricePerShare.String(),
	}, nil
}

// Withdraw handles MsgWithdraw
func (m *MsgServer) Withdraw(ctx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	shares, ok := math.NewIntFromString(msg.Shares)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	returned, err := m.keeper.Withdraw(sdkCtx, msg.VaultID, msg.Caller, msg.Owner, msg.Receiver, shares)
	if err != nil {
		return nil, err
	}

	metrics.GetCollector().RecordWithdrawal(msg.VaultID, toFloat(returned))

	return &types.MsgWithdrawResponse{
		UnderlyingReturned: returned.String(),
	}, nil
}

// TransferShares handles MsgTransferShares
func (m *MsgServer) TransferShares(ctx context.Context, msg *types.MsgTransferShares) (*types.MsgTransferSharesResponse, error) {
	shares, ok := math.NewIntFromString(msg.Shares)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.TransferShares(sdkCtx, msg.VaultID, msg.From, msg.To, shares); err != nil {
		return nil, err
	}

	return &types.MsgTransferSharesResponse{}, nil
}

// ApproveShares handles MsgApproveShares
func (m *MsgServer) ApproveShares(ctx context.Context, msg *types.MsgApproveShares) (*types.MsgApproveSharesResponse, error) {
	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.ApproveShares(sdkCtx, msg.VaultID, msg.Owner, msg.Spender, amount); err != nil {
		return nil, err
	}

	return &types.MsgApproveSharesResponse{}, nil
}

// DoHardWork handles MsgDoHardWork
func (m *MsgServer) DoHardWork(ctx context.Context, msg *types.MsgDoHardWork) (*types.MsgDoHardWorkResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	timer := metrics.NewTimer()
	if err := m.keeper.DoHardWork(sdkCtx, msg.Caller, msg.VaultID); err != nil {
		return nil, err
	}

	v := m.keeper.GetVault(sdkCtx, msg.VaultID)
	pricePerShare, err := m.keeper.PricePerShare(sdkCtx, msg.VaultID)
	if err != nil {
		return nil, err
	}

	invested := math.ZeroInt()
	if v.HasActiveStrategy() {
		invested, err = m.keeper.strategyKeeper.InvestedBalance(sdkCtx, v.ActiveStrategy)
		if err != nil {
			return nil, err
		}
	}

	metrics.GetCollector().RecordHarvest(msg.VaultID, v.ActiveStrategy, toFloat(invested), timer.ElapsedMs())

	return &types.MsgDoHardWorkResponse{
		Invested:      invested.String(),
		PricePerShare: pricePerShare.String(),
	}, nil
}

// SetInvestFraction handles MsgSetInvestFraction
func (m *MsgServer) SetInvestFraction(ctx context.Context, msg *types.MsgSetInvestFraction) (*types.MsgSetInvestFractionResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.SetInvestFraction(sdkCtx, msg.Authority, msg.VaultID, msg.Numerator, msg.Denominator); err != nil {
		return nil, err
	}

	return &types.MsgSetInvestFractionResponse{}, nil
}

// AnnounceStrategySwitch handles MsgAnnounceStrategySwitch
func (m *MsgServer) AnnounceStrategySwitch(ctx context.Context, msg *types.MsgAnnounceStrategySwitch) (*types.MsgAnnounceStrategySwitchResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	eta, err := m.keeper.AnnounceStrategySwitch(sdkCtx, msg.Authority, msg.VaultID, msg.StrategyID)
	if err != nil {
		return nil, err
	}

	return &types.MsgAnnounceStrategySwitchResponse{ETA: eta}, nil
}

// FinalizeStrategySwitch handles MsgFinalizeStrategySwitch
func (m *MsgServer) FinalizeStrategySwitch(ctx context.Context, msg *types.MsgFinalizeStrategySwitch) (*types.MsgFinalizeStrategySwitchResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.FinalizeStrategySwitch(sdkCtx, msg.Authority, msg.VaultID, msg.StrategyID); err != nil {
		return nil, err
	}

	metrics.GetCollector().RecordStrategySwitch(msg.VaultID)

	return &types.MsgFinalizeStrategySwitchResponse{}, nil
}

// ScheduleUpgrade handles MsgScheduleUpgrade
func (m *MsgServer) ScheduleUpgrade(ctx context.Context, msg *types.MsgScheduleUpgrade) (*types.MsgScheduleUpgradeResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	eta, err := m.keeper.ScheduleUpgrade(sdkCtx, msg.Authority, msg.VaultID, msg.Implementation)
	if err != nil {
		return nil, err
	}

	metrics.GetCollector().RecordUpgradeScheduled(msg.VaultID)

	return &types.MsgScheduleUpgradeResponse{ETA: eta}, nil
}

// FinalizeUpgrade handles MsgFinalizeUpgrade
func (m *MsgServer) FinalizeUpgrade(ctx context.Context, msg *types.MsgFinalizeUpgrade) (*types.MsgFinalizeUpgradeResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.FinalizeUpgrade(sdkCtx, msg.Authority, msg.VaultID); err != nil {
		return nil, err
	}

	metrics.GetCollector().RecordUpgradeFinalized(msg.VaultID)

	return &types.MsgFinalizeUpgradeResponse{}, nil
}

// Salvage handles MsgSalvage
func (m *MsgServer) Salvage(ctx context.Context, msg *types.MsgSalvage) (*types.MsgSalvageResponse, error) {
	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.Salvage(sdkCtx, msg.Authority, msg.VaultID, msg.Token, amount, msg.Recipient); err != nil {
		return nil, err
	}

	return &types.MsgSalvageResponse{}, nil
}
