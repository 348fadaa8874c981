package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-vault/metrics"
	"github.com/openalpha/yield-vault/x/strategy/types"
)

// MsgServer defines the strategy MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// InitStrategy handles MsgInitStrategy
func (m *MsgServer) InitStrategy(ctx context.Context, msg *types.MsgInitStrategy) (*types.MsgInitStrategyResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if !m.keeper.accessKeeper.IsGovernance(sdkCtx, msg.Authority) {
		return nil, types.ErrUnauthorized
	}

	_, err := m.keeper.InitStrategy(sdkCtx, msg.StrategyID, msg.VaultID, msg.Underlying, msg.VenueID, msg.PositionDenom)
	if err != nil {
		return nil, err
	}

	return &types.MsgInitStrategyResponse{}, nil
}

// QueueFeeChange handles MsgQueueFeeChange
func (m *MsgServer) QueueFeeChange(ctx context.Context, msg *types.MsgQueueFeeChange) (*types.MsgQueueFeeChangeResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	eta, err := m.keeper.QueueFeeChange(sdkCtx, msg.Authority, msg.StrategyID, msg.Param, msg.Value)
	if err != nil {
		return nil, err
	}

	metrics.GetCollector().RecordFeeChangeQueued(msg.StrategyID, msg.Param)

	return &types.MsgQueueFeeChangeResponse{ETA: eta}, nil
}

// ConfirmFeeChange handles MsgConfirmFeeChange
func (m *MsgServer) ConfirmFeeChange(ctx context.Context, msg *types.MsgConfirmFeeChange) (*types.MsgConfirmFeeChangeResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.ConfirmFeeChange(sdkCtx, msg.Authority, msg.StrategyID, msg.Param); err != nil {
		return nil, err
	}

	return &types.MsgConfirmFeeChangeResponse{}, nil
}
