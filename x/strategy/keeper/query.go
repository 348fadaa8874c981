package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-vault/x/strategy/types"
)

// QueryServer defines the strategy QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Strategy returns a strategy by ID
func (q *QueryServer) Strategy(ctx context.Context, strategyID string) (*types.Strategy, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	s := q.keeper.GetStrategy(sdkCtx, strategyID)
	if s == nil {
		return nil, types.ErrStrategyNotFound
	}
	return s, nil
}

// Strategies returns all strategies
func (q *QueryServer) Strategies(ctx context.Context, offset, limit uint64) ([]*types.Strategy, uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	allStrategies := q.keeper.GetAllStrategies(sdkCtx)

	total := uint64(len(allStrategies))

	// Apply pagination
	if offset >= total {
		return []*types.Strategy{}, total, nil
	}

	end := offset + limit
	if end > total || limit == 0 {
		end = total
	}

	return allStrategies[offset:end], total, nil
}

// InvestedBalance returns the strategy's invested balance net of pending fees
func (q *QueryServer) InvestedBalance(ctx context.Context, strategyID string) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.InvestedBalance(sdkCtx, strategyID)
}

// PendingChanges returns the queued fee-parameter changes for a strategy.
// A zero ETA means nothing is queued for that parameter.
func (q *QueryServer) PendingChanges(ctx context.Context, strategyID string) (strategist, platform, profitSharing types.PendingNumerator, delay types.PendingDuration, err error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	s := q.keeper.GetStrategy(sdkCtx, strategyID)
	if s == nil {
		err = types.ErrStrategyNotFound
		return
	}
	return s.PendingStrategistFee, s.PendingPlatformFee, s.PendingProfitSharingFee, s.PendingTimelockDelay, nil
}

// FeeSkimHistory returns the fee skim records for a strategy
func (q *QueryServer) FeeSkimHistory(ctx context.Context, strategyID string, offset, limit uint64) ([]*types.FeeSkimRecord, uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	allRecords := q.keeper.GetFeeSkimRecords(sdkCtx, strategyID)

	total := uint64(len(allRecords))

	// Apply pagination
	if offset >= total {
		return []*types.FeeSkimRecord{}, total, nil
	}

	end := offset + limit
	if end > total || limit == 0 {
		end = total
	}

	return allRecords[offset:end], total, nil
}
