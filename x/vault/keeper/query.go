package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-vault/x/vault/types"
)

// QueryServer defines the vault QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Vault returns a vault by ID
func (q *QueryServer) Vault(ctx context.Context, vaultID string) (*types.Vault, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	v := q.keeper.GetVault(sdkCtx, vaultID)
	if v == nil {
		return nil, types.ErrVaultNotFound
	}
	return v, nil
}

// Vaults returns all vaults
func (q *QueryServer) Vaults(ctx context.Context, offset, limit uint64) ([]*types.Vault, uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	allVaults := q.keeper.GetAllVaults(sdkCtx)

	total := uint64(len(allVaults))

	// Apply pagination
	if offset >= total {
		return []*types.Vault{}, total, nil
	}

	end := offset + limit
	if end > total || limit == 0 {
		end = total
	}

	return allVaults[offset:end], total, nil
}

// SharePrice returns the current price per share and valuation for a vault
func (q *QueryServer) SharePrice(ctx context.Context, vaultID string) (pricePerShare, totalValue, totalShares math.Int, err error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	v := q.keeper.GetVault(sdkCtx, vaultID)
	if v == nil {
		return math.ZeroInt(), math.ZeroInt(), math.ZeroInt(), types.ErrVaultNotFound
	}

	totalValue, err = q.keeper.TotalValue(sdkCtx, v)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), math.ZeroInt(), err
	}

	return v.PricePerShare(totalValue), totalValue, v.TotalShares, nil
}

// HolderBalance returns a holder's shares and their current underlying value
func (q *QueryServer) HolderBalance(ctx context.Context, vaultID, holder string) (shares, value math.Int, err error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	v := q.keeper.GetVault(sdkCtx, vaultID)
	if v == nil {
		return math.ZeroInt(), math.ZeroInt(), types.ErrVaultNotFound
	}

	shares = q.keeper.GetShareBalance(sdkCtx, vaultID, holder)
	if shares.IsZero() || v.TotalShares.IsZero() {
		return shares, math.ZeroInt(), nil
	}

	totalValue, err := q.keeper.TotalValue(sdkCtx, v)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	return shares, types.UnderlyingForShares(shares, totalValue, v.TotalShares), nil
}

// Allowance returns the spender allowance granted by owner
func (q *QueryServer) Allowance(ctx context.Context, vaultID, owner, spender string) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if q.keeper.GetVault(sdkCtx, vaultID) == nil {
		return math.ZeroInt(), types.ErrVaultNotFound
	}
	return q.keeper.GetAllowance(sdkCtx, vaultID, owner, spender), nil
}

// AvailableToInvest returns how much idle underlying the next harvest would
// move into the strategy
func (q *QueryServer) AvailableToInvest(ctx context.Context, vaultID string) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	v := q.keeper.GetVault(sdkCtx, vaultID)
	if v == nil {
		return math.ZeroInt(), types.ErrVaultNotFound
	}
	return q.keeper.AvailableToInvest(sdkCtx, v)
}

// SharePriceHistory returns recorded price points for a vault
func (q *QueryServer) SharePriceHistory(ctx context.Context, vaultID string, offset, limit uint64) ([]*types.SharePricePoint, uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	allPoints := q.keeper.GetSharePriceHistory(sdkCtx, vaultID)

	total := uint64(len(allPoints))

	// Apply pagination
	if offset >= total {
		return []*types.SharePricePoint{}, total, nil
	}

	end := offset + limit
	if end > total || limit == 0 {
		end = total
	}

	return allPoints[offset:end], total, nil
}

// HarvestHistory returns the harvest records for a vault
func (q *QueryServer) HarvestHistory(ctx context.Context, vaultID string, offset, limit uint64) ([]*types.HarvestRecord, uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	allRecords := q.keeper.GetHarvestRecords(sdkCtx, vaultID)

	total := uint64(len(allRecords))

	// Apply pagination
	if offset >= total {
		return []*types.HarvestRecord{}, total, nil
	}

	end := offset + limit
	if end > total || limit == 0 {
		end = total
	}

	return allRecords[offset:end], total, nil
}
