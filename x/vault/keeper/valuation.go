package keeper

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-vault/x/vault/types"
)

// IdleBalance reads the underlying sitting in the vault's custody account.
// It is never cached: external transfers into the account are picked up by
// the next valuation.
func (k *Keeper) IdleBalance(ctx sdk.Context, v *types.Vault) math.Int {
	return k.bankKeeper.GetBalance(ctx, types.VaultAccount(v.VaultID), v.Underlying).Amount
}

// TotalValue values the vault as idle custody plus the active strategy's
// invested balance.
func (k *Keeper) TotalValue(ctx sdk.Context, v *types.Vault) (math.Int, error) {
	idle := k.IdleBalance(ctx, v)
	if !v.HasActiveStrategy() {
		return idle, nil
	}
	invested, err := k.strategyKeeper.InvestedBalance(ctx, v.ActiveStrategy)
	if err != nil {
		return math.ZeroInt(), err
	}
	return idle.Add(invested), nil
}

// PricePerShare returns the current underlying value of one full share unit.
func (k *Keeper) PricePerShare(ctx sdk.Context, vaultID string) (math.Int, error) {
	v := k.GetVault(ctx, vaultID)
	if v == nil {
		return math.ZeroInt(), types.ErrVaultNotFound
	}
	totalValue, err := k.TotalValue(ctx, v)
	if err != nil {
		return math.ZeroInt(), err
	}
	return v.PricePerShare(totalValue), nil
}

// sharePriceKey orders history entries by block height within a vault
func sharePriceKey(vaultID string, blockHeight int64) []byte {
	key := append(SharePriceHistoryPrefix, []byte(vaultID)...)
	key = append(key, '/')
	return append(key, []byte(fmt.Sprintf("%020d", blockHeight))...)
}

// RecordSharePrice appends a price-per-share observation for the vault.
func (k *Keeper) RecordSharePrice(ctx sdk.Context, v *types.Vault) error {
	totalValue, err := k.TotalValue(ctx, v)
	if err != nil {
		return err
	}

	point := &types.SharePricePoint{
		VaultID:       v.VaultID,
		PricePerShare: v.PricePerShare(totalValue),
		TotalValue:    totalValue,
		TotalShares:   v.TotalShares,
		Timestamp:     ctx.BlockTime().Unix(),
		BlockHeight:   ctx.BlockHeight(),
	}

	store := k.GetStore(ctx)
	bz, _ := json.Marshal(point)
	store.Set(sharePriceKey(v.VaultID, ctx.BlockHeight()), bz)
	return nil
}

// GetSharePriceHistory returns the recorded price points for a vault in
// block-height order.
func (k *Keeper) GetSharePriceHistory(ctx sdk.Context, vaultID string) []*types.SharePricePoint {
	store := k.GetStore(ctx)
	prefix := append(SharePriceHistoryPrefix, []byte(vaultID)...)
	prefix = append(prefix, '/')
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var points []*types.SharePricePoint
	for ; iterator.Valid(); iterator.Next() {
		var p types.SharePricePoint
		if err := json.Unmarshal(iterator.Value(), &p); err != nil {
			continue
		}
		points = append(points, &p)
	}
	return points
}
