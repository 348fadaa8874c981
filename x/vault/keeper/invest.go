package keeper

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	strategytypes "github.com/openalpha/yield-vault/x/strategy/types"
	"github.com/openalpha/yield-vault/x/vault/types"
)

// SetInvestFraction updates the target invested fraction of total value.
func (k *Keeper) SetInvestFraction(ctx sdk.Context, caller, vaultID string, numerator, denominator uint64) error {
	if !k.accessKeeper.IsGovernance(ctx, caller) {
		return types.ErrUnauthorized
	}
	v := k.GetVault(ctx, vaultID)
	if v == nil {
		return types.ErrVaultNotFound
	}
	if denominator == 0 {
		return types.ErrZeroDenominator
	}
	if numerator > denominator {
		return types.ErrInvalidFraction
	}

	v.InvestNumerator = numerator
	v.InvestDenominator = denominator
	touch(ctx, v)
	k.SetVault(ctx, v)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_invest_fraction_set",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("numerator", math.NewIntFromUint64(numerator).String()),
			sdk.NewAttribute("denominator", math.NewIntFromUint64(denominator).String()),
		),
	)
	return nil
}

// AvailableToInvest computes how much idle underlying should move to the
// strategy to reach the target fraction. Zero when already at or above it.
func (k *Keeper) AvailableToInvest(ctx sdk.Context, v *types.Vault) (math.Int, error) {
	if !v.HasActiveStrategy() {
		return math.ZeroInt(), nil
	}
	totalValue, err := k.TotalValue(ctx, v)
	if err != nil {
		return math.ZeroInt(), err
	}
	invested, err := k.strategyKeeper.InvestedBalance(ctx, v.ActiveStrategy)
	if err != nil {
		return math.ZeroInt(), err
	}

	target := v.InvestTarget(totalValue)
	if invested.GTE(target) {
		return math.ZeroInt(), nil
	}

	wanted := target.Sub(invested)
	idle := k.IdleBalance(ctx, v)
	if wanted.GT(idle) {
		wanted = idle
	}
	return wanted, nil
}

// invest moves idle underlying into the strategy up to the target fraction.
func (k *Keeper) invest(ctx sdk.Context, v *types.Vault) (math.Int, error) {
	amount, err := k.AvailableToInvest(ctx, v)
	if err != nil {
		return math.ZeroInt(), err
	}
	if !amount.IsPositive() {
		return math.ZeroInt(), nil
	}

	coins := sdk.NewCoins(sdk.NewCoin(v.Underlying, amount))
	strategyAcct, err := k.strategyAccount(ctx, v.ActiveStrategy)
	if err != nil {
		return math.ZeroInt(), err
	}
	if err := k.bankKeeper.SendCoins(ctx, types.VaultAccount(v.VaultID), strategyAcct, coins); err != nil {
		return math.ZeroInt(), err
	}
	if err := k.strategyKeeper.Supply(ctx, v.ActiveStrategy, amount); err != nil {
		return math.ZeroInt(), err
	}
	return amount, nil
}

// hardWork settles pending strategy fees and pushes idle funds toward the
// invest target, recording the run.
func (k *Keeper) hardWork(ctx sdk.Context, v *types.Vault) error {
	if !v.HasActiveStrategy() {
		return types.ErrNoStrategy
	}

	if err := k.strategyKeeper.DoHardWork(ctx, v.ActiveStrategy); err != nil {
		return err
	}
	invested, err := k.invest(ctx, v)
	if err != nil {
		return err
	}

	totalValue, err := k.TotalValue(ctx, v)
	if err != nil {
		return err
	}
	k.recordHarvest(ctx, v, invested, v.PricePerShare(totalValue))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_hard_work",
			sdk.NewAttribute("vault_id", v.VaultID),
			sdk.NewAttribute("strategy_id", v.ActiveStrategy),
			sdk.NewAttribute("invested", invested.String()),
		),
	)
	return nil
}

// DoHardWork runs a harvest cycle for the vault. Restricted to governance
// and controller callers.
func (k *Keeper) DoHardWork(ctx sdk.Context, caller, vaultID string) error {
	if !k.accessKeeper.IsGovernance(ctx, caller) && !k.accessKeeper.IsController(ctx, caller) {
		return types.ErrUnauthorized
	}
	v := k.GetVault(ctx, vaultID)
	if v == nil {
		return types.ErrVaultNotFound
	}
	if err := k.hardWork(ctx, v); err != nil {
		return err
	}

	k.logger.Info("Hard work completed",
		"vault_id", vaultID,
		"strategy_id", v.ActiveStrategy,
	)
	return nil
}

// strategyAccount resolves the custody account of the active strategy.
func (k *Keeper) strategyAccount(ctx sdk.Context, strategyID string) (sdk.AccAddress, error) {
	if _, err := k.strategyKeeper.Underlying(ctx, strategyID); err != nil {
		return nil, err
	}
	return strategytypes.StrategyAccount(strategyID), nil
}

// harvestKey orders harvest records by block height within a vault
func harvestKey(vaultID string, blockHeight int64, recordID string) []byte {
	key := append(HarvestRecordKeyPrefix, []byte(vaultID)...)
	key = append(key, '/')
	key = append(key, []byte(fmt.Sprintf("%020d", blockHeight))...)
	key = append(key, '/')
	return append(key, []byte(recordID)...)
}

// generateHarvestID generates a unique harvest record ID
func (k *Keeper) generateHarvestID(ctx sdk.Context) string {
	store := k.GetStore(ctx)
	bz := store.Get(HarvestCounterKey)
	var counter uint64
	if bz != nil {
		counter = binary.BigEndian.Uint64(bz)
	}
	counter++

	newBz := make([]byte, 8)
	binary.BigEndian.PutUint64(newBz, counter)
	store.Set(HarvestCounterKey, newBz)

	return fmt.Sprintf("harvest-%d", counter)
}

// recordHarvest persists one completed harvest run.
func (k *Keeper) recordHarvest(ctx sdk.Context, v *types.Vault, invested, pricePerShare math.Int) {
	record := &types.HarvestRecord{
		RecordID:      k.generateHarvestID(ctx),
		VaultID:       v.VaultID,
		StrategyID:    v.ActiveStrategy,
		Invested:      invested,
		PricePerShare: pricePerShare,
		Timestamp:     ctx.BlockTime().Unix(),
		BlockHeight:   ctx.BlockHeight(),
	}

	store := k.GetStore(ctx)
	bz, _ := json.Marshal(record)
	store.Set(harvestKey(v.VaultID, ctx.BlockHeight(), record.RecordID), bz)
}

// GetHarvestRecords returns the harvest history for a vault in block order.
func (k *Keeper) GetHarvestRecords(ctx sdk.Context, vaultID string) []*types.HarvestRecord {
	store := k.GetStore(ctx)
	prefix := append(HarvestRecordKeyPrefix, []byte(vaultID)...)
	prefix = append(prefix, '/')
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var records []*types.HarvestRecord
	for ; iterator.Valid(); iterator.Next() {
		var r types.HarvestRecord
		if err := json.Unmarshal(iterator.Value(), &r); err != nil {
			continue
		}
		records = append(records, &r)
	}
	return records
}
