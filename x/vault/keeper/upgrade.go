package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-vault/x/vault/types"
)

// ScheduleUpgrade announces an implementation handle change under the
// vault's timelock. Re-scheduling replaces the previous candidate.
func (k *Keeper) ScheduleUpgrade(ctx sdk.Context, caller, vaultID, implementation string) (int64, error) {
	if !k.accessKeeper.IsGovernance(ctx, caller) {
		return 0, types.ErrUnauthorized
	}
	v := k.GetVault(ctx, vaultID)
	if v == nil {
		return 0, types.ErrVaultNotFound
	}

	eta := ctx.BlockTime().Unix() + v.TimelockDelay
	v.PendingImplementation = implementation
	v.PendingImplementationETA = eta
	touch(ctx, v)
	k.SetVault(ctx, v)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_upgrade_scheduled",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("implementation", implementation),
			sdk.NewAttribute("eta", math.NewInt(eta).String()),
		),
	)

	k.logger.Info("Upgrade scheduled",
		"vault_id", vaultID,
		"implementation", implementation,
		"eta", eta,
	)
	return eta, nil
}

// FinalizeUpgrade commits the scheduled implementation once its timelock has
// elapsed, re-snapshotting the share baseline. The pending slot is cleared
// so a second finalize fails.
func (k *Keeper) FinalizeUpgrade(ctx sdk.Context, caller, vaultID string) error {
	if !k.accessKeeper.IsGovernance(ctx, caller) {
		return types.ErrUnauthorized
	}
	v := k.GetVault(ctx, vaultID)
	if v == nil {
		return types.ErrVaultNotFound
	}

	now := ctx.BlockTime().Unix()
	ready, implementation := v.ShouldUpgrade(now)
	if !ready {
		if v.PendingImplementation == "" || v.PendingImplementationETA == 0 {
			return types.ErrNothingPending
		}
		return types.ErrTimelockNotElapsed
	}

	v.Implementation = implementation
	v.PendingImplementation = ""
	v.PendingImplementationETA = 0
	v.UnderlyingUnit = types.UnderlyingUnit(v.Decimals)
	touch(ctx, v)
	k.SetVault(ctx, v)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_upgraded",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("implementation", implementation),
		),
	)

	k.logger.Info("Upgrade finalized",
		"vault_id", vaultID,
		"implementation", implementation,
	)
	return nil
}
