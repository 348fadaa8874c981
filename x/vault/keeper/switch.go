package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-vault/x/vault/types"
)

// AnnounceStrategySwitch starts the timelock for replacing the active
// strategy. Re-announcing replaces the previous candidate and restarts the
// clock.
func (k *Keeper) AnnounceStrategySwitch(ctx sdk.Context, caller, vaultID, strategyID string) (int64, error) {
	if !k.accessKeeper.IsGovernance(ctx, caller) {
		return 0, types.ErrUnauthorized
	}
	v := k.GetVault(ctx, vaultID)
	if v == nil {
		return 0, types.ErrVaultNotFound
	}
	if _, err := k.strategyKeeper.Underlying(ctx, strategyID); err != nil {
		return 0, types.ErrStrategyUndefined
	}

	eta := ctx.BlockTime().Unix() + v.TimelockDelay
	v.PendingStrategy = strategyID
	v.PendingStrategyETA = eta
	touch(ctx, v)
	k.SetVault(ctx, v)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_strategy_switch_announced",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("eta", math.NewInt(eta).String()),
		),
	)

	k.logger.Info("Strategy switch announced",
		"vault_id", vaultID,
		"strategy_id", strategyID,
		"eta", eta,
	)
	return eta, nil
}

// FinalizeStrategySwitch installs the candidate strategy. The first strategy
// binds without an announcement; replacing an active one requires the
// announced candidate past its timelock and a fully drained predecessor.
func (k *Keeper) FinalizeStrategySwitch(ctx sdk.Context, caller, vaultID, strategyID string) error {
	if !k.accessKeeper.IsGovernance(ctx, caller) {
		return types.ErrUnauthorized
	}
	v := k.GetVault(ctx, vaultID)
	if v == nil {
		return types.ErrVaultNotFound
	}

	underlying, err := k.strategyKeeper.Underlying(ctx, strategyID)
	if err != nil {
		return types.ErrStrategyUndefined
	}
	if underlying != v.Underlying {
		return types.ErrUnderlyingMismatch
	}
	boundVault, err := k.strategyKeeper.BoundVault(ctx, strategyID)
	if err != nil {
		return types.ErrStrategyUndefined
	}
	if boundVault != vaultID {
		return types.ErrVaultMismatch
	}

	now := ctx.BlockTime().Unix()
	if v.HasActiveStrategy() {
		if !v.CanSwitchStrategy(strategyID, now) {
			if strategyID == v.PendingStrategy && v.PendingStrategyETA != 0 {
				return types.ErrTimelockNotElapsed
			}
			return types.ErrSwitchNotReady
		}

		// Only a genuine replacement drains the predecessor. Re-installing
		// the active strategy leaves its position untouched.
		if v.ActiveStrategy != strategyID {
			if err := k.strategyKeeper.WithdrawAllToVault(ctx, v.ActiveStrategy); err != nil {
				return err
			}
			remaining, err := k.strategyKeeper.InvestedBalance(ctx, v.ActiveStrategy)
			if err != nil {
				return err
			}
			if remaining.IsPositive() {
				return types.ErrStrategyNotDrained
			}
		}
	}

	previous := v.ActiveStrategy
	v.ActiveStrategy = strategyID
	v.PendingStrategy = ""
	v.PendingStrategyETA = 0
	touch(ctx, v)
	k.SetVault(ctx, v)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_strategy_switched",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("previous_strategy", previous),
			sdk.NewAttribute("strategy_id", strategyID),
		),
	)

	k.logger.Info("Strategy switched",
		"vault_id", vaultID,
		"previous_strategy", previous,
		"strategy_id", strategyID,
	)
	return nil
}
