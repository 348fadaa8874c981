package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-vault/x/vault/types"
)

// Withdraw burns owner's shares and pays the receiver their proportional
// slice of total value. Shares are burned before any funds move; if custody
// cannot cover the payout the shortfall is pulled from the strategy and the
// owed amount re-derived against the balance actually realized.
func (k *Keeper) Withdraw(ctx sdk.Context, vaultID, caller, owner, receiver string, shares math.Int) (math.Int, error) {
	v := k.GetVault(ctx, vaultID)
	if v == nil {
		return math.ZeroInt(), types.ErrVaultNotFound
	}
	if !shares.IsPositive() {
		return math.ZeroInt(), types.ErrZeroShares
	}
	if v.TotalShares.IsZero() {
		return math.ZeroInt(), types.ErrNoShares
	}
	if k.GetShareBalance(ctx, vaultID, owner).LT(shares) {
		return math.ZeroInt(), types.ErrInsufficientShares
	}
	if caller != owner {
		if err := k.spendAllowance(ctx, vaultID, owner, caller, shares); err != nil {
			return math.ZeroInt(), err
		}
	}

	if v.AutoHarvestOnWithdraw && v.HasActiveStrategy() {
		if err := k.hardWork(ctx, v); err != nil {
			return math.ZeroInt(), err
		}
	}

	totalValue, err := k.TotalValue(ctx, v)
	if err != nil {
		return math.ZeroInt(), err
	}

	totalSharesBefore := v.TotalShares
	fullExit := shares.Equal(totalSharesBefore)
	owed := types.UnderlyingForShares(shares, totalValue, totalSharesBefore)

	k.burnShares(ctx, v, owner, shares)

	idle := k.IdleBalance(ctx, v)
	if owed.GT(idle) && v.HasActiveStrategy() {
		if fullExit {
			err = k.strategyKeeper.WithdrawAllToVault(ctx, v.ActiveStrategy)
		} else {
			err = k.strategyKeeper.WithdrawToVault(ctx, v.ActiveStrategy, owed.Sub(idle))
		}
		if err != nil {
			return math.ZeroInt(), err
		}

		// The strategy may return less than requested. Re-derive against the
		// refreshed valuation so the loss is shared pro rata, then cap at
		// what custody actually holds.
		refreshed, err := k.TotalValue(ctx, v)
		if err != nil {
			return math.ZeroInt(), err
		}
		owed = types.UnderlyingForShares(shares, refreshed, totalSharesBefore)
		idle = k.IdleBalance(ctx, v)
	}
	if owed.GT(idle) {
		owed = idle
	}

	touch(ctx, v)
	k.SetVault(ctx, v)

	receiverAddr, err := sdk.AccAddressFromBech32(receiver)
	if err != nil {
		return math.ZeroInt(), err
	}
	if owed.IsPositive() {
		coins := sdk.NewCoins(sdk.NewCoin(v.Underlying, owed))
		if err := k.bankKeeper.SendCoins(ctx, types.VaultAccount(vaultID), receiverAddr, coins); err != nil {
			return math.ZeroInt(), err
		}
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_withdraw",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("owner", owner),
			sdk.NewAttribute("receiver", receiver),
			sdk.NewAttribute("shares", shares.String()),
			sdk.NewAttribute("amount", owed.String()),
		),
	)

	k.logger.Info("Withdrawal processed",
		"vault_id", vaultID,
		"owner", owner,
		"shares", shares.String(),
		"amount", owed.String(),
	)
	return owed, nil
}
