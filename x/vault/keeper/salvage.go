package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-vault/x/vault/types"
)

// Salvage recovers stray tokens sent to the custody account. The underlying
// and the active strategy's position token are part of accounting and can
// never be salvaged.
func (k *Keeper) Salvage(ctx sdk.Context, caller, vaultID, token string, amount math.Int, recipient string) error {
	if !k.accessKeeper.IsGovernance(ctx, caller) {
		return types.ErrUnauthorized
	}
	v := k.GetVault(ctx, vaultID)
	if v == nil {
		return types.ErrVaultNotFound
	}
	if !amount.IsPositive() {
		return types.ErrZeroAmount
	}
	if token == v.Underlying {
		return types.ErrSalvageForbidden
	}
	if v.HasActiveStrategy() {
		positionDenom, err := k.strategyKeeper.PositionDenom(ctx, v.ActiveStrategy)
		if err != nil {
			return err
		}
		if token == positionDenom {
			return types.ErrSalvageForbidden
		}
	}

	recipientAddr, err := sdk.AccAddressFromBech32(recipient)
	if err != nil {
		return err
	}
	coins := sdk.NewCoins(sdk.NewCoin(token, amount))
	if err := k.bankKeeper.SendCoins(ctx, types.VaultAccount(vaultID), recipientAddr, coins); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_salvage",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("token", token),
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("recipient", recipient),
		),
	)

	k.logger.Info("Salvage executed",
		"vault_id", vaultID,
		"token", token,
		"amount", amount.String(),
	)
	return nil
}
