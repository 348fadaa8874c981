package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-vault/x/vault/types"
)

// Deposit pulls underlying from the depositor into custody and mints shares
// to the beneficiary at the pre-deposit price per share.
func (k *Keeper) Deposit(ctx sdk.Context, vaultID, depositor, beneficiary string, amount math.Int) (math.Int, error) {
	v := k.GetVault(ctx, vaultID)
	if v == nil {
		return math.ZeroInt(), types.ErrVaultNotFound
	}
	if !amount.IsPositive() {
		return math.ZeroInt(), types.ErrZeroAmount
	}
	if beneficiary == "" {
		return math.ZeroInt(), types.ErrEmptyBeneficiary
	}
	if k.greylistKeeper.IsGreylisted(ctx, depositor) || k.greylistKeeper.IsGreylisted(ctx, beneficiary) {
		return math.ZeroInt(), types.ErrGreylisted
	}

	// Settle pending yield first so the mint ratio reflects a fresh valuation.
	if v.AutoHarvestOnDeposit && v.HasActiveStrategy() {
		if err := k.hardWork(ctx, v); err != nil {
			return math.ZeroInt(), err
		}
	}

	depositorAddr, err := sdk.AccAddressFromBech32(depositor)
	if err != nil {
		return math.ZeroInt(), err
	}
	coins := sdk.NewCoins(sdk.NewCoin(v.Underlying, amount))
	if err := k.bankKeeper.SendCoins(ctx, depositorAddr, types.VaultAccount(vaultID), coins); err != nil {
		return math.ZeroInt(), err
	}

	totalValue, err := k.TotalValue(ctx, v)
	if err != nil {
		return math.ZeroInt(), err
	}

	shares := v.SharesForDeposit(amount, totalValue)
	k.mintShares(ctx, v, beneficiary, shares)
	touch(ctx, v)
	k.SetVault(ctx, v)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_deposit",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("depositor", depositor),
			sdk.NewAttribute("beneficiary", beneficiary),
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("shares", shares.String()),
		),
	)

	k.logger.Info("Deposit processed",
		"vault_id", vaultID,
		"depositor", depositor,
		"amount", amount.String(),
		"shares", shares.String(),
	)
	return shares, nil
}
