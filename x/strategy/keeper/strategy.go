package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/yield-vault/x/strategy/types"
	vaulttypes "github.com/openalpha/yield-vault/x/vault/types"
)

// Supply pushes idle underlying sitting in the strategy account into the
// venue. Called by the vault's allocator after it has transferred funds.
func (k *Keeper) Supply(ctx sdk.Context, strategyID string, amount math.Int) error {
	s := k.GetStrategy(ctx, strategyID)
	if s == nil {
		return types.ErrStrategyNotFound
	}
	if !amount.IsPositive() {
		return types.ErrZeroAmount
	}
	venue, err := k.Venue(s)
	if err != nil {
		return err
	}

	idle := k.idleBalance(ctx, s)
	if amount.GT(idle) {
		amount = idle
	}
	if err := venue.Supply(ctx, amount); err != nil {
		return err
	}

	s.SuppliedSnapshot = venue.CurrentPosition(ctx)
	s.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, s)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"strategy_supply",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("snapshot", s.SuppliedSnapshot.String()),
		),
	)

	k.logger.Info("Supplied to venue",
		"strategy_id", strategyID,
		"amount", amount.String(),
	)
	return nil
}

// investIdle supplies whatever underlying currently sits idle at the strategy.
func (k *Keeper) investIdle(ctx sdk.Context, s *types.Strategy) error {
	idle := k.idleBalance(ctx, s)
	if !idle.IsPositive() {
		return nil
	}
	return k.Supply(ctx, s.StrategyID, idle)
}

// DoHardWork runs the strategy's own harvest cycle: skim fees, then put all
// idle underlying back to work.
func (k *Keeper) DoHardWork(ctx sdk.Context, strategyID string) error {
	if err := k.HandleFee(ctx, strategyID); err != nil {
		return err
	}
	s := k.GetStrategy(ctx, strategyID)
	if s == nil {
		return types.ErrStrategyNotFound
	}
	return k.investIdle(ctx, s)
}

// WithdrawToVault pulls exactly amount of underlying back to the vault's
// custody account, redeeming from the venue when the strategy's idle funds
// do not cover it. Fees are accrued before any redeem refreshes the
// snapshot, so yield between harvests is still charged. A venue returning
// less than requested is tolerated: the transfer is clamped to what is
// actually available.
func (k *Keeper) WithdrawToVault(ctx sdk.Context, strategyID string, amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrZeroAmount
	}
	if _, err := k.AccrueFee(ctx, strategyID); err != nil {
		return err
	}

	s := k.GetStrategy(ctx, strategyID)
	venue, err := k.Venue(s)
	if err != nil {
		return err
	}

	idle := k.idleBalance(ctx, s)
	if idle.LT(amount) {
		if _, err := venue.Redeem(ctx, amount.Sub(idle)); err != nil {
			return err
		}
		s.SuppliedSnapshot = venue.CurrentPosition(ctx)
		idle = k.idleBalance(ctx, s)
	}
	if amount.GT(idle) {
		amount = idle
	}

	if amount.IsPositive() {
		coins := sdk.NewCoins(sdk.NewCoin(s.Underlying, amount))
		if err := k.bankKeeper.SendCoins(ctx, types.StrategyAccount(strategyID), vaulttypes.VaultAccount(s.VaultID), coins); err != nil {
			return err
		}
	}

	s.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, s)

	k.logger.Info("Withdrew to vault",
		"strategy_id", strategyID,
		"vault_id", s.VaultID,
		"amount", amount.String(),
	)
	return nil
}

// WithdrawAllToVault flushes the strategy completely: the pending fee is
// skimmed first so the vault never receives fee-owed yield, then the entire
// venue position and all idle underlying are returned to vault custody.
func (k *Keeper) WithdrawAllToVault(ctx sdk.Context, strategyID string) error {
	if err := k.HandleFee(ctx, strategyID); err != nil {
		return err
	}

	s := k.GetStrategy(ctx, strategyID)
	if s == nil {
		return types.ErrStrategyNotFound
	}
	venue, err := k.Venue(s)
	if err != nil {
		return err
	}

	position := venue.CurrentPosition(ctx)
	if position.IsPositive() {
		if _, err := venue.Redeem(ctx, position); err != nil {
			return err
		}
	}
	s.SuppliedSnapshot = venue.CurrentPosition(ctx)

	// A sub-dust pending fee survives HandleFee; settle it here so the vault
	// never receives fee-owed yield.
	if s.PendingFee.IsPositive() {
		if err := k.settlePendingFee(ctx, s); err != nil {
			return err
		}
	}

	idle := k.idleBalance(ctx, s)
	if idle.IsPositive() {
		coins := sdk.NewCoins(sdk.NewCoin(s.Underlying, idle))
		if err := k.bankKeeper.SendCoins(ctx, types.StrategyAccount(strategyID), vaulttypes.VaultAccount(s.VaultID), coins); err != nil {
			return err
		}
	}

	s.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, s)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"strategy_withdraw_all",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("vault_id", s.VaultID),
			sdk.NewAttribute("returned", idle.String()),
			sdk.NewAttribute("remaining_position", s.SuppliedSnapshot.String()),
		),
	)

	k.logger.Info("Flushed strategy to vault",
		"strategy_id", strategyID,
		"vault_id", s.VaultID,
		"returned", idle.String(),
	)
	return nil
}
