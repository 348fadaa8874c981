package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-vault/x/strategy/types"
)

// QueueFeeChange announces a fee-parameter change under the strategy's
// timelock. The combined-numerator cap is checked at queue time; it is
// checked again at confirmation because sibling numerators may have changed
// in between. Re-queueing replaces the previous announcement.
func (k *Keeper) QueueFeeChange(ctx sdk.Context, caller, strategyID, param string, value uint64) (int64, error) {
	if !k.accessKeeper.IsGovernance(ctx, caller) {
		return 0, types.ErrUnauthorized
	}
	s := k.GetStrategy(ctx, strategyID)
	if s == nil {
		return 0, types.ErrStrategyNotFound
	}

	eta := ctx.BlockTime().Unix() + s.TimelockDelay

	switch param {
	case types.FeeParamStrategist:
		if !types.FeeSumWithinCap(value, s.PlatformFeeNumerator, s.ProfitSharingFeeNumerator) {
			return 0, types.ErrFeeCapExceeded
		}
		s.PendingStrategistFee = types.PendingNumerator{Value: value, ETA: eta}
	case types.FeeParamPlatform:
		if !types.FeeSumWithinCap(s.StrategistFeeNumerator, value, s.ProfitSharingFeeNumerator) {
			return 0, types.ErrFeeCapExceeded
		}
		s.PendingPlatformFee = types.PendingNumerator{Value: value, ETA: eta}
	case types.FeeParamProfitSharing:
		if !types.FeeSumWithinCap(s.StrategistFeeNumerator, s.PlatformFeeNumerator, value) {
			return 0, types.ErrFeeCapExceeded
		}
		s.PendingProfitSharingFee = types.PendingNumerator{Value: value, ETA: eta}
	case types.FeeParamTimelockDelay:
		s.PendingTimelockDelay = types.PendingDuration{Value: int64(value), ETA: eta}
	default:
		return 0, types.ErrUnknownFeeParam
	}

	s.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, s)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"strategy_fee_change_queued",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("param", param),
			sdk.NewAttribute("eta", math.NewInt(eta).String()),
		),
	)

	k.logger.Info("Fee change queued",
		"strategy_id", strategyID,
		"param", param,
		"value", value,
		"eta", eta,
	)
	return eta, nil
}

// ConfirmFeeChange commits a queued change after its timelock. A pending
// zero value is not confirmable, matching the queue/confirm contract; a
// change that would breach the cap at confirmation time fails rather than
// being clamped.
func (k *Keeper) ConfirmFeeChange(ctx sdk.Context, caller, strategyID, param string) error {
	if !k.accessKeeper.IsGovernance(ctx, caller) {
		return types.ErrUnauthorized
	}
	s := k.GetStrategy(ctx, strategyID)
	if s == nil {
		return types.ErrStrategyNotFound
	}

	now := ctx.BlockTime().Unix()

	switch param {
	case types.FeeParamStrategist:
		if err := checkPendingNumerator(s.PendingStrategistFee, now); err != nil {
			return err
		}
		if !types.FeeSumWithinCap(s.PendingStrategistFee.Value, s.PlatformFeeNumerator, s.ProfitSharingFeeNumerator) {
			return types.ErrFeeCapExceeded
		}
		s.StrategistFeeNumerator = s.PendingStrategistFee.Value
		s.PendingStrategistFee = types.PendingNumerator{}
	case types.FeeParamPlatform:
		if err := checkPendingNumerator(s.PendingPlatformFee, now); err != nil {
			return err
		}
		if !types.FeeSumWithinCap(s.StrategistFeeNumerator, s.PendingPlatformFee.Value, s.ProfitSharingFeeNumerator) {
			return types.ErrFeeCapExceeded
		}
		s.PlatformFeeNumerator = s.PendingPlatformFee.Value
		s.PendingPlatformFee = types.PendingNumerator{}
	case types.FeeParamProfitSharing:
		if err := checkPendingNumerator(s.PendingProfitSharingFee, now); err != nil {
			return err
		}
		if !types.FeeSumWithinCap(s.StrategistFeeNumerator, s.PlatformFeeNumerator, s.PendingProfitSharingFee.Value) {
			return types.ErrFeeCapExceeded
		}
		s.ProfitSharingFeeNumerator = s.PendingProfitSharingFee.Value
		s.PendingProfitSharingFee = types.PendingNumerator{}
	case types.FeeParamTimelockDelay:
		if s.PendingTimelockDelay.Value == 0 || s.PendingTimelockDelay.ETA == 0 {
			return types.ErrNothingPending
		}
		if now < s.PendingTimelockDelay.ETA {
			return types.ErrTimelockNotElapsed
		}
		s.TimelockDelay = s.PendingTimelockDelay.Value
		s.PendingTimelockDelay = types.PendingDuration{}
	default:
		return types.ErrUnknownFeeParam
	}

	s.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, s)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"strategy_fee_change_confirmed",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("param", param),
		),
	)

	k.logger.Info("Fee change confirmed",
		"strategy_id", strategyID,
		"param", param,
	)
	return nil
}

// checkPendingNumerator validates a queued numerator change against the
// queue/confirm contract: pending value set, eta set, timelock elapsed.
func checkPendingNumerator(p types.PendingNumerator, now int64) error {
	if p.Value == 0 || p.ETA == 0 {
		return types.ErrNothingPending
	}
	if now < p.ETA {
		return types.ErrTimelockNotElapsed
	}
	return nil
}
