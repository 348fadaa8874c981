package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/openalpha/yield-vault/x/strategy/types"
)

func TestQueueFeeChangeValidation(t *testing.T) {
	f := setupKeeper(t)
	f.initStrategy(t, "usdc-lend", math.ZeroInt())

	tests := []struct {
		name       string
		caller     string
		strategyID string
		param      string
		value      uint64
		wantErr    error
	}{
		{"unknown param", govAddr, "usdc-lend", "withdrawal_fee", 100, types.ErrUnknownFeeParam},
		{"unknown strategy", govAddr, "missing", types.FeeParamPlatform, 100, types.ErrStrategyNotFound},
		{"not governance", aliceAddr, "usdc-lend", types.FeeParamPlatform, 100, types.ErrUnauthorized},
		// Defaults are 0/300/700; 2001 pushes the sum past the 3000 cap.
		{"cap exceeded", govAddr, "usdc-lend", types.FeeParamStrategist, 2001, types.ErrFeeCapExceeded},
		{"at the cap", govAddr, "usdc-lend", types.FeeParamStrategist, 2000, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.keeper.QueueFeeChange(f.ctx, tc.caller, tc.strategyID, tc.param, tc.value)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestConfirmFeeChangeTimelock(t *testing.T) {
	f := setupKeeper(t)
	f.initStrategy(t, "usdc-lend", math.ZeroInt())

	// Nothing queued yet.
	err := f.keeper.ConfirmFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamPlatform)
	require.ErrorIs(t, err, types.ErrNothingPending)

	eta, err := f.keeper.QueueFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamPlatform, 500)
	require.NoError(t, err)
	require.Equal(t, f.ctx.BlockTime().Unix()+types.DefaultTimelockDelay, eta)

	err = f.keeper.ConfirmFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamPlatform)
	require.ErrorIs(t, err, types.ErrTimelockNotElapsed)

	// The eta itself is confirmable.
	f.advanceTime(time.Duration(types.DefaultTimelockDelay) * time.Second)
	require.NoError(t, f.keeper.ConfirmFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamPlatform))

	s := f.keeper.GetStrategy(f.ctx, "usdc-lend")
	require.Equal(t, uint64(500), s.PlatformFeeNumerator)
	require.Equal(t, types.PendingNumerator{}, s.PendingPlatformFee)

	// The consumed announcement cannot be replayed.
	err = f.keeper.ConfirmFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamPlatform)
	require.ErrorIs(t, err, types.ErrNothingPending)
}

func TestConfirmFeeChangeZeroValue(t *testing.T) {
	f := setupKeeper(t)
	f.initStrategy(t, "usdc-lend", math.ZeroInt())

	// Zeroing a numerator queues fine but is not confirmable.
	_, err := f.keeper.QueueFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamProfitSharing, 0)
	require.NoError(t, err)

	f.advanceTime(time.Duration(types.DefaultTimelockDelay)*time.Second + time.Second)
	err = f.keeper.ConfirmFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamProfitSharing)
	require.ErrorIs(t, err, types.ErrNothingPending)
}

func TestConfirmFeeChangeCapRechecked(t *testing.T) {
	f := setupKeeper(t)
	f.initStrategy(t, "usdc-lend", math.ZeroInt())

	// Both pass the cap against current siblings at queue time.
	_, err := f.keeper.QueueFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamStrategist, 2000)
	require.NoError(t, err)
	_, err = f.keeper.QueueFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamPlatform, 1000)
	require.NoError(t, err)

	f.advanceTime(time.Duration(types.DefaultTimelockDelay)*time.Second + time.Second)
	require.NoError(t, f.keeper.ConfirmFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamPlatform))

	// The platform bump moved the sum past the cap, so the strategist
	// change now fails instead of being clamped.
	err = f.keeper.ConfirmFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamStrategist)
	require.ErrorIs(t, err, types.ErrFeeCapExceeded)
}

func TestRequeueReplacesAnnouncement(t *testing.T) {
	f := setupKeeper(t)
	f.initStrategy(t, "usdc-lend", math.ZeroInt())

	_, err := f.keeper.QueueFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamPlatform, 500)
	require.NoError(t, err)
	f.advanceTime(time.Duration(types.DefaultTimelockDelay)*time.Second + time.Second)

	// Re-queueing restarts the clock with the new value.
	_, err = f.keeper.QueueFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamPlatform, 800)
	require.NoError(t, err)
	err = f.keeper.ConfirmFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamPlatform)
	require.ErrorIs(t, err, types.ErrTimelockNotElapsed)

	f.advanceTime(time.Duration(types.DefaultTimelockDelay)*time.Second + time.Second)
	require.NoError(t, f.keeper.ConfirmFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamPlatform))
	require.Equal(t, uint64(800), f.keeper.GetStrategy(f.ctx, "usdc-lend").PlatformFeeNumerator)
}

func TestTimelockDelayChange(t *testing.T) {
	f := setupKeeper(t)
	f.initStrategy(t, "usdc-lend", math.ZeroInt())

	_, err := f.keeper.QueueFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamTimelockDelay, 3600)
	require.NoError(t, err)
	f.advanceTime(time.Duration(types.DefaultTimelockDelay)*time.Second + time.Second)
	require.NoError(t, f.keeper.ConfirmFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamTimelockDelay))
	require.Equal(t, int64(3600), f.keeper.GetStrategy(f.ctx, "usdc-lend").TimelockDelay)

	// Later announcements run on the shortened delay.
	eta, err := f.keeper.QueueFeeChange(f.ctx, govAddr, "usdc-lend", types.FeeParamPlatform, 400)
	require.NoError(t, err)
	require.Equal(t, f.ctx.BlockTime().Unix()+3600, eta)
}
