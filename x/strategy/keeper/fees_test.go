package keeper

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/openalpha/yield-vault/x/strategy/types"
	vaulttypes "github.com/openalpha/yield-vault/x/vault/types"
)

func TestAccrueFeeOnYield(t *testing.T) {
	f := setupKeeper(t)
	venue := f.initStrategy(t, "usdc-lend", math.NewInt(100_000))
	venue.InjectYield(math.NewInt(10_000))

	accrued, err := f.keeper.AccrueFee(f.ctx, "usdc-lend")
	require.NoError(t, err)
	// Default numerators sum to 1000 over 10000: a 10% cut of the gain.
	require.Equal(t, math.NewInt(1000), accrued)

	s := f.keeper.GetStrategy(f.ctx, "usdc-lend")
	require.Equal(t, math.NewInt(1000), s.PendingFee)
	require.Equal(t, math.NewInt(110_000), s.SuppliedSnapshot)
}

func TestAccrueFeeNoDoubleCharge(t *testing.T) {
	f := setupKeeper(t)
	venue := f.initStrategy(t, "usdc-lend", math.NewInt(100_000))
	venue.InjectYield(math.NewInt(10_000))

	_, err := f.keeper.AccrueFee(f.ctx, "usdc-lend")
	require.NoError(t, err)

	// The snapshot was refreshed, so the same gain accrues nothing more.
	accrued, err := f.keeper.AccrueFee(f.ctx, "usdc-lend")
	require.NoError(t, err)
	require.True(t, accrued.IsZero())

	s := f.keeper.GetStrategy(f.ctx, "usdc-lend")
	require.Equal(t, math.NewInt(1000), s.PendingFee)
}

func TestAccrueFeeLossThenRecovery(t *testing.T) {
	f := setupKeeper(t)
	venue := f.initStrategy(t, "usdc-lend", math.NewInt(100_000))

	venue.InjectLoss(math.NewInt(20_000))
	accrued, err := f.keeper.AccrueFee(f.ctx, "usdc-lend")
	require.NoError(t, err)
	require.True(t, accrued.IsZero())

	// The snapshot follows the loss down, so the recovery is charged as
	// fresh growth.
	s := f.keeper.GetStrategy(f.ctx, "usdc-lend")
	require.Equal(t, math.NewInt(80_000), s.SuppliedSnapshot)

	venue.InjectYield(math.NewInt(10_000))
	accrued, err = f.keeper.AccrueFee(f.ctx, "usdc-lend")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1000), accrued)
}

func TestAccrueFeeUnknownStrategy(t *testing.T) {
	f := setupKeeper(t)
	_, err := f.keeper.AccrueFee(f.ctx, "missing")
	require.ErrorIs(t, err, types.ErrStrategyNotFound)
}

func TestHandleFeeSkipsDust(t *testing.T) {
	f := setupKeeper(t)
	venue := f.initStrategy(t, "usdc-lend", math.NewInt(100_000))
	venue.InjectYield(math.NewInt(500))

	require.NoError(t, f.keeper.HandleFee(f.ctx, "usdc-lend"))

	// A 50 unit fee stays pending below the dust threshold.
	s := f.keeper.GetStrategy(f.ctx, "usdc-lend")
	require.Equal(t, math.NewInt(50), s.PendingFee)
	require.Equal(t, 0, f.feeRouter.calls)
	require.True(t, f.bank.balance(types.FeeCollectorAccount().String(), "usdc").IsZero())
}

func TestHandleFeeSkimsAndSplits(t *testing.T) {
	f := setupKeeper(t)
	venue := f.initStrategy(t, "usdc-lend", math.NewInt(100_000))
	venue.InjectYield(math.NewInt(10_000))

	require.NoError(t, f.keeper.HandleFee(f.ctx, "usdc-lend"))

	s := f.keeper.GetStrategy(f.ctx, "usdc-lend")
	require.True(t, s.PendingFee.IsZero())
	require.Equal(t, math.NewInt(109_000), s.SuppliedSnapshot)

	// Skimmed funds leave strategy custody for the collector.
	require.Equal(t, math.NewInt(1000), f.bank.balance(types.FeeCollectorAccount().String(), "usdc"))
	require.True(t, f.bank.balance(types.StrategyAccount("usdc-lend").String(), "usdc").IsZero())

	// Split by numerator weight 0/300/700 with the remainder on the
	// profit-sharing leg.
	require.Equal(t, 1, f.feeRouter.calls)
	require.True(t, f.feeRouter.strategistFee.IsZero())
	require.Equal(t, math.NewInt(300), f.feeRouter.platformFee)
	require.Equal(t, math.NewInt(700), f.feeRouter.profitShare)

	invested, err := f.keeper.InvestedBalance(f.ctx, "usdc-lend")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(109_000), invested)

	records := f.keeper.GetFeeSkimRecords(f.ctx, "usdc-lend")
	require.Len(t, records, 1)
	require.Equal(t, math.NewInt(1000), records[0].Redeemed)
	require.Equal(t, "skim-1", records[0].RecordID)
	require.Equal(t, f.ctx.BlockTime().Unix(), records[0].Timestamp)
}

func TestHandleFeeClampedRedeem(t *testing.T) {
	f := setupKeeper(t)
	venue := f.initStrategy(t, "usdc-lend", math.NewInt(100_000))
	venue.InjectYield(math.NewInt(10_000))
	venue.redeemLimit = math.NewInt(400)

	require.NoError(t, f.keeper.HandleFee(f.ctx, "usdc-lend"))

	// Only what the venue returned was skimmed; the rest stays pending.
	s := f.keeper.GetStrategy(f.ctx, "usdc-lend")
	require.Equal(t, math.NewInt(600), s.PendingFee)
	require.Equal(t, math.NewInt(400), f.bank.balance(types.FeeCollectorAccount().String(), "usdc"))

	// Depositors still see the full fee carved out of the balance.
	invested, err := f.keeper.InvestedBalance(f.ctx, "usdc-lend")
	require.NoError(t, err)
	require.Equal(t, math.NewInt(109_000), invested)
}

func TestSplitFeeConservation(t *testing.T) {
	s := types.NewStrategy("usdc-lend", "usdc-vault", "usdc", "venue", "cusdc", 0)
	s.StrategistFeeNumerator = 333
	s.PlatformFeeNumerator = 333
	s.ProfitSharingFeeNumerator = 334

	for _, redeemed := range []int64{1, 7, 1000, 99_999} {
		strategistFee, platformFee, profitShare := splitFee(s, math.NewInt(redeemed))
		sum := strategistFee.Add(platformFee).Add(profitShare)
		require.Equal(t, math.NewInt(redeemed), sum, "redeemed %d", redeemed)
	}
}

func TestSplitFeeZeroNumerators(t *testing.T) {
	s := types.NewStrategy("usdc-lend", "usdc-vault", "usdc", "venue", "cusdc", 0)
	s.StrategistFeeNumerator = 0
	s.PlatformFeeNumerator = 0
	s.ProfitSharingFeeNumerator = 0

	strategistFee, platformFee, profitShare := splitFee(s, math.NewInt(500))
	require.True(t, strategistFee.IsZero())
	require.True(t, platformFee.IsZero())
	require.Equal(t, math.NewInt(500), profitShare)
}

func TestWithdrawAllSettlesSubDustFee(t *testing.T) {
	f := setupKeeper(t)
	venue := f.initStrategy(t, "usdc-lend", math.NewInt(1000))
	venue.InjectYield(math.NewInt(100))

	require.NoError(t, f.keeper.WithdrawAllToVault(f.ctx, "usdc-lend"))

	// The 10 unit fee was below dust but is settled on a full exit.
	require.Equal(t, math.NewInt(10), f.bank.balance(types.FeeCollectorAccount().String(), "usdc"))
	require.Equal(t, math.NewInt(1090), f.bank.balance(vaulttypes.VaultAccount("usdc-vault").String(), "usdc"))
	require.Equal(t, 1, f.feeRouter.calls)

	invested, err := f.keeper.InvestedBalance(f.ctx, "usdc-lend")
	require.NoError(t, err)
	require.True(t, invested.IsZero())
}

func TestWithdrawToVaultAccruesFeeOnYield(t *testing.T) {
	f := setupKeeper(t)
	venue := f.initStrategy(t, "usdc-lend", math.NewInt(1000))
	venue.InjectYield(math.NewInt(100))

	// The partial withdrawal refreshes the snapshot; the fee on the 100 of
	// unharvested yield must be charged before that happens.
	require.NoError(t, f.keeper.WithdrawToVault(f.ctx, "usdc-lend", math.NewInt(400)))

	s := f.keeper.GetStrategy(f.ctx, "usdc-lend")
	require.Equal(t, math.NewInt(10), s.PendingFee)
	require.Equal(t, math.NewInt(700), s.SuppliedSnapshot)
	require.Equal(t, math.NewInt(400), f.bank.balance(vaulttypes.VaultAccount("usdc-vault").String(), "usdc"))

	// The yield is already charged; re-accruing adds nothing.
	accrued, err := f.keeper.AccrueFee(f.ctx, "usdc-lend")
	require.NoError(t, err)
	require.True(t, accrued.IsZero())
	require.Equal(t, math.NewInt(10), f.keeper.GetStrategy(f.ctx, "usdc-lend").PendingFee)
}

func TestWithdrawToVaultRedeemsShortfall(t *testing.T) {
	f := setupKeeper(t)
	venue := f.initStrategy(t, "usdc-lend", math.NewInt(1000))

	require.NoError(t, f.keeper.WithdrawToVault(f.ctx, "usdc-lend", math.NewInt(400)))

	require.Equal(t, math.NewInt(400), f.bank.balance(vaulttypes.VaultAccount("usdc-vault").String(), "usdc"))
	require.Equal(t, math.NewInt(600), venue.CurrentPosition(f.ctx))
}
