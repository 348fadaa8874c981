package keeper

import (
	"testing"
	"time"

	"github.com/openalpha/yield-vault/x/vault/types"
)

// TestUpgradeTimelock tests the schedule/finalize cycle for implementation
// upgrades
func TestUpgradeTimelock(t *testing.T) {
	f := setupKeeper(t)
	f.createVault(t, "usdc-vault", "usdc")

	// Nothing scheduled yet.
	if err := f.keeper.FinalizeUpgrade(f.ctx, govAddr, "usdc-vault"); err != types.ErrNothingPending {
		t.Errorf("expected ErrNothingPending, got %v", err)
	}

	eta, err := f.keeper.ScheduleUpgrade(f.ctx, govAddr, "usdc-vault", "v2")
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if eta != f.ctx.BlockTime().Unix()+types.DefaultTimelockDelay {
		t.Errorf("eta mismatch")
	}

	if err := f.keeper.FinalizeUpgrade(f.ctx, govAddr, "usdc-vault"); err != types.ErrTimelockNotElapsed {
		t.Errorf("expected ErrTimelockNotElapsed, got %v", err)
	}
	f.advanceTime(time.Duration(types.DefaultTimelockDelay) * time.Second)
	if err := f.keeper.FinalizeUpgrade(f.ctx, govAddr, "usdc-vault"); err != types.ErrTimelockNotElapsed {
		t.Errorf("expected ErrTimelockNotElapsed at eta, got %v", err)
	}

	f.advanceTime(time.Second)
	if err := f.keeper.FinalizeUpgrade(f.ctx, govAddr, "usdc-vault"); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	v := f.keeper.GetVault(f.ctx, "usdc-vault")
	if v.Implementation != "v2" {
		t.Errorf("expected implementation v2, got %s", v.Implementation)
	}
	if v.PendingImplementation != "" || v.PendingImplementationETA != 0 {
		t.Errorf("expected pending slot cleared")
	}

	// The consumed schedule cannot be replayed.
	if err := f.keeper.FinalizeUpgrade(f.ctx, govAddr, "usdc-vault"); err != types.ErrNothingPending {
		t.Errorf("expected ErrNothingPending on replay, got %v", err)
	}
}

// TestUpgradeRescheduleRestartsClock tests that scheduling again replaces the
// candidate and eta
func TestUpgradeRescheduleRestartsClock(t *testing.T) {
	f := setupKeeper(t)
	f.createVault(t, "usdc-vault", "usdc")

	if _, err := f.keeper.ScheduleUpgrade(f.ctx, govAddr, "usdc-vault", "v2"); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	f.advanceTime(time.Duration(types.DefaultTimelockDelay)*time.Second + time.Second)

	if _, err := f.keeper.ScheduleUpgrade(f.ctx, govAddr, "usdc-vault", "v3"); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if err := f.keeper.FinalizeUpgrade(f.ctx, govAddr, "usdc-vault"); err != types.ErrTimelockNotElapsed {
		t.Errorf("expected fresh timelock after reschedule, got %v", err)
	}

	f.advanceTime(time.Duration(types.DefaultTimelockDelay)*time.Second + time.Second)
	if err := f.keeper.FinalizeUpgrade(f.ctx, govAddr, "usdc-vault"); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if v := f.keeper.GetVault(f.ctx, "usdc-vault"); v.Implementation != "v3" {
		t.Errorf("expected implementation v3, got %s", v.Implementation)
	}
}

// TestUpgradeAuthorization tests that only governance may schedule or
// finalize
func TestUpgradeAuthorization(t *testing.T) {
	f := setupKeeper(t)
	f.createVault(t, "usdc-vault", "usdc")

	if _, err := f.keeper.ScheduleUpgrade(f.ctx, aliceAddr, "usdc-vault", "v2"); err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if err := f.keeper.FinalizeUpgrade(f.ctx, controllerAddr, "usdc-vault"); err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := f.keeper.ScheduleUpgrade(f.ctx, govAddr, "missing", "v2"); err != types.ErrVaultNotFound {
		t.Errorf("expected ErrVaultNotFound, got %v", err)
	}
}
