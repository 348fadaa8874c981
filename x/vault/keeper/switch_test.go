package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/math"

	"github.com/openalpha/yield-vault/x/vault/types"
)

// registerStrategy initializes a strategy without installing it.
func registerStrategy(t *testing.T, f *fixture, strategyID, vaultID, denom string) *mockVenue {
	t.Helper()
	venue := newMockVenue(f.bank, strategyID, denom)
	f.strategyKeeper.RegisterVenue("venue-"+strategyID, venue)
	if _, err := f.strategyKeeper.InitStrategy(f.ctx, strategyID, vaultID, denom, "venue-"+strategyID, "c"+denom); err != nil {
		t.Fatalf("failed to init strategy: %v", err)
	}
	return venue
}

// TestFirstStrategyBindsWithoutTimelock tests that an empty vault accepts a
// strategy immediately
func TestFirstStrategyBindsWithoutTimelock(t *testing.T) {
	f := setupKeeper(t)
	f.createVault(t, "usdc-vault", "usdc")
	registerStrategy(t, f, "usdc-lend", "usdc-vault", "usdc")

	if err := f.keeper.FinalizeStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-lend"); err != nil {
		t.Fatalf("expected first bind to succeed: %v", err)
	}
	v := f.keeper.GetVault(f.ctx, "usdc-vault")
	if v.ActiveStrategy != "usdc-lend" {
		t.Errorf("expected active strategy usdc-lend, got %s", v.ActiveStrategy)
	}
}

// TestSwitchRequiresTimelock tests the full announce/finalize cycle
func TestSwitchRequiresTimelock(t *testing.T) {
	f := setupKeeper(t)
	f.createVault(t, "usdc-vault", "usdc")
	f.bindStrategy(t, "usdc-vault", "usdc-lend", "usdc")
	registerStrategy(t, f, "usdc-stake", "usdc-vault", "usdc")

	// Finalizing an unannounced candidate fails.
	if err := f.keeper.FinalizeStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-stake"); err != types.ErrSwitchNotReady {
		t.Errorf("expected ErrSwitchNotReady, got %v", err)
	}

	eta, err := f.keeper.AnnounceStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-stake")
	if err != nil {
		t.Fatalf("announce failed: %v", err)
	}
	if eta != f.ctx.BlockTime().Unix()+types.DefaultTimelockDelay {
		t.Errorf("eta mismatch")
	}

	// Too early.
	if err := f.keeper.FinalizeStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-stake"); err != types.ErrTimelockNotElapsed {
		t.Errorf("expected ErrTimelockNotElapsed, got %v", err)
	}

	// Exactly at the eta is still too early: the delay must fully elapse.
	f.advanceTime(time.Duration(types.DefaultTimelockDelay) * time.Second)
	if err := f.keeper.FinalizeStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-stake"); err != types.ErrTimelockNotElapsed {
		t.Errorf("expected ErrTimelockNotElapsed at eta, got %v", err)
	}

	f.advanceTime(time.Second)
	if err := f.keeper.FinalizeStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-stake"); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	v := f.keeper.GetVault(f.ctx, "usdc-vault")
	if v.ActiveStrategy != "usdc-stake" {
		t.Errorf("expected active strategy usdc-stake, got %s", v.ActiveStrategy)
	}
	if v.PendingStrategy != "" || v.PendingStrategyETA != 0 {
		t.Errorf("expected pending slot cleared")
	}

	// The consumed announcement cannot be replayed.
	if err := f.keeper.FinalizeStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-stake"); err != types.ErrSwitchNotReady {
		t.Errorf("expected ErrSwitchNotReady on replay, got %v", err)
	}
}

// TestSwitchWrongCandidate tests that only the announced candidate passes
func TestSwitchWrongCandidate(t *testing.T) {
	f := setupKeeper(t)
	f.createVault(t, "usdc-vault", "usdc")
	f.bindStrategy(t, "usdc-vault", "usdc-lend", "usdc")
	registerStrategy(t, f, "usdc-stake", "usdc-vault", "usdc")
	registerStrategy(t, f, "usdc-farm", "usdc-vault", "usdc")

	if _, err := f.keeper.AnnounceStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-stake"); err != nil {
		t.Fatalf("announce failed: %v", err)
	}
	f.advanceTime(time.Duration(types.DefaultTimelockDelay)*time.Second + time.Second)

	if err := f.keeper.FinalizeStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-farm"); err != types.ErrSwitchNotReady {
		t.Errorf("expected ErrSwitchNotReady for unannounced candidate, got %v", err)
	}
}

// TestSwitchReAnnounceRestartsClock tests that re-announcing replaces the
// candidate and eta
func TestSwitchReAnnounceRestartsClock(t *testing.T) {
	f := setupKeeper(t)
	f.createVault(t, "usdc-vault", "usdc")
	f.bindStrategy(t, "usdc-vault", "usdc-lend", "usdc")
	registerStrategy(t, f, "usdc-stake", "usdc-vault", "usdc")
	registerStrategy(t, f, "usdc-farm", "usdc-vault", "usdc")

	if _, err := f.keeper.AnnounceStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-stake"); err != nil {
		t.Fatalf("announce failed: %v", err)
	}
	f.advanceTime(time.Duration(types.DefaultTimelockDelay)*time.Second + time.Second)

	// Replace the candidate; the old one is no longer ready.
	if _, err := f.keeper.AnnounceStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-farm"); err != nil {
		t.Fatalf("announce failed: %v", err)
	}
	if err := f.keeper.FinalizeStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-stake"); err != types.ErrSwitchNotReady {
		t.Errorf("expected ErrSwitchNotReady for replaced candidate, got %v", err)
	}
	if err := f.keeper.FinalizeStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-farm"); err != types.ErrTimelockNotElapsed {
		t.Errorf("expected fresh timelock for new candidate, got %v", err)
	}
}

// TestSwitchDrainsPredecessor tests that switching moves all funds back to
// custody and preserves total value
func TestSwitchDrainsPredecessor(t *testing.T) {
	f := setupKeeper(t)
	f.createVault(t, "usdc-vault", "usdc")
	f.bank.mint(aliceAddr, "usdc", math.NewInt(1000))

	if _, err := f.keeper.Deposit(f.ctx, "usdc-vault", aliceAddr, aliceAddr, math.NewInt(1000)); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	oldVenue := f.bindStrategy(t, "usdc-vault", "usdc-lend", "usdc")
	if err := f.keeper.DoHardWork(f.ctx, govAddr, "usdc-vault"); err != nil {
		t.Fatalf("hard work failed: %v", err)
	}
	registerStrategy(t, f, "usdc-stake", "usdc-vault", "usdc")

	if _, err := f.keeper.AnnounceStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-stake"); err != nil {
		t.Fatalf("announce failed: %v", err)
	}
	f.advanceTime(time.Duration(types.DefaultTimelockDelay)*time.Second + time.Second)

	if err := f.keeper.FinalizeStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-stake"); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if !oldVenue.CurrentPosition(f.ctx).IsZero() {
		t.Errorf("expected predecessor venue drained")
	}
	v := f.keeper.GetVault(f.ctx, "usdc-vault")
	totalValue, err := f.keeper.TotalValue(f.ctx, v)
	if err != nil {
		t.Fatalf("valuation failed: %v", err)
	}
	if !totalValue.Equal(math.NewInt(1000)) {
		t.Errorf("expected total value preserved at 1000, got %s", totalValue.String())
	}
}

// TestReinstallActiveStrategyKeepsPosition tests that re-finalizing the
// currently active strategy does not drain its venue position
func TestReinstallActiveStrategyKeepsPosition(t *testing.T) {
	f := setupKeeper(t)
	f.createVault(t, "usdc-vault", "usdc")
	f.bank.mint(aliceAddr, "usdc", math.NewInt(1000))

	if _, err := f.keeper.Deposit(f.ctx, "usdc-vault", aliceAddr, aliceAddr, math.NewInt(1000)); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	venue := f.bindStrategy(t, "usdc-vault", "usdc-lend", "usdc")
	if err := f.keeper.DoHardWork(f.ctx, govAddr, "usdc-vault"); err != nil {
		t.Fatalf("hard work failed: %v", err)
	}
	invested := venue.CurrentPosition(f.ctx)
	if !invested.IsPositive() {
		t.Fatalf("expected venue position after hard work")
	}

	if _, err := f.keeper.AnnounceStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-lend"); err != nil {
		t.Fatalf("announce failed: %v", err)
	}
	f.advanceTime(time.Duration(types.DefaultTimelockDelay)*time.Second + time.Second)

	if err := f.keeper.FinalizeStrategySwitch(f.ctx, govAddr, "usdc-vault", "usdc-lend"); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if !venue.CurrentPosition(f.ctx).Equal(invested) {
		t.Errorf("expected position untouched at %s, got %s", invested.String(), venue.CurrentPosition(f.ctx).String())
	}
	v := f.keeper.GetVault(f.ctx, "usdc-vault")
	if v.ActiveStrategy != "usdc-lend" {
		t.Errorf("expected active strategy usdc-lend, got %s", v.ActiveStrategy)
	}
	if v.PendingStrategy != "" || v.PendingStrategyETA != 0 {
		t.Errorf("expected pending fields cleared")
	}
}

// TestSwitchValidatesBinding tests underlying and vault binding checks
func TestSwitchValidatesBinding(t *testing.T) {
	f := setupKeeper(t)
	f.createVault(t, "usdc-vault", "usdc")
	f.createVault(t, "atom-vault", "atom")

	registerStrategy(t, f, "atom-lend", "atom-vault", "atom")
	registerStrategy(t, f, "stray", "other-vault", "usdc")

	// Wrong underlying.
	if err := f.keeper.FinalizeStrategySwitch(f.ctx, govAddr, "usdc-vault", "atom-lend"); err != types.ErrUnderlyingMismatch {
		t.Errorf("expected ErrUnderlyingMismatch, got %v", err)
	}
	// Bound to another vault.
	if err := f.keeper.FinalizeStrategySwitch(f.ctx, govAddr, "usdc-vault", "stray"); err != types.ErrVaultMismatch {
		t.Errorf("expected ErrVaultMismatch, got %v", err)
	}
	// Unknown strategy.
	if err := f.keeper.FinalizeStrategySwitch(f.ctx, govAddr, "usdc-vault", "missing"); err != types.ErrStrategyUndefined {
		t.Errorf("expected ErrStrategyUndefined, got %v", err)
	}
	// Non-governance caller.
	if err := f.keeper.FinalizeStrategySwitch(f.ctx, aliceAddr, "usdc-vault", "atom-lend"); err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := f.keeper.AnnounceStrategySwitch(f.ctx, aliceAddr, "usdc-vault", "atom-lend"); err != types.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}
