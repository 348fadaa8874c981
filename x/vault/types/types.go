package types

import (
	"math/big"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

// Module name and store key
const (
	ModuleName = "vault"
	StoreKey   = ModuleName
)

// Default timelock applied to strategy switches and implementation upgrades.
const DefaultTimelockDelay int64 = 12 * 60 * 60 // 12 hours

// InfiniteAllowance is the sentinel allowance value that is never decremented.
var InfiniteAllowance = math.NewIntFromBigInt(
	new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)),
)

// VaultAccount derives the custody account that holds a vault's idle balance.
func VaultAccount(vaultID string) sdk.AccAddress {
	return address.Module(ModuleName, []byte(vaultID))
}

// Vault is the per-deployment accounting record. The idle underlying balance
// is intentionally absent: it is always read live from the custody account.
type Vault struct {
	VaultID    string `json:"vault_id"`
	Underlying string `json:"underlying"`
	Decimals   uint32 `json:"decimals"`

	// 10^Decimals, the 1:1 price-per-share baseline.
	UnderlyingUnit math.Int `json:"underlying_unit"`

	TotalShares math.Int `json:"total_shares"`

	// Active strategy ID, empty when none.
	ActiveStrategy string `json:"active_strategy"`

	// Target fraction of total value to keep invested.
	InvestNumerator   uint64 `json:"invest_numerator"`
	InvestDenominator uint64 `json:"invest_denominator"`

	// Deploy-time policy: run a full harvest before computing mint/burn ratios.
	AutoHarvestOnDeposit  bool `json:"auto_harvest_on_deposit"`
	AutoHarvestOnWithdraw bool `json:"auto_harvest_on_withdraw"`

	// Pending strategy switch; zero ETA means nothing is pending.
	PendingStrategy    string `json:"pending_strategy"`
	PendingStrategyETA int64  `json:"pending_strategy_eta"`

	// Pending implementation upgrade, same two-phase shape.
	Implementation           string `json:"implementation"`
	PendingImplementation    string `json:"pending_implementation"`
	PendingImplementationETA int64  `json:"pending_implementation_eta"`

	TimelockDelay int64 `json:"timelock_delay"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewVault creates a vault record with the 1:1 share baseline snapshotted
// from the underlying's decimals. The caller supplies the block time so
// persisted timestamps replay deterministically.
func NewVault(vaultID, underlying string, decimals uint32, now int64) *Vault {
	return &Vault{
		VaultID:           vaultID,
		Underlying:        underlying,
		Decimals:          decimals,
		UnderlyingUnit:    UnderlyingUnit(decimals),
		TotalShares:       math.ZeroInt(),
		InvestNumerator:   10000,
		InvestDenominator: 10000,
		Implementation:    "v1",
		TimelockDelay:     DefaultTimelockDelay,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// UnderlyingUnit computes 10^decimals.
func UnderlyingUnit(decimals uint32) math.Int {
	return math.NewIntFromBigInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
}

// HasActiveStrategy reports whether a strategy is bound.
func (v *Vault) HasActiveStrategy() bool {
	return v.ActiveStrategy != ""
}

// SharesForDeposit computes the shares minted for a deposit. totalValue is
// measured after the deposit has been pulled into custody, so the mint ratio
// divides by the pre-deposit value.
func (v *Vault) SharesForDeposit(amount, totalValue math.Int) math.Int {
	if v.TotalShares.IsZero() {
		return amount
	}
	preDepositValue := totalValue.Sub(amount)
	if !preDepositValue.IsPositive() {
		return amount
	}
	return amount.Mul(v.TotalShares).Quo(preDepositValue)
}

// UnderlyingForShares computes the payout owed for burning shares against the
// supply observed before the burn.
func UnderlyingForShares(shares, totalValue, totalSharesBefore math.Int) math.Int {
	return totalValue.Mul(shares).Quo(totalSharesBefore)
}

// PricePerShare returns the underlying value of one full share unit,
// defaulting to 1:1 while no shares exist.
func (v *Vault) PricePerShare(totalValue math.Int) math.Int {
	if v.TotalShares.IsZero() {
		return v.UnderlyingUnit
	}
	return v.UnderlyingUnit.Mul(totalValue).Quo(v.TotalShares)
}

// InvestTarget returns how much of totalValue should be held by the strategy.
func (v *Vault) InvestTarget(totalValue math.Int) math.Int {
	return totalValue.Mul(math.NewIntFromUint64(v.InvestNumerator)).
		Quo(math.NewIntFromUint64(v.InvestDenominator))
}

// CanSwitchStrategy reports whether candidate may become the active strategy
// at the given time: always while no strategy is bound, otherwise only for
// the announced candidate after its timelock elapsed.
func (v *Vault) CanSwitchStrategy(candidate string, now int64) bool {
	if !v.HasActiveStrategy() {
		return true
	}
	return candidate == v.PendingStrategy && v.PendingStrategyETA != 0 && now > v.PendingStrategyETA
}

// ShouldUpgrade reports whether a scheduled implementation upgrade is ready,
// and which implementation it is.
func (v *Vault) ShouldUpgrade(now int64) (bool, string) {
	ready := v.PendingImplementationETA != 0 &&
		now > v.PendingImplementationETA &&
		v.PendingImplementation != ""
	return ready, v.PendingImplementation
}

// SharePricePoint is a historical price-per-share observation.
type SharePricePoint struct {
	VaultID       string   `json:"vault_id"`
	PricePerShare math.Int `json:"price_per_share"`
	TotalValue    math.Int `json:"total_value"`
	TotalShares   math.Int `json:"total_shares"`
	Timestamp     int64    `json:"timestamp"`
	BlockHeight   int64    `json:"block_height"`
}

// HarvestRecord tracks one completed doHardWork run.
type HarvestRecord struct {
	RecordID      string   `json:"record_id"`
	VaultID       string   `json:"vault_id"`
	StrategyID    string   `json:"strategy_id"`
	Invested      math.Int `json:"invested"`
	PricePerShare math.Int `json:"price_per_share"`
	Timestamp     int64    `json:"timestamp"`
	BlockHeight   int64    `json:"block_height"`
}
