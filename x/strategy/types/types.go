package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

// Module name and store key
const (
	ModuleName = "strategy"
	StoreKey   = ModuleName
)

// Fee arithmetic constants. All fee fractions are numerators over
// FeeDenominator; the three numerators combined may never exceed
// MaxTotalFeeNumerator.
const (
	FeeDenominator       uint64 = 10000
	MaxTotalFeeNumerator uint64 = 3000

	DefaultStrategistFeeNumerator    uint64 = 0
	DefaultPlatformFeeNumerator      uint64 = 300
	DefaultProfitSharingFeeNumerator uint64 = 700

	DefaultTimelockDelay int64 = 12 * 60 * 60
)

// DustThreshold is the smallest pending fee worth skimming.
var DustThreshold = math.NewInt(100)

// StrategyAccount derives the account holding a strategy's idle underlying.
func StrategyAccount(strategyID string) sdk.AccAddress {
	return address.Module(ModuleName, []byte(strategyID))
}

// FeeCollectorAccount holds skimmed fees until the fee router distributes
// them. Skimmed funds must leave strategy custody immediately so they never
// count toward the invested balance again.
func FeeCollectorAccount() sdk.AccAddress {
	return address.Module(ModuleName, []byte("fee_collector"))
}

// Venue is the external investment venue behind the strategy boundary. It is
// a black box whose position can grow or shrink independently of supplies
// and redeems. Implementations move the underlying between the strategy
// account and the venue themselves.
type Venue interface {
	// Supply invests amount of idle underlying from the strategy account.
	Supply(ctx sdk.Context, amount math.Int) error
	// Redeem pulls up to amount of underlying back to the strategy account
	// and reports how much was actually returned.
	Redeem(ctx sdk.Context, amount math.Int) (math.Int, error)
	// CurrentPosition reports the live externally invested balance.
	CurrentPosition(ctx sdk.Context) math.Int
}

// PendingNumerator is a queued fee-numerator change; zero ETA means none.
type PendingNumerator struct {
	Value uint64 `json:"value"`
	ETA   int64  `json:"eta"`
}

// PendingDuration is a queued timelock-delay change; zero ETA means none.
type PendingDuration struct {
	Value int64 `json:"value"`
	ETA   int64  `json:"eta"`
}

// Strategy is the per-venue accounting record. SuppliedSnapshot is the last
// observed venue position and the baseline for yield detection; PendingFee
// is yield already owed as fees but not yet skimmed.
type Strategy struct {
	StrategyID    string `json:"strategy_id"`
	VaultID       string `json:"vault_id"`
	Underlying    string `json:"underlying"`
	VenueID       string `json:"venue_id"`
	PositionDenom string `json:"position_denom"`

	SuppliedSnapshot math.Int `json:"supplied_snapshot"`
	PendingFee       math.Int `json:"pending_fee"`

	StrategistFeeNumerator    uint64 `json:"strategist_fee_numerator"`
	PlatformFeeNumerator      uint64 `json:"platform_fee_numerator"`
	ProfitSharingFeeNumerator uint64 `json:"profit_sharing_fee_numerator"`

	TimelockDelay int64 `json:"timelock_delay"`

	PendingStrategistFee    PendingNumerator `json:"pending_strategist_fee"`
	PendingPlatformFee      PendingNumerator `json:"pending_platform_fee"`
	PendingProfitSharingFee PendingNumerator `json:"pending_profit_sharing_fee"`
	PendingTimelockDelay    PendingDuration  `json:"pending_timelock_delay"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewStrategy creates an initialized strategy record bound to a vault.
func NewStrategy(strategyID, vaultID, underlying, venueID, positionDenom string, now int64) *Strategy {
	return &Strategy{
		StrategyID:                strategyID,
		VaultID:                   vaultID,
		Underlying:                underlying,
		VenueID:                   venueID,
		PositionDenom:             positionDenom,
		SuppliedSnapshot:          math.ZeroInt(),
		PendingFee:                math.ZeroInt(),
		StrategistFeeNumerator:    DefaultStrategistFeeNumerator,
		PlatformFeeNumerator:      DefaultPlatformFeeNumerator,
		ProfitSharingFeeNumerator: DefaultProfitSharingFeeNumerator,
		TimelockDelay:             DefaultTimelockDelay,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
}

// TotalFeeNumerator is the combined fraction charged on newly observed yield.
func (s *Strategy) TotalFeeNumerator() uint64 {
	return s.StrategistFeeNumerator + s.PlatformFeeNumerator + s.ProfitSharingFeeNumerator
}

// FeeForDelta computes the fee owed on a yield delta, truncating toward zero.
func (s *Strategy) FeeForDelta(delta math.Int) math.Int {
	return delta.Mul(math.NewIntFromUint64(s.TotalFeeNumerator())).
		Quo(math.NewIntFromUint64(FeeDenominator))
}

// FeeSumWithinCap checks the combined-numerator cap for a prospective set of
// numerators.
func FeeSumWithinCap(strategist, platform, profitSharing uint64) bool {
	return strategist+platform+profitSharing <= MaxTotalFeeNumerator
}

// FeeSkimRecord tracks one completed fee skim and its three-way split.
type FeeSkimRecord struct {
	RecordID      string   `json:"record_id"`
	StrategyID    string   `json:"strategy_id"`
	Redeemed      math.Int `json:"redeemed"`
	StrategistFee math.Int `json:"strategist_fee"`
	PlatformFee   math.Int `json:"platform_fee"`
	ProfitShare   math.Int `json:"profit_share"`
	Timestamp     int64    `json:"timestamp"`
	BlockHeight   int64    `json:"block_height"`
}

// Fee parameter kinds accepted by the queue/confirm messages.
const (
	FeeParamStrategist    = "strategist"
	FeeParamPlatform      = "platform"
	FeeParamProfitSharing = "profit_sharing"
	FeeParamTimelockDelay = "timelock_delay"
)
