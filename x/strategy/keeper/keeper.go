package keeper

import (
	"context"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/openalpha/yield-vault/x/strategy/types"
)

// Store key prefixes
var (
	StrategyKeyPrefix      = []byte{0x01}
	FeeSkimRecordKeyPrefix = []byte{0x02}
	FeeSkimCounterKey      = []byte{0x03}
)

// BankKeeper defines the expected interface for the bank module
type BankKeeper interface {
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
}

// AccessKeeper defines the expected access-control provider
type AccessKeeper interface {
	IsGovernance(ctx sdk.Context, caller string) bool
	IsController(ctx sdk.Context, caller string) bool
}

// FeeRouter defines the expected fee-distribution collaborator. It receives
// the skimmed underlying and performs any further splitting and routing.
type FeeRouter interface {
	NotifyFee(ctx sdk.Context, token string, profitShare, strategistFee, platformFee math.Int) error
}

// Keeper manages the strategy module state
type Keeper struct {
	cdc          codec.BinaryCodec
	storeKey     storetypes.StoreKey
	bankKeeper   BankKeeper
	accessKeeper AccessKeeper
	feeRouter    FeeRouter
	venues       map[string]types.Venue
	logger       log.Logger
}

// NewKeeper creates a new strategy keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	bankKeeper BankKeeper,
	accessKeeper AccessKeeper,
	feeRouter FeeRouter,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:          cdc,
		storeKey:     storeKey,
		bankKeeper:   bankKeeper,
		accessKeeper: accessKeeper,
		feeRouter:    feeRouter,
		venues:       make(map[string]types.Venue),
		logger:       logger.With("module", "x/strategy"),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// RegisterVenue binds a venue implementation to a venue ID. The binding is
// process-local: venues are code, not state.
func (k *Keeper) RegisterVenue(venueID string, venue types.Venue) {
	k.venues[venueID] = venue
}

// Venue resolves the venue backing a strategy.
func (k *Keeper) Venue(s *types.Strategy) (types.Venue, error) {
	venue, ok := k.venues[s.VenueID]
	if !ok {
		return nil, types.ErrVenueNotRegistered
	}
	return venue, nil
}

// strategyKey generates the key for a strategy
func strategyKey(strategyID string) []byte {
	return append(StrategyKeyPrefix, []byte(strategyID)...)
}

// SetStrategy saves a strategy to the store
func (k *Keeper) SetStrategy(ctx sdk.Context, s *types.Strategy) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(s)
	store.Set(strategyKey(s.StrategyID), bz)
}

// GetStrategy retrieves a strategy from the store
func (k *Keeper) GetStrategy(ctx sdk.Context, strategyID string) *types.Strategy {
	store := k.GetStore(ctx)
	bz := store.Get(strategyKey(strategyID))
	if bz == nil {
		return nil
	}
	var s types.Strategy
	if err := json.Unmarshal(bz, &s); err != nil {
		return nil
	}
	return &s
}

// GetAllStrategies returns all strategies
func (k *Keeper) GetAllStrategies(ctx sdk.Context) []*types.Strategy {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, StrategyKeyPrefix)
	defer iterator.Close()

	var strategies []*types.Strategy
	for ; iterator.Valid(); iterator.Next() {
		var s types.Strategy
		if err := json.Unmarshal(iterator.Value(), &s); err != nil {
			continue
		}
		strategies = append(strategies, &s)
	}
	return strategies
}

// InitStrategy creates a strategy record once, binding vault, underlying and
// venue handle. Re-initialization is rejected.
func (k *Keeper) InitStrategy(ctx sdk.Context, strategyID, vaultID, underlying, venueID, positionDenom string) (*types.Strategy, error) {
	if k.GetStrategy(ctx, strategyID) != nil {
		return nil, types.ErrStrategyExists
	}
	if _, ok := k.venues[venueID]; !ok {
		return nil, types.ErrVenueNotRegistered
	}

	s := types.NewStrategy(strategyID, vaultID, underlying, venueID, positionDenom, ctx.BlockTime().Unix())
	k.SetStrategy(ctx, s)

	k.logger.Info("Strategy initialized",
		"strategy_id", strategyID,
		"vault_id", vaultID,
		"underlying", underlying,
		"venue_id", venueID,
	)
	return s, nil
}

// Underlying returns the underlying denom owned by a strategy.
func (k *Keeper) Underlying(ctx sdk.Context, strategyID string) (string, error) {
	s := k.GetStrategy(ctx, strategyID)
	if s == nil {
		return "", types.ErrStrategyNotFound
	}
	return s.Underlying, nil
}

// BoundVault returns the vault a strategy is bound to.
func (k *Keeper) BoundVault(ctx sdk.Context, strategyID string) (string, error) {
	s := k.GetStrategy(ctx, strategyID)
	if s == nil {
		return "", types.ErrStrategyNotFound
	}
	return s.VaultID, nil
}

// PositionDenom returns the venue's interest-bearing token denom.
func (k *Keeper) PositionDenom(ctx sdk.Context, strategyID string) (string, error) {
	s := k.GetStrategy(ctx, strategyID)
	if s == nil {
		return "", types.ErrStrategyNotFound
	}
	return s.PositionDenom, nil
}

// idleBalance reads the underlying held directly by the strategy account.
func (k *Keeper) idleBalance(ctx sdk.Context, s *types.Strategy) math.Int {
	return k.bankKeeper.GetBalance(ctx, types.StrategyAccount(s.StrategyID), s.Underlying).Amount
}
