package keeper

import (
	"context"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-vault/x/vault/types"
)

// Store key prefixes
var (
	VaultKeyPrefix           = []byte{0x01}
	ShareBalanceKeyPrefix    = []byte{0x02}
	AllowanceKeyPrefix       = []byte{0x03}
	SharePriceHistoryPrefix  = []byte{0x04}
	HarvestRecordKeyPrefix   = []byte{0x05}
	HarvestCounterKey        = []byte{0x06}
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

// GreylistKeeper defines the expected deposit-eligibility screen
type GreylistKeeper interface {
	IsGreylisted(ctx sdk.Context, addr string) bool
}

// StrategyKeeper defines the expected interface to the strategy module
type StrategyKeeper interface {
	Underlying(ctx sdk.Context, strategyID string) (string, error)
	BoundVault(ctx sdk.Context, strategyID string) (string, error)
	PositionDenom(ctx sdk.Context, strategyID string) (string, error)
	InvestedBalance(ctx sdk.Context, strategyID string) (math.Int, error)
	Supply(ctx sdk.Context, strategyID string, amount math.Int) error
	WithdrawToVault(ctx sdk.Context, strategyID string, amount math.Int) error
	WithdrawAllToVault(ctx sdk.Context, strategyID string) error
	DoHardWork(ctx sdk.Context, strategyID string) error
}

// Keeper manages the vault module state
type Keeper struct {
	cdc            codec.BinaryCodec
	storeKey       storetypes.StoreKey
	bankKeeper     BankKeeper
	accessKeeper   AccessKeeper
	greylistKeeper GreylistKeeper
	strategyKeeper StrategyKeeper
	logger         log.Logger
}

// NewKeeper creates a new vault keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	bankKeeper BankKeeper,
	accessKeeper AccessKeeper,
	greylistKeeper GreylistKeeper,
	strategyKeeper StrategyKeeper,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:            cdc,
		storeKey:       storeKey,
		bankKeeper:     bankKeeper,
		accessKeeper:   accessKeeper,
		greylistKeeper: greylistKeeper,
		strategyKeeper: strategyKeeper,
		logger:         logger.With("module", "x/vault"),
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

// vaultKey generates the key for a vault
func vaultKey(vaultID string) []byte {
	return append(VaultKeyPrefix, []byte(vaultID)...)
}

// shareBalanceKey generates the key for a holder's share balance
func shareBalanceKey(vaultID, holder string) []byte {
	key := append(ShareBalanceKeyPrefix, []byte(vaultID)...)
	key = append(key, '/')
	return append(key, []byte(holder)...)
}

// allowanceKey generates the key for an owner/spender allowance
func allowanceKey(vaultID, owner, spender string) []byte {
	key := append(AllowanceKeyPrefix, []byte(vaultID)...)
	key = append(key, '/')
	key = append(key, []byte(owner)...)
	key = append(key, '/')
	return append(key, []byte(spender)...)
}

// SetVault saves a vault to the store
func (k *Keeper) SetVault(ctx sdk.Context, v *types.Vault) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(v)
	store.Set(vaultKey(v.VaultID), bz)
}

// GetVault retrieves a vault from the store
func (k *Keeper) GetVault(ctx sdk.Context, vaultID string) *types.Vault {
	store := k.GetStore(ctx)
	bz := store.Get(vaultKey(vaultID))
	if bz == nil {
		return nil
	}
	var v types.Vault
	if err := json.Unmarshal(bz, &v); err != nil {
		return nil
	}
	return &v
}

// GetAllVaults returns all vaults
func (k *Keeper) GetAllVaults(ctx sdk.Context) []*types.Vault {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, VaultKeyPrefix)
	defer iterator.Close()

	var vaults []*types.Vault
	for ; iterator.Valid(); iterator.Next() {
		var v types.Vault
		if err := json.Unmarshal(iterator.Value(), &v); err != nil {
			continue
		}
		vaults = append(vaults, &v)
	}
	return vaults
}

// CreateVault registers a vault once, snapshotting the share baseline from
// the underlying's decimals.
func (k *Keeper) CreateVault(ctx sdk.Context, caller, vaultID, underlying string, decimals uint32, autoHarvestOnDeposit, autoHarvestOnWithdraw bool) (*types.Vault, error) {
	if !k.accessKeeper.IsGovernance(ctx, caller) {
		return nil, types.ErrUnauthorized
	}
	if k.GetVault(ctx, vaultID) != nil {
		return nil, types.ErrVaultExists
	}

	v := types.NewVault(vaultID, underlying, decimals, ctx.BlockTime().Unix())
	v.AutoHarvestOnDeposit = autoHarvestOnDeposit
	v.AutoHarvestOnWithdraw = autoHarvestOnWithdraw
	k.SetVault(ctx, v)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_created",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("underlying", underlying),
		),
	)

	k.logger.Info("Vault created",
		"vault_id", vaultID,
		"underlying", underlying,
		"decimals", decimals,
	)
	return v, nil
}

// GetShareBalance returns a holder's share balance
func (k *Keeper) GetShareBalance(ctx sdk.Context, vaultID, holder string) math.Int {
	store := k.GetStore(ctx)
	bz := store.Get(shareBalanceKey(vaultID, holder))
	if bz == nil {
		return math.ZeroInt()
	}
	balance, ok := math.NewIntFromString(string(bz))
	if !ok {
		return math.ZeroInt()
	}
	return balance
}

// setShareBalance writes a holder's share balance, deleting zero entries
func (k *Keeper) setShareBalance(ctx sdk.Context, vaultID, holder string, balance math.Int) {
	store := k.GetStore(ctx)
	key := shareBalanceKey(vaultID, holder)
	if balance.IsZero() {
		store.Delete(key)
		return
	}
	store.Set(key, []byte(balance.String()))
}

// mintShares credits shares to a holder and grows the supply
func (k *Keeper) mintShares(ctx sdk.Context, v *types.Vault, holder string, shares math.Int) {
	k.setShareBalance(ctx, v.VaultID, holder, k.GetShareBalance(ctx, v.VaultID, holder).Add(shares))
	v.TotalShares = v.TotalShares.Add(shares)
}

// burnShares debits shares from a holder and shrinks the supply. The caller
// must have verified the balance.
func (k *Keeper) burnShares(ctx sdk.Context, v *types.Vault, holder string, shares math.Int) {
	k.setShareBalance(ctx, v.VaultID, holder, k.GetShareBalance(ctx, v.VaultID, holder).Sub(shares))
	v.TotalShares = v.TotalShares.Sub(shares)
}

// GetAllowance returns the spender allowance granted by owner
func (k *Keeper) GetAllowance(ctx sdk.Context, vaultID, owner, spender string) math.Int {
	store := k.GetStore(ctx)
	bz := store.Get(allowanceKey(vaultID, owner, spender))
	if bz == nil {
		return math.ZeroInt()
	}
	allowance, ok := math.NewIntFromString(string(bz))
	if !ok {
		return math.ZeroInt()
	}
	return allowance
}

// setAllowance writes an owner/spender allowance
func (k *Keeper) setAllowance(ctx sdk.Context, vaultID, owner, spender string, allowance math.Int) {
	store := k.GetStore(ctx)
	key := allowanceKey(vaultID, owner, spender)
	if allowance.IsZero() {
		store.Delete(key)
		return
	}
	store.Set(key, []byte(allowance.String()))
}

// ApproveShares grants spender the right to burn owner's shares on withdraw.
// The infinite sentinel is stored as-is and never decremented.
func (k *Keeper) ApproveShares(ctx sdk.Context, vaultID, owner, spender string, amount math.Int) error {
	if k.GetVault(ctx, vaultID) == nil {
		return types.ErrVaultNotFound
	}
	if amount.IsNegative() {
		return types.ErrInvalidAmount
	}
	k.setAllowance(ctx, vaultID, owner, spender, amount)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_approve",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("owner", owner),
			sdk.NewAttribute("spender", spender),
			sdk.NewAttribute("amount", amount.String()),
		),
	)
	return nil
}

// spendAllowance consumes allowance for a third-party withdrawal. Infinite
// allowances pass through untouched.
func (k *Keeper) spendAllowance(ctx sdk.Context, vaultID, owner, spender string, shares math.Int) error {
	allowance := k.GetAllowance(ctx, vaultID, owner, spender)
	if allowance.Equal(types.InfiniteAllowance) {
		return nil
	}
	if allowance.LT(shares) {
		return types.ErrInsufficientAllowance
	}
	k.setAllowance(ctx, vaultID, owner, spender, allowance.Sub(shares))
	return nil
}

// TransferShares moves shares between holders without touching the underlying.
func (k *Keeper) TransferShares(ctx sdk.Context, vaultID, from, to string, shares math.Int) error {
	v := k.GetVault(ctx, vaultID)
	if v == nil {
		return types.ErrVaultNotFound
	}
	if !shares.IsPositive() {
		return types.ErrZeroShares
	}
	balance := k.GetShareBalance(ctx, vaultID, from)
	if balance.LT(shares) {
		return types.ErrInsufficientShares
	}

	k.setShareBalance(ctx, vaultID, from, balance.Sub(shares))
	k.setShareBalance(ctx, vaultID, to, k.GetShareBalance(ctx, vaultID, to).Add(shares))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_transfer_shares",
			sdk.NewAttribute("vault_id", vaultID),
			sdk.NewAttribute("from", from),
			sdk.NewAttribute("to", to),
			sdk.NewAttribute("shares", shares.String()),
		),
	)
	return nil
}

// touch refreshes the record's update timestamp before a write.
func touch(ctx sdk.Context, v *types.Vault) {
	v.UpdatedAt = ctx.BlockTime().Unix()
}
