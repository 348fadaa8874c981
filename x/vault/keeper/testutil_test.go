package keeper

import (
	"context"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	storemetrics "cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	strategykeeper "github.com/openalpha/yield-vault/x/strategy/keeper"
	strategytypes "github.com/openalpha/yield-vault/x/strategy/types"
)

var (
	govAddr        = sdk.AccAddress([]byte("governance__________")).String()
	controllerAddr = sdk.AccAddress([]byte("controller__________")).String()
	aliceAddr      = sdk.AccAddress([]byte("alice_______________")).String()
	bobAddr        = sdk.AccAddress([]byte("bob_________________")).String()
	carolAddr      = sdk.AccAddress([]byte("carol_______________")).String()
)

// mockBank is an in-memory replacement for the bank module. Balances are
// keyed by bech32 address and denom.
type mockBank struct {
	balances map[string]map[string]math.Int
}

func newMockBank() *mockBank {
	return &mockBank{balances: make(map[string]map[string]math.Int)}
}

func (m *mockBank) balance(addr, denom string) math.Int {
	if denoms, ok := m.balances[addr]; ok {
		if amt, ok := denoms[denom]; ok {
			return amt
		}
	}
	return math.ZeroInt()
}

func (m *mockBank) setBalance(addr, denom string, amt math.Int) {
	if _, ok := m.balances[addr]; !ok {
		m.balances[addr] = make(map[string]math.Int)
	}
	m.balances[addr][denom] = amt
}

// mint credits an address out of thin air, standing in for genesis funding
// and venue redemptions.
func (m *mockBank) mint(addr, denom string, amt math.Int) {
	m.setBalance(addr, denom, m.balance(addr, denom).Add(amt))
}

func (m *mockBank) SendCoins(_ context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	for _, coin := range amt {
		from := m.balance(fromAddr.String(), coin.Denom)
		if from.LT(coin.Amount) {
			return strategytypes.ErrInvalidAmount
		}
		m.setBalance(fromAddr.String(), coin.Denom, from.Sub(coin.Amount))
		m.mint(toAddr.String(), coin.Denom, coin.Amount)
	}
	return nil
}

func (m *mockBank) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.Coin{Denom: denom, Amount: m.balance(addr.String(), denom)}
}

// mockAccess grants governance to govAddr and controller to controllerAddr.
type mockAccess struct{}

func (mockAccess) IsGovernance(_ sdk.Context, caller string) bool { return caller == govAddr }
func (mockAccess) IsController(_ sdk.Context, caller string) bool { return caller == controllerAddr }

// mockGreylist blocks a configurable set of addresses.
type mockGreylist struct {
	blocked map[string]bool
}

func (m *mockGreylist) IsGreylisted(_ sdk.Context, addr string) bool { return m.blocked[addr] }

// mockFeeRouter records every fee notification it receives.
type mockFeeRouter struct {
	profitShare   math.Int
	strategistFee math.Int
	platformFee   math.Int
	calls         int
}

func newMockFeeRouter() *mockFeeRouter {
	return &mockFeeRouter{
		profitShare:   math.ZeroInt(),
		strategistFee: math.ZeroInt(),
		platformFee:   math.ZeroInt(),
	}
}

func (m *mockFeeRouter) NotifyFee(_ sdk.Context, _ string, profitShare, strategistFee, platformFee math.Int) error {
	m.profitShare = m.profitShare.Add(profitShare)
	m.strategistFee = m.strategistFee.Add(strategistFee)
	m.platformFee = m.platformFee.Add(platformFee)
	m.calls++
	return nil
}

// mockVenue simulates a lending market. Supplied funds leave the strategy
// account, redeemed funds come back minted against the venue's position, and
// InjectYield grows the position without any transfer.
type mockVenue struct {
	bank         *mockBank
	strategyAcct sdk.AccAddress
	denom        string
	position     math.Int

	// When set, Redeem returns at most this amount per call.
	redeemLimit math.Int
}

func newMockVenue(bank *mockBank, strategyID, denom string) *mockVenue {
	return &mockVenue{
		bank:         bank,
		strategyAcct: strategytypes.StrategyAccount(strategyID),
		denom:        denom,
		position:     math.ZeroInt(),
		redeemLimit:  math.ZeroInt(),
	}
}

func (m *mockVenue) InjectYield(amount math.Int) {
	m.position = m.position.Add(amount)
}

func (m *mockVenue) InjectLoss(amount math.Int) {
	m.position = m.position.Sub(amount)
	if m.position.IsNegative() {
		m.position = math.ZeroInt()
	}
}

func (m *mockVenue) Supply(ctx sdk.Context, amount math.Int) error {
	held := m.bank.balance(m.strategyAcct.String(), m.denom)
	if held.LT(amount) {
		return strategytypes.ErrInvalidAmount
	}
	m.bank.setBalance(m.strategyAcct.String(), m.denom, held.Sub(amount))
	m.position = m.position.Add(amount)
	return nil
}

func (m *mockVenue) Redeem(ctx sdk.Context, amount math.Int) (math.Int, error) {
	redeemed := amount
	if redeemed.GT(m.position) {
		redeemed = m.position
	}
	if m.redeemLimit.IsPositive() && redeemed.GT(m.redeemLimit) {
		redeemed = m.redeemLimit
	}
	m.position = m.position.Sub(redeemed)
	m.bank.mint(m.strategyAcct.String(), m.denom, redeemed)
	return redeemed, nil
}

func (m *mockVenue) CurrentPosition(ctx sdk.Context) math.Int {
	return m.position
}

// fixture bundles everything a keeper test needs.
type fixture struct {
	ctx            sdk.Context
	keeper         *Keeper
	strategyKeeper *strategykeeper.Keeper
	bank           *mockBank
	greylist       *mockGreylist
	feeRouter      *mockFeeRouter
}

// setupKeeper wires a vault keeper and a real strategy keeper over a shared
// in-memory multistore.
func setupKeeper(tb testing.TB) *fixture {
	tb.Helper()

	vaultStoreKey := storetypes.NewKVStoreKey("vault")
	strategyStoreKey := storetypes.NewKVStoreKey("strategy")
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), storemetrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(vaultStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(strategyStoreKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		tb.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Time: time.Unix(1700000000, 0)}, false, log.NewNopLogger())

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	bank := newMockBank()
	greylist := &mockGreylist{blocked: make(map[string]bool)}
	feeRouter := newMockFeeRouter()

	sk := strategykeeper.NewKeeper(cdc, strategyStoreKey, bank, mockAccess{}, feeRouter, log.NewNopLogger())
	vk := NewKeeper(cdc, vaultStoreKey, bank, mockAccess{}, greylist, sk, log.NewNopLogger())

	return &fixture{
		ctx:            ctx,
		keeper:         vk,
		strategyKeeper: sk,
		bank:           bank,
		greylist:       greylist,
		feeRouter:      feeRouter,
	}
}

// advanceTime moves the block time forward.
func (f *fixture) advanceTime(d time.Duration) {
	f.ctx = f.ctx.WithBlockTime(f.ctx.BlockTime().Add(d))
}

// createVault registers a six-decimal vault as governance.
func (f *fixture) createVault(tb testing.TB, vaultID, denom string) {
	tb.Helper()
	if _, err := f.keeper.CreateVault(f.ctx, govAddr, vaultID, denom, 6, false, false); err != nil {
		tb.Fatalf("failed to create vault: %v", err)
	}
}

// bindStrategy initializes a strategy with a mock venue and installs it as
// the vault's first strategy.
func (f *fixture) bindStrategy(tb testing.TB, vaultID, strategyID, denom string) *mockVenue {
	tb.Helper()

	venue := newMockVenue(f.bank, strategyID, denom)
	f.strategyKeeper.RegisterVenue("venue-"+strategyID, venue)
	if _, err := f.strategyKeeper.InitStrategy(f.ctx, strategyID, vaultID, denom, "venue-"+strategyID, "c"+denom); err != nil {
		tb.Fatalf("failed to init strategy: %v", err)
	}
	if err := f.keeper.FinalizeStrategySwitch(f.ctx, govAddr, vaultID, strategyID); err != nil {
		tb.Fatalf("failed to bind strategy: %v", err)
	}
	return venue
}
