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

	"github.com/openalpha/yield-vault/x/strategy/types"
)

var (
	govAddr   = sdk.AccAddress([]byte("governance__________")).String()
	aliceAddr = sdk.AccAddress([]byte("alice_______________")).String()
)

type mockBank struct {
	balances map[string]map[string]math.Int
}

func newMockBank() *mockBank {
	return &mockBank{balances: make(map[string]map[string]math.Int)}
}

func (m *mockBank) balance(addr, denom string) math.Int {
	denoms, ok := m.balances[addr]
	if !ok {
		return math.ZeroInt()
	}
	if amt, ok := denoms[denom]; ok {
		return amt
	}
	return math.ZeroInt()
}

func (m *mockBank) setBalance(addr, denom string, amt math.Int) {
	denoms, ok := m.balances[addr]
	if !ok {
		denoms = make(map[string]math.Int)
		m.balances[addr] = denoms
	}
	denoms[denom] = amt
}

func (m *mockBank) mint(addr, denom string, amt math.Int) {
	m.setBalance(addr, denom, m.balance(addr, denom).Add(amt))
}

func (m *mockBank) SendCoins(_ context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	for _, coin := range amt {
		held := m.balance(fromAddr.String(), coin.Denom)
		if held.LT(coin.Amount) {
			return types.ErrInvalidAmount
		}
		m.setBalance(fromAddr.String(), coin.Denom, held.Sub(coin.Amount))
		m.mint(toAddr.String(), coin.Denom, coin.Amount)
	}
	return nil
}

func (m *mockBank) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.Coin{Denom: denom, Amount: m.balance(addr.String(), denom)}
}

type mockAccess struct{}

func (mockAccess) IsGovernance(_ sdk.Context, caller string) bool { return caller == govAddr }
func (mockAccess) IsController(_ sdk.Context, caller string) bool { return false }

// mockFeeRouter records everything routed to it.
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

// mockVenue simulates a lending market whose position moves independently of
// supplies and redeems.
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
		strategyAcct: types.StrategyAccount(strategyID),
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
		return types.ErrInvalidAmount
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

type fixture struct {
	ctx       sdk.Context
	keeper    *Keeper
	bank      *mockBank
	feeRouter *mockFeeRouter
}

func setupKeeper(tb testing.TB) *fixture {
	tb.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), storemetrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		tb.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Time: time.Unix(1700000000, 0)}, false, log.NewNopLogger())

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	bank := newMockBank()
	feeRouter := newMockFeeRouter()
	k := NewKeeper(cdc, storeKey, bank, mockAccess{}, feeRouter, log.NewNopLogger())

	return &fixture{ctx: ctx, keeper: k, bank: bank, feeRouter: feeRouter}
}

func (f *fixture) advanceTime(d time.Duration) {
	f.ctx = f.ctx.WithBlockTime(f.ctx.BlockTime().Add(d))
}

// initStrategy registers a venue-backed strategy and supplies it with the
// given principal.
func (f *fixture) initStrategy(tb testing.TB, strategyID string, principal math.Int) *mockVenue {
	tb.Helper()

	venue := newMockVenue(f.bank, strategyID, "usdc")
	f.keeper.RegisterVenue("venue-"+strategyID, venue)
	if _, err := f.keeper.InitStrategy(f.ctx, strategyID, "usdc-vault", "usdc", "venue-"+strategyID, "cusdc"); err != nil {
		tb.Fatalf("failed to init strategy: %v", err)
	}
	if principal.IsPositive() {
		f.bank.mint(types.StrategyAccount(strategyID).String(), "usdc", principal)
		if err := f.keeper.Supply(f.ctx, strategyID, principal); err != nil {
			tb.Fatalf("failed to supply principal: %v", err)
		}
	}
	return venue
}
