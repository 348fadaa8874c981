package app

import (
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	"github.com/spf13/cast"

	strategykeeper "github.com/openalpha/yield-vault/x/strategy/keeper"
	strategytypes "github.com/openalpha/yield-vault/x/strategy/types"
	vaultkeeper "github.com/openalpha/yield-vault/x/vault/keeper"
)

// accessAdapter resolves the governance and controller roles from static
// addresses. The governance address defaults to the gov module account so
// chain governance proposals pass the check out of the box.
type accessAdapter struct {
	governance  string
	controllers map[string]bool
}

var (
	_ vaultkeeper.AccessKeeper    = accessAdapter{}
	_ strategykeeper.AccessKeeper = accessAdapter{}
)

func newAccessAdapter(appOpts servertypes.AppOptions) accessAdapter {
	governance := authtypes.NewModuleAddress("gov").String()
	controllers := make(map[string]bool)
	if appOpts != nil {
		if addr := cast.ToString(appOpts.Get("vault.governance-address")); addr != "" {
			governance = addr
		}
		for _, addr := range cast.ToStringSlice(appOpts.Get("vault.controller-addresses")) {
			controllers[addr] = true
		}
	}
	return accessAdapter{governance: governance, controllers: controllers}
}

func (a accessAdapter) IsGovernance(_ sdk.Context, caller string) bool {
	return caller == a.governance
}

func (a accessAdapter) IsController(_ sdk.Context, caller string) bool {
	return a.controllers[caller]
}

// greylistAdapter blocks configured addresses from depositing or receiving
// shares.
type greylistAdapter struct {
	blocked map[string]bool
}

var _ vaultkeeper.GreylistKeeper = greylistAdapter{}

func newGreylistAdapter(appOpts servertypes.AppOptions) greylistAdapter {
	blocked := make(map[string]bool)
	if appOpts != nil {
		for _, addr := range cast.ToStringSlice(appOpts.Get("vault.greylist")) {
			blocked[addr] = true
		}
	}
	return greylistAdapter{blocked: blocked}
}

func (g greylistAdapter) IsGreylisted(_ sdk.Context, addr string) bool {
	return g.blocked[addr]
}

// feeRouterAdapter forwards the platform leg of each fee skim to the chain's
// fee collector. The strategist and profit-sharing legs stay with the
// strategy fee collector until their payout paths are configured.
type feeRouterAdapter struct {
	bank   *bankkeeper.BaseKeeper
	logger log.Logger
}

var _ strategykeeper.FeeRouter = feeRouterAdapter{}

func newFeeRouterAdapter(bank *bankkeeper.BaseKeeper, logger log.Logger) feeRouterAdapter {
	return feeRouterAdapter{bank: bank, logger: logger.With("module", "fee_router")}
}

func (f feeRouterAdapter) NotifyFee(ctx sdk.Context, token string, profitShare, strategistFee, platformFee math.Int) error {
	if platformFee.IsPositive() {
		coins := sdk.NewCoins(sdk.NewCoin(token, platformFee))
		collector := authtypes.NewModuleAddress(authtypes.FeeCollectorName)
		if err := f.bank.SendCoins(ctx, strategytypes.FeeCollectorAccount(), collector, coins); err != nil {
			return err
		}
	}

	f.logger.Info("Fee routed",
		"token", token,
		"profit_share", profitShare.String(),
		"strategist", strategistFee.String(),
		"platform", platformFee.String(),
	)
	return nil
}
