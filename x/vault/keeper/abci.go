package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-vault/metrics"
)

// SharePriceInterval is how often (in blocks) share prices are sampled.
const SharePriceInterval = 100

// EndBlocker samples price per share for every vault on the recording
// interval. Valuation failures are logged and skipped so one broken venue
// cannot halt the chain.
func (k *Keeper) EndBlocker(ctx sdk.Context) error {
	if ctx.BlockHeight()%SharePriceInterval != 0 {
		return nil
	}

	vaults := k.GetAllVaults(ctx)
	for _, v := range vaults {
		if err := k.RecordSharePrice(ctx, v); err != nil {
			k.logger.Error("Share price recording failed",
				"vault_id", v.VaultID,
				"error", err,
			)
			continue
		}

		totalValue, err := k.TotalValue(ctx, v)
		if err != nil {
			continue
		}
		metrics.GetCollector().RecordSharePrice(
			v.VaultID,
			toFloat(v.PricePerShare(totalValue)),
			toFloat(v.TotalShares),
			toFloat(totalValue),
		)

		idle := k.IdleBalance(ctx, v)
		metrics.GetCollector().RecordBalances(v.VaultID, v.ActiveStrategy, toFloat(idle), toFloat(totalValue.Sub(idle)))
	}

	metrics.GetCollector().UpdateSystemMetrics(ctx.BlockHeight(), len(vaults))
	return nil
}
