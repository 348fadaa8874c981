package keeper

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yield-vault/metrics"
	"github.com/openalpha/yield-vault/x/strategy/types"
)

// intToFloat converts a big integer amount for metric export. Precision loss
// is acceptable for monitoring.
func intToFloat(amount math.Int) float64 {
	f, _ := strconv.ParseFloat(amount.String(), 64)
	return f
}

// AccrueFee compares the live venue position against the stored snapshot,
// charges the combined fee fraction on any growth, and refreshes the
// snapshot unconditionally. The snapshot moves up after charging, so the
// same gain is never charged twice; it moves down on losses, so a later
// recovery counts as fresh growth.
func (k *Keeper) AccrueFee(ctx sdk.Context, strategyID string) (math.Int, error) {
	s := k.GetStrategy(ctx, strategyID)
	if s == nil {
		return math.ZeroInt(), types.ErrStrategyNotFound
	}
	venue, err := k.Venue(s)
	if err != nil {
		return math.ZeroInt(), err
	}

	current := venue.CurrentPosition(ctx)
	accrued := math.ZeroInt()
	if current.GT(s.SuppliedSnapshot) {
		delta := current.Sub(s.SuppliedSnapshot)
		accrued = s.FeeForDelta(delta)
		s.PendingFee = s.PendingFee.Add(accrued)

		k.logger.Debug("Fee accrued on yield",
			"strategy_id", strategyID,
			"delta", delta.String(),
			"accrued", accrued.String(),
			"pending_fee", s.PendingFee.String(),
		)
	}
	s.SuppliedSnapshot = current
	s.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, s)

	return accrued, nil
}

// HandleFee accrues and, when the pending fee clears the dust threshold,
// redeems it from the venue and forwards it to the fee router. The redeem is
// clamped to what the venue actually returns; the pending fee only shrinks
// by the amount that was really skimmed.
func (k *Keeper) HandleFee(ctx sdk.Context, strategyID string) error {
	if _, err := k.AccrueFee(ctx, strategyID); err != nil {
		return err
	}

	s := k.GetStrategy(ctx, strategyID)
	if !s.PendingFee.GT(types.DustThreshold) {
		return nil
	}
	venue, err := k.Venue(s)
	if err != nil {
		return err
	}

	redeemed, err := venue.Redeem(ctx, s.PendingFee)
	if err != nil {
		return err
	}
	if redeemed.GT(s.PendingFee) {
		redeemed = s.PendingFee
	}

	s.PendingFee = s.PendingFee.Sub(redeemed)
	s.SuppliedSnapshot = venue.CurrentPosition(ctx)
	s.UpdatedAt = ctx.BlockTime().Unix()
	k.SetStrategy(ctx, s)

	if redeemed.IsPositive() {
		coins := sdk.NewCoins(sdk.NewCoin(s.Underlying, redeemed))
		if err := k.bankKeeper.SendCoins(ctx, types.StrategyAccount(s.StrategyID), types.FeeCollectorAccount(), coins); err != nil {
			return err
		}

		strategistFee, platformFee, profitShare := splitFee(s, redeemed)
		if err := k.feeRouter.NotifyFee(ctx, s.Underlying, profitShare, strategistFee, platformFee); err != nil {
			return err
		}
		k.recordFeeSkim(ctx, s, redeemed, strategistFee, platformFee, profitShare)
		metrics.GetCollector().RecordFeeSkim(strategyID, intToFloat(strategistFee), intToFloat(platformFee), intToFloat(profitShare))

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				"strategy_fee_skim",
				sdk.NewAttribute("strategy_id", strategyID),
				sdk.NewAttribute("redeemed", redeemed.String()),
				sdk.NewAttribute("pending_fee", s.PendingFee.String()),
			),
		)

		k.logger.Info("Fee skimmed",
			"strategy_id", strategyID,
			"redeemed", redeemed.String(),
			"strategist", strategistFee.String(),
			"platform", platformFee.String(),
			"profit_share", profitShare.String(),
		)
	}
	return nil
}

// settlePendingFee moves whatever pending fee the strategy's idle balance
// can cover to the fee collector, routing and recording it. The caller is
// responsible for persisting the mutated strategy.
func (k *Keeper) settlePendingFee(ctx sdk.Context, s *types.Strategy) error {
	settled := s.PendingFee
	idle := k.idleBalance(ctx, s)
	if settled.GT(idle) {
		settled = idle
	}
	if !settled.IsPositive() {
		return nil
	}

	coins := sdk.NewCoins(sdk.NewCoin(s.Underlying, settled))
	if err := k.bankKeeper.SendCoins(ctx, types.StrategyAccount(s.StrategyID), types.FeeCollectorAccount(), coins); err != nil {
		return err
	}
	s.PendingFee = s.PendingFee.Sub(settled)

	strategistFee, platformFee, profitShare := splitFee(s, settled)
	if err := k.feeRouter.NotifyFee(ctx, s.Underlying, profitShare, strategistFee, platformFee); err != nil {
		return err
	}
	k.recordFeeSkim(ctx, s, settled, strategistFee, platformFee, profitShare)
	metrics.GetCollector().RecordFeeSkim(s.StrategyID, intToFloat(strategistFee), intToFloat(platformFee), intToFloat(profitShare))

	k.logger.Info("Pending fee settled",
		"strategy_id", s.StrategyID,
		"settled", settled.String(),
		"remaining", s.PendingFee.String(),
	)
	return nil
}

// splitFee divides a skimmed amount across the three fee legs by numerator
// weight. The profit-sharing leg absorbs the truncation remainder so the
// three legs always sum to the skimmed amount.
func splitFee(s *types.Strategy, redeemed math.Int) (strategistFee, platformFee, profitShare math.Int) {
	total := math.NewIntFromUint64(s.TotalFeeNumerator())
	if total.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), redeemed
	}
	strategistFee = redeemed.Mul(math.NewIntFromUint64(s.StrategistFeeNumerator)).Quo(total)
	platformFee = redeemed.Mul(math.NewIntFromUint64(s.PlatformFeeNumerator)).Quo(total)
	profitShare = redeemed.Sub(strategistFee).Sub(platformFee)
	return strategistFee, platformFee, profitShare
}

// InvestedBalance is the number the vault trusts: idle underlying held by
// the strategy, plus the last observed venue position, net of the fee owed
// but not yet skimmed. Depositors never get credit for fee-owed yield.
func (k *Keeper) InvestedBalance(ctx sdk.Context, strategyID string) (math.Int, error) {
	s := k.GetStrategy(ctx, strategyID)
	if s == nil {
		return math.ZeroInt(), types.ErrStrategyNotFound
	}
	balance := k.idleBalance(ctx, s).Add(s.SuppliedSnapshot).Sub(s.PendingFee)
	if balance.IsNegative() {
		return math.ZeroInt(), nil
	}
	return balance, nil
}

// feeSkimKey generates the key for a fee skim record
func feeSkimKey(strategyID, recordID string) []byte {
	return append(FeeSkimRecordKeyPrefix, []byte(strategyID+":"+recordID)...)
}

// generateSkimID generates a unique fee skim record ID
func (k *Keeper) generateSkimID(ctx sdk.Context) string {
	store := k.GetStore(ctx)
	bz := store.Get(FeeSkimCounterKey)
	var counter uint64
	if bz != nil {
		counter = binary.BigEndian.Uint64(bz)
	}
	counter++

	newBz := make([]byte, 8)
	binary.BigEndian.PutUint64(newBz, counter)
	store.Set(FeeSkimCounterKey, newBz)

	return fmt.Sprintf("skim-%d", counter)
}

// recordFeeSkim persists a fee skim history entry
func (k *Keeper) recordFeeSkim(ctx sdk.Context, s *types.Strategy, redeemed, strategistFee, platformFee, profitShare math.Int) {
	record := &types.FeeSkimRecord{
		RecordID:      k.generateSkimID(ctx),
		StrategyID:    s.StrategyID,
		Redeemed:      redeemed,
		StrategistFee: strategistFee,
		PlatformFee:   platformFee,
		ProfitShare:   profitShare,
		Timestamp:     ctx.BlockTime().Unix(),
		BlockHeight:   ctx.BlockHeight(),
	}
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(record)
	store.Set(feeSkimKey(s.StrategyID, record.RecordID), bz)
}

// GetFeeSkimRecords returns the fee skim history for a strategy
func (k *Keeper) GetFeeSkimRecords(ctx sdk.Context, strategyID string) []*types.FeeSkimRecord {
	store := k.GetStore(ctx)
	prefix := append(FeeSkimRecordKeyPrefix, []byte(strategyID+":")...)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	var records []*types.FeeSkimRecord
	for ; iterator.Valid(); iterator.Next() {
		var r types.FeeSkimRecord
		if err := json.Unmarshal(iterator.Value(), &r); err != nil {
			continue
		}
		records = append(records, &r)
	}
	return records
}
