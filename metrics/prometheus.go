package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Yield vault metrics collector
// Provides comprehensive metrics for monitoring

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all vault metrics
type Collector struct {
	// Deposit/withdraw metrics
	DepositsTotal    *prometheus.CounterVec
	DepositVolume    *prometheus.CounterVec
	WithdrawalsTotal *prometheus.CounterVec
	WithdrawalVolume *prometheus.CounterVec

	// Share metrics
	SharePrice  *prometheus.GaugeVec
	TotalShares *prometheus.GaugeVec
	TotalValue  *prometheus.GaugeVec

	// Harvest metrics
	HarvestsTotal   *prometheus.CounterVec
	HarvestInvested *prometheus.CounterVec
	HarvestLatency  *prometheus.HistogramVec

	// Fee metrics
	FeesSkimmedTotal *prometheus.CounterVec
	FeeChangesQueued *prometheus.CounterVec

	// Strategy metrics
	StrategySwitchesTotal *prometheus.CounterVec
	InvestedBalance       *prometheus.GaugeVec
	IdleBalance           *prometheus.GaugeVec

	// Timelock metrics
	UpgradesScheduled *prometheus.CounterVec
	UpgradesFinalized *prometheus.CounterVec

	// System metrics
	BlockHeight prometheus.Gauge
	VaultCount  prometheus.Gauge
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

// newCollector creates a new metrics collector
func newCollector() *Collector {
	c := &Collector{}

	// Deposit/withdraw metrics
	c.DepositsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldvault",
			Subsystem: "deposits",
			Name:      "total",
			Help:      "Total number of deposits processed",
		},
		[]string{"vault_id"},
	)

	c.DepositVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldvault",
			Subsystem: "deposits",
			Name:      "volume",
			Help:      "Total deposited underlying volume",
		},
		[]string{"vault_id"},
	)

	c.WithdrawalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldvault",
			Subsystem: "withdrawals",
			Name:      "total",
			Help:      "Total number of withdrawals processed",
		},
		[]string{"vault_id"},
	)

	c.WithdrawalVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldvault",
			Subsystem: "withdrawals",
			Name:      "volume",
			Help:      "Total withdrawn underlying volume",
		},
		[]string{"vault_id"},
	)

	// Share metrics
	c.SharePrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "yieldvault",
			Subsystem: "shares",
			Name:      "price",
			Help:      "Current price per share in underlying units",
		},
		[]string{"vault_id"},
	)

	c.TotalShares = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "yieldvault",
			Subsystem: "shares",
			Name:      "supply",
			Help:      "Total share supply",
		},
		[]string{"vault_id"},
	)

	c.TotalValue = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "yieldvault",
			Subsystem: "vault",
			Name:      "total_value",
			Help:      "Total vault value in underlying units",
		},
		[]string{"vault_id"},
	)

	// Harvest metrics
	c.HarvestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldvault",
			Subsystem: "harvests",
			Name:      "total",
			Help:      "Total number of harvest runs",
		},
		[]string{"vault_id", "strategy_id"},
	)

	c.HarvestInvested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldvault",
			Subsystem: "harvests",
			Name:      "invested",
			Help:      "Total underlying moved into strategies by harvests",
		},
		[]string{"vault_id", "strategy_id"},
	)

	c.HarvestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "yieldvault",
			Subsystem: "harvests",
			Name:      "latency_ms",
			Help:      "Harvest processing latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"vault_id"},
	)

	// Fee metrics
	c.FeesSkimmedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldvault",
			Subsystem: "fees",
			Name:      "skimmed_total",
			Help:      "Total fees skimmed from strategy gains",
		},
		[]string{"strategy_id", "kind"},
	)

	c.FeeChangesQueued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldvault",
			Subsystem: "fees",
			Name:      "changes_queued",
			Help:      "Total fee parameter changes queued",
		},
		[]string{"strategy_id", "param"},
	)

	// Strategy metrics
	c.StrategySwitchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldvault",
			Subsystem: "strategies",
			Name:      "switches_total",
			Help:      "Total strategy switches finalized",
		},
		[]string{"vault_id"},
	)

	c.InvestedBalance = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "yieldvault",
			Subsystem: "strategies",
			Name:      "invested_balance",
			Help:      "Underlying balance held by the strategy",
		},
		[]string{"vault_id", "strategy_id"},
	)

	c.IdleBalance = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "yieldvault",
			Subsystem: "vault",
			Name:      "idle_balance",
			Help:      "Underlying balance held in vault custody",
		},
		[]string{"vault_id"},
	)

	// Timelock metrics
	c.UpgradesScheduled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldvault",
			Subsystem: "upgrades",
			Name:      "scheduled_total",
			Help:      "Total implementation upgrades scheduled",
		},
		[]string{"vault_id"},
	)

	c.UpgradesFinalized = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yieldvault",
			Subsystem: "upgrades",
			Name:      "finalized_total",
			Help:      "Total implementation upgrades finalized",
		},
		[]string{"vault_id"},
	)

	// System metrics
	c.BlockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "yieldvault",
			Subsystem: "system",
			Name:      "block_height",
			Help:      "Current block height",
		},
	)

	c.VaultCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "yieldvault",
			Subsystem: "system",
			Name:      "vault_count",
			Help:      "Number of registered vaults",
		},
	)

	// Register all metrics
	c.registerAll()

	return c
}

// registerAll registers all metrics with Prometheus
func (c *Collector) registerAll() {
	prometheus.MustRegister(c.DepositsTotal)
	prometheus.MustRegister(c.DepositVolume)
	prometheus.MustRegister(c.WithdrawalsTotal)
	prometheus.MustRegister(c.WithdrawalVolume)

	prometheus.MustRegister(c.SharePrice)
	prometheus.MustRegister(c.TotalShares)
	prometheus.MustRegister(c.TotalValue)

	prometheus.MustRegister(c.HarvestsTotal)
	prometheus.MustRegister(c.HarvestInvested)
	prometheus.MustRegister(c.HarvestLatency)

	prometheus.MustRegister(c.FeesSkimmedTotal)
	prometheus.MustRegister(c.FeeChangesQueued)

	prometheus.MustRegister(c.StrategySwitchesTotal)
	prometheus.MustRegister(c.InvestedBalance)
	prometheus.MustRegister(c.IdleBalance)

	prometheus.MustRegister(c.UpgradesScheduled)
	prometheus.MustRegister(c.UpgradesFinalized)

	prometheus.MustRegister(c.BlockHeight)
	prometheus.MustRegister(c.VaultCount)
}

// ============ Recording Helpers ============

// RecordDeposit records a processed deposit
func (c *Collector) RecordDeposit(vaultID string, amount float64) {
	c.DepositsTotal.WithLabelValues(vaultID).Inc()
	c.DepositVolume.WithLabelValues(vaultID).Add(amount)
}

// RecordWithdrawal records a processed withdrawal
func (c *Collector) RecordWithdrawal(vaultID string, amount float64) {
	c.WithdrawalsTotal.WithLabelValues(vaultID).Inc()
	c.WithdrawalVolume.WithLabelValues(vaultID).Add(amount)
}

// RecordSharePrice records the current share price and supply
func (c *Collector) RecordSharePrice(vaultID string, price, supply, totalValue float64) {
	c.SharePrice.WithLabelValues(vaultID).Set(price)
	c.TotalShares.WithLabelValues(vaultID).Set(supply)
	c.TotalValue.WithLabelValues(vaultID).Set(totalValue)
}

// RecordHarvest records a completed harvest run
func (c *Collector) RecordHarvest(vaultID, strategyID string, invested, latencyMs float64) {
	c.HarvestsTotal.WithLabelValues(vaultID, strategyID).Inc()
	c.HarvestInvested.WithLabelValues(vaultID, strategyID).Add(invested)
	c.HarvestLatency.WithLabelValues(vaultID).Observe(latencyMs)
}

// RecordFeeSkim records fees skimmed from a strategy gain
func (c *Collector) RecordFeeSkim(strategyID string, strategist, platform, profitShare float64) {
	c.FeesSkimmedTotal.WithLabelValues(strategyID, "strategist").Add(strategist)
	c.FeesSkimmedTotal.WithLabelValues(strategyID, "platform").Add(platform)
	c.FeesSkimmedTotal.WithLabelValues(strategyID, "profit_share").Add(profitShare)
}

// RecordFeeChangeQueued records a queued fee parameter change
func (c *Collector) RecordFeeChangeQueued(strategyID, param string) {
	c.FeeChangesQueued.WithLabelValues(strategyID, param).Inc()
}

// RecordStrategySwitch records a finalized strategy switch
func (c *Collector) RecordStrategySwitch(vaultID string) {
	c.StrategySwitchesTotal.WithLabelValues(vaultID).Inc()
}

// RecordBalances records the current custody split
func (c *Collector) RecordBalances(vaultID, strategyID string, idle, invested float64) {
	c.IdleBalance.WithLabelValues(vaultID).Set(idle)
	if strategyID != "" {
		c.InvestedBalance.WithLabelValues(vaultID, strategyID).Set(invested)
	}
}

// RecordUpgradeScheduled records a scheduled implementation upgrade
func (c *Collector) RecordUpgradeScheduled(vaultID string) {
	c.UpgradesScheduled.WithLabelValues(vaultID).Inc()
}

// RecordUpgradeFinalized records a finalized implementation upgrade
func (c *Collector) RecordUpgradeFinalized(vaultID string) {
	c.UpgradesFinalized.WithLabelValues(vaultID).Inc()
}

// UpdateSystemMetrics updates system-level metrics
func (c *Collector) UpdateSystemMetrics(blockHeight int64, vaultCount int) {
	c.BlockHeight.Set(float64(blockHeight))
	c.VaultCount.Set(float64(vaultCount))
}

// ============ HTTP Handler ============

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for measuring latency
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns the elapsed time in milliseconds
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}
