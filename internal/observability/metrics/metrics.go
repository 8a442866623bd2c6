package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "fuelwatch_"

	resultSuccess = "success"
	resultError   = "error"

	parseResultReading = "reading"
	parseResultSkip    = "skip"
)

var (
	registerOnce sync.Once

	messagesScanned *prometheus.CounterVec

	reportRuns    *prometheus.CounterVec
	reportLatency *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	payoutTotal *prometheus.CounterVec

	ledgerAppends *prometheus.CounterVec
)

// Init registers the service metrics once.
func Init() {
	registerOnce.Do(func() {
		messagesScanned = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "messages_scanned_total",
				Help: "Total scanned chat messages by parse outcome",
			},
			[]string{"outcome"},
		)
		reportRuns = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_runs_total",
				Help: "Total report runs by command and result",
			},
			[]string{"command", "result"},
		)
		reportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_latency_seconds",
				Help:    "Report run latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command", "result"},
		)
		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report export operations by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)
		payoutTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "payout_computations_total",
				Help: "Total payout computations by result",
			},
			[]string{"result"},
		)
		ledgerAppends = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ledger_appends_total",
				Help: "Total ledger append operations by sink and result",
			},
			[]string{"sink", "result"},
		)

		prometheus.MustRegister(
			messagesScanned,
			reportRuns,
			reportLatency,
			exportTotal,
			exportLatency,
			payoutTotal,
			ledgerAppends,
		)
	})
}

// IncMessageScanned records one scanned message parse outcome.
func IncMessageScanned(parsed bool) {
	if messagesScanned == nil {
		return
	}
	outcome := parseResultSkip
	if parsed {
		outcome = parseResultReading
	}
	messagesScanned.WithLabelValues(outcome).Inc()
}

// ObserveReportRun records report run latency and result.
func ObserveReportRun(command, result string, duration time.Duration) {
	if command == "" {
		command = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportRuns != nil {
		reportRuns.WithLabelValues(command, result).Inc()
	}
	if reportLatency != nil {
		reportLatency.WithLabelValues(command, result).Observe(duration.Seconds())
	}
}

// ObserveExport records export latency and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncPayout records a payout computation result.
func IncPayout(result string) {
	if result == "" {
		result = resultSuccess
	}
	if payoutTotal != nil {
		payoutTotal.WithLabelValues(result).Inc()
	}
}

// IncLedgerAppend records one ledger append by sink.
func IncLedgerAppend(sink, result string) {
	if sink == "" {
		sink = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if ledgerAppends != nil {
		ledgerAppends.WithLabelValues(sink, result).Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
