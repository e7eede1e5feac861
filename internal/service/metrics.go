package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ledgerOps counts ledger submissions by operation and outcome
	// (confirmed, rejected, undetermined).
	ledgerOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "broker_ledger_operations_total",
		Help: "Ledger submissions by operation and outcome",
	}, []string{"op", "outcome"})

	ledgerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "broker_ledger_submit_duration_seconds",
		Help:    "Ledger submission latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	}, []string{"op"})

	settlementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "broker_settlements_total",
		Help: "Processed responses by result",
	}, []string{"result"}) // verified, unverified, duplicate, failed

	feesCharged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "broker_fees_charged_total",
		Help: "Fees deducted from sub-accounts (smallest ledger unit)",
	})

	feesUncollected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "broker_fees_uncollected_total",
		Help: "Fee amounts that exceeded the sub-account balance",
	})

	headersIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "broker_request_headers_issued_total",
		Help: "Billing header sets issued",
	})

	directoryRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "broker_directory_refresh_total",
		Help: "Provider directory refreshes by result",
	}, []string{"result"}) // ok, stale, failed
)
