package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "points_transactions_total",
			Help: "Number of point transactions recorded",
		},
		[]string{"activity"},
	)

	monthlyCapClamps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "points_monthly_cap_clamps_total",
			Help: "Number of transactions whose monthly counter credit was clamped at the cap",
		},
	)

	writeConflictRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "points_write_conflict_retries_total",
			Help: "Number of optimistic-concurrency retries on ledger writes",
		},
	)
)
