// Package metrics holds the Prometheus collectors for the ledger viewer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sales_ledger"

var (
	// QueryTotal counts ledger queries by cache outcome ("hit", "miss", "shared").
	QueryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "query_total",
		Help:      "Total ledger queries by cache outcome",
	}, []string{"cache"})

	// QueryDuration tracks how long a full filter/sort/summarize pass takes.
	QueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "query_duration_seconds",
		Help:      "Ledger query duration in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
	})

	// RowsShown tracks the filtered row count per query.
	RowsShown = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "query_rows_shown",
		Help:      "Number of records shown per ledger query",
		Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
	})

	// MalformedRecords counts records skipped by bounded windows because of a bad date.
	MalformedRecords = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "malformed_records_total",
		Help:      "Records with a malformed date seen while computing a view",
	})

	// SalesAdded counts records added through the service.
	SalesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_added_total",
		Help:      "Sale records added",
	})
)
