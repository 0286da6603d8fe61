// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Account metrics
	AccountsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookkeeper_accounts_created_total",
		Help: "Total number of accounts created",
	})

	// Posting metrics
	EntriesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookkeeper_entries_posted_total",
		Help: "Total number of entries posted",
	})
	PostingErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookkeeper_posting_errors_total",
			Help: "Total number of rejected postings by reason",
		},
		[]string{"reason"},
	)

	// Ledger metrics
	ConsistencyChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookkeeper_consistency_checks_total",
			Help: "Total number of ledger consistency checks by result",
		},
		[]string{"result"},
	)
)
