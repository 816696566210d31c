package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the posting-engine Prometheus metrics.
type Metrics struct {
	TransactionsCreated prometheus.Counter
	TransactionsPosted  prometheus.Counter
	TransactionsVoided  prometheus.Counter
	PostingsBlocked     *prometheus.CounterVec
	FlagsRaised         *prometheus.CounterVec
	ChainVerifyFailures prometheus.Counter
	PostingDuration     prometheus.Histogram
}

// New creates the posting-engine metrics on the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates the posting-engine metrics registered against reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TransactionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "finbooks_transactions_created_total",
			Help: "Total number of draft transactions created",
		}),
		TransactionsPosted: factory.NewCounter(prometheus.CounterOpts{
			Name: "finbooks_transactions_posted_total",
			Help: "Total number of transactions posted",
		}),
		TransactionsVoided: factory.NewCounter(prometheus.CounterOpts{
			Name: "finbooks_transactions_voided_total",
			Help: "Total number of transactions voided",
		}),
		PostingsBlocked: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finbooks_postings_blocked_total",
			Help: "Postings blocked pending approval, by suggested approval type",
		}, []string{"approval_type"}),
		FlagsRaised: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finbooks_edge_case_flags_total",
			Help: "Edge-case flags raised by detection runs, by flag type",
		}, []string{"flag_type"}),
		ChainVerifyFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "finbooks_journal_chain_verify_failures_total",
			Help: "Journal chain verifications that found a broken link",
		}),
		PostingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "finbooks_posting_duration_seconds",
			Help:    "Duration of posting operations",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
