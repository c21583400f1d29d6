package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ParcelsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zapshift_parcels_created_total",
		Help: "Total number of parcels taken in.",
	})

	ParcelTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zapshift_parcel_transitions_total",
		Help: "Total number of delivery status changes, by target status.",
	},
		[]string{"status"},
	)

	ReconciliationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zapshift_payment_reconciliations_total",
		Help: "Total number of payment reconciliation attempts, by outcome.",
	},
		[]string{"outcome"},
	)

	OutboxPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zapshift_outbox_published_total",
		Help: "Total number of outbox messages delivered to the broker.",
	})

	OutboxFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zapshift_outbox_failures_total",
		Help: "Total number of failed outbox deliveries.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zapshift_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)
)
