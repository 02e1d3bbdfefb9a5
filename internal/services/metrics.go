package services

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// contactMutations counts store mutations by operation and outcome.
	contactMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contacts_mutations_total",
			Help: "Total number of contact store mutations by operation and result.",
		},
		[]string{"op", "result"},
	)

	// contactsStored gauges the size of the in-memory collection.
	contactsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "contacts_stored",
			Help: "Current number of contacts in the store.",
		},
	)
)

func init() {
	prometheus.MustRegister(contactMutations, contactsStored)
}

// resultLabel maps an operation error to a bounded label value.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrDuplicateMobile):
		return "duplicate"
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, ErrContactNotFound):
		return "not_found"
	case errors.Is(err, ErrPersist):
		return "persist_error"
	default:
		return "error"
	}
}

func observe(op string, err error) {
	contactMutations.WithLabelValues(op, resultLabel(err)).Inc()
}
