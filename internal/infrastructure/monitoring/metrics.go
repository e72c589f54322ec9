package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	customersRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "customers_registered_total",
		Help: "Total number of customers registered.",
	})

	customersDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "customers_deleted_total",
		Help: "Total number of customers deleted.",
	})

	creditsIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credits_issued_total",
		Help: "Total number of credits issued.",
	})

	creditReviewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credit_reviews_total",
		Help: "Total number of credits processed by the review job, by outcome.",
	}, []string{"outcome"})
)

func RecordCustomerRegistered() {
	customersRegisteredTotal.Inc()
}

func RecordCustomerDeleted() {
	customersDeletedTotal.Inc()
}

func RecordCreditIssued() {
	creditsIssuedTotal.Inc()
}

func RecordCreditReview(outcome string) {
	creditReviewsTotal.WithLabelValues(outcome).Inc()
}
