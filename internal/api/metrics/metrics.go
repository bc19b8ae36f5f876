// Package metrics defines and registers the custom Prometheus metrics for the
// enrollment API. It is the single source of truth for metric names, labels,
// and help strings; HTTP-level metrics come from the echoprometheus
// middleware wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "enrollment"

// UsersCreatedTotal counts first-sign-in user records.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user records created.",
	},
)

// ClassesCreatedTotal counts instructor class submissions.
var ClassesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classes_created_total",
		Help:      "Total number of class listings submitted.",
	},
)

// PaymentIntentsCreatedTotal counts pending charges registered with the
// payment gateway.
var PaymentIntentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intents_created_total",
		Help:      "Total number of payment intents created with the gateway.",
	},
)

// PaymentsRecordedTotal counts completed selection-to-payment transitions.
// Label:
//   - result: "complete" (selection consumed), "stale" (no selection row
//     matched), or "duplicate" (claim already held)
var PaymentsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Total number of payment submissions, labelled by result.",
	},
	[]string{"result"},
)

// RoleDenialsTotal counts privileged requests rejected by the live role
// check.
// Label:
//   - role: the role the route required ("admin" or "instructor")
var RoleDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_denials_total",
		Help:      "Total number of requests rejected for lacking a required role.",
	},
	[]string{"role"},
)
