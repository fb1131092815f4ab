// Package metrics expone los contadores Prometheus del checkout.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PromoApplications códigos aplicados por resultado (success|invalid|subscription_only).
	PromoApplications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oasis",
		Subsystem: "checkout",
		Name:      "promo_applications_total",
		Help:      "Promo code applications by outcome.",
	}, []string{"outcome"})

	// StepTransitions intentos de avanzar o retroceder por paso y resultado.
	StepTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oasis",
		Subsystem: "checkout",
		Name:      "step_transitions_total",
		Help:      "Checkout step submissions by step and outcome.",
	}, []string{"step", "outcome"})

	// HandoffTotal resultados del handoff (success|audit_failed|payment_failed|conflict).
	HandoffTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oasis",
		Subsystem: "checkout",
		Name:      "handoff_total",
		Help:      "Payment handoff attempts by outcome.",
	}, []string{"outcome"})

	// HandoffDuration latencia del handoff completo (audit log + proveedor de pagos).
	HandoffDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "oasis",
		Subsystem: "checkout",
		Name:      "handoff_duration_seconds",
		Help:      "Payment handoff duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	// ContactSubmissions envíos del formulario de contacto (accepted|rate_limited|invalid).
	ContactSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oasis",
		Subsystem: "site",
		Name:      "contact_submissions_total",
		Help:      "Contact form submissions by outcome.",
	}, []string{"outcome"})

	// ChatRequests llamadas al LLM del chat por resultado.
	ChatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oasis",
		Subsystem: "site",
		Name:      "chat_requests_total",
		Help:      "Chat relay requests by outcome.",
	}, []string{"outcome"})
)
