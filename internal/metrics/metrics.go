// Package metrics держит Prometheus-счётчики доменных событий склада.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "skladpro"

// Registry реестр счётчиков сервиса, отдаётся на /metrics
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	Sessions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Logins and registrations by role.",
	}, []string{"role"})

	RequestsCreated = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Warehouse requests created by type.",
	}, []string{"type"})

	RequestStatusChanges = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_status_changes_total",
		Help:      "Request status updates by target status.",
	}, []string{"status"})

	ProductsSubmitted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_submitted_total",
		Help:      "Products submitted by suppliers.",
	})

	ProductDecisions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_decisions_total",
		Help:      "Operator decisions on pending products.",
	}, []string{"decision"})

	OrdersCreated = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Orders created from carts.",
	})

	OrderAmount = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_amount_total",
		Help:      "Sum of order totals.",
	})

	CollaboratorFetches = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collaborator_fetches_total",
		Help:      "Best-effort collaborator fetches by resource and outcome.",
	}, []string{"resource", "outcome"})
)

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
}

// Handler отдаёт метрики реестра
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
