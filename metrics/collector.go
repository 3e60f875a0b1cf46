// Package metrics exports registry activity to Prometheus.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/milk9111/animevents/animevent"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements animevent.Observer using Prometheus counters.
type Collector struct {
	subscriptions   *prometheus.CounterVec
	unsubscriptions *prometheus.CounterVec
	handled         *prometheus.CounterVec
}

var _ animevent.Observer = (*Collector)(nil)

// NewCollector creates the counters and registers them on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		subscriptions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animevents_subscriptions_total",
				Help: "Subscribe calls by result (added or duplicate)",
			},
			[]string{"result"},
		),
		unsubscriptions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animevents_unsubscriptions_total",
				Help: "Unsubscribe calls by result (removed or missing)",
			},
			[]string{"result"},
		),
		handled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animevents_handled_total",
				Help: "Handled animation events by outcome",
			},
			[]string{"outcome"},
		),
	}
	for _, col := range []prometheus.Collector{c.subscriptions, c.unsubscriptions, c.handled} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Subscribed records a Subscribe call.
func (c *Collector) Subscribed(_ string, added bool) {
	result := "added"
	if !added {
		result = "duplicate"
	}
	c.subscriptions.WithLabelValues(result).Inc()
}

// Unsubscribed records an Unsubscribe call.
func (c *Collector) Unsubscribed(_ string, removed bool) {
	result := "removed"
	if !removed {
		result = "missing"
	}
	c.unsubscriptions.WithLabelValues(result).Inc()
}

// Handled records a Handle call. Event names are not used as labels since
// clips can fire arbitrary names.
func (c *Collector) Handled(_ string, outcome animevent.Outcome) {
	c.handled.WithLabelValues(string(outcome)).Inc()
}

// Router serves the gathered metrics on /metrics.
func Router(g prometheus.Gatherer) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
	return r
}
