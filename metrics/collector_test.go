package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/milk9111/animevents/animevent"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	r := animevent.New(animevent.WithObserver(c))
	r.Subscribe("Jump", func() {})
	r.Subscribe("jump", func() {})
	r.Subscribe("idle", nil)
	r.Handle("JUMP")
	r.Handle("jump")
	r.Handle("idle")
	r.Handle("land")
	r.Unsubscribe("jump")
	r.Unsubscribe("jump")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.subscriptions.WithLabelValues("added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.subscriptions.WithLabelValues("duplicate")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.handled.WithLabelValues("invoked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.handled.WithLabelValues("skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.handled.WithLabelValues("missing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.unsubscriptions.WithLabelValues("removed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.unsubscriptions.WithLabelValues("missing")))
}

func TestCollectorDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)
	_, err = NewCollector(reg)
	assert.Error(t, err)
}

func TestRouterServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)
	c.Handled("jump", animevent.Invoked)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	Router(reg).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `animevents_handled_total{outcome="invoked"} 1`)
}
