package tea

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects runtime counters. A nil *Metrics records nothing.
type Metrics struct {
	updates      prometheus.Counter
	draws        prometheus.Counter
	drawDuration prometheus.Histogram
	effects      *prometheus.CounterVec
	actorExits   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. On error
// nothing stays registered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teatui_updates_total",
			Help: "Messages folded into the state by update.",
		}),
		draws: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teatui_draws_total",
			Help: "Successful frames drawn by view.",
		}),
		drawDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "teatui_draw_duration_seconds",
			Help:    "Time spent rendering and flushing one frame.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		effects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teatui_effects_total",
			Help: "Effect handler invocations by result.",
		}, []string{"result"}),
		actorExits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teatui_actor_exits_total",
			Help: "Actor terminations by actor and result.",
		}, []string{"actor", "result"}),
	}

	collectors := []prometheus.Collector{m.updates, m.draws, m.drawDuration, m.effects, m.actorExits}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			for _, registered := range collectors[:i] {
				reg.Unregister(registered)
			}
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeUpdate() {
	if m == nil {
		return
	}
	m.updates.Inc()
}

func (m *Metrics) observeDraw(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.draws.Inc()
	m.drawDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) observeEffect(produced bool) {
	if m == nil {
		return
	}
	result := "none"
	if produced {
		result = "message"
	}
	m.effects.WithLabelValues(result).Inc()
}

func (m *Metrics) observeExit(actor Actor, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.actorExits.WithLabelValues(string(actor), result).Inc()
}
