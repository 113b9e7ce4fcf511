// Package metrics records recommendation outcomes as Prometheus counters.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Recorder counts requests and slot outcomes. It satisfies recommend.Recorder.
type Recorder struct {
	gatherer prometheus.Gatherer

	RequestsTotal    *prometheus.CounterVec
	SlotsFilledTotal *prometheus.CounterVec
	SlotsEmptyTotal  *prometheus.CounterVec
}

// New registers the recipe-match collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	return NewWith(reg, reg)
}

// NewWith registers the collectors on reg and gathers from g.
func NewWith(reg prometheus.Registerer, g prometheus.Gatherer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		gatherer: g,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_match_requests_total",
				Help: "Recommendation requests by status",
			},
			[]string{"status"},
		),
		SlotsFilledTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_match_slots_filled_total",
				Help: "Filled slots by meal and relaxation level",
			},
			[]string{"meal", "level"},
		),
		SlotsEmptyTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_match_slots_empty_total",
				Help: "Slots left empty by meal",
			},
			[]string{"meal"},
		),
	}
}

func (r *Recorder) Request(status string) {
	r.RequestsTotal.WithLabelValues(status).Inc()
}

func (r *Recorder) SlotFilled(meal, level string) {
	r.SlotsFilledTotal.WithLabelValues(meal, level).Inc()
}

func (r *Recorder) SlotEmpty(meal string) {
	r.SlotsEmptyTotal.WithLabelValues(meal).Inc()
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
