// Package metrics publica o desfecho das avaliações via Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/HenriqueMV/quotagate/internal/core/domain"
	"github.com/HenriqueMV/quotagate/internal/core/ports"
)

type Recorder struct {
	evaluations *prometheus.CounterVec
}

var _ ports.MetricsRecorder = (*Recorder)(nil)

func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ratelimit_evaluations_total",
		Help: "Evaluations performed by the decision engine, by group and outcome.",
	}, []string{"group", "state"})

	if err := reg.Register(evaluations); err != nil {
		return nil, err
	}
	return &Recorder{evaluations: evaluations}, nil
}

func (r *Recorder) RecordEvaluation(group string, state domain.State) {
	r.evaluations.WithLabelValues(group, state.String()).Inc()
}
