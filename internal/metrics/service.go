package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cuescore_matches_recorded_total",
			Help: "The total number of matches recorded, 1v1 and group combined.",
		}),
		SagasRun: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cuescore_sagas_run_total",
			Help: "The total number of multi-step consistency operations started.",
		}, []string{"saga"}),
		SagasFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cuescore_sagas_failed_total",
			Help: "The total number of multi-step consistency operations that failed.",
		}, []string{"saga"}),
		SagaDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cuescore_saga_duration_seconds",
			Help:    "The duration of multi-step consistency operations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		BatchCommits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cuescore_batch_commits_total",
			Help: "The total number of capped write batches committed.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cuescore_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cuescore_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cuescore_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesRecorded,
		s.SagasRun,
		s.SagasFailed,
		s.SagaDuration,
		s.BatchCommits,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesRecorded() {
	s.MatchesRecorded.Inc()
}

func (s *Service) IncSagasRun(saga string) {
	s.SagasRun.WithLabelValues(saga).Inc()
}

func (s *Service) IncSagasFailed(saga string) {
	s.SagasFailed.WithLabelValues(saga).Inc()
}

func (s *Service) ObserveSagaDuration(duration float64) {
	s.SagaDuration.Observe(duration)
}

func (s *Service) IncBatchCommits() {
	s.BatchCommits.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
