package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer, or the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the collectors, on the default registerer unless
// one is given.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		LayoutsComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bracket_layouts_computed_total",
			Help: "The total number of bracket layouts computed.",
		}, []string{"bracket_type"}),
		StandingsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_standings_resolved_total",
			Help: "The total number of group standings resolved.",
		}),
		TieBreaks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bracket_tie_breaks_total",
			Help: "The total number of tied groups, by the rule that settled them.",
		}, []string{"rule"}),
		SnapshotsOK: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_snapshots_published_total",
			Help: "The total number of tournament snapshots uploaded.",
		}),
		SnapshotsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bracket_snapshots_failed_total",
			Help: "The total number of tournament snapshots that failed to publish.",
		}),
		SnapshotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bracket_snapshot_duration_seconds",
			Help:    "The duration of building and uploading a snapshot.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}

	reg.MustRegister(
		s.LayoutsComputed,
		s.StandingsResolved,
		s.TieBreaks,
		s.SnapshotsOK,
		s.SnapshotsFailed,
		s.SnapshotDuration,
	)

	return s
}

func (s *Service) IncLayoutsComputed(bracketType string) {
	s.LayoutsComputed.WithLabelValues(bracketType).Inc()
}

func (s *Service) IncStandingsResolved() {
	s.StandingsResolved.Inc()
}

func (s *Service) IncTieBreaks(rule string) {
	s.TieBreaks.WithLabelValues(rule).Inc()
}

func (s *Service) IncSnapshotsPublished() {
	s.SnapshotsOK.Inc()
}

func (s *Service) IncSnapshotsFailed() {
	s.SnapshotsFailed.Inc()
}

func (s *Service) ObserveSnapshotDuration(seconds float64) {
	s.SnapshotDuration.Observe(seconds)
}
