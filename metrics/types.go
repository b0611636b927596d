package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics is what the services report to. Tests use Mock.
type Metrics interface {
	IncLayoutsComputed(bracketType string)
	IncStandingsResolved()
	IncTieBreaks(rule string)
	IncSnapshotsPublished()
	IncSnapshotsFailed()
	ObserveSnapshotDuration(seconds float64)
}

// Service holds the Prometheus collectors of the engine.
type Service struct {
	LayoutsComputed   *prometheus.CounterVec
	StandingsResolved prometheus.Counter
	TieBreaks         *prometheus.CounterVec
	SnapshotsOK       prometheus.Counter
	SnapshotsFailed   prometheus.Counter
	SnapshotDuration  prometheus.Histogram
}
