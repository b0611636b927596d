package metrics

import "sync"

// Mock records calls in memory. It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	layouts            map[string]int
	standingsResolved  int
	tieBreaks          map[string]int
	snapshotsPublished int
	snapshotsFailed    int
	snapshotDurations  []float64
}

func NewMock() *Mock {
	return &Mock{
		layouts:   make(map[string]int),
		tieBreaks: make(map[string]int),
	}
}

func (m *Mock) IncLayoutsComputed(bracketType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layouts[bracketType]++
}

func (m *Mock) IncStandingsResolved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.standingsResolved++
}

func (m *Mock) IncTieBreaks(rule string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tieBreaks[rule]++
}

func (m *Mock) IncSnapshotsPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshotsPublished++
}

func (m *Mock) IncSnapshotsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshotsFailed++
}

func (m *Mock) ObserveSnapshotDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshotDurations = append(m.snapshotDurations, seconds)
}

func (m *Mock) LayoutsComputed(bracketType string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.layouts[bracketType]
}

func (m *Mock) StandingsResolved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.standingsResolved
}

func (m *Mock) TieBreaks(rule string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tieBreaks[rule]
}

func (m *Mock) SnapshotsPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotsPublished
}

func (m *Mock) SnapshotsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotsFailed
}
