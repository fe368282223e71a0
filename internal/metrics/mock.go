package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu              sync.Mutex
	matchesRecorded int
	sagasRun        map[string]int
	sagasFailed     map[string]int
	sagaDurations   []float64
	batchCommits    int
	notifSent       int
	notifFailed     int
	startupTime     float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		sagasRun:      make(map[string]int),
		sagasFailed:   make(map[string]int),
		sagaDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncSagasRun(saga string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sagasRun[saga]++
}

func (m *Mock) IncSagasFailed(saga string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sagasFailed[saga]++
}

func (m *Mock) ObserveSagaDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sagaDurations = append(m.sagaDurations, duration)
}

func (m *Mock) IncBatchCommits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchCommits++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// SagasRun returns the number of times IncSagasRun was called for a saga.
func (m *Mock) SagasRun(saga string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sagasRun[saga]
}

// SagasFailed returns the number of times IncSagasFailed was called for a saga.
func (m *Mock) SagasFailed(saga string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sagasFailed[saga]
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}
