package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesRecorded()
	IncSagasRun(saga string)
	IncSagasFailed(saga string)
	ObserveSagaDuration(duration float64)
	IncBatchCommits()
	IncNotifSent()
	IncNotifFailed()
	SetStartupTime(duration float64)
}
