package shared

import (
	"time"

	"github.com/sirupsen/logrus"
)

// RunMetrics tracks the counters for a single monitor run. A run is
// single-threaded and run-to-completion, so no synchronization is needed.
type RunMetrics struct {
	StartedAt       time.Time
	RecordsFetched  int
	RecordsParsed   int
	RecordsSkipped  int
	QualifyingCount int
	FetchDuration   time.Duration
	SendDuration    time.Duration
}

// NewRunMetrics creates a metrics tracker stamped with the run start time
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		StartedAt: time.Now(),
	}
}

// ParseSuccessRate returns the parse success rate as a percentage
func (m *RunMetrics) ParseSuccessRate() float64 {
	total := m.RecordsParsed + m.RecordsSkipped
	if total == 0 {
		return 0.0
	}
	return float64(m.RecordsParsed) / float64(total) * 100.0
}

// LogSummary emits the run completion summary as a single structured entry
func (m *RunMetrics) LogSummary(logger *logrus.Entry) {
	logger.WithFields(logrus.Fields{
		"records_fetched":    m.RecordsFetched,
		"records_parsed":     m.RecordsParsed,
		"records_skipped":    m.RecordsSkipped,
		"parse_success_rate": m.ParseSuccessRate(),
		"qualifying_count":   m.QualifyingCount,
		"fetch_duration":     m.FetchDuration,
		"send_duration":      m.SendDuration,
		"total_duration":     time.Since(m.StartedAt),
	}).Info("Monitor run completed")
}
