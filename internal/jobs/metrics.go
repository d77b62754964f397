package jobs

import (
	"sync"
	"time"

	"github.com/gcbaptista/go-autocorrect/model"
)

// recentWindow is how many completed runs per job type feed the average duration.
const recentWindow = 100

// TypeMetrics counts the jobs of one type by outcome.
type TypeMetrics struct {
	Created   int64   `json:"created"`
	Completed int64   `json:"completed"`
	Failed    int64   `json:"failed"`
	Cancelled int64   `json:"cancelled"`
	AverageMs float64 `json:"average_ms"` // over the last completed runs
}

// BuildThroughput sums the corpora produced by build jobs.
type BuildThroughput struct {
	Builds            int64   `json:"builds"`
	Bytes             int64   `json:"bytes"`
	Tokens            int64   `json:"tokens"`
	LargestVocabulary int     `json:"largest_vocabulary"`
	BytesPerSecond    float64 `json:"bytes_per_second"`
	TokensPerSecond   float64 `json:"tokens_per_second"`
}

// MetricsSnapshot is a point-in-time copy of the job metrics.
type MetricsSnapshot struct {
	Active      int64                         `json:"active"` // pending or running
	SuccessRate float64                       `json:"success_rate"`
	ByType      map[model.JobType]TypeMetrics `json:"by_type"`
	Builds      BuildThroughput               `json:"builds"`
	UpdatedAt   time.Time                     `json:"updated_at"`
}

type typeCounters struct {
	TypeMetrics
	recent []time.Duration
}

// metrics aggregates job outcomes and build volume. Safe for concurrent use.
type metrics struct {
	mu        sync.Mutex
	active    int64
	byType    map[model.JobType]*typeCounters
	builds    BuildThroughput
	buildTime time.Duration
	updatedAt time.Time
}

func newMetrics() *metrics {
	return &metrics{
		byType:    make(map[model.JobType]*typeCounters),
		updatedAt: time.Now(),
	}
}

// counters must be called with mu held.
func (m *metrics) counters(jobType model.JobType) *typeCounters {
	c, ok := m.byType[jobType]
	if !ok {
		c = &typeCounters{}
		m.byType[jobType] = c
	}
	return c
}

func (m *metrics) jobCreated(jobType model.JobType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.active++
	m.counters(jobType).Created++
	m.updatedAt = time.Now()
}

// jobFinished records a terminal status; took is only meaningful for completed jobs.
func (m *metrics) jobFinished(jobType model.JobType, status model.JobStatus, took time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active > 0 {
		m.active--
	}

	c := m.counters(jobType)
	switch status {
	case model.JobStatusCompleted:
		c.Completed++
		c.recent = append(c.recent, took)
		if len(c.recent) > recentWindow {
			c.recent = c.recent[1:]
		}
	case model.JobStatusFailed:
		c.Failed++
	case model.JobStatusCancelled:
		c.Cancelled++
	}
	m.updatedAt = time.Now()
}

func (m *metrics) buildFinished(report model.BuildReport) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.builds.Builds++
	m.builds.Bytes += int64(report.SizeBytes)
	m.builds.Tokens += int64(report.Tokens)
	m.builds.LargestVocabulary = max(m.builds.LargestVocabulary, report.VocabularySize)
	m.buildTime += report.Duration
	m.updatedAt = time.Now()
}

func (m *metrics) snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	byType := make(map[model.JobType]TypeMetrics, len(m.byType))
	var completed, failed int64
	for jobType, c := range m.byType {
		tm := c.TypeMetrics
		tm.AverageMs = averageMs(c.recent)
		byType[jobType] = tm
		completed += c.Completed
		failed += c.Failed
	}

	builds := m.builds
	if seconds := m.buildTime.Seconds(); seconds > 0 {
		builds.BytesPerSecond = float64(builds.Bytes) / seconds
		builds.TokensPerSecond = float64(builds.Tokens) / seconds
	}

	successRate := 1.0
	if completed+failed > 0 {
		successRate = float64(completed) / float64(completed+failed)
	}

	return MetricsSnapshot{
		Active:      m.active,
		SuccessRate: successRate,
		ByType:      byType,
		Builds:      builds,
		UpdatedAt:   m.updatedAt,
	}
}

func averageMs(durations []time.Duration) float64 {
	if len(durations) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range durations {
		total += d
	}
	return float64(total.Microseconds()) / float64(len(durations)) / 1000
}
