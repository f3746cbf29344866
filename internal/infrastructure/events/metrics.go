package events

import (
	"sync"
	"time"
)

// PublishMetrics counts lead events handed to the broker.
type PublishMetrics struct {
	Published       int64         `json:"published"`
	Failed          int64         `json:"failed"`
	LastPublishedAt time.Time     `json:"last_published_at,omitempty"`
	LastError       string        `json:"last_error,omitempty"`
	AveragePublish  time.Duration `json:"average_publish_ns"`
}

// MetricsTracker provides a goroutine-safe wrapper around PublishMetrics.
type MetricsTracker struct {
	mu      sync.RWMutex
	metrics PublishMetrics
}

func NewMetricsTracker() *MetricsTracker {
	return &MetricsTracker{}
}

// Update applies a mutation in a thread-safe way.
func (t *MetricsTracker) Update(fn func(*PublishMetrics)) {
	if t == nil || fn == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.metrics)
}

// Snapshot returns a copy of the current metrics.
func (t *MetricsTracker) Snapshot() PublishMetrics {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.metrics
}

func (t *MetricsTracker) recordSuccess(at time.Time, took time.Duration) {
	t.Update(func(m *PublishMetrics) {
		m.Published++
		m.LastPublishedAt = at
		// running mean over successful publishes
		m.AveragePublish += (took - m.AveragePublish) / time.Duration(m.Published)
	})
}

func (t *MetricsTracker) recordFailure(err error) {
	t.Update(func(m *PublishMetrics) {
		m.Failed++
		m.LastError = err.Error()
	})
}
