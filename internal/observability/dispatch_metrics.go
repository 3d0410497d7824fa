package observability

import (
	"sync/atomic"
	"time"
)

// DispatchMetrics counts send attempts without touching the Prometheus
// registry, so the stats endpoint and the CLI can read them directly.
type DispatchMetrics struct {
	attempts  atomic.Uint64
	succeeded atomic.Uint64
	failed    atomic.Uint64
	errored   atomic.Uint64
	preflight atomic.Uint64

	// duration stats (nanoseconds)
	durationCount atomic.Uint64
	durationTotal atomic.Int64
	durationMax   atomic.Int64
}

func NewDispatchMetrics() *DispatchMetrics {
	m := &DispatchMetrics{}
	m.durationMax.Store(0)
	return m
}

func (m *DispatchMetrics) IncAttempts() {
	m.attempts.Add(1)
}
func (m *DispatchMetrics) IncSucceeded() {
	m.succeeded.Add(1)
}
func (m *DispatchMetrics) IncFailed() {
	m.failed.Add(1)
}

func (m *DispatchMetrics) IncErrored() {
	m.errored.Add(1)
}

func (m *DispatchMetrics) IncPreflightRejected() {
	m.preflight.Add(1)
}

func (m *DispatchMetrics) ObserveDuration(d time.Duration) {
	ns := d.Nanoseconds()
	m.durationCount.Add(1)
	m.durationTotal.Add(ns)

	// max update

	for {
		curr := m.durationMax.Load()

		if ns <= curr {
			return
		}

		if m.durationMax.CompareAndSwap(curr, ns) {
			return
		}
	}
}

type DispatchMetricsSnapShot struct {
	Attempts          uint64        `json:"attempts"`
	Succeeded         uint64        `json:"succeeded"`
	Failed            uint64        `json:"failed"`
	Errored           uint64        `json:"errored"`
	PreflightRejected uint64        `json:"preflightRejected"`
	DurationCount     uint64        `json:"durationCount"`
	AverageDuration   time.Duration `json:"averageDurationNs"`
	MaxDuration       time.Duration `json:"maxDurationNs"`
}

func (m *DispatchMetrics) Snapshot() DispatchMetricsSnapShot {
	count := m.durationCount.Load()
	total := m.durationTotal.Load()
	max := m.durationMax.Load()

	var avg time.Duration

	if count > 0 {
		avg = time.Duration(total / int64(count))
	}

	return DispatchMetricsSnapShot{
		Attempts:          m.attempts.Load(),
		Succeeded:         m.succeeded.Load(),
		Failed:            m.failed.Load(),
		Errored:           m.errored.Load(),
		PreflightRejected: m.preflight.Load(),
		DurationCount:     count,
		AverageDuration:   avg,
		MaxDuration:       time.Duration(max),
	}

}
