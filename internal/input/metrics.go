package input

import (
	"sync/atomic"
	"time"
)

// Metrics counts tracker activity. Counters may be read from any goroutine.
type Metrics struct {
	keyEvents     atomic.Uint64
	pointerEvents atomic.Uint64
	wheelEvents   atomic.Uint64

	frames  atomic.Uint64
	samples atomic.Uint64

	captureAcquired atomic.Uint64
	captureLost     atomic.Uint64
	captureFailures atomic.Uint64

	startTime time.Time
	enabled   atomic.Bool
}

// NewMetrics creates an enabled metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordKeyEvent records a key-down or key-up signal.
func (m *Metrics) RecordKeyEvent() {
	if m.enabled.Load() {
		m.keyEvents.Add(1)
	}
}

// RecordPointerEvent records a pointer move, press or release signal.
func (m *Metrics) RecordPointerEvent() {
	if m.enabled.Load() {
		m.pointerEvents.Add(1)
	}
}

// RecordWheelEvent records a wheel signal.
func (m *Metrics) RecordWheelEvent() {
	if m.enabled.Load() {
		m.wheelEvents.Add(1)
	}
}

// RecordFrame records a sampler frame, effectful or not.
func (m *Metrics) RecordFrame() {
	if m.enabled.Load() {
		m.frames.Add(1)
	}
}

// RecordSample records an effectful sampler frame.
func (m *Metrics) RecordSample() {
	if m.enabled.Load() {
		m.samples.Add(1)
	}
}

// RecordCaptureAcquired records an Inactive to Active transition.
func (m *Metrics) RecordCaptureAcquired() {
	if m.enabled.Load() {
		m.captureAcquired.Add(1)
	}
}

// RecordCaptureLost records an Active to Inactive transition.
func (m *Metrics) RecordCaptureLost() {
	if m.enabled.Load() {
		m.captureLost.Add(1)
	}
}

// RecordCaptureFailure records a rejected or unsupported capture request.
func (m *Metrics) RecordCaptureFailure() {
	if m.enabled.Load() {
		m.captureFailures.Add(1)
	}
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	KeyEvents     uint64
	PointerEvents uint64
	WheelEvents   uint64

	Frames  uint64
	Samples uint64

	CaptureAcquired uint64
	CaptureLost     uint64
	CaptureFailures uint64

	Uptime time.Duration

	// SampleRate is samples per second of uptime.
	SampleRate float64
}

// Snapshot returns the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		KeyEvents:       m.keyEvents.Load(),
		PointerEvents:   m.pointerEvents.Load(),
		WheelEvents:     m.wheelEvents.Load(),
		Frames:          m.frames.Load(),
		Samples:         m.samples.Load(),
		CaptureAcquired: m.captureAcquired.Load(),
		CaptureLost:     m.captureLost.Load(),
		CaptureFailures: m.captureFailures.Load(),
		Uptime:          time.Since(m.startTime),
	}
	if snap.Uptime > 0 {
		snap.SampleRate = float64(snap.Samples) / snap.Uptime.Seconds()
	}
	return snap
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.keyEvents.Store(0)
	m.pointerEvents.Store(0)
	m.wheelEvents.Store(0)
	m.frames.Store(0)
	m.samples.Store(0)
	m.captureAcquired.Store(0)
	m.captureLost.Store(0)
	m.captureFailures.Store(0)
	m.startTime = time.Now()
}
