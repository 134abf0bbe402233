// Package collect owns the per-session, in-memory sample buffers.
//
// Buffers are strictly append-only: every derived field (inter-key interval,
// pointer velocity, micro-correction flag, scroll delta) is computed exactly
// once, at append time, from the previous sample. Samples are never mutated
// or removed afterwards; they disappear with the process.
package collect

import (
	"math"
	"sync"

	"github.com/mertakman/go-sessionsense/pkg/models"
	"github.com/mertakman/go-sessionsense/pkg/stats"
)

// Micro-correction detection: a heading reversal sharper than
// microCorrectionAngle within microCorrectionDist pixels and
// microCorrectionWindow milliseconds of the previous move.
const (
	microCorrectionAngle  = 120.0 * math.Pi / 180.0
	microCorrectionDist   = 24.0
	microCorrectionWindow = 80
)

// keyGridMs is the timing grid checked by the snapshot's automation signal.
const keyGridMs = 10.0

// Session buffers the telemetry of one browser session.
//
// Ingest handlers append from per-request goroutines, so all access goes
// through the RWMutex. The analysis side only ever sees immutable snapshots.
type Session struct {
	mu sync.RWMutex

	id         string
	keystrokes []models.KeystrokeSample
	pointer    []models.PointerSample
	scroll     []models.ScrollSample

	signals    models.DeviceSignals
	signalsSet bool
}

// NewSession creates an empty collector for the given session ID.
func NewSession(id string) *Session {
	return &Session{id: id}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// AddKeystroke appends a key-down sample. The inter-key interval is derived
// from the previous keystroke; the first keystroke carries a zero interval.
func (s *Session) AddKeystroke(key string, tsMs int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sample := models.KeystrokeSample{Key: key, TimestampMs: tsMs}
	if n := len(s.keystrokes); n > 0 {
		sample.IntervalMs = float64(tsMs - s.keystrokes[n-1].TimestampMs)
	}
	s.keystrokes = append(s.keystrokes, sample)
}

// AddPointer appends a pointer move sample. Velocity and heading are derived
// from the previous sample; a micro-correction is flagged when the heading
// reverses sharply over a short distance and time window.
func (s *Session) AddPointer(x, y float64, tsMs int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sample := models.PointerSample{X: x, Y: y, TimestampMs: tsMs}
	if n := len(s.pointer); n > 0 {
		prev := s.pointer[n-1]
		dx, dy := x-prev.X, y-prev.Y
		dt := tsMs - prev.TimestampMs

		sample.VelocityPxS = stats.Velocity(dx, dy, dt)
		sample.HeadingRad = stats.Heading(dx, dy)

		dist := math.Hypot(dx, dy)
		turn := stats.AngleBetween(sample.HeadingRad, prev.HeadingRad)
		if n > 1 && dist > 0 && dist <= microCorrectionDist &&
			dt > 0 && dt <= microCorrectionWindow && turn >= microCorrectionAngle {
			sample.MicroCorrection = true
		}
	}
	s.pointer = append(s.pointer, sample)
}

// AddScroll appends a scroll sample with the signed delta from the previous
// offset.
func (s *Session) AddScroll(offset float64, tsMs int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sample := models.ScrollSample{Offset: offset, TimestampMs: tsMs}
	if n := len(s.scroll); n > 0 {
		sample.Delta = offset - s.scroll[n-1].Offset
	}
	s.scroll = append(s.scroll, sample)
}

// SetDeviceSignals records the device capability signals. Signals are
// derived once per session; the first write wins and later calls are ignored.
func (s *Session) SetDeviceSignals(signals models.DeviceSignals) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.signalsSet {
		return
	}
	s.signals = signals
	s.signalsSet = true
}

// Keystrokes returns a copy of the keystroke buffer.
func (s *Session) Keystrokes() []models.KeystrokeSample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.KeystrokeSample, len(s.keystrokes))
	copy(out, s.keystrokes)
	return out
}

// PointerSamples returns a copy of the pointer buffer.
func (s *Session) PointerSamples() []models.PointerSample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PointerSample, len(s.pointer))
	copy(out, s.pointer)
	return out
}

// ScrollSamples returns a copy of the scroll buffer.
func (s *Session) ScrollSamples() []models.ScrollSample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ScrollSample, len(s.scroll))
	copy(out, s.scroll)
	return out
}

// Snapshot reduces the buffers to their summary statistics without
// mutating them. The returned snapshot is a value and stays valid while
// the collector keeps appending.
func (s *Session) Snapshot() models.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.SessionSnapshot{
		SessionID:      s.id,
		KeystrokeCount: len(s.keystrokes),
		PointerCount:   len(s.pointer),
		ScrollCount:    len(s.scroll),
		Signals:        s.signals,
	}

	if len(s.keystrokes) > 1 {
		intervals := make([]float64, 0, len(s.keystrokes)-1)
		for _, k := range s.keystrokes[1:] {
			intervals = append(intervals, k.IntervalMs)
		}
		snap.KeyIntervalMean = stats.Mean(intervals)
		snap.KeyIntervalStdDev = stats.StdDev(intervals)
		snap.KeyGridRatio = stats.GridRatio(intervals, keyGridMs, 0.5)
	}

	if len(s.pointer) > 1 {
		velocities := make([]float64, 0, len(s.pointer)-1)
		var corrections int
		for _, p := range s.pointer[1:] {
			velocities = append(velocities, p.VelocityPxS)
			if p.MicroCorrection {
				corrections++
			}
		}
		snap.PointerVelocityMean = stats.Mean(velocities)
		snap.PointerVelocityStdDev = stats.StdDev(velocities)
		snap.MicroCorrectionRate = float64(corrections) / float64(len(velocities))
	}

	if len(s.scroll) > 1 {
		speeds := make([]float64, 0, len(s.scroll)-1)
		var total float64
		for i := 1; i < len(s.scroll); i++ {
			cur, prev := s.scroll[i], s.scroll[i-1]
			total += math.Abs(cur.Delta)
			speeds = append(speeds, stats.Velocity(cur.Delta, 0, cur.TimestampMs-prev.TimestampMs))
		}
		snap.ScrollSpeedMean = stats.Mean(speeds)
		snap.ScrollDistanceTotal = total
	}

	return snap
}
