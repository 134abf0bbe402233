package models

// SessionSnapshot is the statistical summary of a session's buffers at a
// point in time. Heuristics consume snapshots, never the raw buffers, so a
// snapshot is safe to pass around after the collector keeps appending.
type SessionSnapshot struct {
	SessionID string

	// Keystroke timing.
	KeystrokeCount    int
	KeyIntervalMean   float64 // ms
	KeyIntervalStdDev float64 // ms
	// KeyGridRatio is the share of inter-key intervals that land on an
	// exact millisecond grid. Human timing is noisy; scripted input is not.
	KeyGridRatio float64

	// Pointer kinematics.
	PointerCount          int
	PointerVelocityMean   float64 // px/s
	PointerVelocityStdDev float64 // px/s
	// MicroCorrectionRate is the share of pointer samples flagged as
	// micro-corrections.
	MicroCorrectionRate float64

	// Scrolling.
	ScrollCount         int
	ScrollSpeedMean     float64 // px/s, absolute
	ScrollDistanceTotal float64 // px, absolute

	// Device capability signals, as collected.
	Signals DeviceSignals

	// FingerprintDigest is filled in by the engine before heuristics run.
	FingerprintDigest string
}
