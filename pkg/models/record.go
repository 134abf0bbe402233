package models

import "time"

// SessionRecord is the privacy-safe summary of an analyzed session, kept in
// memory for stateful heuristics. It deliberately contains no raw keys, no
// coordinates and no raw user agent; only digests and coarse statistics.
//
// Records live for the process lifetime at most. There is no persistence.
type SessionRecord struct {
	SessionID string
	Timestamp time.Time

	// FingerprintDigest is the composite hash of the device signals.
	FingerprintDigest string

	// UserAgentHash replaces the raw user agent string.
	UserAgentHash string

	DeviceClass    string
	ClientTimezone string

	// Coarse behavioral statistics carried over for drift comparisons.
	KeystrokeCount      int
	PointerCount        int
	KeyIntervalMean     float64
	MicroCorrectionRate float64
}
