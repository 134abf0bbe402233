package models

// KeystrokeSample records a single key-down event.
//
// Samples are appended in event order and are read-only once written.
// IntervalMs is derived at append time from the previous keystroke in the
// same session; it is zero for the first keystroke.
type KeystrokeSample struct {
	// Key is the key identifier as reported by the browser (e.g. "a", "Shift").
	// It is kept only inside the session buffer and never leaves the process.
	Key string `json:"key"`

	// TimestampMs is the event timestamp in milliseconds since the Unix epoch.
	TimestampMs int64 `json:"ts_ms"`

	// IntervalMs is the inter-key interval in milliseconds.
	IntervalMs float64 `json:"interval_ms"`
}

// PointerSample records a single pointer move event.
//
// VelocityPxS, HeadingRad and MicroCorrection are derived at append time
// from the previous sample; the first sample of a session has all three
// zero-valued.
type PointerSample struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	TimestampMs int64   `json:"ts_ms"`

	// VelocityPxS is the instantaneous Euclidean velocity in pixels/second.
	VelocityPxS float64 `json:"velocity_px_s"`

	// HeadingRad is the movement direction in radians.
	HeadingRad float64 `json:"heading_rad"`

	// MicroCorrection flags a sharp direction reversal over a short
	// distance and time window, typical of overshoot corrections.
	MicroCorrection bool `json:"micro_correction"`
}

// ScrollSample records a single scroll event.
type ScrollSample struct {
	// Offset is the vertical scroll offset in pixels.
	Offset      float64 `json:"offset"`
	TimestampMs int64   `json:"ts_ms"`

	// Delta is the signed offset change since the previous sample.
	Delta float64 `json:"delta"`
}

// DeviceSignals holds the device capability queries, derived once per
// session from the browser's rendering/audio contexts and navigator object.
// The struct is immutable after the first set.
type DeviceSignals struct {
	// CanvasHash is the hash of a fixed canvas render (text + shapes).
	CanvasHash string `json:"canvas_hash"`

	// AudioHash is the hash of an OfflineAudioContext frequency response.
	AudioHash string `json:"audio_hash"`

	// WebGLVendor and WebGLRenderer come from the
	// WEBGL_debug_renderer_info extension.
	WebGLVendor   string `json:"webgl_vendor"`
	WebGLRenderer string `json:"webgl_renderer"`

	// Fonts is the list of fonts detected via measurement probing.
	Fonts []string `json:"fonts"`

	// HardwareConcurrency is navigator.hardwareConcurrency.
	HardwareConcurrency int `json:"hardware_concurrency"`

	// DeviceMemoryGB is navigator.deviceMemory.
	DeviceMemoryGB float64 `json:"device_memory_gb"`

	// MaxTouchPoints is navigator.maxTouchPoints.
	MaxTouchPoints int `json:"max_touch_points"`

	Platform string `json:"platform"`
	Language string `json:"language"`

	// ClientTimezone is Intl.DateTimeFormat().resolvedOptions().timeZone.
	ClientTimezone string `json:"client_timezone"`

	// UserAgent is kept only until analysis; the engine hashes it and
	// discards the raw value before anything is stored.
	UserAgent string `json:"user_agent"`
}

// Empty reports whether no capability signal has been collected at all.
func (d DeviceSignals) Empty() bool {
	return d.CanvasHash == "" && d.AudioHash == "" && d.WebGLRenderer == "" &&
		d.HardwareConcurrency == 0 && d.MaxTouchPoints == 0 && d.Platform == ""
}
