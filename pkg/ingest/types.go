package ingest

import "github.com/mertakman/go-sessionsense/pkg/models"

// Event is the wire format for a single browser event. One shape covers
// all four event kinds; the kind decides which fields are read.
type Event struct {
	// Type of the event. Anything else is rejected at binding time.
	Type string `json:"type" binding:"required,oneof=keydown pointermove scroll device"`

	// TimestampMs is the browser event timestamp, ms since the Unix epoch.
	TimestampMs int64 `json:"ts_ms" binding:"required,gt=0"`

	// keydown
	Key string `json:"key,omitempty"`

	// pointermove
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`

	// scroll
	Offset float64 `json:"offset,omitempty"`

	// device
	Signals *models.DeviceSignals `json:"signals,omitempty"`
}

// Batch is a group of events posted together. The page flushes its local
// queue every couple of seconds.
type Batch struct {
	Events []Event `json:"events" binding:"required,min=1,dive"`
}

// sessionResponse is returned when a session is opened.
type sessionResponse struct {
	SessionID string `json:"session_id"`
}
