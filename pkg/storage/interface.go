package storage

import "github.com/mertakman/go-sessionsense/pkg/models"

// SessionStore keeps the last analyzed record per session for stateful
// heuristics. Records are already privacy-safe when they reach the store:
// the engine strips raw user agents and never includes raw samples.
//
// The only shipped implementation is in-memory; the whole data model is
// ephemeral and process-lifetime-only by design.
type SessionStore interface {
	// GetLastRecord returns the most recent record for a session, or
	// nil, nil when the session has not been analyzed before.
	GetLastRecord(sessionID string) (*models.SessionRecord, error)

	// SaveRecord stores the record as the session's latest analysis.
	SaveRecord(record *models.SessionRecord) error
}
