// Package heuristics contains the fixed-threshold classifiers that map a
// session's summary statistics to rough trait labels.
package heuristics

import "github.com/mertakman/go-sessionsense/pkg/models"

// Heuristic is the interface every classifier implements, stateless or
// stateful. The engine never references concrete heuristic types.
type Heuristic interface {
	// Name uniquely identifies the heuristic (e.g. "TypingTempo").
	Name() string

	// Trait is the quality this heuristic estimates.
	Trait() models.Trait

	// Description explains in one sentence what the heuristic checks.
	Description() string

	// Evaluate runs the heuristic against the current snapshot.
	// last is the previously stored record for the session and is nil on
	// the first analysis; stateless heuristics ignore it.
	//
	// A heuristic with too little signal returns an assessment with
	// Triggered=false rather than an error.
	Evaluate(snap models.SessionSnapshot, last *models.SessionRecord) (models.Assessment, error)
}

// EnvContext carries the ephemeral, engine-derived geographic context.
// It exists only during a single evaluation pass and is never stored.
type EnvContext struct {
	// HasGeo is false when no GeoIP data could be derived; environment
	// heuristics then skip silently.
	HasGeo bool

	IPTimezone  string
	CountryCode string
	ASN         uint
	ASNOrg      string
}

// EnvironmentAware marks heuristics that need the geographic context.
// The engine detects the interface dynamically and passes the context;
// new heuristics can opt in without any engine change.
type EnvironmentAware interface {
	Heuristic
	EvaluateWithEnv(env EnvContext, snap models.SessionSnapshot, last *models.SessionRecord) (models.Assessment, error)
}

// skipped is the untriggered assessment heuristics return on insufficient
// signal.
func skipped(h Heuristic) models.Assessment {
	return models.Assessment{
		Heuristic: h.Name(),
		Trait:     h.Trait(),
		Triggered: false,
	}
}
