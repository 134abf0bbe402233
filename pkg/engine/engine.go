package engine

import (
	"fmt"
	"time"

	"github.com/mertakman/go-sessionsense/pkg/fingerprint"
	"github.com/mertakman/go-sessionsense/pkg/geoip"
	"github.com/mertakman/go-sessionsense/pkg/heuristics"
	"github.com/mertakman/go-sessionsense/pkg/models"
	"github.com/mertakman/go-sessionsense/pkg/storage"
)

// Input is the data handed to a single analysis pass.
//
// Snapshot carries the behavioral statistics computed by the collector;
// the remaining fields are connection-derived and strictly ephemeral:
//   - IPAddress exists only during this call (environment cross-check).
//   - UserAgent is hashed before anything is stored; the raw value is
//     discarded with the Input.
type Input struct {
	// SessionID identifies the browser session being analyzed.
	SessionID string

	// Snapshot is the collector's statistical summary of the session.
	Snapshot models.SessionSnapshot

	// IPAddress of the connection (ephemeral, never stored).
	IPAddress string

	// UserAgent header value (hashed before storage).
	UserAgent string

	// AcceptLanguage header value, used only for the fingerprint context.
	AcceptLanguage string
}

// Engine is the analysis core.
//
// Design principles, in order:
//   - Heuristic-agnostic: the engine never references concrete heuristic
//     types; environment-aware heuristics are detected by interface.
//   - The engine owns all GeoIP interaction; heuristics receive only the
//     derived EnvContext.
//   - Privacy-safe output: the returned SessionRecord holds digests and
//     coarse statistics, never raw samples or identifiers.
//   - Explainable: every triggered heuristic contributes an itemized
//     assessment to the report.
//
// Usage:
//
//	eng := engine.New(geoService, store)
//	eng.AddHeuristic(heuristics.DefaultTypingTempo())
//	report, record, err := eng.Analyze(input)
type Engine struct {
	geoService *geoip.Service
	store      storage.SessionStore
	heuristics []heuristics.Heuristic
}

// New creates an engine. geoService may be nil; environment heuristics
// then skip silently. store must not be nil.
func New(geoService *geoip.Service, store storage.SessionStore) *Engine {
	return &Engine{
		geoService: geoService,
		store:      store,
		heuristics: make([]heuristics.Heuristic, 0),
	}
}

// AddHeuristic registers a heuristic. Heuristics are evaluated in the
// order they are added; the report's trait labels are last-writer-wins.
func (e *Engine) AddHeuristic(h heuristics.Heuristic) {
	e.heuristics = append(e.heuristics, h)
}

// Analyze runs every registered heuristic over the snapshot and returns
// the aggregated report plus a privacy-safe record of this analysis.
//
// The caller decides whether to keep the record (SaveRecord); the engine
// only reads the store, mirroring the fact that labels are estimates the
// integrating code may well discard.
func (e *Engine) Analyze(input Input) (*models.TraitReport, *models.SessionRecord, error) {
	if input.SessionID == "" {
		return nil, nil, fmt.Errorf("analysis input is missing a session id")
	}

	// 1. Ephemeral geo enrichment. Failures mean "no context", not errors.
	env := e.buildEnvContext(input.IPAddress)

	// 2. Fingerprint digest and user-agent hash. The raw user agent is
	// discarded after this point.
	snap := input.Snapshot
	snap.SessionID = input.SessionID
	if !snap.Signals.Empty() {
		snap.FingerprintDigest = fingerprint.Digest(snap.Signals)
	}
	deviceClass, _ := fingerprint.ClassifyDevice(snap.Signals)

	// 3. Privacy-safe record of this analysis.
	record := &models.SessionRecord{
		SessionID:           input.SessionID,
		Timestamp:           time.Now(),
		FingerprintDigest:   snap.FingerprintDigest,
		UserAgentHash:       fingerprint.HashUserAgent(input.UserAgent),
		DeviceClass:         deviceClass,
		ClientTimezone:      snap.Signals.ClientTimezone,
		KeystrokeCount:      snap.KeystrokeCount,
		PointerCount:        snap.PointerCount,
		KeyIntervalMean:     snap.KeyIntervalMean,
		MicroCorrectionRate: snap.MicroCorrectionRate,
	}

	// 4. Previous record for stateful heuristics; a store error degrades
	// to "first analysis".
	last, err := e.store.GetLastRecord(input.SessionID)
	if err != nil {
		last = nil
	}

	// 5. Evaluate. Heuristic errors skip the heuristic, never fail the pass.
	report := &models.TraitReport{
		SessionID:   input.SessionID,
		GeneratedAt: record.Timestamp,
		Assessments: make([]models.Assessment, 0, len(e.heuristics)),
		Labels:      make(map[models.Trait]string),
	}

	for _, h := range e.heuristics {
		var assessment models.Assessment
		var evalErr error

		if envAware, ok := h.(heuristics.EnvironmentAware); ok {
			assessment, evalErr = envAware.EvaluateWithEnv(env, snap, last)
		} else {
			assessment, evalErr = h.Evaluate(snap, last)
		}
		if evalErr != nil || !assessment.Triggered {
			continue
		}

		report.Assessments = append(report.Assessments, assessment)
		report.Labels[assessment.Trait] = assessment.Label
	}

	// env goes out of scope here; nothing geographic survives the pass.

	return report, record, nil
}

// buildEnvContext performs the ephemeral GeoIP lookups. With no service,
// an unparsable IP or lookup failures it returns an empty context.
func (e *Engine) buildEnvContext(ipAddress string) heuristics.EnvContext {
	env := heuristics.EnvContext{}
	if e.geoService == nil || ipAddress == "" {
		return env
	}

	if geoData, err := e.geoService.GetLocation(ipAddress); err == nil {
		env.HasGeo = true
		env.IPTimezone = geoData.Timezone
		env.CountryCode = geoData.CountryCode
	}
	if asn, org, err := e.geoService.GetASN(ipAddress); err == nil {
		env.HasGeo = true
		env.ASN = asn
		env.ASNOrg = org
	}
	return env
}
